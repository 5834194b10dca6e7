package redis

import "fmt"

// Key layout. Documents are stored as JSON values, membership is tracked
// with per-user id sets so listings never scan the keyspace.
func userKey(id string) string {
	return "user:" + id
}

func userEmailKey(email string) string {
	return "user:email:" + email
}

func friendKey(userID, id string) string {
	return fmt.Sprintf("friend:%s:%s", userID, id)
}

func friendSetKey(userID string) string {
	return "friends:" + userID
}

func debtKey(userID, id string) string {
	return fmt.Sprintf("debt:%s:%s", userID, id)
}

func debtSetKey(userID string) string {
	return "debts:" + userID
}

func debtFriendSetKey(userID, friendID string) string {
	return fmt.Sprintf("debts:%s:friend:%s", userID, friendID)
}
