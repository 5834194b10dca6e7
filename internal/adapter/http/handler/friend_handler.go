package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/divyde/divyde/internal/adapter/http/dto"
	"github.com/divyde/divyde/internal/adapter/http/middleware"
	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/usecase"
)

// FriendService defines the behavior needed by FriendHandler.
type FriendService interface {
	CreateFriend(ctx context.Context, input usecase.CreateFriendInput) (*domain.Friend, error)
	ListFriends(ctx context.Context, userID string) ([]usecase.FriendWithBalance, error)
	GetFriend(ctx context.Context, userID, friendID string) (*usecase.FriendDetail, error)
	DeleteFriend(ctx context.Context, userID, friendID string) error
}

// FriendHandler handles friend-related HTTP requests.
type FriendHandler struct {
	friendUC FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friendUC FriendService) *FriendHandler {
	return &FriendHandler{friendUC: friendUC}
}

// Create creates a new friend.
func (h *FriendHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	friend, err := h.friendUC.CreateFriend(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create friend", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.FriendResponse{
		ID:          friend.ID,
		Name:        friend.Name,
		Email:       friend.Email,
		AvatarColor: friend.AvatarColor,
	})
}

// List lists the user's friends with their balances.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	friends, err := h.friendUC.ListFriends(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list friends", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListFriendsResponse{
		Friends: dto.FriendsFromUseCase(friends),
	})
}

// Get retrieves one friend with its debt history.
func (h *FriendHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing friend ID", "")
		return
	}

	detail, err := h.friendUC.GetFriend(r.Context(), userID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get friend", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FriendDetailFromUseCase(detail))
}

// Delete removes a friend and its debts.
func (h *FriendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing friend ID", "")
		return
	}

	if err := h.friendUC.DeleteFriend(r.Context(), userID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete friend", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
