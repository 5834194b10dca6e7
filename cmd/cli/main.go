package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/divyde/divyde/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

// swapped out in tests
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "divyde-cli",
		Short: "Divyde CLI tool",
		Long:  `A command line interface for interacting with the Divyde API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Divyde API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	friendsCmd := &cobra.Command{
		Use:   "friends",
		Short: "Friend operations",
	}
	friendsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List friends with balances",
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/friends")
		},
	})

	debtsCmd := &cobra.Command{
		Use:   "debts",
		Short: "Debt operations",
	}

	var filter, friendID string
	listDebtsCmd := &cobra.Command{
		Use:   "list",
		Short: "List debts with totals",
		Run: func(cmd *cobra.Command, args []string) {
			path := "/api/v1/debts?filter=" + filter
			if friendID != "" {
				path += "&friend_id=" + friendID
			}
			doGet(path)
		},
	}
	listDebtsCmd.Flags().StringVar(&filter, "filter", "all", "Filter: all, outstanding or paid")
	listDebtsCmd.Flags().StringVar(&friendID, "friend", "", "Restrict to a single friend ID")
	debtsCmd.AddCommand(listDebtsCmd)

	debtsCmd.AddCommand(&cobra.Command{
		Use:   "paid <debt-id>",
		Short: "Mark a debt as paid",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPatch("/api/v1/debts/"+args[0], map[string]any{"is_paid": true})
		},
	})
	debtsCmd.AddCommand(&cobra.Command{
		Use:   "unpaid <debt-id>",
		Short: "Mark a debt as outstanding again",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doPatch("/api/v1/debts/"+args[0], map[string]any{"is_paid": false})
		},
	})

	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(debtsCmd)
	rootCmd.AddCommand(hashPasswordCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password with bcrypt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&migrationsPath, "migrations", "migrations", "Path to migration files")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, migrationsPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, migrationsPath)
		},
	})

	return cmd
}

func doGet(path string) {
	doRequest(http.MethodGet, path, nil)
}

func doPatch(path string, body map[string]any) {
	data, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("Error encoding body: %v\n", err)
		os.Exit(1)
	}
	doRequest(http.MethodPatch, path, bytes.NewReader(data))
}

func doRequest(method, path string, body io.Reader) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(data), 500))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
