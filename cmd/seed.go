package cmd

import (
	"log/slog"

	"github.com/miniblog/apiserver/config"
	"github.com/miniblog/apiserver/internal/db"
	"github.com/miniblog/apiserver/types"
	"github.com/spf13/cobra"
)

var seedPosts = []types.Post{
	{
		ID:        "1703862400000",
		Title:     "Getting Started with Go",
		Content:   "Go is a small language with a big standard library. It compiles to a single static binary, ships with a race detector and a formatter, and makes concurrent network services straightforward. In this post we walk through setting up a module and writing your first HTTP server.",
		CreatedAt: "2024-12-29T10:00:00Z",
	},
	{
		ID:        "1703866000000",
		Title:     "Understanding HTTP Middleware",
		Content:   "Middleware wraps a handler with behavior that runs before or after it: logging, authentication, panic recovery. Because handlers are just functions, composing middleware in Go is plain function composition. This post shows the standard patterns and where they break down.",
		CreatedAt: "2024-12-29T11:00:00Z",
	},
	{
		ID:        "1703869600000",
		Title:     "REST API Best Practices",
		Content:   "A well-designed REST API uses the right HTTP methods, stays stateless, returns meaningful status codes, and versions its surface. We dive into each of these principles with concrete examples from production services.",
		CreatedAt: "2024-12-29T12:00:00Z",
	},
	{
		ID:        "1703873200000",
		Title:     "Working with JSON Web Tokens",
		Content:   "JWTs let a server prove it issued a claim without storing session state. That cuts both ways: a stolen token stays valid until it expires. This post covers signing, verification, expiry, and the trade-offs against server-side sessions.",
		CreatedAt: "2024-12-29T13:00:00Z",
	},
	{
		ID:        "1703876800000",
		Title:     "Web Security Fundamentals",
		Content:   "Security should never be an afterthought. This post covers password hashing with adaptive functions, constant-time comparison, uniform authentication errors, and why your API should log failures server-side instead of explaining them to the caller.",
		CreatedAt: "2024-12-29T14:00:00Z",
	},
}

// seedCmd inserts sample posts so a fresh deployment has content to list.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample posts into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		conn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		const query = `
			INSERT INTO posts (id, title, content, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`
		for _, post := range seedPosts {
			if _, err := conn.ExecContext(cmd.Context(), query, post.ID, post.Title, post.Content, post.CreatedAt); err != nil {
				return err
			}
			slog.Info("inserted post", "title", post.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
