/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blogapi",
	Short: "Mini blog REST backend",
	Long: `blogapi is a minimal blog-style REST backend: user registration and
login with JWT issuance, and protected CRUD operations on posts backed by
Postgres.`,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
