package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/noah-isme/sales-commission/internal/db"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the commission database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("database-url", "", "PostgreSQL URL (defaults to $DATABASE_URL)")

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := databaseURL(cmd)
			if err != nil {
				return err
			}
			if err := db.Up(url); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			return printVersion(cmd, url)
		},
	})

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := databaseURL(cmd)
			if err != nil {
				return err
			}
			steps, _ := cmd.Flags().GetInt("steps")
			all, _ := cmd.Flags().GetBool("all")
			if steps <= 0 && !all {
				return errors.New("pass --steps N or --all")
			}
			if all {
				steps = 0
			}
			if err := db.Down(url, steps); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			return printVersion(cmd, url)
		},
	}
	down.Flags().Int("steps", 1, "number of migrations to roll back")
	down.Flags().Bool("all", false, "roll back every migration")
	root.AddCommand(down)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := databaseURL(cmd)
			if err != nil {
				return err
			}
			return printVersion(cmd, url)
		},
	})
	return root
}

func databaseURL(cmd *cobra.Command) (string, error) {
	url, _ := cmd.Flags().GetString("database-url")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		return "", errors.New("DATABASE_URL is not set")
	}
	return url, nil
}

func printVersion(cmd *cobra.Command, url string) error {
	v, dirty, err := db.Version(url)
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", v, dirty)
	return nil
}
