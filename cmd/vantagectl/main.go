package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"vantage/internal/config"
	"vantage/internal/db"
	"vantage/internal/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var dsn string

	rootCmd := &cobra.Command{
		Use:   "vantagectl",
		Short: "Vantage maintenance commands",
	}
	rootCmd.PersistentFlags().StringVar(&dsn, "database-url", "", "database DSN (defaults to DATABASE_URL)")

	connect := func() (*gorm.DB, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if dsn == "" {
			dsn = cfg.Database.URL
		}
		return db.Connect(dsn)
	}

	rootCmd.AddCommand(migrateCommand(connect), backfillCommand(connect))
	return rootCmd
}

func migrateCommand(connect func() (*gorm.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect()
			if err != nil {
				return err
			}
			if err := db.Migrate(conn); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database migration completed")
			return nil
		},
	}
}

func backfillCommand(connect func() (*gorm.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-subjects",
		Short: "Fill in the subject of ideas that have none",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect()
			if err != nil {
				return err
			}
			updated, err := services.BackfillSubjects(cmd.Context(), conn)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d ideas with subject.\n", updated)
			return nil
		},
	}
}
