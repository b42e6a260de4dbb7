package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/brand-ad-studio/internal/config"
	"github.com/jonathan/brand-ad-studio/internal/server"
)

var (
	adminEmail       string
	adminName        string
	adminDatabaseURL string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long:  "Create an admin who can edit brands, guidelines and instructions. The password is read from ADMIN_PASSWORD.",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	_ = createAdminCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD environment variable is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	ctx := context.Background()
	database, err := connectDB(ctx, cfg, adminDatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	admin, err := server.NewAuthService(database, passwordConfig).CreateAdmin(ctx, adminEmail, adminName, password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", admin.Email, admin.ID)
	return nil
}
