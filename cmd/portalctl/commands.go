package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/app"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/auth"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/config"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash to put in ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}

func issueTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Mint an admin session token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetDuration("ttl")
			secret, _ := cmd.Flags().GetString("secret")
			if secret == "" {
				v := viper.New()
				v.AutomaticEnv()
				secret = v.GetString("JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is not set and --secret was not given")
			}

			token, expiresAt, err := auth.NewAuthenticator("", secret, ttl).Issue()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().Duration("ttl", auth.DefaultSessionTTL, "token lifetime")
	cmd.Flags().String("secret", "", "signing secret (defaults to JWT_SECRET)")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the listing and message tables or indexes for STORE_DRIVER",
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")

			log := logger.NewLogger()
			cfg, err := config.LoadConfig(log)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			stores, err := app.OpenStores(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("failed to open stores: %w", err)
			}
			stores.Close(ctx)

			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready for %s store.\n", cfg.StoreDriver)
			return nil
		},
	}
	cmd.Flags().Duration("timeout", 30*time.Second, "time allowed for connecting and migrating")
	return cmd
}
