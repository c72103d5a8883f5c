package main

import (
	"errors"
	"fmt"
	"time"

	"sova/config"
	"sova/utils"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Issue a bearer token for the /admin endpoints",
	Long: `Issue a bearer token for the /admin endpoints.

The token is signed with ADMIN_JWT_SECRET and carries the admin role.

Examples:
  sova admin-token --subject ops --ttl 24h`,
	RunE: runAdminToken,
}

func init() {
	adminTokenCmd.Flags().StringVar(&tokenSubject, "subject", "ops", "operator name stored in the token")
	adminTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runAdminToken(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()

	token, err := mintAdminToken(cfg.AdminJWTSecret, tokenSubject, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func mintAdminToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("ADMIN_JWT_SECRET is not set")
	}
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	return utils.GenerateJWT(subject, "admin", secret, ttl)
}
