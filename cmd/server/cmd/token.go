package cmd

import (
	"errors"
	"fmt"
	"time"

	"clubsphere_backend/internal/config"
	"clubsphere_backend/internal/identity"
	"clubsphere_backend/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a local HS256 bearer token for development",
	Long: `Issue a bearer token signed with AUTH_JWT_SECRET.

Example:
  server token --email admin@example.com --ttl 24h
  curl -H "Authorization: Bearer $TOKEN" http://localhost:3000/users`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv(envFile)
		secret := utils.Getenv("AUTH_JWT_SECRET", "")
		if secret == "" {
			return errors.New("AUTH_JWT_SECRET is not set")
		}
		if utils.IsEmpty(tokenEmail) {
			return errors.New("--email is required")
		}
		token, err := identity.NewJWTVerifier(secret).Issue(tokenEmail, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim of the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
