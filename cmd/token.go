package cmd

import (
	"fmt"
	"time"

	"room-booking-api/core/config"
	"room-booking-api/core/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenRole string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for the private API",
	Long: `Signs an access token with the configured JWT secret so operators can
call the private recommendation endpoints.`,
	RunE: runToken,
}

func init() {
	f := tokenCmd.Flags()
	f.StringVar(&tokenUser, "user", "", "User ID (UUID); a random one when empty")
	f.StringVar(&tokenRole, "role", "operator", "Role claim")
	f.DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(configDir); err != nil {
		return err
	}

	userID := uuid.New()
	if tokenUser != "" {
		parsed, err := uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
		userID = parsed
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("--ttl must be positive")
	}

	token, err := utils.GenerateToken(userID, tokenRole, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
