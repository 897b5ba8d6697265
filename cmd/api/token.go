package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

var tokenTTL time.Duration

// tokenCmd mints a token for local testing, signed like the identity provider's.
var tokenCmd = &cobra.Command{
	Use:   "token [user-id]",
	Short: "Print a signed access token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, tokenTTL)

		token, err := svc.GenerateToken(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
