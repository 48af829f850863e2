package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/emzola/bookswap/internal/auth"
	"github.com/spf13/cobra"
)

// newTokenCmd mints an access token signed with the configured key, for
// local development against a running server.
func newTokenCmd(configPath *string) *cobra.Command {
	var (
		userID int64
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID < 1 {
				return errors.New("--user-id must be a positive integer")
			}
			cfg, _, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokens(cfg.Auth.Key, cfg.Auth.Issuer, cfg.Auth.Audience)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tokens.Issue(userID, ttl))
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "id of the user the token is issued for")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
