package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sajidddd11/telegramtodo/pkg/scope"
)

func newTokenCmd(env *cliEnv) *cobra.Command {
	var (
		secret   string
		username string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token for the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = env.cfg.Auth.JWTSecret
			}
			manager, err := scope.New(secret, ttl)
			if err != nil {
				return fmt.Errorf("token: %w (set auth.jwt_secret or --secret)", err)
			}

			if username == "" {
				username = env.userID
			}
			token, err := manager.Sign(scope.User{ID: env.userID, Username: username})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret (default: auth.jwt_secret)")
	cmd.Flags().StringVar(&username, "username", "", "Username claim (default: the user id)")
	cmd.Flags().DurationVar(&ttl, "ttl", defaultTokenTTL, "Token lifetime")
	return cmd
}
