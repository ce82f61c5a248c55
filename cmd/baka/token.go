package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/bakabot/internal/auth"
)

// minSecretLen matches the server's check on auth.jwt_secret.
const minSecretLen = 32

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}

	var (
		name string
		ttl  time.Duration
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for the phrase API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Auth.JWTSecret) < minSecretLen {
				return fmt.Errorf("auth.jwt_secret must be at least %d characters", minSecretLen)
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}

			client := auth.Client{ID: uuid.New(), Name: name}
			token, expires, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl).IssueToken(client)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "client:  %s (%s)\n", client.Name, client.ID)
			fmt.Fprintf(out, "expires: %s\n", expires.UTC().Format(time.RFC3339))
			fmt.Fprintf(out, "token:   %s\n", token)
			return nil
		},
	}
	issue.Flags().StringVar(&name, "name", "", "Client name recorded in the token")
	issue.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default auth.token_ttl)")
	_ = issue.MarkFlagRequired("name")

	cmd.AddCommand(issue)
	return cmd
}
