package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/pocket-pastor/internal/auth"
)

var (
	tokenUserID int
	tokenEmail  string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token signed with JWT_SECRET",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().IntVar(&tokenUserID, "user", 1, "User id to embed")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "dev@pocketpastor.local", "Email to embed")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.AppEnv == "production" {
		return fmt.Errorf("refusing to mint tokens in production")
	}
	token, err := auth.NewTokens(cfg.JWTSecret, tokenTTL).Issue(tokenUserID, tokenEmail)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
