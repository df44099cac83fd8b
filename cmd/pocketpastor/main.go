// Command pocketpastor runs the Pocket Pastor reader API and its tooling.
//
// @title Pocket Pastor Reader API
// @version 1.0
// @description Verse selection, highlight and favorite-cluster engine of the Pocket Pastor Bible reader.
// @BasePath /pocket-pastor/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/pkg/config"
	"github.com/taiwoajasa245/pocket-pastor/pkg/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pocketpastor",
	Short: "Pocket Pastor reader API",
	Long: `Pocket Pastor serves the Bible reader's verse selection engine:
chapter segmentation, highlights, favorite verse clusters and the
action bar that ties them together.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(tokenCmd)
}

// setup loads configuration and builds the logger shared by every command.
func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.LoadConfig()
	log, err := logger.New(cfg.AppEnv, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
