package main

import (
	"os"

	"github.com/emzola/bookswap/config"
	_ "github.com/emzola/bookswap/docs"
	"github.com/emzola/bookswap/internal/jsonlog"
	"github.com/spf13/cobra"
)

// @title  Bookswap API
// @version 1.0.0
// @description This is an API service for listing physical books and exchanging them between users.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "bookswap",
		Short:         "Book exchange marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to an optional YAML config file")
	root.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newTokenCmd(&configPath),
	)
	return root
}

// loadConfig decodes the configuration and builds the logger at the
// configured level. Errors are reported through the returned logger.
func loadConfig(path string) (config.Config, *jsonlog.Logger, error) {
	cfg, err := config.Decode(path)
	if err != nil {
		logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)
		logger.PrintError(err, nil)
		return cfg, logger, err
	}
	level, err := jsonlog.ParseLevel(cfg.Server.LogLevel)
	logger := jsonlog.New(os.Stdout, level)
	if err != nil {
		logger.PrintError(err, map[string]string{"log_level": cfg.Server.LogLevel})
	}
	return cfg, logger, nil
}
