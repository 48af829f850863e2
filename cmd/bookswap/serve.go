package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/emzola/bookswap/clients"
	"github.com/emzola/bookswap/config"
	"github.com/emzola/bookswap/handler"
	"github.com/emzola/bookswap/internal/auth"
	"github.com/emzola/bookswap/internal/cache"
	"github.com/emzola/bookswap/internal/jsonlog"
	"github.com/emzola/bookswap/internal/mailer"
	"github.com/emzola/bookswap/repository"
	"github.com/emzola/bookswap/repository/postgres"
	"github.com/emzola/bookswap/service"
	"github.com/spf13/cobra"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	logger  *jsonlog.Logger
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

func newServeCmd(configPath *string) *cobra.Command {
	var (
		migrate bool
		port    int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			err = serve(cmd.Context(), cfg, logger, migrate)
			if err != nil {
				logger.PrintError(err, nil)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending database migrations before serving")
	cmd.Flags().IntVar(&port, "port", 0, "API server port, overrides the configured port")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger *jsonlog.Logger, migrate bool) error {
	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)
	if migrate {
		if err := runMigrations(ctx, db, logger); err != nil {
			return err
		}
	}

	clientSet, err := newClients(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer clientSet.Cache.Close()

	// Application layers
	var wg sync.WaitGroup
	repo := repository.New(db)
	svc := service.New(cfg, &wg, logger, repo, clientSet)
	a := &app{
		config:  cfg,
		logger:  logger,
		repo:    repo,
		service: svc,
		handler: handler.New(cfg, logger, svc),
	}
	return a.serve(&wg)
}

// newClients builds the external collaborators. Photo uploads and email
// notifications are disabled when their settings are absent.
func newClients(ctx context.Context, cfg config.Config, logger *jsonlog.Logger) (service.Clients, error) {
	var c service.Clients
	if cfg.Auth.Key == "" {
		return c, errors.New("auth key must be configured")
	}
	tokens, err := auth.NewTokens(cfg.Auth.Key, cfg.Auth.Issuer, cfg.Auth.Audience)
	if err != nil {
		return c, err
	}
	c.Tokens = tokens
	c.Catalog = clients.NewCatalog(cfg, logger)

	if cfg.Cache.RedisAddr != "" {
		redisCache := cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisCache.Ping(pingCtx); err != nil {
			redisCache.Close()
			return c, err
		}
		c.Cache = redisCache
		logger.PrintInfo("redis cache connected", map[string]string{"addr": cfg.Cache.RedisAddr})
	} else {
		c.Cache = cache.NewMemory(config.Duration(cfg.Cache.SuggestionTTL, time.Hour))
	}

	if cfg.S3.Bucket != "" {
		s3Client, err := clients.NewS3Client(cfg)
		if err != nil {
			return c, err
		}
		assets, err := clients.NewAssets(s3Client, cfg)
		if err != nil {
			return c, err
		}
		c.Assets = assets
	} else {
		logger.PrintInfo("asset host not configured, photo uploads disabled", nil)
	}

	if cfg.Smtp.Host != "" {
		c.Mailer = mailer.New(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.Sender)
	}
	return c, nil
}
