package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"soundwave/internal/config"
	"soundwave/internal/database"
	"soundwave/internal/handlers"
	"soundwave/internal/logging"
	"soundwave/internal/monitoring"
	"soundwave/internal/server"
	"soundwave/internal/services"
	"soundwave/internal/utils"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// loadConfig reads the config file when it exists, then applies the
// environment and validates the result.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API",
		Flags:  []cli.Flag{configFlag()},
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create tables or indexes for the configured database",
		Flags:  []cli.Flag{configFlag()},
		Action: migrate,
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example configuration file",
				Flags: []cli.Flag{configFlag()},
				Action: func(_ context.Context, cmd *cli.Command) error {
					path := cmd.String("config")
					if err := config.CreateConfigFile(path); err != nil {
						return err
					}
					fmt.Printf("wrote %s\n", path)
					return nil
				},
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	startedAt := time.Now()
	st, err := database.OpenStore(ctx, cfg.Database, logging.WithComponent(logger, "database"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Warn("close store", "err", err)
		}
	}()

	tokens, err := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		return err
	}

	h := handlers.New(handlers.Options{
		Auth:          services.NewAuth(st, tokens),
		Catalog:       services.NewCatalog(st),
		Playlists:     services.NewPlaylists(st),
		Monitor:       monitoring.NewService(startedAt, st, cfg.Database.Driver),
		Logger:        logging.WithComponent(logger, "handlers"),
		CookieSecure:  cfg.Auth.CookieSecure,
		MonitoringKey: cfg.Monitoring.APIKey,
		Version:       version,
	})
	router, err := server.NewRouter(h, tokens, cfg.Server.CORSOrigins, logging.WithComponent(logger, "http"))
	if err != nil {
		return err
	}

	return server.Run(ctx, server.Config{
		Server: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ShutdownTimeout: cfg.Server.ShutdownTimeout(),
		Logger:          logger,
	})
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	st, err := database.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer st.Close(context.Background())

	logger.Info("schema is up to date", "driver", cfg.Database.Driver)
	return nil
}
