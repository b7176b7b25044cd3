package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"manufacturing/internal/adapters/out/identity"
	"manufacturing/internal/adapters/out/postgres"
	redisadapter "manufacturing/internal/adapters/out/redis"
	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// NewRootCommand builds the service CLI.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "manufacturing",
		Short:         "Order lifecycle service for a make-to-order plant",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.AddCommand(newServeCommand(), newMigrateCommand(), newTokenCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE:  runServe,
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			if err = postgres.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.InfoContext(cmd.Context(), "Schema migrated", "database", cfg.DBName)
			return nil
		},
	}
}

func newTokenCommand() *cobra.Command {
	var userID, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user and role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if err = cfg.RequireJWT(); err != nil {
				return err
			}

			id := kernel.NewUUID()
			if userID != "" {
				if id, err = kernel.UUIDFromString(userID); err != nil {
					return err
				}
			}
			actor, err := kernel.NewActor(id, kernel.Role(role))
			if err != nil {
				return err
			}

			tokens := identity.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTokenTTL)
			token, err := tokens.Issue(actor)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (random when empty)")
	cmd.Flags().StringVar(&role, "role", string(kernel.RoleOffice), "job role of the user")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if err = cfg.RequireJWT(); err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	cache, closeCache := openCapacityCache(ctx, cfg, logger)
	defer closeCache()

	app := NewCompositionRoot(cfg, db, cache, logger)
	e, err := app.NewRouter(ctx)
	if err != nil {
		return err
	}

	jobManager := app.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.InfoContext(shutdownCtx, "Shutting down HTTP server")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newLogger(cfg Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, nil
}

func openDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// openCapacityCache connects to Redis when configured. The service keeps
// running without the cache if Redis is unreachable.
func openCapacityCache(ctx context.Context, cfg Config, logger *slog.Logger) (ports.CapacityCache, func()) {
	if cfg.RedisAddr == "" {
		return nil, func() {}
	}
	client, err := redisadapter.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.WarnContext(ctx, "Redis unavailable, continuing without capacity cache", "addr", cfg.RedisAddr, "error", err)
		return nil, func() {}
	}
	return redisadapter.NewCapacityCache(client, cfg.CapacityCacheTTL), func() { _ = client.Close() }
}
