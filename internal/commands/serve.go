package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/seclens/seclens/internal/config"
	"github.com/seclens/seclens/internal/handlers"
	"github.com/seclens/seclens/internal/history"
	"github.com/seclens/seclens/internal/logging"
	"github.com/seclens/seclens/internal/messaging"
	"github.com/seclens/seclens/internal/metrics"
	"github.com/seclens/seclens/internal/server"
	"github.com/seclens/seclens/internal/service"
	"github.com/seclens/seclens/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the chat API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := logging.New(
			logging.ParseLevel(cfg.Logging.Level),
			cfg.Logging.Format,
		).With(logging.Service("seclens"))
		logging.SetDefault(logger)

		slog.Info("starting seclens",
			slog.Int("port", cfg.Server.Port),
			slog.String("history_backend", cfg.History.Backend),
			slog.String("dataset", cfg.Dataset.Path),
		)

		eventStore := store.New()
		// Startup survives a missing dataset; queries just match nothing.
		_ = eventStore.Load(cfg.Dataset.Path)
		metrics.DatasetEvents.Set(float64(eventStore.Len()))

		if cfg.DatabaseURL != "" {
			slog.Info("running database migrations")
			m, err := migrate.New("file://migrations", cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("init migrations: %w", err)
			}
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("run migrations: %w", err)
			}
			slog.Info("database migrations completed")
		}

		turns, cleanup, err := buildTurnStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer cleanup()
		}

		var publisher service.Publisher
		if cfg.NATS.Enabled {
			natsCfg := messaging.Config{
				URL:           cfg.NATS.URL,
				Name:          "seclens",
				MaxReconnects: cfg.NATS.MaxReconnects,
				ReconnectWait: cfg.NATS.ReconnectWaitDuration(),
				Timeout:       5 * time.Second,
			}
			natsClient, err := messaging.NewClient(natsCfg)
			if err != nil {
				slog.Warn("failed to connect to NATS (continuing without NATS)",
					slog.String("url", cfg.NATS.URL),
					slog.String("error", err.Error()))
			} else {
				slog.Info("connected to NATS", slog.String("url", cfg.NATS.URL))
				defer natsClient.Close()
				publisher = messaging.NewPublisher(natsClient)
			}
		} else {
			slog.Info("NATS messaging disabled")
		}

		svc := service.New(eventStore, turns, publisher, logger)
		h := handlers.New(svc, logger).WithSessionCookie(
			cfg.Session.CookieName,
			time.Duration(cfg.Session.MaxAgeSeconds)*time.Second,
		)

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      server.NewRouter(h),
			ReadTimeout:  cfg.Server.ReadTimeout(),
			WriteTimeout: cfg.Server.WriteTimeout(),
			IdleTimeout:  cfg.Server.IdleTimeout(),
		}

		shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("listening", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-shutdownCtx.Done():
		}
		slog.Info("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	},
}

// buildTurnStore selects the conversation history backend from config.
func buildTurnStore(ctx context.Context, cfg *config.Config) (history.TurnStore, func(), error) {
	switch cfg.History.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: cfg.History.RedisAddr,
			DB:   cfg.History.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		slog.Info("using redis history backend", slog.String("addr", cfg.History.RedisAddr))
		return history.NewRedisStore(client, cfg.History.TTL()), func() { client.Close() }, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("postgres history backend requires database_url")
		}
		pg, err := history.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using postgres history backend")
		return pg, pg.Close, nil
	case "memory", "":
		slog.Info("using in-memory history backend")
		return history.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
