package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/pocket-pastor/docs"
	"github.com/taiwoajasa245/pocket-pastor/internal/bible"
	"github.com/taiwoajasa245/pocket-pastor/internal/cluster"
	"github.com/taiwoajasa245/pocket-pastor/internal/database"
	"github.com/taiwoajasa245/pocket-pastor/internal/highlight"
	"github.com/taiwoajasa245/pocket-pastor/internal/server"
	"github.com/taiwoajasa245/pocket-pastor/pkg/config"
)

var (
	serveMemory  bool
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API until SIGINT or SIGTERM.

With --memory, highlights and clusters are kept in process memory and an
embedded Redis replaces REDIS_URL, so no external services are needed.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Use in-memory stores and an embedded Redis")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply database migrations on start")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	docs.SwaggerInfo.Host = cfg.SwaggerHost

	deps := server.Deps{Bible: bibleProvider(cfg, log)}
	var cleanup []func()
	defer func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()

	if serveMemory {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("start embedded redis: %w", err)
		}
		cleanup = append(cleanup, mr.Close)
		deps.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		deps.HighlightRepo = highlight.NewMemoryRepository()
		deps.ClusterRepo = cluster.NewMemoryRepository()
		log.Info("using in-memory stores", zap.String("redis", mr.Addr()))
	} else {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		db, err := database.New(ctx, cfg.DatabaseURL(), log.Named("database"))
		if err != nil {
			return err
		}
		cleanup = append(cleanup, func() { db.Close() })
		if serveMigrate {
			if err := db.Migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		deps.DB = db
		deps.Redis = connectRedis(ctx, cfg.RedisURL, log)
	}
	if deps.Redis != nil {
		cleanup = append(cleanup, func() { deps.Redis.Close() })
	}

	srv, err := server.NewServer(cfg, deps, log)
	if err != nil {
		return err
	}
	srv.StartBackgroundJobs()
	defer srv.StopBackgroundJobs()

	httpServer := srv.HTTPServer()
	done := make(chan bool, 1)
	go gracefulShutdown(httpServer, log, done)

	log.Info("server listening", zap.String("addr", httpServer.Addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	<-done
	log.Info("graceful shutdown complete")
	return nil
}

// connectRedis returns nil when Redis is unreachable; the chapter cache and
// chat hand-off are then disabled.
func connectRedis(ctx context.Context, url string, log *zap.Logger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid REDIS_URL, running without redis", zap.Error(err))
		return nil
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, running without redis", zap.Error(err))
		client.Close()
		return nil
	}
	return client
}

func bibleProvider(cfg *config.Config, log *zap.Logger) bible.Provider {
	if cfg.BibleAPIKey != "" {
		log.Info("using remote bible provider", zap.String("url", cfg.BibleAPIURL))
		return bible.NewRemoteProvider(cfg.BibleAPIURL, cfg.BibleAPIKey, nil)
	}
	log.Info("using local bible translations", zap.String("dir", cfg.BibleLocalDir))
	return bible.NewLocalProvider(cfg.BibleLocalDir)
}

func gracefulShutdown(apiServer *http.Server, log *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	done <- true
}
