package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/slumbersage/gjirafa50/internal/server"
	"github.com/slumbersage/gjirafa50/logger"
	"github.com/slumbersage/gjirafa50/services/auth"
	"github.com/slumbersage/gjirafa50/services/categories"
	"github.com/slumbersage/gjirafa50/services/publisher"
	"github.com/slumbersage/gjirafa50/services/worker"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from $LISTEN_ADDR or :8000)")
	serveCmd.Flags().String("keys-file", "", "API keys file (default from $API_KEYS_FILE)")
	serveCmd.Flags().Duration("refresh-interval", 0, "Category refresh interval, 0 keeps the startup snapshot")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Default

	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.ListenAddr = v
	}
	if v, _ := cmd.Flags().GetString("keys-file"); v != "" {
		cfg.APIKeysFile = v
	}
	if v, _ := cmd.Flags().GetDuration("refresh-interval"); v > 0 {
		cfg.CategoryRefreshInterval = v
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("upstream", cfg.UpstreamBaseURL).
		Dur("refresh_interval", cfg.CategoryRefreshInterval).
		Msg("Starting application")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keys, err := auth.NewKeyStore(cfg.APIKeysFile)
	if err != nil {
		return fmt.Errorf("failed to load api keys: %w", err)
	}

	shop := newScraper()

	store := categories.NewStore(shop)
	startupCtx, startupCancel := context.WithTimeout(ctx, cfg.UpstreamTimeout)
	if _, err := store.Refresh(startupCtx); err != nil {
		log.Warn().Err(err).Msg("Initial category fetch failed, /api/categories answers 503 until a refresh succeeds")
	}
	startupCancel()

	pub, err := newPublisher(ctx)
	if err != nil {
		return err
	}
	defer pub.Close()

	if cfg.CategoryRefreshInterval > 0 {
		w := worker.NewWorker(store, pub, cfg.CategoryRefreshInterval)
		go func() {
			if err := w.Start(ctx); err != nil {
				log.Error().Err(err).Msg("Worker exited with error")
			}
		}()
	}

	srv := server.New(server.Options{
		Addr:       cfg.ListenAddr,
		Production: cfg.IsProduction(),
	}, shop, store, keys)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	for {
		select {
		case sig := <-sigChan:
			if sig == syscall.SIGHUP {
				if err := keys.Reload(); err != nil {
					log.Error().Err(err).Msg("Failed to reload api keys")
				}
				continue
			}

			log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			logger.LogInfo("server", "Shut down gracefully")
			return nil

		case err := <-serverDone:
			if err != nil {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		}
	}
}

// newPublisher connects to Redis when an address is configured.
func newPublisher(ctx context.Context) (publisher.Publisher, error) {
	if cfg.RedisAddr == "" {
		return publisher.Nop{}, nil
	}

	redisPublisher := publisher.NewRedisPublisher(publisher.RedisOptions{
		Addr:            cfg.RedisAddr,
		DB:              cfg.RedisDB,
		StreamPrefix:    cfg.RedisStream,
		StreamCount:     cfg.RedisStreamCount,
		StreamMaxLength: cfg.RedisStreamMaxLength,
	})
	if err := redisPublisher.Ping(ctx); err != nil {
		redisPublisher.Close()
		return nil, err
	}

	logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)", cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	return redisPublisher, nil
}
