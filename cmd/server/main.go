package main

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

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/damacus/bucket-gate/internal/metrics"
	"github.com/damacus/bucket-gate/internal/services"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bucket-gate",
		Version: version,
		Short:   "Password-gated presigned URL gateway for an S3-compatible bucket",
		Long: `bucket-gate lists a bucket and hands out short-lived presigned upload
and download URLs behind a shared password.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file path (default: ./config.yaml)")
	flags.String("addr", "", "listen address (default: :8080, env: BUCKETGATE_SERVER_ADDRESS)")
	flags.String("env", "", "environment tier (env: ENVIRONMENT)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("driver", "", "storage driver: minio or s3")
	flags.String("endpoint", "", "object store endpoint (default: derived from R2_ACCOUNT_ID)")
	flags.String("bucket", "", "bucket name (env: R2_BUCKET_NAME)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	setupLogging(cfg)

	store, err := services.NewObjectStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("create object store: %w", err)
	}

	if cfg.Auth.Password == "" {
		slog.Warn("AUTH_PASSWORD not set, the action endpoint will answer 500")
	}

	e := newServer(cfg, store, metrics.New())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting bucket-gate",
			"version", version,
			"addr", cfg.Server.Address,
			"env", cfg.Env,
			"driver", cfg.Storage.Driver,
			"endpoint", cfg.Storage.ResolvedEndpoint(),
			"bucket", cfg.Storage.Bucket,
			"actions_blocked", cfg.ActionsBlocked(),
		)
		if err := e.Start(cfg.Server.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
