package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gradeport/gradeport/internal/handlers"
	"github.com/gradeport/gradeport/internal/pricing"
	"github.com/gradeport/gradeport/internal/reconcile"
	"github.com/gradeport/gradeport/internal/sessions"
	"github.com/gradeport/gradeport/internal/storage"
	"github.com/gradeport/gradeport/internal/store"
	"github.com/gradeport/gradeport/internal/vision"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var pricingFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the grading submission web server",
		Long: `Starts the Gradeport web interface on the specified port.

The web interface lets users upload card photos, review the cards a
vision-capable LLM detects in them, and submit the finished list to a
grading company. Storage backends are selected by environment:

  STORAGE_BACKEND  memory (default) or dynamodb
  IMAGE_STORE      local (default) or s3
  VISION_PROVIDER  gemini (default), openai, or ollama`,
		Example: `  # Start server on default port 8888
  gradeport serve

  # Start server on custom port
  gradeport serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := buildHandler(cmd.Context(), pricingFile)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			handler.RegisterRoutes(mux)

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Gradeport interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&pricingFile, "pricing", "", "YAML file overriding the built-in pricing tables")

	return cmd
}

func buildHandler(ctx context.Context, pricingFile string) (*handlers.Handler, error) {
	images, err := buildImageStore(ctx)
	if err != nil {
		return nil, err
	}

	submissions, tiers, audit, err := buildStores(ctx)
	if err != nil {
		return nil, err
	}

	tables := pricing.Default()
	if pricingFile != "" {
		tables, err = pricing.LoadFile(pricingFile)
		if err != nil {
			return nil, fmt.Errorf("loading pricing tables: %w", err)
		}
	}

	provider, err := vision.FromEnv()
	if err != nil {
		return nil, err
	}
	analyzer := reconcile.NewAnalyzer(
		provider,
		storage.Fetcher{Store: images},
		pricing.NewEstimator(tables),
		vision.Config{Model: vision.DefaultModel(os.Getenv("VISION_PROVIDER"))},
	)

	return handlers.New(handlers.Options{
		Sessions:    sessions.New(),
		Images:      images,
		Analyzer:    analyzer,
		Submissions: submissions,
		Tiers:       store.NewCachedTierStore(tiers, 0),
		Audit:       audit,
		StaticDir:   os.Getenv("STATIC_DIR"),
	}), nil
}

func buildImageStore(ctx context.Context) (storage.ImageStore, error) {
	switch backend := os.Getenv("IMAGE_STORE"); backend {
	case "", "local":
		dir := os.Getenv("UPLOADS_DIR")
		if dir == "" {
			dir = "uploads"
		}
		return storage.NewLocalStore(dir, "/static/uploads")
	case "s3":
		bucket := os.Getenv("IMAGES_BUCKET")
		if bucket == "" {
			return nil, errors.New("IMAGES_BUCKET is required when IMAGE_STORE=s3")
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		return storage.NewS3Store(s3.NewFromConfig(cfg), bucket, os.Getenv("IMAGES_PREFIX"), os.Getenv("IMAGES_BASE_URL")), nil
	default:
		return nil, fmt.Errorf("unsupported image store: %s", backend)
	}
}

func buildStores(ctx context.Context) (store.SubmissionStore, store.TierStore, store.AuditLog, error) {
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "", "memory":
		return store.NewMemorySubmissionStore(), store.NewMemoryTierStore(), store.NewMemoryAuditLog(), nil
	case "dynamodb":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("loading AWS config: %w", err)
		}
		tables := store.DefaultDynamoTables()
		if name := os.Getenv("SUBMISSIONS_TABLE"); name != "" {
			tables.Submissions = name
		}
		if name := os.Getenv("SERVICE_TIERS_TABLE"); name != "" {
			tables.Tiers = name
		}
		if name := os.Getenv("AUDIT_TABLE"); name != "" {
			tables.Audit = name
		}
		ds := store.NewDynamoStore(dynamodb.NewFromConfig(cfg), tables)
		return ds.Submissions(), ds.Tiers(), ds.AuditLog(), nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
