package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"dinein-dashboard/analytics"
	"dinein-dashboard/api"
	"dinein-dashboard/bot"
	"dinein-dashboard/config"
	"dinein-dashboard/db"
	"dinein-dashboard/logger"
	"dinein-dashboard/models"
	"dinein-dashboard/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrate(cfg, log)
			return
		case "report":
			if len(os.Args) != 3 {
				fmt.Fprintln(os.Stderr, "usage: dinein-dashboard report <file.csv>")
				os.Exit(2)
			}
			if err := runReport(os.Args[2]); err != nil {
				fmt.Fprintln(os.Stderr, "report:", err)
				os.Exit(1)
			}
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("storage")
	}
	defer db.Close()

	files := services.NewFileService(store, cfg.HTTP.PublicBaseURL, cfg.Storage.MaxUploadMB, log)

	if cfg.Telegram.Token != "" {
		b, err := bot.New(cfg.Telegram.Token, files, cfg.Storage.MaxUploadMB, log)
		if err != nil {
			log.WithError(err).Fatal("bot")
		}
		go b.Start(ctx)
	} else {
		log.Info("TOKEN not set, bot disabled")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	api.NewHandler(files, cfg.Storage.MaxUploadMB, log).RegisterRoutes(r)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("http server started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("http server")
	}
}

// openStore picks the blob store backend. Postgres runs migrations first
// when AUTO_MIGRATE is set.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (services.BlobStore, error) {
	if cfg.Storage.Backend == config.StorageBackendMemory {
		log.Warn("memory storage: uploads are lost on restart")
		return services.NewMemoryBlobStore(), nil
	}
	if err := db.Init(cfg.DB); err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(ctx, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return services.PostgresBlobStore{}, nil
}

func runMigrate(cfg *config.Config, log *logrus.Logger) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), log); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

// runReport prints the text report of a local CSV with the default filter.
func runReport(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ds, err := services.DecodeCSV(filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	p := analytics.Prepare(ds)
	d, err := analytics.Compute(context.Background(), p, models.DefaultFilter())
	if err != nil {
		return err
	}
	fmt.Println(services.Report(ds.Name, d))
	return nil
}
