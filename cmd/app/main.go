package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AbdulWasayUl/go-country-browser/internal/catalog"
	"github.com/AbdulWasayUl/go-country-browser/internal/channels"
	"github.com/AbdulWasayUl/go-country-browser/internal/config"
	"github.com/AbdulWasayUl/go-country-browser/internal/db"
	"github.com/AbdulWasayUl/go-country-browser/internal/httpapi"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/internal/scheduler"
	"github.com/AbdulWasayUl/go-country-browser/internal/session"
	"github.com/AbdulWasayUl/go-country-browser/internal/workpool"
	"github.com/AbdulWasayUl/go-country-browser/models"
	"github.com/AbdulWasayUl/go-country-browser/services/country"
	"github.com/AbdulWasayUl/go-country-browser/services/weather"
)

func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.LogLevel == "debug" {
		logger.SetDebug(true)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var (
		recorder models.DiagnosticRecorder = models.NopRecorder{}
		reader   httpapi.DiagnosticsReader
		client   *mongo.Client
	)
	if cfg.DiagnosticsEnabled() {
		client, err = db.ConnectMongoDB(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to MongoDB, diagnostics disabled: %v", err)
		} else if err := db.RunMigrations(ctx, client, cfg); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		} else {
			store := db.NewDiagnostics(client, cfg)
			recorder, reader = store, store
		}
	} else {
		logger.Info("MONGO_URI not set, diagnostics disabled.")
	}
	defer func() {
		if err := db.DisconnectMongoDB(context.Background(), client); err != nil {
			logger.Error("Error disconnecting MongoDB: %v", err)
		}
	}()

	cat := catalog.New()

	chans := channels.New()
	wp := workpool.New(chans, cfg.WorkerCount)
	wp.Start(ctx)

	countrySvc := country.NewService(cfg, cat, recorder)
	defer countrySvc.Client.Close()
	weatherSvc := weather.NewService(cfg, recorder)
	defer weatherSvc.Client.Close()

	services := []scheduler.SchedulableService{countrySvc}

	sch, err := scheduler.New()
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	if err := sch.StartJob(ctx, cfg.DatasetRefresh, chans, services); err != nil {
		log.Fatalf("Failed to start scheduler job: %v", err)
	}

	logger.Info("Executing immediate startup dataset load.")
	sch.StartImmediateJob(ctx, chans, services)

	hub := session.NewHub(session.Options{
		Catalog:  cat,
		Weather:  weatherSvc,
		Debounce: cfg.SearchDebounce,
	})
	srv := httpapi.NewServer(cat, weatherSvc, hub, reader)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Country browser listening on :%s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("Received interrupt signal. Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error: %v", err)
	}
	hub.Shutdown()

	cancel()
	sch.Stop()
	wp.Stop()

	logger.Info("Waiting for pending worker jobs to finish...")
	chans.WG.Wait()
	logger.Info("All worker jobs finished. Shutdown complete.")
}
