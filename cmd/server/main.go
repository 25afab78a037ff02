package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-sharing/pkg/sharing"
	"github.com/tendant/simple-sharing/pkg/sharing/api"
	"github.com/tendant/simple-sharing/pkg/sharing/config"
	memoryrepo "github.com/tendant/simple-sharing/pkg/sharing/repo/memory"
	postgresrepo "github.com/tendant/simple-sharing/pkg/sharing/repo/postgres"
	"github.com/tendant/simple-sharing/pkg/sharing/signer"
	gcssigner "github.com/tendant/simple-sharing/pkg/sharing/signer/gcs"
	s3signer "github.com/tendant/simple-sharing/pkg/sharing/signer/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize repository
	var repo sharing.Repository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		repo = postgresrepo.NewWithPool(pool)
	} else {
		repo = memoryrepo.New()
	}

	// Secret, hasher and scheme are fixed here and immutable afterwards;
	// every request handler reads them without synchronization.
	scheme := sharing.NewTokenScheme(cfg.TokenScheme, []byte(cfg.Secret), sharing.ParseHasher(cfg.Hasher))

	svc, err := sharing.New(
		sharing.WithRepository(repo),
		sharing.WithServerAddr(cfg.ServerAddr),
		sharing.WithTokenScheme(scheme),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	// Initialize URL signers
	signers := signer.NewRegistry()

	s3s, err := s3signer.New(s3signer.Config{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
		UsePathStyle:    cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Fatalf("Failed to initialize S3 signer: %v", err)
	}
	signers.Register(signer.StoreS3, s3s)

	if cfg.GCSServiceAccountFile != "" {
		account, err := gcssigner.LoadServiceAccount(cfg.GCSServiceAccountFile)
		if err != nil {
			log.Fatalf("Failed to load GCS service account: %v", err)
		}
		gcss, err := gcssigner.New(*account)
		if err != nil {
			log.Fatalf("Failed to initialize GCS signer: %v", err)
		}
		signers.Register(signer.StoreGCS, gcss)
	}

	// Initialize API handlers
	catalogHandler := api.NewCatalogHandler(svc)
	sharingHandler := api.NewSharingHandler(svc, signers, time.Duration(cfg.URLExpirySeconds)*time.Second)

	// Set up router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Mount routes
	r.Mount("/catalog", catalogHandler.Routes())
	r.Mount("/sharing", sharingHandler.Routes())

	// Add a simple health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Create server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Doesn't block if no connections, but will otherwise wait
	// until the timeout deadline
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
