package main

import (
	"alcyxob/coach-log/internal/api"
	"alcyxob/coach-log/internal/config"
	"alcyxob/coach-log/internal/domain"
	"alcyxob/coach-log/internal/logging"
	"alcyxob/coach-log/internal/metrics"
	"alcyxob/coach-log/internal/repository"
	"alcyxob/coach-log/internal/repository/file"
	"alcyxob/coach-log/internal/repository/mongo"
	redisrepo "alcyxob/coach-log/internal/repository/redis"
	s3repo "alcyxob/coach-log/internal/repository/s3"
	"alcyxob/coach-log/internal/service"
	"alcyxob/coach-log/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// @title Coach Log API
// @version 1.0
// @description Workout program, set logging, progression and feedback for one coach/client session.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "coach-log",
		Short:        "Coach/client workout log server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")

	root.AddCommand(&cobra.Command{
		Use:   "hash-pin <pin>",
		Short: "Print the bcrypt hash of a PIN for auth.coach_pin_hash / auth.client_pin_hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := service.HashPIN(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	})

	return root
}

func runServer(configPath string) error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   true,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Infof("starting coach log server, storage backend: %s", cfg.Storage.Backend)

	ctx := context.Background()

	// --- S3 client, shared by the s3 blob backend and feedback media ---
	var s3Client *s3.Client
	if cfg.Storage.Backend == config.BackendS3 || cfg.MediaEnabled() {
		s3Client, err = storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// --- Blob repository ---
	blobRepo, closeRepo, err := openBlobRepository(cfg, s3Client)
	if err != nil {
		return fmt.Errorf("could not open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer closeRepo()

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("coachlog", "server", registry)

	// --- Services ---
	var sessionOpts []service.Option
	if cfg.Program.SeedFile != "" {
		program, err := service.LoadProgramFile(afero.NewOsFs(), cfg.Program.SeedFile)
		if err != nil {
			return fmt.Errorf("could not load seed program: %w", err)
		}
		log.Infof("seed program %q loaded from %s", program.Title, cfg.Program.SeedFile)
		sessionOpts = append(sessionOpts, service.WithSeedProgram(program))
	}

	persister := service.NewPersister(blobRepo, cfg.Storage.Key, cfg.Storage.Timeout, metricsManager)
	sessionService := service.NewSessionService(ctx, persister, metricsManager, sessionOpts...)

	deps := api.RouterDeps{
		SessionService: sessionService,
		Metrics:        metricsManager,
		Gatherer:       registry,
	}
	if cfg.Auth.Enabled() {
		deps.AuthService = service.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.Expiration, map[domain.Role]string{
			domain.RoleCoach:  cfg.Auth.CoachPINHash,
			domain.RoleClient: cfg.Auth.ClientPINHash,
		})
		log.Infoln("role tokens required")
	}
	if cfg.MediaEnabled() {
		deps.MediaService = service.NewMediaService(storage.NewS3Storage(s3Client, cfg.S3.BucketName))
	}

	// --- Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	api.SetupRoutes(router, deps)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	}
	log.Infoln("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %s", err)
	}
	log.Infoln("server exiting")
	return nil
}

// openBlobRepository builds the configured session store and a func releasing its connections.
func openBlobRepository(cfg config.Config, s3Client *s3.Client) (repository.BlobRepository, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendFile:
		return file.NewFileBlobRepository(afero.NewOsFs(), cfg.Storage.Dir), noop, nil

	case config.BackendMemory:
		return file.NewFileBlobRepository(afero.NewMemMapFs(), cfg.Storage.Dir), noop, nil

	case config.BackendMongo:
		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := mongo.DisconnectDB(client); err != nil {
				log.Errorf("failed to disconnect MongoDB: %s", err)
			}
		}
		return mongo.NewMongoBlobRepository(client.Database(cfg.Database.Name)), closeFn, nil

	case config.BackendRedis:
		rdb, err := redisrepo.Connect(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Errorf("failed to close redis client: %s", err)
			}
		}
		return redisrepo.NewRedisBlobRepository(rdb), closeFn, nil

	case config.BackendS3:
		return s3repo.NewS3BlobRepository(s3Client, cfg.S3.BucketName, cfg.S3.BlobPrefix), noop, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
