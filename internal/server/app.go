// Package server wires the GophDrive server together: configuration,
// PostgreSQL metadata, S3 blob storage, metrics and the gRPC transport.
// It also handles graceful shutdown and the one-shot reconcile mode.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/logging"
	"github.com/dmitrijs2005/gophdrive/internal/server/blobstore"
	"github.com/dmitrijs2005/gophdrive/internal/server/config"
	"github.com/dmitrijs2005/gophdrive/internal/server/metrics"
	"github.com/dmitrijs2005/gophdrive/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophdrive/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/gophdrive/internal/server/grpc"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	registry     *prometheus.Registry
	userService  *services.UserService
	driveService *services.DriveService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	client, err := blobstore.NewS3Client(ctx, blobstore.S3Config{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		BaseEndpoint: c.S3BaseEndpoint,
		Bucket:       c.S3Bucket,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("s3 client error: %w", err)
	}

	blobs := blobstore.NewS3Store(client, c.S3Bucket)
	if err := blobs.EnsureBucket(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("s3 bucket error: %w", err)
	}

	return newApp(c, logger, db, rm, blobs), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager, blobs blobstore.Store) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		registry:     reg,
		userService:  services.NewUserService(db, rm, c, logger),
		driveService: services.NewDriveService(db, rm, blobs, c, logger, metrics.New(reg)),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.driveService,
		app.config.SecretKey, app.config.MaxUploadSize)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{
		Addr:              app.config.MetricsAddr,
		Handler:           metrics.Handler(app.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", app.config.MetricsAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Reconcile reports blobs no file references. It never deletes anything.
func (app *App) Reconcile(ctx context.Context) ([]string, error) {
	orphans, err := app.driveService.FindOrphanBlobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	return orphans, nil
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	if app.config.Reconcile {
		orphans, err := app.Reconcile(ctx)
		if err != nil {
			return err
		}
		app.logger.Info(ctx, "Reconcile finished", "orphans", len(orphans))
		return nil
	}

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	return nil
}
