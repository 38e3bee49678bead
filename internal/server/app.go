// Package server wires configuration, storage, services and the HTTP gateway
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/blobstore"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/notify"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fileshare/internal/server/rest"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.HTTPServer
}

// NewApp connects to the database, applies migrations and builds every
// component. Nothing is served until Run.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newBlobStore(ctx, c, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	notifier := notify.FromConfig(c, logger)

	us := services.NewUserService(db, rm, c, logger)
	fs := services.NewFileService(db, rm, store, notifier, c, logger)

	logger.Info(ctx, "components ready",
		"upload_dir", store.Dir(),
		"mirror", c.MirrorEnabled(),
		"email", notifier.Enabled(),
	)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: rest.NewHTTPServer(c, logger, us, fs),
	}, nil
}

func newBlobStore(ctx context.Context, c *config.Config, logger logging.Logger) (*blobstore.Store, error) {
	local, err := blobstore.NewLocalStore(c.UploadDir)
	if err != nil {
		return nil, err
	}

	if !c.MirrorEnabled() {
		return blobstore.New(local, nil, logger), nil
	}

	client, err := blobstore.NewS3Client(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	return blobstore.New(local, blobstore.NewS3Mirror(client, c.S3Bucket), logger), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until a termination signal arrives or the server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	defer app.db.Close()

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
