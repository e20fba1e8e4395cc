// Package server wires the configured backends into the services and runs
// the HTTP API and the gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/auth"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobs"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/filesmanager/internal/server/rest"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/filesmanager/internal/server/grpc"
)

const sessionPurgeInterval = time.Hour

type App struct {
	config        *config.Config
	logger        logging.Logger
	repos         repomanager.RepositoryManager
	sessions      sessions.Store
	closeSessions func() error
	authService   *services.AuthService
	fileService   *services.FileService
	statusService *services.StatusService
}

// NewApp connects every backend named in c, runs migrations and builds the
// services. On error everything opened so far is closed again.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	repos, err := OpenRepositories(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := repos.RunMigrations(ctx); err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, closeSessions, err := OpenSessions(c, repos)
	if err != nil {
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("session store init error: %w", err)
	}

	blobStore, err := OpenBlobs(ctx, c)
	if err != nil {
		_ = closeSessions()
		_ = repos.Close(ctx)
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	hasher := auth.NewBcryptHasher(c.PasswordCost)

	return &App{
		config:        c,
		logger:        logger,
		repos:         repos,
		sessions:      store,
		closeSessions: closeSessions,
		authService:   services.NewAuthService(repos.Users(), store, hasher, logger),
		fileService:   services.NewFileService(repos.Users(), repos.Files(), blobStore, logger),
		statusService: services.NewStatusService(repos, store),
	}, nil
}

// OpenRepositories connects the user and catalog backend selected by
// c.DatabaseBackend. Migrations are not run.
func OpenRepositories(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	switch c.DatabaseBackend {
	case config.BackendPostgres:
		db, err := repomanager.OpenPostgres(c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return repomanager.NewPostgresRepositoryManager(db), nil
	case config.BackendMongo:
		client, err := repomanager.OpenMongo(ctx, c.MongoURI)
		if err != nil {
			return nil, err
		}
		return repomanager.NewMongoRepositoryManager(client, c.MongoDatabase), nil
	case config.BackendMemory:
		return repomanager.NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown database backend %q", c.DatabaseBackend)
	}
}

// OpenSessions builds the session store selected by c.SessionBackend. The
// postgres store shares the catalog's pool and therefore needs the postgres
// database backend.
func OpenSessions(c *config.Config, repos repomanager.RepositoryManager) (sessions.Store, func() error, error) {
	noop := func() error { return nil }

	switch c.SessionBackend {
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		return sessions.NewRedisStore(client, c.SessionTTL), client.Close, nil
	case config.BackendPostgres:
		pg, ok := repos.(*repomanager.PostgresRepositoryManager)
		if !ok {
			return nil, nil, errors.New("postgres sessions require the postgres database backend")
		}
		return sessions.NewPostgresStore(pg.Conn(), c.SessionTTL), noop, nil
	case config.BackendMemory:
		return sessions.NewInMemoryStore(c.SessionTTL), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
}

// OpenBlobs builds the payload store selected by c.BlobBackend.
func OpenBlobs(ctx context.Context, c *config.Config) (blobs.Store, error) {
	switch c.BlobBackend {
	case config.BackendLocal:
		return blobs.NewLocalStore(c.FolderPath), nil
	case config.BackendS3:
		return blobs.NewS3Store(ctx, blobs.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", c.BlobBackend)
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.fileService, app.statusService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.config.HealthCheckInterval, app.logger, app.statusService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startSessionPurge removes expired rows from the postgres session table.
// Redis and in-memory stores expire entries themselves.
func (app *App) startSessionPurge(ctx context.Context, interval time.Duration) {
	pg, ok := app.sessions.(*sessions.PostgresStore)
	if !ok {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := pg.Purge(ctx)
			if err != nil {
				app.logger.Warn(ctx, "session purge failed", "error", err)
				continue
			}
			app.logger.Debug(ctx, "expired sessions purged", "count", n)
		}
	}
}

// Close releases the session store and the database connections.
func (app *App) Close(ctx context.Context) error {
	return errors.Join(app.closeSessions(), app.repos.Close(ctx))
}

// Run serves until SIGINT/SIGTERM/SIGQUIT or until either server fails,
// then closes all backends.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startSessionPurge(ctx, sessionPurgeInterval)
	}()

	wg.Wait()

	if err := app.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
