package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	config "github.com/mwantia/cookbook/internal/config/server"
	"github.com/mwantia/cookbook/pkg/api"
	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/mwantia/cookbook/pkg/log"
	"github.com/mwantia/cookbook/pkg/query"
	"github.com/mwantia/cookbook/pkg/service"
	"github.com/mwantia/fabric/pkg/container"
	"golang.org/x/sync/errgroup"
)

// openStore creates the configured store
var openStore = store.Open

type CookbookAgent struct {
	mutex sync.RWMutex

	cfg    *config.BaseServerConfig
	sc     *container.ServiceContainer
	log    log.LoggerService
	db     store.Store
	server *api.Server
}

func NewAgent(cfg *config.BaseServerConfig) *CookbookAgent {
	return &CookbookAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("cookbook", cfg.Log),
	}
}

func (ca *CookbookAgent) setupServices() error {
	errs := container.Errors{}

	ca.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](ca.sc,
		container.With[log.LoggerService](),
		container.WithInstance(ca.log)))

	return errs.Errors()
}

// named resolves a component logger through the container and falls back to
// the agent logger when none is registered.
func (ca *CookbookAgent) named(ctx context.Context, component string) log.LoggerService {
	logger, err := log.ResolveLogger(ctx, ca.sc, component)
	if err != nil {
		ca.log.Warn("Unable to resolve logger '%s': %v", component, err)
		return ca.log.Named(component)
	}
	return logger
}

func (ca *CookbookAgent) setupStore(ctx context.Context) error {
	logger := ca.named(ctx, "store")

	db, err := openStore(ca.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create %s store: %w", ca.cfg.Database.Type, err)
	}

	logger.Info("Connecting to %s database...", ca.cfg.Database.Type)
	if err := db.Connect(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to %s database: %w", ca.cfg.Database.Type, err)
	}

	if ca.cfg.Database.AutoMigrate {
		logger.Info("Applying pending migrations...")
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	ca.db = db
	return nil
}

func (ca *CookbookAgent) setupServer(ctx context.Context) {
	opts := []query.Option{
		query.WithMaxLimit(ca.cfg.Pagination.MaxLimit),
		query.WithMaxPage(ca.cfg.Pagination.MaxPage),
	}

	ca.server = api.NewServer(ca.cfg, api.Dependencies{
		Users:   service.NewUserService(ca.db, opts...),
		Recipes: service.NewRecipeService(ca.db, opts...),
		Health:  ca.db,
	}, ca.named(ctx, "api"))
}

// Serve runs the API until ctx is cancelled, SIGINT or SIGTERM is received
// or the listener fails, then shuts down within the configured timeout.
func (ca *CookbookAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ca.mutex.Lock()
	if err := ca.setupServices(); err != nil {
		ca.mutex.Unlock()
		return err
	}
	if err := ca.setupStore(ctx); err != nil {
		ca.mutex.Unlock()
		return err
	}
	ca.setupServer(ctx)
	ca.mutex.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return ca.server.Start(gctx)
	})
	serveErr := g.Wait()

	timeout := config.Duration(ca.cfg.ShutdownTimeout, 60*time.Second)
	shutdown, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()

	return ca.shutdown(shutdown, serveErr)
}

func (ca *CookbookAgent) shutdown(ctx context.Context, serveErr error) error {
	ca.mutex.Lock()
	defer ca.mutex.Unlock()

	errs := container.Errors{}
	errs.Add(serveErr)

	if err := ca.server.Shutdown(ctx); err != nil {
		errs.Add(fmt.Errorf("failed to shutdown http server: %w", err))
	}
	if err := ca.sc.Cleanup(ctx); err != nil {
		errs.Add(fmt.Errorf("failed to complete service container cleanup: %w", err))
	}
	if err := ca.db.Close(); err != nil {
		errs.Add(fmt.Errorf("failed to close database: %w", err))
	}

	ca.log.Info("Shutdown complete")
	return errs.Errors()
}
