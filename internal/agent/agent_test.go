package agent

import (
	"context"
	"net/http"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	config "github.com/mwantia/cookbook/internal/config/server"
	"github.com/mwantia/cookbook/pkg/db/migrations"
	"github.com/mwantia/cookbook/pkg/db/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.BaseServerConfig {
	cfg := config.GetServerDefault()
	cfg.ShutdownTimeout = "2s"
	cfg.Log.Level = "error"
	cfg.HTTP.Address = "127.0.0.1"
	cfg.HTTP.Port = 0
	cfg.Database.Type = "sqlite"
	cfg.Database.AutoMigrate = true
	cfg.Database.SQLite.Path = ":memory:"
	return &cfg
}

// readyAddr returns the bound address once the agent's server accepts traffic.
func (ca *CookbookAgent) readyAddr() string {
	ca.mutex.RLock()
	server := ca.server
	ca.mutex.RUnlock()

	if server == nil {
		return ""
	}
	resp, err := http.Get("http://" + server.Addr() + "/ready")
	if err != nil {
		return ""
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	return server.Addr()
}

func TestServe_ShutsDownWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	agent := NewAgent(testConfig())
	done := make(chan error, 1)
	go func() {
		done <- agent.Serve(ctx)
	}()

	var addr string
	require.Eventually(t, func() bool {
		addr = agent.readyAddr()
		return addr != ""
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := http.Get("http://" + addr + "/users")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("agent did not shut down")
	}

	assert.Error(t, agent.db.Health(context.Background()))
}

func TestServe_UnsupportedDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Type = "mysql"

	err := NewAgent(cfg).Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

type unreachableStore struct {
	closed bool
}

func (s *unreachableStore) Query(context.Context, string, ...any) ([]store.Row, error) {
	return nil, nil
}

func (s *unreachableStore) Exec(context.Context, string, ...any) (int64, error) {
	return 0, nil
}

func (s *unreachableStore) Placeholder() sq.PlaceholderFormat {
	return sq.Question
}

func (s *unreachableStore) Connect(context.Context) error {
	return errors.New("connection refused")
}

func (s *unreachableStore) Close() error {
	s.closed = true
	return nil
}

func (s *unreachableStore) Migrate(context.Context) error {
	return nil
}

func (s *unreachableStore) Health(context.Context) error {
	return errors.New("connection refused")
}

func (s *unreachableStore) Migrator() (*migrations.Migrator, error) {
	return nil, errors.New("not connected")
}

func (s *unreachableStore) WithTx(context.Context, func(store.Executor) error) error {
	return errors.New("not connected")
}

func TestServe_ClosesStoreWhenConnectFails(t *testing.T) {
	db := &unreachableStore{}
	openStore = func(config.DatabaseServerConfig) (store.Store, error) {
		return db, nil
	}
	t.Cleanup(func() {
		openStore = store.Open
	})

	err := NewAgent(testConfig()).Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to sqlite database")
	assert.True(t, db.closed)
}
