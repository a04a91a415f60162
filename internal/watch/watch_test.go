package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dyluth/architect/internal/compiler"
	"github.com/dyluth/architect/internal/store"
	"github.com/dyluth/architect/internal/testutil"
	"github.com/dyluth/architect/pkg/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// memStore is an in-memory store.Store with a hook that runs inside Load.
type memStore struct {
	mu       sync.Mutex
	bp       blueprint.Blueprint
	rev      int64
	loadErr  error
	onLoad   func()
	loadRuns int
}

func newMemStore() *memStore {
	return &memStore{bp: blueprint.Default()}
}

func (m *memStore) Load(ctx context.Context) (blueprint.Blueprint, error) {
	m.mu.Lock()
	hook := m.onLoad
	m.onLoad = nil
	m.loadRuns++
	bp, err := m.bp, m.loadErr
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return bp, err
}

func (m *memStore) Save(ctx context.Context, bp blueprint.Blueprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bp = bp
	m.rev++
	return nil
}

func (m *memStore) Reset(ctx context.Context) (blueprint.Blueprint, error) {
	return blueprint.Default(), m.Save(ctx, blueprint.Default())
}

func (m *memStore) Revision(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rev, nil
}

func (m *memStore) Ping(ctx context.Context) error { return nil }
func (m *memStore) Close() error                   { return nil }

// runWatcher starts Run in the background and returns the update stream.
func runWatcher(t *testing.T, s store.Store, interval time.Duration, logger *zap.Logger) <-chan Update {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan Update, 16)
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, s, interval, logger, func(u Update) { updates <- u })
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop after cancellation")
		}
	})
	return updates
}

func nextUpdate(t *testing.T, updates <-chan Update) Update {
	t.Helper()
	select {
	case u := <-updates:
		return u
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for update")
		return Update{}
	}
}

func TestRun_RejectsNonPositiveInterval(t *testing.T) {
	err := Run(context.Background(), newMemStore(), 0, zap.NewNop(), func(Update) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch interval must be positive")
}

func TestRun_DeliversCurrentStateFirst(t *testing.T) {
	s := testutil.NewFileStore(t)
	updates := runWatcher(t, s, time.Hour, zap.NewNop())

	u := nextUpdate(t, updates)
	assert.Equal(t, int64(0), u.Revision)
	assert.Equal(t, blueprint.Default(), u.Blueprint)
	assert.Equal(t, compiler.Compile(blueprint.Default()), u.Outputs)
}

func TestRun_PollsFileStore(t *testing.T) {
	s := testutil.NewFileStore(t)
	updates := runWatcher(t, s, 20*time.Millisecond, zap.NewNop())
	nextUpdate(t, updates)

	require.NoError(t, s.Save(context.Background(), blueprint.Default().WithProjectName("Polled")))

	u := nextUpdate(t, updates)
	assert.Equal(t, "Polled", u.Blueprint.ProjectName)
	assert.Contains(t, u.Outputs.TechnicalDoc, "# Polled")
}

func TestRun_FollowsRedisEvents(t *testing.T) {
	s, _ := testutil.NewRedisStore(t, "watch-test")

	// Polling is effectively disabled so only pushed events can trigger a compile.
	updates := runWatcher(t, s, time.Hour, zap.NewNop())
	nextUpdate(t, updates)

	require.NoError(t, s.Save(context.Background(), blueprint.Default().WithProjectName("Pushed")))

	u := nextUpdate(t, updates)
	assert.Equal(t, int64(1), u.Revision)
	assert.Equal(t, "Pushed", u.Blueprint.ProjectName)
}

func TestRun_DiscardsSupersededCompile(t *testing.T) {
	s := newMemStore()
	require.NoError(t, s.Save(context.Background(), blueprint.Default().WithProjectName("First")))

	// A write lands while the first revision is being compiled.
	s.onLoad = func() {
		_ = s.Save(context.Background(), blueprint.Default().WithProjectName("Second"))
	}

	updates := runWatcher(t, s, time.Hour, zap.NewNop())

	u := nextUpdate(t, updates)
	assert.Equal(t, int64(2), u.Revision)
	assert.Equal(t, "Second", u.Blueprint.ProjectName)

	select {
	case extra := <-updates:
		t.Fatalf("unexpected update for revision %d", extra.Revision)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRun_LogsLoadFailuresAndKeepsGoing(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := newMemStore()
	s.loadErr = errors.New("disk on fire")

	updates := runWatcher(t, s, 20*time.Millisecond, zap.New(core))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("failed to load blueprint").Len() > 0
	}, 2*time.Second, 10*time.Millisecond)

	s.mu.Lock()
	s.loadErr = nil
	s.mu.Unlock()

	u := nextUpdate(t, updates)
	assert.Equal(t, int64(0), u.Revision)
}

func TestFormatUpdate(t *testing.T) {
	at := time.Date(2024, 5, 1, 14, 3, 9, 0, time.UTC)

	t.Run("default blueprint", func(t *testing.T) {
		line := FormatUpdate(Update{Blueprint: blueprint.Default()}, at)
		assert.Equal(t, "[14:03:09] 🔄 Compiled Growth Ops Copilot: 9 nodes, 4 actions", line)
	})

	t.Run("untitled blueprint", func(t *testing.T) {
		line := FormatUpdate(Update{Blueprint: blueprint.Blueprint{}}, at)
		assert.Contains(t, line, compiler.UntitledProject)
		assert.Contains(t, line, "2 nodes, 0 actions")
	})
}
