//go:generate mockgen -source ./engine.go -destination=./mocks/engine.go -package=mock_engine
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.com/dormdrop/dormdrop/internal/metrics"
)

// Store is the slice of the record-store adapter the engine issues writes
// through. Snapshots arrive from the outside via Ingest/IngestConfig.
type Store interface {
	CreatePackage(ctx context.Context, fields Fields) (string, error)
	UpdatePackage(ctx context.Context, id string, fields Fields) error
	MarkPickedUp(ctx context.Context, id, receiver, signature string, pickedUpAt time.Time) error
	ReplaceConfig(ctx context.Context, cfg Config) error
}

// Engine owns the in-memory view of all packages and the taxonomy, derives
// filtered and grouped views, and performs validated status transitions.
// It is a read-through cache over the store: snapshots fully replace its
// state, and its own writes are reflected locally ahead of the next snapshot.
type Engine struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu       sync.RWMutex
	packages []Package
	config   Config
	fatalErr error
}

func New(store Store, logger *zap.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
		now:    time.Now,
		config: DefaultConfig(),
	}
}

// WithClock fixes the time source; tests pin it to a known instant.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Ingest replaces the whole in-memory package list with a fresh snapshot.
// Records missing a server timestamp get the moment of observation, then the
// list is sorted by creation time descending. That ordering is canonical for
// every derived view.
func (e *Engine) Ingest(records []Package) {
	observed := e.now()
	items := make([]Package, len(records))
	copy(items, records)
	for i := range items {
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = observed
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	pending := 0
	for _, p := range items {
		if p.Status == StatusPending {
			pending++
		}
	}
	metrics.PendingPackages.Set(float64(pending))

	e.mu.Lock()
	e.packages = items
	e.mu.Unlock()
}

// IngestConfig replaces the taxonomy snapshot.
func (e *Engine) IngestConfig(cfg Config) {
	e.mu.Lock()
	e.config = cfg
	e.mu.Unlock()
}

// Fail latches the engine into a persistent unavailable state after a
// subscription or authorization failure. Derived views and operations refuse
// until the process restarts.
func (e *Engine) Fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fatalErr == nil {
		e.fatalErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	e.logger.Error("engine latched store failure", zap.Error(err))
}

func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fatalErr
}

// Config returns the current taxonomy snapshot.
func (e *Engine) Config() (Config, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.fatalErr != nil {
		return Config{}, e.fatalErr
	}
	return copyConfig(e.config), nil
}

func copyConfig(cfg Config) Config {
	out := Config{
		Carriers:  append([]string(nil), cfg.Carriers...),
		Types:     append([]string(nil), cfg.Types...),
		Buildings: append([]Building(nil), cfg.Buildings...),
	}
	return out
}

// snapshot returns a copy of the package list, or the latched error.
func (e *Engine) snapshot() ([]Package, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.fatalErr != nil {
		return nil, e.fatalErr
	}
	out := make([]Package, len(e.packages))
	copy(out, e.packages)
	return out, nil
}
