package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.com/dormdrop/dormdrop/internal/db"
	"gitlab.com/dormdrop/dormdrop/internal/engine"
	"gitlab.com/dormdrop/dormdrop/internal/repository"
	"gitlab.com/dormdrop/dormdrop/internal/repository/postgresql"
)

// ErrUnauthorized is returned by SignIn when the credentials do not match
// a staff account.
var ErrUnauthorized = errors.New("unauthorized")

const (
	defaultPollInterval = 3 * time.Second
	defaultEventsTopic  = "package_events"

	actionLogged   = "logged"
	actionUpdated  = "updated"
	actionPickedUp = "picked_up"
)

type Options struct {
	PollInterval time.Duration
	EventsTopic  string
}

// Adapter owns all reads and writes against the record store and feeds the
// engine with full-table snapshots. Watchers poll on a ticker and are kicked
// early after every local write so the UI-facing state converges fast.
type Adapter struct {
	db       db.DB
	packages *postgresql.PackageRepo
	config   *postgresql.ConfigRepo
	outbox   *postgresql.OutboxTaskRepo
	staff    *postgresql.StaffRepo
	logger   *zap.Logger

	pollInterval time.Duration
	eventsTopic  string

	pkgKick chan struct{}
	cfgKick chan struct{}
}

func New(database db.DB, logger *zap.Logger, opts Options) *Adapter {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.EventsTopic == "" {
		opts.EventsTopic = defaultEventsTopic
	}
	return &Adapter{
		db:           database,
		packages:     postgresql.NewPackageRepo(database),
		config:       postgresql.NewConfigRepo(database),
		outbox:       postgresql.NewOutboxTaskRepo(),
		staff:        postgresql.NewStaffRepo(database),
		logger:       logger,
		pollInterval: opts.PollInterval,
		eventsTopic:  opts.EventsTopic,
		pkgKick:      make(chan struct{}, 1),
		cfgKick:      make(chan struct{}, 1),
	}
}

// SignIn validates staff credentials. Every engine operation assumes the
// caller already passed this gate.
func (a *Adapter) SignIn(ctx context.Context, username, password string) error {
	ok, err := a.staff.ValidateStaff(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("validate staff: %w", err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

func (a *Adapter) CreatePackage(ctx context.Context, fields engine.Fields) (string, error) {
	rec := recordFromFields(fields)
	rec.ID = uuid.NewString()
	rec.Status = string(engine.StatusPending)
	rec.CreatedAt = time.Now().UTC()

	tx, err := a.db.BeginTx(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := a.packages.CreateTx(ctx, tx, rec); err != nil {
		return "", err
	}
	if err := a.enqueueEventTx(ctx, tx, actionLogged, rec, ""); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}

	a.kick(a.pkgKick)
	return rec.ID, nil
}

func (a *Adapter) UpdatePackage(ctx context.Context, id string, fields engine.Fields) error {
	rec := recordFromFields(fields)
	rec.ID = id
	if err := a.packages.UpdateFields(ctx, rec); err != nil {
		return err
	}
	a.kick(a.pkgKick)
	return nil
}

func (a *Adapter) MarkPickedUp(ctx context.Context, id, receiver, signature string, pickedUpAt time.Time) error {
	rec, err := a.packages.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := a.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := a.packages.MarkPickedUpTx(ctx, tx, id, receiver, signature, pickedUpAt); err != nil {
		return err
	}
	if err := a.enqueueEventTx(ctx, tx, actionPickedUp, rec, receiver); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	a.kick(a.pkgKick)
	return nil
}

func (a *Adapter) ReplaceConfig(ctx context.Context, cfg engine.Config) error {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := a.config.Replace(ctx, payload); err != nil {
		return err
	}
	a.kick(a.cfgKick)
	return nil
}

func (a *Adapter) enqueueEventTx(ctx context.Context, tx db.Tx, action string, rec *repository.PackageRecord, receiver string) error {
	payload, err := json.Marshal(repository.PackageEventPayload{
		Timestamp: time.Now().UTC(),
		Action:    action,
		PackageID: rec.ID,
		Building:  rec.Building,
		Room:      rec.Room,
		Tracking:  rec.Tracking,
		Receiver:  receiver,
	})
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	return a.outbox.CreateTx(ctx, tx, &repository.OutboxTask{
		Payload: payload,
		Topic:   a.eventsTopic,
	})
}

// SubscribePackages streams full-table snapshots to onSnapshot until ctx is
// cancelled. Read failures go to onError; the loop keeps running so a
// transient database blip does not kill the subscription.
func (a *Adapter) SubscribePackages(ctx context.Context, onSnapshot func([]engine.Package), onError func(error)) {
	push := func() {
		records, err := a.packages.GetAll(ctx)
		if err != nil {
			onError(fmt.Errorf("load packages: %w", err))
			return
		}
		snapshot := make([]engine.Package, 0, len(records))
		for _, rec := range records {
			snapshot = append(snapshot, packageFromRecord(rec))
		}
		onSnapshot(snapshot)
	}

	push()
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			push()
		case <-a.pkgKick:
			push()
		}
	}
}

// SubscribeConfig streams the settings document. A missing row is seeded
// with the defaults so a fresh database comes up usable.
func (a *Adapter) SubscribeConfig(ctx context.Context, onConfig func(engine.Config), onError func(error)) {
	push := func() {
		doc, err := a.config.Get(ctx)
		if errors.Is(err, repository.ErrObjectNotFound) {
			cfg := engine.DefaultConfig()
			if err := a.ReplaceConfig(ctx, cfg); err != nil {
				onError(fmt.Errorf("seed default config: %w", err))
				return
			}
			a.logger.Info("seeded default settings document")
			onConfig(cfg)
			return
		}
		if err != nil {
			onError(fmt.Errorf("load config: %w", err))
			return
		}
		var cfg engine.Config
		if err := json.Unmarshal(doc.Payload, &cfg); err != nil {
			onError(fmt.Errorf("decode config: %w", err))
			return
		}
		onConfig(cfg)
	}

	push()
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			push()
		case <-a.cfgKick:
			push()
		}
	}
}

// kick nudges a subscription loop without blocking the writer. The channel
// is buffered with capacity one, so a pending kick coalesces with new ones.
func (a *Adapter) kick(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func recordFromFields(f engine.Fields) *repository.PackageRecord {
	return &repository.PackageRecord{
		Building: f.Building,
		Room:     f.Room,
		Tracking: f.Tracking,
		Carrier:  f.Carrier,
		Type:     f.Type,
		Sender:   f.Sender,
		Image:    f.Image,
		Status:   string(f.Status),
	}
}

func packageFromRecord(rec *repository.PackageRecord) engine.Package {
	return engine.Package{
		ID:         rec.ID,
		Building:   rec.Building,
		Room:       rec.Room,
		Tracking:   rec.Tracking,
		Carrier:    rec.Carrier,
		Type:       rec.Type,
		Sender:     rec.Sender,
		Image:      rec.Image,
		Status:     engine.Status(rec.Status),
		Receiver:   rec.Receiver,
		Signature:  rec.Signature,
		CreatedAt:  rec.CreatedAt,
		PickedUpAt: rec.PickedUpAt,
	}
}
