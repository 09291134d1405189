package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/dormdrop/dormdrop/internal/metrics"
)

// Receive executes the pickup transition for a batch of package ids. Ids that
// are unknown or no longer pending are dropped silently. The whole batch is
// one signing event: every target gets the same receiver, signature, and
// timestamp. Writes are issued concurrently; any individual failure fails the
// operation as a whole, with no rollback of writes that already applied — the
// next snapshot re-syncs the view with true store state.
func (e *Engine) Receive(ctx context.Context, targetIDs []string, receiverName, signatureImage string) (int, error) {
	if err := e.Err(); err != nil {
		return 0, err
	}

	targets := e.pendingTargets(targetIDs)
	if len(targets) == 0 {
		return 0, validationf("no pending packages selected")
	}
	if receiverName == "" && signatureImage == "" {
		return 0, validationf("a receiver name or a signature is required")
	}

	pickedUpAt := e.now().UTC()

	g, gctx := errgroup.WithContext(ctx)
	for _, id := range targets {
		id := id
		g.Go(func() error {
			if err := e.store.MarkPickedUp(gctx, id, receiverName, signatureImage, pickedUpAt); err != nil {
				return fmt.Errorf("pickup write for %s: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.logger.Error("batch pickup failed", zap.Int("targets", len(targets)), zap.Error(err))
		return 0, err
	}

	e.applyPickup(targets, receiverName, signatureImage, pickedUpAt)
	e.logger.Info("packages picked up",
		zap.Int("count", len(targets)),
		zap.String("receiver", receiverName),
		zap.Bool("signed", signatureImage != ""))
	return len(targets), nil
}

// pendingTargets filters the requested ids down to ones that currently exist
// and are pending, deduplicated.
func (e *Engine) pendingTargets(ids []string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	pending := make(map[string]bool, len(e.packages))
	for _, p := range e.packages {
		if p.Status == StatusPending {
			pending[p.ID] = true
		}
	}

	var targets []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if pending[id] && !seen[id] {
			targets = append(targets, id)
			seen[id] = true
		}
	}
	return targets
}

// applyPickup reflects a successful batch in the local snapshot ahead of the
// next store push.
func (e *Engine) applyPickup(ids []string, receiver, signature string, at time.Time) {
	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}

	metrics.PendingPackages.Sub(float64(len(ids)))

	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.packages {
		if member[e.packages[i].ID] {
			at := at
			e.packages[i].Status = StatusPickedUp
			e.packages[i].Receiver = receiver
			e.packages[i].Signature = signature
			e.packages[i].PickedUpAt = &at
		}
	}
}

// CreatePackage logs a new parcel at the desk. Room and tracking are
// required; everything else is optional and defaults to empty.
func (e *Engine) CreatePackage(ctx context.Context, fields Fields) (string, error) {
	if err := e.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(fields.Room) == "" {
		return "", validationf("room is required")
	}
	if strings.TrimSpace(fields.Tracking) == "" {
		return "", validationf("tracking number is required")
	}
	fields.Status = StatusPending

	id, err := e.store.CreatePackage(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to create package: %w", err)
	}
	e.logger.Info("package logged",
		zap.String("id", id),
		zap.String("building", fields.Building),
		zap.String("room", fields.Room),
		zap.String("tracking", fields.Tracking))
	return id, nil
}

// UpdatePackage overwrites the full editable field set of an existing record.
// This is a replacement, not a patch: omitted fields are written as empty so
// nothing survives from a prior edit session. Status may be set directly as
// an administrative override, including reopening a picked-up item.
func (e *Engine) UpdatePackage(ctx context.Context, id string, fields Fields) error {
	if err := e.Err(); err != nil {
		return err
	}
	if id == "" {
		return validationf("package id is required")
	}
	if strings.TrimSpace(fields.Room) == "" {
		return validationf("room is required")
	}
	if strings.TrimSpace(fields.Tracking) == "" {
		return validationf("tracking number is required")
	}
	if fields.Status == "" {
		fields.Status = StatusPending
	}
	if fields.Status != StatusPending && fields.Status != StatusPickedUp {
		return validationf("unknown status")
	}

	if err := e.store.UpdatePackage(ctx, id, fields); err != nil {
		return fmt.Errorf("failed to update package %s: %w", id, err)
	}
	e.logger.Info("package updated", zap.String("id", id))
	return nil
}
