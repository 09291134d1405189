package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	ListCarriers = "carriers"
	ListTypes    = "types"
)

// AddTaxonomyItem appends a value to the carriers or types list and writes
// the whole settings document back. Last write wins; a concurrent editor's
// change can be lost, which is accepted store behavior.
func (e *Engine) AddTaxonomyItem(ctx context.Context, key, value string) error {
	if err := e.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(value) == "" {
		return validationf("value is required")
	}

	cfg, err := e.Config()
	if err != nil {
		return err
	}
	switch key {
	case ListCarriers:
		cfg.Carriers = append(cfg.Carriers, value)
	case ListTypes:
		cfg.Types = append(cfg.Types, value)
	default:
		return validationf("unknown taxonomy list")
	}

	return e.replaceConfig(ctx, cfg, "add "+key)
}

// RemoveTaxonomyItem removes every occurrence of value from the named list.
func (e *Engine) RemoveTaxonomyItem(ctx context.Context, key, value string) error {
	if err := e.Err(); err != nil {
		return err
	}

	cfg, err := e.Config()
	if err != nil {
		return err
	}
	switch key {
	case ListCarriers:
		cfg.Carriers = removeString(cfg.Carriers, value)
	case ListTypes:
		cfg.Types = removeString(cfg.Types, value)
	default:
		return validationf("unknown taxonomy list")
	}

	return e.replaceConfig(ctx, cfg, "remove "+key)
}

// AddBuilding appends a named building with a palette color.
func (e *Engine) AddBuilding(ctx context.Context, name, color string) error {
	if err := e.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return validationf("building name is required")
	}
	if !ValidColor(color) {
		return validationf("unknown building color")
	}

	cfg, err := e.Config()
	if err != nil {
		return err
	}
	cfg.Buildings = append(cfg.Buildings, Building{Name: name, Color: color})
	return e.replaceConfig(ctx, cfg, "add building")
}

// RemoveBuilding removes the whole {name, color} pair by name.
func (e *Engine) RemoveBuilding(ctx context.Context, name string) error {
	if err := e.Err(); err != nil {
		return err
	}

	cfg, err := e.Config()
	if err != nil {
		return err
	}
	kept := cfg.Buildings[:0:0]
	for _, b := range cfg.Buildings {
		if b.Name != name {
			kept = append(kept, b)
		}
	}
	cfg.Buildings = kept
	return e.replaceConfig(ctx, cfg, "remove building")
}

func (e *Engine) replaceConfig(ctx context.Context, cfg Config, op string) error {
	if err := e.store.ReplaceConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to write settings (%s): %w", op, err)
	}
	e.IngestConfig(cfg)
	e.logger.Info("settings updated", zap.String("op", op))
	return nil
}

func removeString(items []string, value string) []string {
	kept := items[:0:0]
	for _, item := range items {
		if item != value {
			kept = append(kept, item)
		}
	}
	return kept
}
