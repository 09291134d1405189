package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"

	"gitlab.com/dormdrop/dormdrop/internal/db"
	"gitlab.com/dormdrop/dormdrop/internal/repository"
)

// The settings document is a single row; edits replace the whole payload.
// Concurrent editors race under last-write-wins, which matches the store's
// documented behavior.
const configRowID = 1

type ConfigRepo struct {
	db db.DB
}

func NewConfigRepo(db db.DB) *ConfigRepo {
	return &ConfigRepo{db: db}
}

func (r *ConfigRepo) Get(ctx context.Context) (*repository.ConfigDocument, error) {
	var doc repository.ConfigDocument
	err := r.db.Get(ctx, &doc, "SELECT * FROM settings WHERE id = $1", configRowID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *ConfigRepo) Replace(ctx context.Context, payload []byte) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO settings (id, payload, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
    `, configRowID, payload, time.Now().UTC())
	return err
}
