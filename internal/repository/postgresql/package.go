package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"gitlab.com/dormdrop/dormdrop/internal/db"
	"gitlab.com/dormdrop/dormdrop/internal/repository"
)

type PackageRepo struct {
	db db.DB
}

func NewPackageRepo(db db.DB) *PackageRepo {
	return &PackageRepo{db: db}
}

func (r *PackageRepo) CreateTx(ctx context.Context, tx db.Tx, rec *repository.PackageRecord) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO packages (
            id, building, room, tracking, carrier, type, sender, image,
            status, receiver, signature, created_at, picked_up_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `, rec.ID, rec.Building, rec.Room, rec.Tracking, rec.Carrier, rec.Type, rec.Sender, rec.Image,
		rec.Status, rec.Receiver, rec.Signature, rec.CreatedAt, rec.PickedUpAt)
	return err
}

func (r *PackageRepo) GetByID(ctx context.Context, id string) (*repository.PackageRecord, error) {
	var rec repository.PackageRecord
	err := r.db.Get(ctx, &rec, "SELECT * FROM packages WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// UpdateFields overwrites the editable field set of an existing record.
// Identity and created_at are never touched.
func (r *PackageRepo) UpdateFields(ctx context.Context, rec *repository.PackageRecord) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE packages
        SET
            building = $1,
            room = $2,
            tracking = $3,
            carrier = $4,
            type = $5,
            sender = $6,
            image = $7,
            status = $8
        WHERE id = $9
    `, rec.Building, rec.Room, rec.Tracking, rec.Carrier, rec.Type, rec.Sender, rec.Image, rec.Status, rec.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *PackageRepo) MarkPickedUpTx(ctx context.Context, tx db.Tx, id, receiver, signature string, pickedUpAt time.Time) error {
	tag, err := tx.Exec(ctx, `
        UPDATE packages
        SET
            status = 'picked_up',
            receiver = $1,
            signature = $2,
            picked_up_at = $3
        WHERE id = $4
    `, receiver, signature, pickedUpAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

func (r *PackageRepo) GetAll(ctx context.Context) ([]*repository.PackageRecord, error) {
	var recs []*repository.PackageRecord
	err := r.db.Select(ctx, &recs, "SELECT * FROM packages ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get packages: %w", err)
	}
	return recs, nil
}
