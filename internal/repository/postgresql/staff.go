package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/dormdrop/dormdrop/internal/db"
	"gitlab.com/dormdrop/dormdrop/internal/repository"
)

type StaffRepo struct {
	db db.DB
}

func NewStaffRepo(db db.DB) *StaffRepo {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) ValidateStaff(ctx context.Context, username, password string) (bool, error) {
	var hashedPassword string
	err := r.db.ExecQueryRow(ctx,
		"SELECT password FROM staff WHERE username = $1", username).Scan(&hashedPassword)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, repository.ErrObjectNotFound
	}
	if err != nil {
		return false, fmt.Errorf("select staff: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}
