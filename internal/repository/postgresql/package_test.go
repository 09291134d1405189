package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_db "gitlab.com/dormdrop/dormdrop/internal/db/mocks"
	"gitlab.com/dormdrop/dormdrop/internal/repository"
)

func TestPackageRepo_CreateTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)
	mockTx := mock_db.NewMockTx(ctrl)
	repo := NewPackageRepo(mockDB)
	ctx := context.Background()

	rec := &repository.PackageRecord{
		ID:        "pkg-1",
		Building:  "A",
		Room:      "304",
		Tracking:  "TH123",
		Carrier:   "Kerry",
		Type:      "Box",
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq(rec.ID),
				gomock.Eq(rec.Building),
				gomock.Eq(rec.Room),
				gomock.Eq(rec.Tracking),
				gomock.Eq(rec.Carrier),
				gomock.Eq(rec.Type),
				gomock.Eq(rec.Sender),
				gomock.Eq(rec.Image),
				gomock.Eq(rec.Status),
				gomock.Eq(rec.Receiver),
				gomock.Eq(rec.Signature),
				gomock.Eq(rec.CreatedAt),
				gomock.Any()).
			Return(pgconn.CommandTag("INSERT 0 1"), nil)

		err := repo.CreateTx(ctx, mockTx, rec)
		assert.NoError(t, err)
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := errors.New("database error")
		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dbErr)

		err := repo.CreateTx(ctx, mockTx, rec)
		assert.Equal(t, dbErr, err)
	})
}

func TestPackageRepo_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)
	repo := NewPackageRepo(mockDB)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("pkg-1")).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				rec := dest.(*repository.PackageRecord)
				rec.ID = "pkg-1"
				rec.Room = "304"
				return nil
			})

		rec, err := repo.GetByID(ctx, "pkg-1")
		assert.NoError(t, err)
		assert.Equal(t, "pkg-1", rec.ID)
		assert.Equal(t, "304", rec.Room)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("ghost")).
			Return(pgx.ErrNoRows)

		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestPackageRepo_UpdateFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)
	repo := NewPackageRepo(mockDB)
	ctx := context.Background()

	rec := &repository.PackageRecord{
		ID:       "pkg-1",
		Building: "B",
		Room:     "305",
		Tracking: "TH456",
		Status:   "pending",
	}

	t.Run("Success", func(t *testing.T) {
		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq(rec.Building),
				gomock.Eq(rec.Room),
				gomock.Eq(rec.Tracking),
				gomock.Eq(rec.Carrier),
				gomock.Eq(rec.Type),
				gomock.Eq(rec.Sender),
				gomock.Eq(rec.Image),
				gomock.Eq(rec.Status),
				gomock.Eq(rec.ID)).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.UpdateFields(ctx, rec)
		assert.NoError(t, err)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateFields(ctx, rec)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestPackageRepo_MarkPickedUpTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)
	mockTx := mock_db.NewMockTx(ctrl)
	repo := NewPackageRepo(mockDB)
	ctx := context.Background()

	pickedUpAt := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq("Som"),
				gomock.Eq("data:image/png;base64,sig"),
				gomock.Eq(pickedUpAt),
				gomock.Eq("pkg-1")).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		err := repo.MarkPickedUpTx(ctx, mockTx, "pkg-1", "Som", "data:image/png;base64,sig", pickedUpAt)
		assert.NoError(t, err)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.MarkPickedUpTx(ctx, mockTx, "ghost", "Som", "", pickedUpAt)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestPackageRepo_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)
	repo := NewPackageRepo(mockDB)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				recs := dest.(*[]*repository.PackageRecord)
				*recs = []*repository.PackageRecord{{ID: "a"}, {ID: "b"}}
				return nil
			})

		recs, err := repo.GetAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("DB Error", func(t *testing.T) {
		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := repo.GetAll(ctx)
		assert.Error(t, err)
	})
}
