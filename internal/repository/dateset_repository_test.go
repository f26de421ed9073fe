package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/datepool-api/internal/models"
)

func newDateSetRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestDateSetRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newDateSetRepoMock(t)
	defer cleanup()

	repo := NewDateSetRepository(db)
	mock.ExpectExec("INSERT INTO date_sets").
		WithArgs("set-1", 2024, 24, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	set := &models.DateSet{
		ID:        "set-1",
		Year:      2024,
		NumDates:  24,
		Payload:   types.JSONText(`{"config":{},"dates":[]}`),
		Messages:  types.JSONText(`[]`),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(context.Background(), set))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDateSetRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newDateSetRepoMock(t)
	defer cleanup()

	repo := NewDateSetRepository(db)
	rows := sqlmock.NewRows([]string{"id", "year", "num_dates", "payload", "messages", "created_at"}).
		AddRow("set-1", 2024, 24, []byte(`{"config":{},"dates":[]}`), []byte(`[]`), time.Now())
	mock.ExpectQuery("SELECT id, year, num_dates").
		WithArgs("set-1").
		WillReturnRows(rows)

	set, err := repo.FindByID(context.Background(), "set-1")
	require.NoError(t, err)
	assert.Equal(t, 2024, set.Year)
	assert.Equal(t, 24, set.NumDates)
}

func TestDateSetRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newDateSetRepoMock(t)
	defer cleanup()

	repo := NewDateSetRepository(db)
	mock.ExpectQuery("SELECT id, year, num_dates").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDateSetRepositoryList(t *testing.T) {
	db, mock, cleanup := newDateSetRepoMock(t)
	defer cleanup()

	repo := NewDateSetRepository(db)
	rows := sqlmock.NewRows([]string{"id", "year", "num_dates", "payload", "messages", "created_at"}).
		AddRow("set-1", 2024, 24, []byte(`{}`), []byte(`[]`), time.Now()).
		AddRow("set-2", 2024, 10, []byte(`{}`), []byte(`[]`), time.Now())
	mock.ExpectQuery("SELECT id, year, num_dates").
		WithArgs(2024).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(2024).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	year := 2024
	sets, total, err := repo.List(context.Background(), models.DateSetFilter{Year: &year, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, sets, 2)
	assert.Equal(t, 2, total)
}

func TestDateSetRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newDateSetRepoMock(t)
	defer cleanup()

	repo := NewDateSetRepository(db)
	mock.ExpectExec("DELETE FROM date_sets").
		WithArgs("set-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "set-1"))

	mock.ExpectExec("DELETE FROM date_sets").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), sql.ErrNoRows)
}
