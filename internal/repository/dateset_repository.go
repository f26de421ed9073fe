package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/datepool-api/internal/models"
)

// DateSetRepository handles persistence for generated date sets.
type DateSetRepository struct {
	db *sqlx.DB
}

// NewDateSetRepository instantiates a date-set repository.
func NewDateSetRepository(db *sqlx.DB) *DateSetRepository {
	return &DateSetRepository{db: db}
}

const dateSetColumns = "id, year, num_dates, payload, messages, created_at"

// Insert stores a newly generated set.
func (r *DateSetRepository) Insert(ctx context.Context, set *models.DateSet) error {
	const query = `INSERT INTO date_sets (id, year, num_dates, payload, messages, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query,
		set.ID, set.Year, set.NumDates, set.Payload, set.Messages, set.CreatedAt); err != nil {
		return fmt.Errorf("insert date set: %w", err)
	}
	return nil
}

// FindByID loads a stored set by identifier. sql.ErrNoRows passes through
// so the service layer can translate it.
func (r *DateSetRepository) FindByID(ctx context.Context, id string) (*models.DateSet, error) {
	query := fmt.Sprintf("SELECT %s FROM date_sets WHERE id = $1", dateSetColumns)
	var set models.DateSet
	if err := r.db.GetContext(ctx, &set, query, id); err != nil {
		return nil, err
	}
	return &set, nil
}

// List returns stored sets matching the filter, newest first.
func (r *DateSetRepository) List(ctx context.Context, filter models.DateSetFilter) ([]models.DateSet, int, error) {
	base := "FROM date_sets WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, *filter.Year)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		dateSetColumns, base, size, offset)

	var sets []models.DateSet
	if err := r.db.SelectContext(ctx, &sets, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list date sets: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count date sets: %w", err)
	}

	return sets, total, nil
}

// Delete removes a stored set. Missing rows surface as sql.ErrNoRows.
func (r *DateSetRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM date_sets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete date set: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete date set rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
