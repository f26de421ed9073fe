package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"

	"github.com/noah-isme/datepool-api/internal/sampler"
)

// DateSet is a stored, previously generated set of sampled dates. The dates
// and the resolved configuration travel together as a JSONB payload so a set
// can be fetched (or regenerated) by identifier with full fidelity.
type DateSet struct {
	ID        string         `db:"id" json:"id"`
	Year      int            `db:"year" json:"year"`
	NumDates  int            `db:"num_dates" json:"num_dates"`
	Payload   types.JSONText `db:"payload" json:"-"`
	Messages  types.JSONText `db:"messages" json:"-"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// DateSetPayload is the JSONB body of a stored set.
type DateSetPayload struct {
	Config sampler.Config `json:"config"`
	Dates  []sampler.Date `json:"dates"`
}

// DateSetFilter narrows down stored sets.
type DateSetFilter struct {
	Year     *int
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
