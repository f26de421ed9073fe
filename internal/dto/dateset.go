package dto

import (
	"time"

	"github.com/noah-isme/datepool-api/internal/sampler"
)

// GenerateDateSetRequest carries raw generation parameters. Nil fields fall
// back to the previous configuration (for regeneration) or to the defaults.
// Scalars out of range are clamped during resolution rather than rejected.
type GenerateDateSetRequest struct {
	Year        *int  `json:"year" form:"year"`
	NumDates    *int  `json:"numDates" form:"numDates"`
	Exclude     []int `json:"exclude" form:"exclude"`
	LimDays     *int  `json:"limDays" form:"limDays"`
	LimMonths   *int  `json:"limMonths" form:"limMonths"`
	LimQuarters *int  `json:"limQuarters" form:"limQuarters"`
}

// Params converts the request into resolver input. Limit fields below 1
// mean "unlimited", mirroring the falsy convention accepted on the wire.
func (r GenerateDateSetRequest) Params() sampler.Params {
	p := sampler.Params{
		Year:     r.Year,
		NumDates: r.NumDates,
	}
	if r.Exclude != nil {
		p.Exclude = make([]sampler.Weekday, 0, len(r.Exclude))
		for _, code := range r.Exclude {
			p.Exclude = append(p.Exclude, sampler.Weekday(code))
		}
	}
	p.LimDays = limitPtr(r.LimDays)
	p.LimMonths = limitPtr(r.LimMonths)
	p.LimQuarters = limitPtr(r.LimQuarters)
	return p
}

func limitPtr(n *int) *sampler.Limit {
	if n == nil {
		return nil
	}
	l := sampler.Cap(*n)
	return &l
}

// DateSetResponse is the externally visible shape of a generated or stored
// set. Dates are sorted ascending by their YYYY-MM-DD identifier.
type DateSetResponse struct {
	ID        string         `json:"id"`
	Config    sampler.Config `json:"config"`
	Dates     []sampler.Date `json:"dates"`
	CreatedAt time.Time      `json:"createdAt"`
}

// DateSetSummary is the list-view shape of a stored set.
type DateSetSummary struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	NumDates  int       `json:"numDates"`
	CreatedAt time.Time `json:"createdAt"`
}

// DateSetListQuery filters stored sets.
type DateSetListQuery struct {
	Year     *int `form:"year"`
	Page     int  `form:"page"`
	PageSize int  `form:"pageSize"`
}

// ExportDateSetRequest selects a stored set and an output format.
type ExportDateSetRequest struct {
	ID     string `validate:"required"`
	Format string `validate:"required,oneof=csv pdf"`
}

// WeekdayName pairs an ISO weekday code with its canonical English name.
type WeekdayName struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}
