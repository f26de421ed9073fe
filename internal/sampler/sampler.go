package sampler

import (
	"math/rand"
	"sort"
	"time"
)

// Date is a single sampled calendar day.
type Date struct {
	// ID is the canonical identifier, formatted as YYYY-MM-DD. Sorting by ID
	// sorts chronologically.
	ID        string  `json:"id"`
	Display   string  `json:"display"`
	Timestamp int64   `json:"timestamp"`
	Weekday   Weekday `json:"weekday"`
	Month     int     `json:"month"`
	Quarter   int     `json:"quarter"`
}

const (
	idLayout      = "2006-01-02"
	displayLayout = "Monday, 2 January 2006"
)

// Generate draws dates for the resolved configuration. The year's full day
// pool is shuffled with rng, then drawn destructively from the front until
// the requested count is reached or the pool runs out of eligible
// candidates. Rejection filters apply in quarter, month, then
// weekday/exclusion order. The result is sorted by date ID and may hold
// fewer than cfg.NumDates entries; that is expected under tight quotas, not
// an error.
//
// All state lives in this call frame, so concurrent invocations are safe as
// long as each uses its own rng.
func Generate(cfg Config, rng *rand.Rand) []Date {
	pool := Pool(cfg.Year)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	var dayCounts [WeekdayCount + 1]int
	var monthCounts [13]int
	var quarterCounts [5]int

	picked := make([]Date, 0, cfg.NumDates)

draw:
	for rep := 0; rep < cfg.NumDates; rep++ {
		// The retry bound guards against spinning on a pool that still has
		// entries but no eligible candidates left for this repetition.
		for tries := 0; tries < MaxNumDates; tries++ {
			if len(pool) == 0 {
				break draw
			}
			cand := pool[0]
			pool = pool[1:]

			if cfg.LimQuarters.Reached(quarterCounts[cand.Quarter]) {
				continue
			}
			if cfg.LimMonths.Reached(monthCounts[cand.Month]) {
				continue
			}
			if cfg.LimDays.Reached(dayCounts[cand.Weekday]) || cfg.Excluded(cand.Weekday) {
				continue
			}

			dayCounts[cand.Weekday]++
			monthCounts[cand.Month]++
			quarterCounts[cand.Quarter]++
			picked = append(picked, cand)
			continue draw
		}
	}

	sort.Slice(picked, func(i, j int) bool { return picked[i].ID < picked[j].ID })
	return picked
}

// Pool enumerates every calendar day of the year in chronological order
// (365 or 366 entries).
func Pool(year int) []Date {
	pool := make([]Date, 0, MaxNumDates)
	for t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); t.Year() == year; t = t.AddDate(0, 0, 1) {
		month := int(t.Month())
		pool = append(pool, Date{
			ID:        t.Format(idLayout),
			Display:   t.Format(displayLayout),
			Timestamp: t.Unix(),
			Weekday:   isoWeekday(t),
			Month:     month,
			Quarter:   (month + 2) / 3,
		})
	}
	return pool
}
