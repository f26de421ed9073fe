// Package sampler implements constraint-driven random sampling of calendar
// dates: a resolver that normalizes generation parameters, and a stratified
// sampler that draws dates under per-weekday, per-month, and per-quarter
// quotas. Both are total functions; invalid scalar input is clamped or
// defaulted, never rejected.
package sampler

import (
	"fmt"
	"sort"
	"time"
)

const (
	// MinYear and MaxYear bound the supported calendar range. Years outside
	// the range fall back to the current year.
	MinYear = 1970
	MaxYear = 2038

	// DefaultNumDates is used when the requested count is missing or below 1.
	DefaultNumDates = 24

	// MaxNumDates is the largest possible pool for a single year and doubles
	// as the per-repetition retry bound during generation.
	MaxNumDates = 366
)

// Config is a fully resolved, immutable set of generation parameters.
type Config struct {
	Year        int       `json:"year"`
	NumDates    int       `json:"num_dates"`
	Exclude     []Weekday `json:"exclude"`
	LimDays     Limit     `json:"lim_days"`
	LimMonths   Limit     `json:"lim_months"`
	LimQuarters Limit     `json:"lim_quarters"`
}

// Excluded reports whether the weekday is on the exclusion list.
func (c Config) Excluded(d Weekday) bool {
	for _, e := range c.Exclude {
		if e == d {
			return true
		}
	}
	return false
}

// Params carries raw, possibly partial generation parameters. Nil fields keep
// the previous (or default) value during resolution; a non-nil empty Exclude
// clears the exclusion list.
type Params struct {
	Year        *int
	NumDates    *int
	Exclude     []Weekday
	LimDays     *Limit
	LimMonths   *Limit
	LimQuarters *Limit
}

// Advisory warns that a configuration requirement cannot be fully satisfied.
// Keyed advisories carry the maximum achievable count for the offending
// quota; the all-weekdays-excluded advisory is unkeyed. Advisories are kept
// as an ordered list so that two checks arriving at the same bound never
// overwrite each other.
type Advisory struct {
	Max   int    `json:"max"`
	Keyed bool   `json:"keyed"`
	Text  string `json:"text"`
}

// Defaults returns the configuration used when no parameters are supplied:
// the current year, 24 dates, no exclusions, unlimited quotas.
func Defaults() Config {
	return Config{
		Year:     time.Now().Year(),
		NumDates: DefaultNumDates,
	}
}

// Resolve merges raw parameters over prev (or over Defaults when prev is
// nil), clamps scalars into range, and predicts quota feasibility. It never
// fails: out-of-range values self-correct, and structurally unsatisfiable
// quota combinations surface as advisories while generation still proceeds.
func Resolve(raw Params, prev *Config) (Config, []Advisory) {
	cfg := Defaults()
	if prev != nil {
		cfg = *prev
		cfg.Exclude = append([]Weekday(nil), prev.Exclude...)
	}

	if raw.Year != nil {
		cfg.Year = *raw.Year
	}
	if raw.NumDates != nil {
		cfg.NumDates = *raw.NumDates
	}
	if raw.Exclude != nil {
		cfg.Exclude = normalizeExclude(raw.Exclude)
	}
	if raw.LimDays != nil {
		cfg.LimDays = *raw.LimDays
	}
	if raw.LimMonths != nil {
		cfg.LimMonths = *raw.LimMonths
	}
	if raw.LimQuarters != nil {
		cfg.LimQuarters = *raw.LimQuarters
	}

	if cfg.Year < MinYear || cfg.Year > MaxYear {
		cfg.Year = time.Now().Year()
	}
	if cfg.NumDates < 1 {
		cfg.NumDates = DefaultNumDates
	}
	if cfg.NumDates > MaxNumDates {
		cfg.NumDates = MaxNumDates
	}

	return cfg, feasibility(cfg)
}

// feasibility runs the quota pre-checks of the resolver. The day-of-week
// arithmetic is a heuristic upper bound, not an exact satisfiability proof;
// it is kept literally for compatibility with long-standing behavior.
func feasibility(cfg Config) []Advisory {
	var advisories []Advisory

	if len(cfg.Exclude) == WeekdayCount {
		advisories = append(advisories, Advisory{
			Text: "every weekday is excluded: the generated set will be empty",
		})
	}

	if cfg.LimDays.Capped() && cfg.NumDates > WeekdayCount*cfg.LimDays.Bound() {
		max := cfg.LimDays.Bound() * WeekdayCount
		text := fmt.Sprintf("%d dates requested, but the per-weekday limit of %d allows at most %d",
			cfg.NumDates, cfg.LimDays.Bound(), max)
		if n := len(cfg.Exclude); n > 0 {
			max = WeekdayCount - n
			text += fmt.Sprintf(" (%d weekdays excluded)", n)
		}
		advisories = append(advisories, Advisory{Max: max, Keyed: true, Text: text})
	}

	if cfg.LimMonths.Capped() && cfg.NumDates > 12*cfg.LimMonths.Bound() {
		max := cfg.LimMonths.Bound() * 12
		advisories = append(advisories, Advisory{
			Max:   max,
			Keyed: true,
			Text: fmt.Sprintf("%d dates requested, but the per-month limit of %d allows at most %d",
				cfg.NumDates, cfg.LimMonths.Bound(), max),
		})
	}

	if cfg.LimQuarters.Capped() && cfg.NumDates > 4*cfg.LimQuarters.Bound() {
		max := cfg.LimQuarters.Bound() * 4
		advisories = append(advisories, Advisory{
			Max:   max,
			Keyed: true,
			Text: fmt.Sprintf("%d dates requested, but the per-quarter limit of %d allows at most %d",
				cfg.NumDates, cfg.LimQuarters.Bound(), max),
		})
	}

	return advisories
}

// normalizeExclude drops invalid codes, dedupes, and sorts.
func normalizeExclude(in []Weekday) []Weekday {
	seen := make(map[Weekday]bool, len(in))
	out := make([]Weekday, 0, len(in))
	for _, d := range in {
		if !d.Valid() || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
