package sampler

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Limit caps how many accepted dates may fall within one stratum value
// (a single weekday, month, or quarter). The zero value is unlimited, so a
// configuration built without limits behaves as if every quota were open.
type Limit struct {
	n      int
	capped bool
}

// Unlimited returns a limit that never rejects.
func Unlimited() Limit {
	return Limit{}
}

// Cap returns a limit of n occurrences per stratum value. Values below 1
// cannot express a usable cap and collapse to Unlimited, matching the
// permissive input handling used everywhere else in the resolver.
func Cap(n int) Limit {
	if n < 1 {
		return Unlimited()
	}
	return Limit{n: n, capped: true}
}

// Capped reports whether the limit carries a bound.
func (l Limit) Capped() bool {
	return l.capped
}

// Bound returns the cap, or 0 when unlimited.
func (l Limit) Bound() int {
	if !l.capped {
		return 0
	}
	return l.n
}

// Reached reports whether count has consumed the cap. Unlimited never rejects.
func (l Limit) Reached(count int) bool {
	return l.capped && count >= l.n
}

// MarshalJSON encodes the cap as a number, or null when unlimited.
func (l Limit) MarshalJSON() ([]byte, error) {
	if !l.capped {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(l.n)), nil
}

// UnmarshalJSON accepts a number or null.
func (l *Limit) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = Unlimited()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = Cap(n)
	return nil
}
