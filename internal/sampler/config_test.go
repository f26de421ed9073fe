package sampler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func limPtr(n int) *Limit {
	l := Cap(n)
	return &l
}

func TestResolveDefaults(t *testing.T) {
	cfg, advisories := Resolve(Params{}, nil)
	assert.Equal(t, time.Now().Year(), cfg.Year)
	assert.Equal(t, DefaultNumDates, cfg.NumDates)
	assert.Empty(t, cfg.Exclude)
	assert.False(t, cfg.LimDays.Capped())
	assert.False(t, cfg.LimMonths.Capped())
	assert.False(t, cfg.LimQuarters.Capped())
	assert.Empty(t, advisories)
}

func TestResolveYearClamping(t *testing.T) {
	current := time.Now().Year()
	cases := []struct {
		name string
		year int
		want int
	}{
		{"below range", 1900, current},
		{"lower bound", 1970, 1970},
		{"upper bound", 2038, 2038},
		{"above range", 2039, current},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, _ := Resolve(Params{Year: intPtr(tc.year)}, nil)
			assert.Equal(t, tc.want, cfg.Year)
		})
	}
}

func TestResolveNumDatesClamping(t *testing.T) {
	cfg, _ := Resolve(Params{NumDates: intPtr(0)}, nil)
	assert.Equal(t, DefaultNumDates, cfg.NumDates)

	cfg, _ = Resolve(Params{NumDates: intPtr(1000)}, nil)
	assert.Equal(t, MaxNumDates, cfg.NumDates)

	cfg, _ = Resolve(Params{NumDates: intPtr(-3)}, nil)
	assert.Equal(t, DefaultNumDates, cfg.NumDates)
}

func TestResolveMergesOverPrevious(t *testing.T) {
	prev, _ := Resolve(Params{
		Year:     intPtr(2023),
		NumDates: intPtr(10),
		Exclude:  []Weekday{Saturday, Sunday},
		LimDays:  limPtr(2),
	}, nil)

	cfg, _ := Resolve(Params{NumDates: intPtr(5)}, &prev)
	assert.Equal(t, 2023, cfg.Year)
	assert.Equal(t, 5, cfg.NumDates)
	assert.Equal(t, []Weekday{Saturday, Sunday}, cfg.Exclude)
	assert.Equal(t, 2, cfg.LimDays.Bound())

	// Present-but-empty exclude clears the inherited list.
	cfg, _ = Resolve(Params{Exclude: []Weekday{}}, &prev)
	assert.Empty(t, cfg.Exclude)
}

func TestResolveNormalizesExclude(t *testing.T) {
	cfg, _ := Resolve(Params{Exclude: []Weekday{Sunday, Weekday(0), Monday, Sunday, Weekday(9)}}, nil)
	assert.Equal(t, []Weekday{Monday, Sunday}, cfg.Exclude)
}

func TestResolveAllWeekdaysExcluded(t *testing.T) {
	cfg, advisories := Resolve(Params{Exclude: Weekdays()}, nil)
	require.Len(t, advisories, 1)
	assert.False(t, advisories[0].Keyed)
	assert.Contains(t, advisories[0].Text, "every weekday is excluded")
	assert.Len(t, cfg.Exclude, WeekdayCount)
}

func TestResolveDayLimitAdvisory(t *testing.T) {
	_, advisories := Resolve(Params{NumDates: intPtr(10), LimDays: limPtr(1)}, nil)
	require.Len(t, advisories, 1)
	assert.True(t, advisories[0].Keyed)
	assert.Equal(t, 7, advisories[0].Max)
}

func TestResolveDayLimitAdvisoryWithExclusions(t *testing.T) {
	_, advisories := Resolve(Params{
		NumDates: intPtr(20),
		LimDays:  limPtr(1),
		Exclude:  []Weekday{Saturday, Sunday},
	}, nil)
	require.Len(t, advisories, 1)
	assert.Equal(t, 5, advisories[0].Max)
	assert.Contains(t, advisories[0].Text, "2 weekdays excluded")
}

func TestResolveMonthLimitAdvisory(t *testing.T) {
	_, advisories := Resolve(Params{NumDates: intPtr(30), LimMonths: limPtr(2)}, nil)
	require.Len(t, advisories, 1)
	assert.Equal(t, 24, advisories[0].Max)
}

func TestResolveQuarterLimitAdvisory(t *testing.T) {
	_, advisories := Resolve(Params{NumDates: intPtr(10), LimQuarters: limPtr(1)}, nil)
	require.Len(t, advisories, 1)
	assert.Equal(t, 4, advisories[0].Max)
}

func TestResolveSatisfiableLimitsProduceNoAdvisories(t *testing.T) {
	_, advisories := Resolve(Params{NumDates: intPtr(14), LimDays: limPtr(2)}, nil)
	assert.Empty(t, advisories)

	// Exactly at the bound: 7 * lim is still satisfiable.
	_, advisories = Resolve(Params{NumDates: intPtr(14), LimDays: limPtr(2), LimQuarters: limPtr(4)}, nil)
	assert.Empty(t, advisories)
}

func TestResolveStacksAdvisoriesInOrder(t *testing.T) {
	_, advisories := Resolve(Params{
		NumDates:    intPtr(100),
		Exclude:     Weekdays(),
		LimDays:     limPtr(1),
		LimMonths:   limPtr(1),
		LimQuarters: limPtr(1),
	}, nil)
	require.Len(t, advisories, 4)
	assert.False(t, advisories[0].Keyed)
	assert.Equal(t, 0, advisories[1].Max) // 7 - 7 excluded weekdays
	assert.Equal(t, 12, advisories[2].Max)
	assert.Equal(t, 4, advisories[3].Max)
}

func TestLimitCapBelowOneIsUnlimited(t *testing.T) {
	assert.False(t, Cap(0).Capped())
	assert.False(t, Cap(-2).Capped())
	assert.False(t, Cap(0).Reached(1000))
}

func TestLimitJSONRoundTrip(t *testing.T) {
	data, err := Cap(3).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))

	data, err = Unlimited().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var l Limit
	require.NoError(t, l.UnmarshalJSON([]byte("null")))
	assert.False(t, l.Capped())
	require.NoError(t, l.UnmarshalJSON([]byte("5")))
	assert.Equal(t, 5, l.Bound())
}

func TestWeekdayNames(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "", Weekday(0).String())
	assert.Equal(t, "", Weekday(8).String())
}
