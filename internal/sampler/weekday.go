package sampler

import "time"

// Weekday is an ISO-8601 weekday code: Monday is 1, Sunday is 7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayCount is the number of distinct weekday codes.
const WeekdayCount = 7

var weekdayNames = [WeekdayCount + 1]string{
	"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Valid reports whether the code is within 1-7.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the canonical English weekday name, or an empty string for
// invalid codes.
func (d Weekday) String() string {
	if !d.Valid() {
		return ""
	}
	return weekdayNames[d]
}

// Weekdays returns all weekday codes in Monday-first order.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// isoWeekday converts time.Weekday (Sunday=0) to the ISO numbering.
func isoWeekday(t time.Time) Weekday {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return Weekday(wd)
}
