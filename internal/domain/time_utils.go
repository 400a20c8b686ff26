package domain

import "time"

const (
	DatetimeLayout = "2006-01-02T15:04:05Z"
	OnlyDate       = "2006-01-02"
	MonthlyLayout  = "2006-01"
)

// DateOnly normalizes a timestamp to midnight UTC so dates compare by
// calendar day regardless of the zone the source carried.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a 2006-01-02 date string into a midnight-UTC time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(OnlyDate, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// WeekendAnchor returns the most recent Friday on or before the given date,
// normalized to midnight UTC. Tournaments spanning the same weekend collapse
// onto the same anchor.
func WeekendAnchor(date time.Time) time.Time {
	d := DateOnly(date)
	back := (int(d.Weekday()) - int(time.Friday) + 7) % 7
	return d.AddDate(0, 0, -back)
}
