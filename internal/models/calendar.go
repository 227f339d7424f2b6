package models

import "time"

// CalendarEntry is a scheduled airing of an episode
type CalendarEntry struct {
	FirstAired time.Time `json:"first_aired"` // UTC date, time of day truncated
	Show       Show      `json:"show"`
	Episode    Episode   `json:"episode"`
}

// NewCalendarEntry builds an entry; the air instant is reduced to its UTC date
func NewCalendarEntry(firstAired time.Time, show Show, episode Episode) (CalendarEntry, error) {
	if err := requireTime("calendar entry", "first_aired", firstAired); err != nil {
		return CalendarEntry{}, err
	}
	return CalendarEntry{FirstAired: DateOf(firstAired), Show: show, Episode: episode}, nil
}

// OccursOn reports whether the entry airs on the calendar date of d, read in d's own location
func (e CalendarEntry) OccursOn(d time.Time) bool {
	y, m, day := d.Date()
	return e.FirstAired.Equal(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates an instant to midnight UTC of its UTC calendar date
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
