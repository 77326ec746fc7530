package timefmt

import "time"

// EventLayout is the fixed literal layout the calendar endpoints speak,
// "YYYY-MM-DD HH:MM:SS".
const EventLayout = "2006-01-02 15:04:05"

func ParseEvent(s string) (time.Time, error) {
	return time.Parse(EventLayout, s)
}

func FormatEvent(t time.Time) string {
	return t.Format(EventLayout)
}
