package services

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// LongDate formats t as "Friday, June 1st, 2024".
func LongDate(t time.Time) string {
	return t.Format("Monday, January ") + humanize.Ordinal(t.Day()) + t.Format(", 2006")
}

// FormatDisplayDate drops everything before the first space of the long date,
// leaving " June 1st, 2024". The leading space is kept.
func FormatDisplayDate(t time.Time) string {
	long := LongDate(t)
	if i := strings.Index(long, " "); i >= 0 {
		return long[i:]
	}
	return long
}

// ISODate formats t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format(time.DateOnly)
}
