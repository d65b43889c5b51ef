package forms

import (
	"fmt"
	"strings"
	"time"
)

// LocalLayout is the editable minute-granularity form of a timestamp,
// interpreted in the user's timezone.
const LocalLayout = "2006-01-02T15:04"

// ISOLayout is what the backend receives: UTC with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// ToLocalInput renders t in loc at minute granularity.
func ToLocalInput(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LocalLayout)
}

// ParseLocalInput reads a LocalLayout string as a wall-clock time in loc.
func ParseLocalInput(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(LocalLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date and time %q, want YYYY-MM-DDThh:mm", s)
	}
	return t, nil
}

// FormatISO renders an absolute timestamp for the backend.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
