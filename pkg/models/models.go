package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// ActivityType is the kind of workout an activity records
type ActivityType string

const (
	Running       ActivityType = "Running"
	Cycling       ActivityType = "Cycling"
	Swimming      ActivityType = "Swimming"
	Weightlifting ActivityType = "Weightlifting"
	Yoga          ActivityType = "Yoga"
	Hiking        ActivityType = "Hiking"
	Walking       ActivityType = "Walking"
)

// ActivityTypes lists every activity type in display order
var ActivityTypes = []ActivityType{Running, Cycling, Swimming, Weightlifting, Yoga, Hiking, Walking}

// Valid reports whether t is one of the known activity types
func (t ActivityType) Valid() bool {
	return lo.Contains(ActivityTypes, t)
}

// Status is the completion state of an activity
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusCompleted, StatusPending, StatusCancelled}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	return lo.Contains(Statuses, s)
}

// ParseStatus matches s against the known statuses
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q (want one of %v)", s, Statuses)
	}
	return status, nil
}

// ParseActivityType matches s against the known activity types
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown activity type %q (want one of %v)", s, ActivityTypes)
	}
	return t, nil
}

// ID identifies an activity on the backend. The backend may send it as a
// JSON number or a string; both decode to the same value.
type ID string

// UnmarshalJSON accepts both numeric and string identifiers
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("invalid activity id %s", data)
	}
	*id = ID(data)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Activity is a transient copy of a backend activity record
type Activity struct {
	ID           ID           `json:"id"`
	ActivityType ActivityType `json:"activity_type"`
	DateTime     time.Time    `json:"date_time"`
	Duration     string       `json:"duration"`
	Status       Status       `json:"status"`
	Remarks      string       `json:"remarks"`
}

// LocalZone is where timestamps without a UTC offset are placed when decoded
var LocalZone = time.Local

// naiveLayouts are ISO-8601 forms without an offset. Fractional seconds are
// accepted after the seconds field.
var naiveLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParseTimestamp reads an ISO-8601 timestamp. A value without an offset is a
// wall-clock time in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// UnmarshalJSON decodes an activity, accepting date_time with or without an
// offset
func (a *Activity) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           ID           `json:"id"`
		ActivityType ActivityType `json:"activity_type"`
		DateTime     *string      `json:"date_time"`
		Duration     string       `json:"duration"`
		Status       Status       `json:"status"`
		Remarks      *string      `json:"remarks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Activity{
		ID:           raw.ID,
		ActivityType: raw.ActivityType,
		Duration:     raw.Duration,
		Status:       raw.Status,
		Remarks:      lo.FromPtr(raw.Remarks),
	}
	if raw.DateTime != nil && *raw.DateTime != "" {
		at, err := ParseTimestamp(*raw.DateTime, LocalZone)
		if err != nil {
			return err
		}
		a.DateTime = at
	}
	return nil
}

// ActivityPayload is the request body for create and full updates.
// DateTime is an ISO-8601 string in UTC.
type ActivityPayload struct {
	ActivityType ActivityType `json:"activity_type"`
	DateTime     string       `json:"date_time"`
	Duration     string       `json:"duration"`
	Status       Status       `json:"status"`
	Remarks      string       `json:"remarks"`
}

// StatusPayload is the request body for status-only updates
type StatusPayload struct {
	Status Status `json:"status"`
}

// Credentials is the body of a login request
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of a register request
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}
