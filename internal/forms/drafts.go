// Package forms holds the editable copies of activities and credentials that
// live only while the user is filling in a screen.
package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/myhealthapp/fitlog/pkg/models"
)

// Defaults for a new activity
const (
	DefaultActivityType = models.Running
	DefaultDuration     = "00:30:00"
	DefaultStatus       = models.StatusCompleted
)

// ActivityDraft is the form state of the create/edit screen. DateTime is a
// LocalLayout string in the user's timezone. ID is empty in create mode.
// At is the fetched instant of an edited activity; it is sent back as long
// as DateTime still shows it.
type ActivityDraft struct {
	ID           models.ID
	At           time.Time
	ActivityType models.ActivityType `label:"Activity Type" validate:"required,activitytype"`
	DateTime     string              `label:"Date and Time" validate:"required,localdatetime"`
	Duration     string              `label:"Duration" validate:"required,hhmmss"`
	Status       models.Status       `label:"Status" validate:"required,activitystatus"`
	Remarks      string              `label:"Remarks"`
}

// NewActivityDraft returns the defaults of create mode, stamped with now
// truncated to the minute.
func NewActivityDraft(now time.Time, loc *time.Location) ActivityDraft {
	return ActivityDraft{
		ActivityType: DefaultActivityType,
		DateTime:     ToLocalInput(now, loc),
		Duration:     DefaultDuration,
		Status:       DefaultStatus,
	}
}

// DraftFromActivity seeds an edit-mode draft from a fetched activity.
func DraftFromActivity(a models.Activity, loc *time.Location) ActivityDraft {
	return ActivityDraft{
		ID:           a.ID,
		At:           a.DateTime,
		ActivityType: a.ActivityType,
		DateTime:     ToLocalInput(a.DateTime, loc),
		Duration:     a.Duration,
		Status:       a.Status,
		Remarks:      a.Remarks,
	}
}

// EditMode reports whether the draft edits an existing activity.
func (d ActivityDraft) EditMode() bool {
	return d.ID != ""
}

// Payload validates the draft and converts its local date and time back to
// an absolute ISO-8601 timestamp. Every other field is copied verbatim.
func (d ActivityDraft) Payload(loc *time.Location) (models.ActivityPayload, error) {
	if err := Validate(d); err != nil {
		return models.ActivityPayload{}, err
	}
	at, err := d.instant(loc)
	if err != nil {
		return models.ActivityPayload{}, err
	}
	return models.ActivityPayload{
		ActivityType: d.ActivityType,
		DateTime:     FormatISO(at),
		Duration:     d.Duration,
		Status:       d.Status,
		Remarks:      d.Remarks,
	}, nil
}

// instant resolves DateTime. An unchanged DateTime keeps the fetched instant
// so wall-clock times inside a DST overlap keep their offset.
func (d ActivityDraft) instant(loc *time.Location) (time.Time, error) {
	if !d.At.IsZero() && strings.TrimSpace(d.DateTime) == ToLocalInput(d.At, loc) {
		return d.At.Truncate(time.Minute), nil
	}
	return ParseLocalInput(d.DateTime, loc)
}

// CycleActivityType moves to the next (or previous, when step is negative) type.
func (d *ActivityDraft) CycleActivityType(step int) {
	d.ActivityType = cycle(models.ActivityTypes, d.ActivityType, step)
}

// CycleStatus moves to the next (or previous) status.
func (d *ActivityDraft) CycleStatus(step int) {
	d.Status = cycle(models.Statuses, d.Status, step)
}

func cycle[T comparable](options []T, current T, step int) T {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+step)%n+n)%n]
}

// LoginDraft is the login form.
type LoginDraft struct {
	Email    string `label:"Email" validate:"required,email"`
	Password string `label:"Password" validate:"required"`
}

// RegisterDraft is the registration form.
type RegisterDraft struct {
	Email       string `label:"Email" validate:"required,email"`
	DisplayName string `label:"Display Name" validate:"required"`
	Password    string `label:"Password" validate:"required"`
}

// Normalize trims the fields a user is likely to pad by accident.
func (d LoginDraft) Normalize() LoginDraft {
	d.Email = strings.TrimSpace(d.Email)
	return d
}

// Normalize trims the fields a user is likely to pad by accident.
func (d RegisterDraft) Normalize() RegisterDraft {
	d.Email = strings.TrimSpace(d.Email)
	d.DisplayName = strings.TrimSpace(d.DisplayName)
	return d
}

func (d ActivityDraft) String() string {
	return fmt.Sprintf("%s %s %s %s", d.ActivityType, d.DateTime, d.Duration, d.Status)
}
