package forms

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myhealthapp/fitlog/pkg/models"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone %s unavailable: %v", name, err)
	}
	return loc
}

func TestLocalInputRoundTripTruncatesToMinute(t *testing.T) {
	locations := []*time.Location{
		time.UTC,
		time.FixedZone("IST", 5*3600+1800),
		time.FixedZone("NST", -(3*3600 + 1800)),
		mustLoad(t, "America/New_York"),
	}
	rng := rand.New(rand.NewSource(42))

	for _, loc := range locations {
		for i := 0; i < 200; i++ {
			original := time.Unix(rng.Int63n(4_000_000_000), rng.Int63n(int64(time.Second))).UTC()

			back, err := ParseLocalInput(ToLocalInput(original, loc), loc)
			require.NoError(t, err)

			// inside a DST fall-back hour the wall clock is ambiguous; Go picks the first
			if back.Equal(original.Truncate(time.Minute)) {
				continue
			}
			_, offBack := back.Zone()
			_, offOrig := original.In(loc).Zone()
			assert.NotEqual(t, offOrig, offBack, "round trip of %s in %s gave %s", original, loc, back)
		}
	}
}

func TestFormatISO(t *testing.T) {
	at := time.Date(2025, time.October, 19, 10, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, "2025-10-19T08:30:00.000Z", FormatISO(at))
}

func TestParseLocalInputRejectsGarbage(t *testing.T) {
	_, err := ParseLocalInput("19/10/2025 10:30", time.UTC)
	assert.Error(t, err)
}

func TestNewActivityDraftDefaults(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	now := time.Date(2025, time.October, 19, 8, 30, 59, 999, time.UTC)

	d := NewActivityDraft(now, loc)

	assert.Equal(t, ActivityDraft{
		ActivityType: models.Running,
		DateTime:     "2025-10-19T10:30",
		Duration:     "00:30:00",
		Status:       models.StatusCompleted,
	}, d)
	assert.False(t, d.EditMode())
}

func TestCreatePayloadMatchesDraft(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	d := ActivityDraft{
		ActivityType: models.Running,
		DateTime:     "2025-10-19T10:30",
		Duration:     "00:30:00",
		Status:       models.StatusCompleted,
		Remarks:      "  felt good ",
	}

	payload, err := d.Payload(loc)
	require.NoError(t, err)

	assert.Equal(t, models.ActivityPayload{
		ActivityType: models.Running,
		DateTime:     "2025-10-19T08:30:00.000Z",
		Duration:     "00:30:00",
		Status:       models.StatusCompleted,
		Remarks:      "  felt good ",
	}, payload)

	_, err = time.Parse(time.RFC3339, payload.DateTime)
	assert.NoError(t, err)
}

func TestDraftFromActivity(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	a := models.Activity{
		ID:           "12",
		ActivityType: models.Hiking,
		DateTime:     time.Date(2025, time.October, 19, 15, 45, 30, 0, time.UTC),
		Duration:     "02:15:00",
		Status:       models.StatusPending,
		Remarks:      "ridge trail",
	}

	d := DraftFromActivity(a, loc)
	assert.True(t, d.EditMode())
	assert.Equal(t, "2025-10-19T08:45", d.DateTime)

	payload, err := d.Payload(loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-19T15:45:00.000Z", payload.DateTime)
	assert.Equal(t, "ridge trail", payload.Remarks)
}

func TestUnchangedDateTimeKeepsFetchedInstant(t *testing.T) {
	loc := mustLoad(t, "America/New_York")
	// 01:30 EST, the second 01:30 of the fall-back night
	a := models.Activity{
		ID:           "3",
		ActivityType: models.Walking,
		DateTime:     time.Date(2025, time.November, 2, 6, 30, 45, 0, time.UTC),
		Duration:     "00:20:00",
		Status:       models.StatusCompleted,
	}

	d := DraftFromActivity(a, loc)
	require.Equal(t, "2025-11-02T01:30", d.DateTime)

	payload, err := d.Payload(loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-02T06:30:00.000Z", payload.DateTime)

	d.DateTime = "2025-11-02T02:30"
	payload, err = d.Payload(loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-02T07:30:00.000Z", payload.DateTime)
}

func TestPayloadValidation(t *testing.T) {
	d := ActivityDraft{
		ActivityType: "Rowing",
		DateTime:     "tomorrow",
		Duration:     "30 min",
		Status:       models.StatusCompleted,
	}

	_, err := d.Payload(time.UTC)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"Activity Type", "Date and Time", "Duration"}, fieldsOf(errs))
	assert.Contains(t, errs.Error(), "Duration: use the format HH:MM:SS (e.g., 00:30:00)")
}

func TestCycle(t *testing.T) {
	d := NewActivityDraft(time.Now(), time.UTC)

	d.CycleActivityType(1)
	assert.Equal(t, models.Cycling, d.ActivityType)
	d.CycleActivityType(-2)
	assert.Equal(t, models.Walking, d.ActivityType)

	d.CycleStatus(-1)
	assert.Equal(t, models.StatusCancelled, d.Status)
	d.CycleStatus(1)
	assert.Equal(t, models.StatusCompleted, d.Status)
}

func TestCredentialDrafts(t *testing.T) {
	err := Validate(LoginDraft{Email: "not-an-email"}.Normalize())
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []string{"Email", "Password"}, fieldsOf(errs))

	assert.NoError(t, Validate(LoginDraft{Email: " ada@example.com ", Password: "pw"}.Normalize()))

	err = Validate(RegisterDraft{Email: "ada@example.com", Password: "pw"})
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, []FieldError{{Field: "Display Name", Message: "is required"}}, []FieldError(errs))
}

func fieldsOf(errs Errors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}
