package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/route"
	"github.com/myhealthapp/fitlog/pkg/models"
)

func formScreen(t *testing.T, m model) *activityFormScreen {
	t.Helper()
	s, ok := m.screen.(*activityFormScreen)
	require.True(t, ok, "expected the activity form, got %T", m.screen)
	return s
}

func TestCreateSubmitsOnePayload(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	m := start(t, backend, route.ToActivityNew)
	assert.Contains(t, m.View(), "Save Activity")

	m = press(t, m, enter)

	require.Len(t, backend.created, 1)
	assert.Equal(t, 1, backend.count("create"))
	payload := backend.created[0]
	assert.Equal(t, models.ActivityPayload{
		ActivityType: models.Running,
		DateTime:     "2025-10-19T08:30:00.000Z",
		Duration:     "00:30:00",
		Status:       models.StatusCompleted,
	}, payload)
	_, err := time.Parse(time.RFC3339, payload.DateTime)
	assert.NoError(t, err)

	assert.Equal(t, route.Activities, m.current.Name)
}

func TestCreateWithEditedFields(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	m := start(t, backend, route.ToActivityNew)

	m = press(t, m,
		right, // Cycling
		tab, tab,
		tea.KeyMsg{Type: tea.KeyCtrlU}, runes("00:45:00"),
		tab, right, // Pending
		tab, runes("hill repeats"),
		enter,
	)

	require.Len(t, backend.created, 1)
	payload := backend.created[0]
	assert.Equal(t, models.Cycling, payload.ActivityType)
	assert.Equal(t, "00:45:00", payload.Duration)
	assert.Equal(t, models.StatusPending, payload.Status)
	assert.Equal(t, "hill repeats", payload.Remarks)
}

func TestInvalidDraftIsNotSubmitted(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	m := start(t, backend, route.ToActivityNew)

	m = press(t, m, tab, tab, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("30 min"), enter)

	assert.Zero(t, backend.count("create"))
	assert.Equal(t, route.ActivityNew, m.current.Name)
	assert.Contains(t, m.View(), "Duration: use the format HH:MM:SS (e.g., 00:30:00)")
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	backend.saveErr = &api.ValidationError{Status: 400, Fields: []api.FieldError{
		{Field: "duration", Messages: []string{"Duration exceeds 24 hours."}},
	}}
	m := start(t, backend, route.ToActivityNew)

	m = press(t, m, right, enter)

	assert.Equal(t, route.ActivityNew, m.current.Name)
	s := formScreen(t, m)
	assert.Equal(t, stateIdle, s.state)
	assert.Equal(t, models.Cycling, s.draft.ActivityType)
	assert.Contains(t, m.View(), "Duration exceeds 24 hours.")

	// the form stays usable after a failure
	backend.saveErr = nil
	m = press(t, m, enter)
	require.Len(t, backend.created, 1)
	assert.Equal(t, models.Cycling, backend.created[0].ActivityType)
}

func TestSaveFailureFallback(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	backend.saveErr = &api.GeneralError{Status: 500}
	m := start(t, backend, route.ToActivityNew)

	m = press(t, m, enter)

	assert.Contains(t, m.View(), "Failed to log activity.")
}

func TestEditPrefillsAndUpdates(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivity("2"))

	view := m.View()
	assert.Contains(t, view, "Edit Activity #2")
	assert.Contains(t, view, "Update Activity")

	s := formScreen(t, m)
	assert.Equal(t, "2025-10-18T10:30", s.dateTime.Value())
	assert.Equal(t, "morning flow", s.remarks.Value())

	m = press(t, m, enter)

	assert.Zero(t, backend.count("create"))
	assert.Equal(t, models.ActivityPayload{
		ActivityType: models.Yoga,
		DateTime:     "2025-10-18T08:30:00.000Z",
		Duration:     "01:00:00",
		Status:       models.StatusPending,
		Remarks:      "morning flow",
	}, backend.updated["2"])
	assert.Equal(t, route.Activities, m.current.Name)
}

func TestEditKeepsLongMultilineRemarks(t *testing.T) {
	remarks := strings.Repeat("x", 600) + "\nline two\n\tindented"
	activities := sampleActivities()
	activities[1].Remarks = remarks
	backend := newFakeBackend(newTestSession(t, true), activities...)
	m := start(t, backend, route.ToActivity("2"))

	// only the status changes
	m = press(t, m, tab, tab, tab, right, enter)

	payload, ok := backend.updated["2"]
	require.True(t, ok)
	assert.Equal(t, models.StatusCancelled, payload.Status)
	assert.Equal(t, remarks, payload.Remarks)
}

func TestRemarksAcceptNewlines(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	m := start(t, backend, route.ToActivityNew)

	m = press(t, m,
		tab, tab, tab, tab,
		runes("warm up"), tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, runes("5k tempo"),
		enter,
	)

	require.Len(t, backend.created, 1)
	assert.Equal(t, "warm up\n5k tempo", backend.created[0].Remarks)
}

func TestEditFetchFailureShowsDetail(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	backend.getErr = &api.GeneralError{Status: 404, Text: "Not found"}
	m := start(t, backend, route.ToActivity("42"))

	view := m.View()
	assert.Contains(t, view, "Error: Not found")
	assert.NotContains(t, view, "Update Activity")
	assert.Equal(t, stateError, formScreen(t, m).state)

	// terminal until the user leaves
	m = press(t, m, enter)
	assert.Zero(t, backend.count("update"))
	m = press(t, m, esc)
	assert.Equal(t, route.Activities, m.current.Name)
}

func TestEditFetchFailureWithoutDetail(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	backend.getErr = &api.NetworkError{Err: assert.AnError}
	m := start(t, backend, route.ToActivity("42"))

	assert.Contains(t, m.View(), "Error: Failed to fetch activity details.")
}

func TestFormEscapeReturnsToList(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	m := start(t, backend, route.ToActivityNew)

	m = press(t, m, esc)

	assert.Equal(t, route.Activities, m.current.Name)
	assert.Zero(t, backend.count("create"))
}

func TestSubmitIgnoredWhileSaving(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	m := start(t, backend, route.ToActivityNew)

	next, save := m.Update(enter)
	require.NotNil(t, save)
	assert.Contains(t, next.View(), "Saving...")

	next, again := next.Update(enter)
	assert.Nil(t, again)

	m = drive(t, next, save)
	assert.Equal(t, 1, backend.count("create"))
	assert.Equal(t, route.Activities, m.current.Name)
}
