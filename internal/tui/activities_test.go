package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/route"
	"github.com/myhealthapp/fitlog/pkg/models"
)

func listScreen(t *testing.T, m model) *activitiesScreen {
	t.Helper()
	s, ok := m.screen.(*activitiesScreen)
	require.True(t, ok, "expected the activity list, got %T", m.screen)
	return s
}

func TestEmptyListShowsEmptyState(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	m := start(t, backend, route.ToActivities)

	view := m.View()
	assert.Contains(t, view, emptyActivities)
	assert.NotContains(t, view, "Failed")
	assert.Equal(t, stateIdle, listScreen(t, m).state)
}

func TestListFetchErrorIsShownInline(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	backend.listErr = &api.GeneralError{Status: 401, Text: "Invalid token."}
	m := start(t, backend, route.ToActivities)

	view := m.View()
	assert.Contains(t, view, "Invalid token.")
	assert.NotContains(t, view, emptyActivities)
	assert.Equal(t, stateError, listScreen(t, m).state)
}

func TestListRendersRows(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivities)

	view := m.View()
	assert.Contains(t, view, "Recent Activities")
	assert.Contains(t, view, "Running")
	assert.Contains(t, view, "Yoga")
	// 2025-10-18 08:30 UTC in CEST
	assert.Contains(t, view, "2025-10-18 10:30")
	assert.Contains(t, view, "Page 1/1")
}

func TestUnconfirmedDeleteMakesNoCalls(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivities)
	before := listScreen(t, m).rows

	m = press(t, m, runes("d"))
	assert.Contains(t, m.View(), deletePrompt)

	m = press(t, m, runes("n"))
	assert.NotContains(t, m.View(), deletePrompt)
	assert.Zero(t, backend.count("delete"))
	assert.Equal(t, 1, backend.count("list"))
	assert.Equal(t, before, listScreen(t, m).rows)

	m = press(t, m, runes("d"), esc)
	assert.Zero(t, backend.count("delete"))
}

func TestConfirmedDeleteRefetches(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivities)

	m = press(t, m, down, runes("d"), runes("y"))

	assert.Equal(t, []models.ID{"2"}, backend.deleted)
	assert.Equal(t, 2, backend.count("list"))
	assert.Len(t, listScreen(t, m).rows, 1)
	assert.NotContains(t, m.View(), "Yoga")
}

func TestDeleteFailureRaisesAlert(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	backend.deleteErr = &api.GeneralError{Status: 500, Text: "Internal Server Error"}
	m := start(t, backend, route.ToActivities)

	m = press(t, m, runes("d"), runes("y"))

	assert.Contains(t, m.View(), "Error deleting activity: Internal Server Error")
	assert.Equal(t, 1, backend.count("list"))
	assert.Len(t, listScreen(t, m).rows, 2)

	// the alert blocks other actions until dismissed
	m = press(t, m, runes("n"))
	assert.Equal(t, route.Activities, m.current.Name)

	m = press(t, m, enter)
	assert.NotContains(t, m.View(), "Error deleting activity")
}

func TestStatusActionsFollowCurrentStatus(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivities)

	// first row is already Completed
	m = press(t, m, runes("c"))
	assert.Zero(t, backend.count("status"))

	m = press(t, m, down, runes("c"))
	assert.Equal(t, []statusChange{{ID: "2", Status: models.StatusCompleted}}, backend.statusChanges)
	assert.Equal(t, 2, backend.count("list"))

	m = press(t, m, runes("x"))
	assert.Equal(t, statusChange{ID: "2", Status: models.StatusCancelled}, backend.statusChanges[1])
	assert.Equal(t, 3, backend.count("list"))
	assert.Equal(t, models.StatusCancelled, listScreen(t, m).rows[1].Status)
}

func TestStatusFailureRaisesAlert(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	backend.statusErr = &api.NetworkError{Err: assert.AnError}
	m := start(t, backend, route.ToActivities)

	m = press(t, m, down, runes("c"))

	assert.Contains(t, m.View(), "Error updating status: "+assert.AnError.Error())
	assert.Equal(t, 1, backend.count("list"))
}

func TestEditKeyOpensForm(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivities)

	m = press(t, m, down, enter)

	assert.Equal(t, route.ToActivity("2"), m.current)
	assert.Equal(t, 1, backend.count("get"))
}

func TestNewKeyOpensCreateForm(t *testing.T) {
	m := start(t, newFakeBackend(newTestSession(t, true)), route.ToActivities)

	m = press(t, m, runes("n"))

	assert.Equal(t, route.ActivityNew, m.current.Name)
	assert.Contains(t, m.View(), "Log New Activity")
}

func TestManualRefreshRefetches(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivities)

	backend.activities = backend.activities[:1]
	m = press(t, m, runes("r"))

	assert.Equal(t, 2, backend.count("list"))
	assert.Len(t, listScreen(t, m).rows, 1)
}

func TestSortCyclesColumns(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true), sampleActivities()...)
	m := start(t, backend, route.ToActivities)

	// Activity
	m = press(t, m, runes("s"))
	s := listScreen(t, m)
	assert.Equal(t, sortActivity, s.sortBy)
	assert.Equal(t, models.Running, s.rows[0].ActivityType)

	m = press(t, m, runes("S"))
	s = listScreen(t, m)
	assert.Equal(t, models.Yoga, s.rows[0].ActivityType)

	// Date/Time, still descending
	m = press(t, m, runes("s"))
	s = listScreen(t, m)
	assert.Equal(t, sortDateTime, s.sortBy)
	assert.Equal(t, models.ID("2"), s.rows[0].ID)
	assert.Contains(t, m.View(), "sorted by Date/Time ↓")
}

func TestSupersededFetchIsDropped(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	s := newActivitiesScreen(env{backend: backend, loc: testLoc})

	s.load(reasonMount)
	first := s.requests.latest[fetchRequest]
	s.load(reasonManual)
	second := s.requests.latest[fetchRequest]

	s.Update(activitiesLoadedMsg{RequestID: second, Activities: sampleActivities()[:1]})
	s.Update(activitiesLoadedMsg{RequestID: first, Activities: sampleActivities()})

	assert.Equal(t, stateIdle, s.state)
	assert.Len(t, s.rows, 1)
}

func TestRefreshReasons(t *testing.T) {
	assert.Equal(t, "mount", reasonMount.String())
	assert.Equal(t, "status-changed", reasonStatusChanged.String())
	assert.Equal(t, "deleted", reasonDeleted.String())
	assert.Equal(t, "manual", reasonManual.String())
}

func TestAlertShowsWhileListReloads(t *testing.T) {
	backend := newFakeBackend(newTestSession(t, true))
	s := newActivitiesScreen(env{backend: backend, loc: testLoc})
	s.activities = sampleActivities()
	s.resort()

	action := s.requests.begin(actionRequest)
	s.load(reasonManual)
	require.Equal(t, stateLoading, s.state)

	s.Update(statusUpdatedMsg{RequestID: action, ID: "2", Error: &api.GeneralError{Status: 500, Text: "boom"}})

	assert.Contains(t, s.View(), "Error updating status: boom")
	assert.Equal(t, []string{"enter"}, s.Help()[0].Keys()[:1])

	s.Update(enter)
	assert.NotContains(t, s.View(), "Error updating status")
}
