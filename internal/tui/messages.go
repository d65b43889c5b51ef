package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/route"
	"github.com/myhealthapp/fitlog/pkg/models"
)

// refreshReason records why the activity list is being reloaded
type refreshReason int

const (
	reasonMount refreshReason = iota
	reasonStatusChanged
	reasonDeleted
	reasonManual
)

func (r refreshReason) String() string {
	switch r {
	case reasonMount:
		return "mount"
	case reasonStatusChanged:
		return "status-changed"
	case reasonDeleted:
		return "deleted"
	case reasonManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Message types for async operations
type (
	// navigateMsg asks the router to show another route
	navigateMsg struct {
		To route.Route
	}

	// refreshMsg asks the activity list to reload
	refreshMsg struct {
		Reason refreshReason
	}

	// loggedInMsg carries the result of a login request
	loggedInMsg struct {
		Response *api.LoginResponse
		Error    error
	}

	// registeredMsg carries the result of a registration request
	registeredMsg struct {
		Error error
	}

	// activitiesLoadedMsg contains the fetched activity list
	activitiesLoadedMsg struct {
		RequestID  string
		Activities []models.Activity
		Error      error
	}

	// statusUpdatedMsg carries the result of a status change
	statusUpdatedMsg struct {
		RequestID string
		ID        models.ID
		Error     error
	}

	// activityDeletedMsg carries the result of a delete
	activityDeletedMsg struct {
		RequestID string
		ID        models.ID
		Error     error
	}

	// activityFetchedMsg contains a single activity for the edit form
	activityFetchedMsg struct {
		ID       models.ID
		Activity *models.Activity
		Error    error
	}

	// activitySavedMsg carries the result of a create or update
	activitySavedMsg struct {
		RequestID string
		Error     error
	}

	// TickMsg is sent periodically for spinner animation
	TickMsg time.Time
)

// Commands for async operations

func navigate(to route.Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{To: to}
	}
}

func refresh(reason refreshReason) tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{Reason: reason}
	}
}

// loginCmd authenticates and stores the session
func loginCmd(ctx context.Context, backend Backend, email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := backend.Login(ctx, email, password)
		return loggedInMsg{Response: resp, Error: err}
	}
}

// registerCmd creates a new account
func registerCmd(ctx context.Context, backend Backend, email, password, displayName string) tea.Cmd {
	return func() tea.Msg {
		return registeredMsg{Error: backend.Register(ctx, email, password, displayName)}
	}
}

// loadActivitiesCmd fetches the activity list
func loadActivitiesCmd(ctx context.Context, backend Backend, requestID string) tea.Cmd {
	return func() tea.Msg {
		activities, err := backend.ListActivities(ctx)
		return activitiesLoadedMsg{
			RequestID:  requestID,
			Activities: activities,
			Error:      err,
		}
	}
}

// updateStatusCmd changes the status of a single activity
func updateStatusCmd(ctx context.Context, backend Backend, requestID string, id models.ID, status models.Status) tea.Cmd {
	return func() tea.Msg {
		_, err := backend.UpdateActivityStatus(ctx, id, status)
		return statusUpdatedMsg{RequestID: requestID, ID: id, Error: err}
	}
}

// deleteActivityCmd removes an activity
func deleteActivityCmd(ctx context.Context, backend Backend, requestID string, id models.ID) tea.Cmd {
	return func() tea.Msg {
		return activityDeletedMsg{
			RequestID: requestID,
			ID:        id,
			Error:     backend.DeleteActivity(ctx, id),
		}
	}
}

// fetchActivityCmd loads one activity into the edit form
func fetchActivityCmd(ctx context.Context, backend Backend, id models.ID) tea.Cmd {
	return func() tea.Msg {
		activity, err := backend.GetActivity(ctx, id)
		return activityFetchedMsg{ID: id, Activity: activity, Error: err}
	}
}

// saveActivityCmd creates a new activity, or replaces an existing one when id is set
func saveActivityCmd(ctx context.Context, backend Backend, requestID string, id models.ID, payload models.ActivityPayload) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == "" {
			_, err = backend.CreateActivity(ctx, payload)
		} else {
			_, err = backend.UpdateActivity(ctx, id, payload)
		}
		return activitySavedMsg{RequestID: requestID, Error: err}
	}
}

// tickCmd creates a ticker for spinner animation
func tickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
