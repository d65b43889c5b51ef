package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/route"
	"github.com/myhealthapp/fitlog/pkg/models"
)

const (
	fetchRequest  = "fetch"
	actionRequest = "action"

	rowsPerPage = 10

	emptyActivities = "No activities logged yet. Start by logging one!"
	deletePrompt    = "Are you sure you want to delete this activity?"
)

type sortColumn int

const (
	sortNone sortColumn = iota
	sortActivity
	sortDateTime
	sortDuration
	sortStatus
	sortColumnCount
)

func (c sortColumn) String() string {
	switch c {
	case sortActivity:
		return "Activity"
	case sortDateTime:
		return "Date/Time"
	case sortDuration:
		return "Duration"
	case sortStatus:
		return "Status"
	default:
		return "as logged"
	}
}

func (c sortColumn) less(a, b models.Activity) bool {
	switch c {
	case sortActivity:
		return a.ActivityType < b.ActivityType
	case sortDateTime:
		return a.DateTime.Before(b.DateTime)
	case sortDuration:
		return a.Duration < b.Duration
	case sortStatus:
		return a.Status < b.Status
	default:
		return false
	}
}

type activitiesScreen struct {
	env env

	activities []models.Activity
	rows       []models.Activity
	state      loadingState
	err        string

	cursor     int
	sortBy     sortColumn
	descending bool
	pages      paginator.Model

	confirming *models.Activity
	alert      string

	requests  requestTracker
	indicator *LoadingIndicator
	width     int
	height    int
}

func newActivitiesScreen(e env) *activitiesScreen {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = rowsPerPage

	return &activitiesScreen{
		env:       e,
		state:     stateLoading,
		pages:     p,
		requests:  newRequestTracker(),
		indicator: NewLoadingIndicator("Loading activities..."),
	}
}

func (s *activitiesScreen) Init() tea.Cmd {
	return refresh(reasonMount)
}

func (s *activitiesScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *activitiesScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if s.state == stateLoading || s.requests.busy(actionRequest) {
			s.indicator.Tick()
		}
		return s, nil

	case refreshMsg:
		return s, s.load(msg.Reason)

	case activitiesLoadedMsg:
		if !s.requests.finish(fetchRequest, msg.RequestID) {
			log.Debug().Str("request_id", msg.RequestID).Msg("Dropping superseded activity list")
			return s, nil
		}
		if msg.Error != nil {
			log.Error().Err(msg.Error).Msg("Failed to fetch activities")
			s.state = stateError
			s.err = api.Describe(msg.Error, "Failed to fetch activities. Check your token or network.")
			return s, nil
		}
		s.state = stateIdle
		s.err = ""
		s.activities = msg.Activities
		s.resort()
		return s, nil

	case statusUpdatedMsg:
		if !s.requests.finish(actionRequest, msg.RequestID) {
			return s, nil
		}
		if msg.Error != nil {
			log.Error().Err(msg.Error).Str("id", msg.ID.String()).Msg("Failed to update status")
			s.alert = "Error updating status: " + api.Describe(msg.Error, "request failed")
			return s, nil
		}
		return s, refresh(reasonStatusChanged)

	case activityDeletedMsg:
		if !s.requests.finish(actionRequest, msg.RequestID) {
			return s, nil
		}
		if msg.Error != nil {
			log.Error().Err(msg.Error).Str("id", msg.ID.String()).Msg("Failed to delete activity")
			s.alert = "Error deleting activity: " + api.Describe(msg.Error, "request failed")
			return s, nil
		}
		return s, refresh(reasonDeleted)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

// load issues a fetch; only the most recently issued one is applied.
func (s *activitiesScreen) load(reason refreshReason) tea.Cmd {
	id := s.requests.begin(fetchRequest)
	s.state = stateLoading
	s.err = ""

	log.Debug().
		Str("reason", reason.String()).
		Str("request_id", id).
		Msg("Loading activities")

	return loadActivitiesCmd(s.env.ctx, s.env.backend, id)
}

func (s *activitiesScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	if s.alert != "" {
		if key.Matches(msg, keyDismiss) {
			s.alert = ""
		}
		return s, nil
	}

	if s.confirming != nil {
		switch {
		case key.Matches(msg, keyYes):
			target := *s.confirming
			s.confirming = nil
			id := s.requests.begin(actionRequest)
			s.indicator.SetMessage("Deleting activity...")
			log.Info().Str("id", target.ID.String()).Msg("Deleting activity")
			return s, deleteActivityCmd(s.env.ctx, s.env.backend, id, target.ID)
		case key.Matches(msg, keyNo):
			s.confirming = nil
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, keyExit):
		return s, tea.Quit
	case key.Matches(msg, keyNew):
		return s, navigate(route.ToActivityNew)
	case key.Matches(msg, keyRefresh):
		return s, refresh(reasonManual)
	case key.Matches(msg, keySort):
		s.sortBy = (s.sortBy + 1) % sortColumnCount
		s.resort()
		return s, nil
	case key.Matches(msg, keySortRev):
		s.descending = !s.descending
		s.resort()
		return s, nil
	case key.Matches(msg, keyUp):
		s.moveCursor(-1)
		return s, nil
	case key.Matches(msg, keyDown):
		s.moveCursor(1)
		return s, nil
	case key.Matches(msg, keyPageNext):
		s.moveCursor(rowsPerPage)
		return s, nil
	case key.Matches(msg, keyPagePrev):
		s.moveCursor(-rowsPerPage)
		return s, nil
	}

	selected, ok := s.selected()
	if !ok || s.state != stateIdle {
		return s, nil
	}

	if key.Matches(msg, keyEdit) {
		return s, navigate(route.ToActivity(selected.ID))
	}

	// one status change or delete at a time
	if s.requests.busy(actionRequest) {
		return s, nil
	}

	switch {
	case key.Matches(msg, keyComplete) && selected.Status != models.StatusCompleted:
		return s, s.setStatus(selected, models.StatusCompleted)
	case key.Matches(msg, keyCancel) && selected.Status != models.StatusCancelled:
		return s, s.setStatus(selected, models.StatusCancelled)
	case key.Matches(msg, keyDelete):
		s.confirming = &selected
	}
	return s, nil
}

func (s *activitiesScreen) setStatus(a models.Activity, status models.Status) tea.Cmd {
	id := s.requests.begin(actionRequest)
	s.indicator.SetMessage(fmt.Sprintf("Marking %s...", status))
	log.Info().
		Str("id", a.ID.String()).
		Str("status", string(status)).
		Msg("Updating activity status")
	return updateStatusCmd(s.env.ctx, s.env.backend, id, a.ID, status)
}

func (s *activitiesScreen) selected() (models.Activity, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return models.Activity{}, false
	}
	return s.rows[s.cursor], true
}

func (s *activitiesScreen) moveCursor(step int) {
	if len(s.rows) == 0 {
		return
	}
	s.cursor += step
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.rows) {
		s.cursor = len(s.rows) - 1
	}
	s.pages.Page = s.cursor / rowsPerPage
}

// resort rebuilds the display rows from the fetched activities.
func (s *activitiesScreen) resort() {
	rows := make([]models.Activity, len(s.activities))
	copy(rows, s.activities)

	if s.sortBy != sortNone {
		sort.SliceStable(rows, func(i, j int) bool {
			if s.descending {
				return s.sortBy.less(rows[j], rows[i])
			}
			return s.sortBy.less(rows[i], rows[j])
		})
	} else if s.descending {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	s.rows = rows
	s.pages.SetTotalPages(len(rows))
	s.moveCursor(0)
	if len(rows) == 0 {
		s.cursor = 0
		s.pages.Page = 0
	}
}

func (s *activitiesScreen) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("My Fitness Dashboard") + "  " + dimStyle.Render("n: + Log New Activity") + "\n\n")

	switch {
	case s.state == stateLoading:
		b.WriteString(s.indicator.View() + "\n")
	case s.state == stateError:
		for _, line := range wrapText(s.err, s.width-2) {
			b.WriteString(errorStyle.Render(line) + "\n")
		}
	case len(s.rows) == 0:
		b.WriteString(emptyStyle.Render(emptyActivities) + "\n")
	default:
		b.WriteString(headingStyle.Render("Recent Activities") + "\n")
		b.WriteString(s.renderTable())
		if s.requests.busy(actionRequest) {
			b.WriteString("\n" + s.indicator.View() + "\n")
		}
	}

	// prompts render in every state
	if s.confirming != nil {
		b.WriteString("\n" + confirmStyle.Render(deletePrompt+"\n\n"+dimStyle.Render("y: delete • n: keep")) + "\n")
	}
	if s.alert != "" {
		text := strings.Join(wrapText(s.alert, s.width-8), "\n")
		b.WriteString("\n" + alertStyle.Render(errorStyle.Render(text)+"\n\n"+dimStyle.Render("enter: OK")) + "\n")
	}
	return b.String()
}

func (s *activitiesScreen) renderTable() string {
	var b strings.Builder

	sortLabel := s.sortBy.String()
	if s.descending {
		sortLabel += " ↓"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-14s %-20s %-9s %-10s %s", "Activity", "Date/Time", "Duration", "Status", "Remarks")) + "\n")

	start, end := s.pages.GetSliceBounds(len(s.rows))
	for i := start; i < end; i++ {
		a := s.rows[i]
		prefix := "  "
		style := rowStyle
		if i == s.cursor {
			prefix = "> "
			style = selectedRowStyle
		}

		line := fmt.Sprintf("%-14s %-20s %-9s ",
			a.ActivityType,
			a.DateTime.In(s.env.loc).Format("2006-01-02 15:04"),
			a.Duration)
		b.WriteString(style.Render(prefix+line))
		b.WriteString(statusStyle(a.Status).Render(fmt.Sprintf("%-10s", a.Status)))
		b.WriteString(" " + dimStyle.Render(truncate(a.Remarks, 30)) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("Page %s • sorted by %s", s.pages.View(), sortLabel)) + "\n")
	return b.String()
}

func (s *activitiesScreen) Help() []key.Binding {
	if s.alert != "" {
		return []key.Binding{keyDismiss}
	}
	if s.confirming != nil {
		return []key.Binding{keyYes, keyNo}
	}

	bindings := []key.Binding{keyUp, keyDown, keyNew, keyEdit}
	if selected, ok := s.selected(); ok {
		if selected.Status != models.StatusCompleted {
			bindings = append(bindings, keyComplete)
		}
		if selected.Status != models.StatusCancelled {
			bindings = append(bindings, keyCancel)
		}
		bindings = append(bindings, keyDelete)
	}
	return append(bindings, keyRefresh, keySort, keyExit)
}
