package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/forms"
	"github.com/myhealthapp/fitlog/internal/route"
	"github.com/myhealthapp/fitlog/pkg/models"
)

const saveRequest = "save"

type formField int

const (
	fieldActivityType formField = iota
	fieldDateTime
	fieldDuration
	fieldStatus
	fieldRemarks
	fieldCount
)

func (f formField) selectable() bool {
	return f == fieldActivityType || f == fieldStatus
}

// activityFormScreen creates a new activity, or edits one when id is set.
//
// States: stateLoading while the activity is fetched, stateIdle while the
// user edits, stateSubmitting while the save is in flight, and stateError
// when the fetch failed. stateError is terminal; only esc leaves it.
type activityFormScreen struct {
	env   env
	id    models.ID
	state loadingState
	draft forms.ActivityDraft
	err   string

	dateTime textinput.Model
	duration textinput.Model
	remarks  textarea.Model
	focus    formField

	// shown is the remarks text as last filled in; the draft keeps its
	// remarks untouched until the user edits the field.
	shown string

	requests  requestTracker
	indicator *LoadingIndicator
	width     int
}

func newActivityFormScreen(e env, id models.ID) *activityFormScreen {
	s := &activityFormScreen{
		env:       e,
		id:        id,
		dateTime:  newTextInput("YYYY-MM-DDThh:mm", 16),
		duration:  newTextInput("HH:MM:SS", 8),
		remarks:   newTextArea("How did it go?"),
		requests:  newRequestTracker(),
		indicator: NewLoadingIndicator("Loading activity details..."),
	}

	if id == "" {
		s.draft = forms.NewActivityDraft(e.now(), e.loc)
		s.fill()
	} else {
		s.state = stateLoading
	}
	return s
}

func (s *activityFormScreen) Init() tea.Cmd {
	if s.id == "" {
		return nil
	}
	return fetchActivityCmd(s.env.ctx, s.env.backend, s.id)
}

func (s *activityFormScreen) SetSize(width, _ int) {
	s.width = width
	s.remarks.SetWidth(max(width-4, 20))
}

func (s *activityFormScreen) editing() bool { return s.id != "" }

func (s *activityFormScreen) title() string {
	if s.editing() {
		return fmt.Sprintf("Edit Activity #%s", s.id)
	}
	return "Log New Activity"
}

// fill copies the draft into the text inputs.
func (s *activityFormScreen) fill() {
	s.dateTime.SetValue(s.draft.DateTime)
	s.duration.SetValue(s.draft.Duration)
	s.remarks.SetValue(s.draft.Remarks)
	s.shown = s.remarks.Value()
	s.setFocus(fieldActivityType)
}

// read copies the text inputs back into the draft.
func (s *activityFormScreen) read() {
	s.draft.DateTime = strings.TrimSpace(s.dateTime.Value())
	s.draft.Duration = strings.TrimSpace(s.duration.Value())
	if v := s.remarks.Value(); v != s.shown {
		s.draft.Remarks = v
		s.shown = v
	}
}

func (s *activityFormScreen) input(f formField) *textinput.Model {
	switch f {
	case fieldDateTime:
		return &s.dateTime
	case fieldDuration:
		return &s.duration
	default:
		return nil
	}
}

func (s *activityFormScreen) setFocus(f formField) {
	if in := s.input(s.focus); in != nil {
		in.Blur()
	}
	s.remarks.Blur()
	s.focus = f
	if in := s.input(s.focus); in != nil {
		in.Focus()
	}
	if s.focus == fieldRemarks {
		s.remarks.Focus()
	}
}

func (s *activityFormScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if s.state == stateLoading || s.state == stateSubmitting {
			s.indicator.Tick()
		}
		return s, nil

	case activityFetchedMsg:
		if msg.ID != s.id || s.state != stateLoading {
			return s, nil
		}
		if msg.Error != nil {
			log.Error().Err(msg.Error).Str("id", s.id.String()).Msg("Failed to fetch activity")
			s.state = stateError
			s.err = fetchFailure(msg.Error)
			return s, nil
		}
		s.draft = forms.DraftFromActivity(*msg.Activity, s.env.loc)
		s.draft.ID = s.id
		s.state = stateIdle
		s.fill()
		return s, nil

	case activitySavedMsg:
		if !s.requests.finish(saveRequest, msg.RequestID) {
			return s, nil
		}
		s.state = stateIdle
		if msg.Error != nil {
			log.Error().Err(msg.Error).Str("id", s.id.String()).Msg("Failed to save activity")
			verb := "log"
			if s.editing() {
				verb = "update"
			}
			s.err = api.Describe(msg.Error, fmt.Sprintf("Failed to %s activity.", verb))
			return s, nil
		}
		log.Info().Str("id", s.id.String()).Msg("Activity saved")
		return s, navigate(route.ToActivities)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *activityFormScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch s.state {
	case stateSubmitting:
		return s, nil
	case stateLoading, stateError:
		if key.Matches(msg, keyBack) {
			return s, navigate(route.ToActivities)
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, keyBack):
		return s, navigate(route.ToActivities)
	case key.Matches(msg, keySubmit):
		return s, s.submit()
	case key.Matches(msg, keyNext):
		s.setFocus((s.focus + 1) % fieldCount)
		return s, nil
	case key.Matches(msg, keyPrev):
		s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		return s, nil
	}

	if s.focus.selectable() {
		step := 0
		switch {
		case key.Matches(msg, keyCycleL):
			step = -1
		case key.Matches(msg, keyCycleR):
			step = 1
		}
		if s.focus == fieldActivityType {
			s.draft.CycleActivityType(step)
		} else {
			s.draft.CycleStatus(step)
		}
		return s, nil
	}

	var cmd tea.Cmd
	if s.focus == fieldRemarks {
		s.remarks, cmd = s.remarks.Update(msg)
		return s, cmd
	}
	in := s.input(s.focus)
	*in, cmd = in.Update(msg)
	return s, cmd
}

func (s *activityFormScreen) submit() tea.Cmd {
	s.read()
	payload, err := s.draft.Payload(s.env.loc)
	if err != nil {
		s.err = err.Error()
		return nil
	}

	s.err = ""
	s.state = stateSubmitting
	if s.editing() {
		s.indicator.SetMessage("Updating...")
	} else {
		s.indicator.SetMessage("Saving...")
	}

	id := s.requests.begin(saveRequest)
	log.Debug().Str("draft", s.draft.String()).Str("request_id", id).Msg("Saving activity")
	return saveActivityCmd(s.env.ctx, s.env.backend, id, s.id, payload)
}

// fetchFailure shows the backend's detail when it sent one.
func fetchFailure(err error) string {
	var general *api.GeneralError
	if errors.As(err, &general) && general.Text != "" {
		return general.Text
	}
	return "Failed to fetch activity details."
}

func (s *activityFormScreen) View() string {
	switch s.state {
	case stateLoading:
		return s.indicator.View()
	case stateError:
		var b strings.Builder
		for _, line := range wrapText("Error: "+s.err, s.width-2) {
			b.WriteString(errorStyle.Render(line) + "\n")
		}
		b.WriteString("\n" + dimStyle.Render("esc: back to activities"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(s.title()) + "\n\n")
	b.WriteString(s.selectView(fieldActivityType, "Activity Type", string(s.draft.ActivityType)) + "\n\n")
	b.WriteString(s.inputView(fieldDateTime, "Date and Time") + "\n\n")
	b.WriteString(s.inputView(fieldDuration, "Duration (HH:MM:SS)") + "\n\n")
	b.WriteString(s.selectView(fieldStatus, "Status", string(s.draft.Status)) + "\n\n")
	b.WriteString(s.inputView(fieldRemarks, "Remarks (optional)") + "\n\n")

	if s.state == stateSubmitting {
		b.WriteString(s.indicator.View())
	} else if s.editing() {
		b.WriteString(buttonStyle.Render("Update Activity"))
	} else {
		b.WriteString(buttonStyle.Render("Save Activity"))
	}
	b.WriteString("\n")

	if s.err != "" {
		for _, line := range wrapText(s.err, s.width-2) {
			b.WriteString("\n" + errorStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *activityFormScreen) label(f formField, text string) string {
	if f == s.focus {
		return focusedLabelStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (s *activityFormScreen) selectView(f formField, label, value string) string {
	option := "  " + value
	if f == s.focus {
		option = "‹ " + focusedLabelStyle.Render(value) + " ›"
	}
	return s.label(f, label) + "\n" + option
}

func (s *activityFormScreen) inputView(f formField, label string) string {
	if f == fieldRemarks {
		return s.label(f, label) + "\n" + s.remarks.View()
	}
	return s.label(f, label) + "\n" + s.input(f).View()
}

func (s *activityFormScreen) Help() []key.Binding {
	switch s.state {
	case stateLoading, stateError:
		return []key.Binding{keyBack}
	case stateSubmitting:
		return nil
	}
	bindings := []key.Binding{keyNext, keyPrev}
	if s.focus.selectable() {
		bindings = append(bindings, keyCycleL)
	}
	if s.focus == fieldRemarks {
		bindings = append(bindings, keyNewline)
	}
	return append(bindings, keySubmit, keyBack)
}
