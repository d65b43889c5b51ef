package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/forms"
	"github.com/myhealthapp/fitlog/internal/route"
)

const (
	loginEmail = iota
	loginPassword
)

type loginScreen struct {
	env       env
	fields    fieldSet
	state     loadingState
	err       string
	indicator *LoadingIndicator
	width     int
}

func newLoginScreen(e env) *loginScreen {
	return &loginScreen{
		env: e,
		fields: newFieldSet(
			newTextInput("you@example.com", 254),
			newPasswordInput("password"),
		),
		indicator: NewLoadingIndicator("Logging In..."),
	}
}

func (s *loginScreen) Init() tea.Cmd { return nil }

func (s *loginScreen) SetSize(width, _ int) { s.width = width }

func (s *loginScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if s.state == stateSubmitting {
			s.indicator.Tick()
		}
		return s, nil

	case loggedInMsg:
		if s.state != stateSubmitting {
			return s, nil
		}
		s.state = stateIdle
		if msg.Error != nil {
			log.Warn().Err(msg.Error).Msg("Login failed")
			s.err = api.Describe(msg.Error, "Login failed. Check credentials.")
			return s, nil
		}
		log.Info().Str("display_name", msg.Response.DisplayName).Msg("Logged in")
		return s, navigate(route.ToActivities)

	case tea.KeyMsg:
		if s.state == stateSubmitting {
			return s, nil
		}
		switch {
		case key.Matches(msg, keyRegister):
			return s, navigate(route.ToRegister)
		case key.Matches(msg, keySubmit):
			return s, s.submit()
		case key.Matches(msg, keyNext):
			s.fields.move(1)
			return s, nil
		case key.Matches(msg, keyPrev):
			s.fields.move(-1)
			return s, nil
		}
	}

	return s, s.fields.update(msg)
}

func (s *loginScreen) submit() tea.Cmd {
	draft := forms.LoginDraft{
		Email:    s.fields.value(loginEmail),
		Password: s.fields.value(loginPassword),
	}.Normalize()

	if err := forms.Validate(draft); err != nil {
		s.err = err.Error()
		return nil
	}

	s.err = ""
	s.state = stateSubmitting
	return loginCmd(s.env.ctx, s.env.backend, draft.Email, draft.Password)
}

func (s *loginScreen) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Login") + "\n\n")
	b.WriteString(s.fields.view(loginEmail, "Email") + "\n\n")
	b.WriteString(s.fields.view(loginPassword, "Password") + "\n\n")

	if s.state == stateSubmitting {
		b.WriteString(s.indicator.View())
	} else {
		b.WriteString(buttonStyle.Render("Login"))
	}
	b.WriteString("\n")

	if s.err != "" {
		for _, line := range wrapText(s.err, s.width-2) {
			b.WriteString("\n" + errorStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + dimStyle.Render("Don't have an account? Press ctrl+r to register."))
	return b.String()
}

func (s *loginScreen) Help() []key.Binding {
	return []key.Binding{keyNext, keySubmit, keyRegister}
}
