package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/forms"
	"github.com/myhealthapp/fitlog/internal/route"
)

const (
	registerEmail = iota
	registerDisplayName
	registerPassword
)

const registeredNotice = "Registration successful! Redirecting to login..."

type registerScreen struct {
	env       env
	fields    fieldSet
	state     loadingState
	err       string
	done      bool
	indicator *LoadingIndicator
	width     int
}

func newRegisterScreen(e env) *registerScreen {
	return &registerScreen{
		env: e,
		fields: newFieldSet(
			newTextInput("you@example.com", 254),
			newTextInput("How should we greet you?", 64),
			newPasswordInput("password"),
		),
		indicator: NewLoadingIndicator("Registering..."),
	}
}

func (s *registerScreen) Init() tea.Cmd { return nil }

func (s *registerScreen) SetSize(width, _ int) { s.width = width }

func (s *registerScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if s.state == stateSubmitting {
			s.indicator.Tick()
		}
		return s, nil

	case registeredMsg:
		if s.state != stateSubmitting {
			return s, nil
		}
		s.state = stateIdle
		if msg.Error != nil {
			log.Warn().Err(msg.Error).Msg("Registration failed")
			s.err = registrationFailure(msg.Error)
			return s, nil
		}
		log.Info().Msg("Registered new account")
		s.done = true
		return s, tea.Tick(registerRedirectDelay, func(time.Time) tea.Msg {
			return navigateMsg{To: route.ToLogin}
		})

	case tea.KeyMsg:
		if key.Matches(msg, keyBack) {
			return s, navigate(route.ToLogin)
		}
		if s.state == stateSubmitting || s.done {
			return s, nil
		}
		switch {
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

func (s *registerScreen) submit() tea.Cmd {
	draft := forms.RegisterDraft{
		Email:       s.fields.value(registerEmail),
		DisplayName: s.fields.value(registerDisplayName),
		Password:    s.fields.value(registerPassword),
	}.Normalize()

	if err := forms.Validate(draft); err != nil {
		s.err = err.Error()
		return nil
	}

	s.err = ""
	s.state = stateSubmitting
	return registerCmd(s.env.ctx, s.env.backend, draft.Email, draft.Password, draft.DisplayName)
}

// registrationFailure picks the message for a rejected registration: the
// first rejected field in email, password, display name order, then the
// backend's detail, then a generic line.
func registrationFailure(err error) string {
	if msg, ok := api.FieldMessage(err,
		[2]string{"email", "Email"},
		[2]string{"password", "Password"},
		[2]string{"display_name", "Display Name"},
	); ok {
		return msg
	}

	var general *api.GeneralError
	if errors.As(err, &general) && general.Text != "" {
		return general.Text
	}
	return "Registration failed. Please try again."
}

func (s *registerScreen) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Register") + "\n\n")

	if s.done {
		b.WriteString(successStyle.Render(registeredNotice))
		return b.String()
	}

	b.WriteString(s.fields.view(registerEmail, "Email") + "\n\n")
	b.WriteString(s.fields.view(registerDisplayName, "Display Name") + "\n\n")
	b.WriteString(s.fields.view(registerPassword, "Password") + "\n\n")

	if s.state == stateSubmitting {
		b.WriteString(s.indicator.View())
	} else {
		b.WriteString(buttonStyle.Render("Register"))
	}
	b.WriteString("\n")

	if s.err != "" {
		for _, line := range wrapText(s.err, s.width-2) {
			b.WriteString("\n" + errorStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + dimStyle.Render("Already registered? Press esc to log in."))
	return b.String()
}

func (s *registerScreen) Help() []key.Binding {
	return []key.Binding{keyNext, keySubmit, keyBack}
}
