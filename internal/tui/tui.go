// Package tui is the interactive terminal front end: a router model that
// switches between the login, register, activity list and activity form
// screens, consulting the route guard on every navigation.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/myhealthapp/fitlog/internal/api"
	"github.com/myhealthapp/fitlog/internal/route"
	"github.com/myhealthapp/fitlog/pkg/models"
)

var (
	spinnerInterval       = 100 * time.Millisecond
	registerRedirectDelay = 2 * time.Second
)

// Backend is the part of the API client the screens call.
type Backend interface {
	Register(ctx context.Context, email, password, displayName string) error
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Logout() error

	ListActivities(ctx context.Context) ([]models.Activity, error)
	GetActivity(ctx context.Context, id models.ID) (*models.Activity, error)
	CreateActivity(ctx context.Context, payload models.ActivityPayload) (*models.Activity, error)
	UpdateActivity(ctx context.Context, id models.ID, payload models.ActivityPayload) (*models.Activity, error)
	UpdateActivityStatus(ctx context.Context, id models.ID, status models.Status) (*models.Activity, error)
	DeleteActivity(ctx context.Context, id models.ID) error
}

// Session is the read side of the session store.
type Session interface {
	Token() (string, bool)
	DisplayName() (string, bool)
}

// Options configures the TUI.
type Options struct {
	Context  context.Context
	Backend  Backend
	Session  Session
	Start    route.Route
	Location *time.Location
	Now      func() time.Time
}

// env is shared by every screen
type env struct {
	ctx     context.Context
	backend Backend
	loc     *time.Location
	now     func() time.Time
}

type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	Help() []key.Binding
	SetSize(width, height int)
}

type model struct {
	env     env
	session Session
	guard   route.Guard
	current route.Route
	screen  screen
	help    help.Model
	width   int
	height  int
	ready   bool
}

func initialModel(opts Options) model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := model{
		env: env{
			ctx:     opts.Context,
			backend: opts.Backend,
			loc:     opts.Location,
			now:     opts.Now,
		},
		session: opts.Session,
		guard:   route.NewGuard(opts.Session),
		help:    help.New(),
		width:   80,
		height:  24,
	}
	m.show(opts.Start)
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.screen.Init(), tickCmd())
}

// show resolves r through the guard and swaps in the matching screen.
func (m *model) show(r route.Route) tea.Cmd {
	decision := m.guard.Resolve(r)
	if decision.Redirected {
		log.Debug().
			Str("requested", r.String()).
			Str("route", decision.Route.String()).
			Msg("Navigation redirected")
	}

	m.current = decision.Route
	switch decision.Route.Name {
	case route.Login:
		m.screen = newLoginScreen(m.env)
	case route.Register:
		m.screen = newRegisterScreen(m.env)
	case route.Activities:
		m.screen = newActivitiesScreen(m.env)
	case route.ActivityNew:
		m.screen = newActivityFormScreen(m.env, "")
	case route.ActivityEdit:
		m.screen = newActivityFormScreen(m.env, decision.Route.ID)
	default:
		m.screen = newNotFoundScreen(decision.Route)
	}
	m.screen.SetSize(m.bodySize())
	return m.screen.Init()
}

func (m model) authenticated() bool {
	_, ok := m.session.Token()
	return ok
}

func (m model) bodySize() (int, int) {
	// header, blank line, footer
	height := m.height - 3
	if height < 1 {
		height = 1
	}
	return m.width, height
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.screen.SetSize(m.bodySize())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyLogout) && m.authenticated():
			if err := m.env.backend.Logout(); err != nil {
				log.Error().Err(err).Msg("Failed to clear session on logout")
			}
			log.Info().Msg("Logged out")
			return m, m.show(route.ToLogin)
		}

	case navigateMsg:
		return m, m.show(msg.To)

	case TickMsg:
		var cmd tea.Cmd
		m.screen, cmd = m.screen.Update(msg)
		return m, tea.Batch(cmd, tickCmd())
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	_, bodyHeight := m.bodySize()
	body := lipgloss.NewStyle().Height(bodyHeight).Render(m.screen.View())

	return fmt.Sprintf("%s\n%s\n%s", m.renderHeader(), body, m.renderFooter())
}

func (m model) renderHeader() string {
	header := titleStyle.Render("MyHealthApp")
	if !m.authenticated() {
		return header
	}
	if name, ok := m.session.DisplayName(); ok {
		header += " " + welcomeStyle.Render(fmt.Sprintf("Welcome, %s!", name))
	}
	return header
}

func (m model) renderFooter() string {
	bindings := m.screen.Help()
	if m.authenticated() {
		bindings = append(bindings, keyLogout)
	}
	bindings = append(bindings, keyQuit)
	return m.help.ShortHelpView(bindings)
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) > width {
			lines = append(lines, currentLine)
			currentLine = word
		} else {
			currentLine += " " + word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// ShowTUI runs the interactive front end until the user quits
func ShowTUI(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(
		initialModel(opts),
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)

	_, err := p.Run()
	return err
}
