package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/myhealthapp/fitlog/internal/route"
)

type notFoundScreen struct {
	target route.Route
}

func newNotFoundScreen(target route.Route) *notFoundScreen {
	return &notFoundScreen{target: target}
}

func (s *notFoundScreen) Init() tea.Cmd { return nil }

func (s *notFoundScreen) SetSize(int, int) {}

func (s *notFoundScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keyExit):
			return s, tea.Quit
		case key.Matches(msg, keyBack), key.Matches(msg, keySubmit):
			return s, navigate(route.ToRoot)
		}
	}
	return s, nil
}

func (s *notFoundScreen) View() string {
	return headingStyle.Render("404 - Not Found") + "\n\n" +
		dimStyle.Render("Nothing lives at "+s.target.Raw+". Press enter to go home.")
}

func (s *notFoundScreen) Help() []key.Binding {
	return []key.Binding{keySubmit, keyExit}
}
