package tui

import "github.com/charmbracelet/bubbles/key"

var (
	keyQuit     = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	keyLogout   = key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "logout"))
	keyNext     = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	keyPrev     = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field"))
	keySubmit   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	keyBack     = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keyRegister = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "register"))
	keyCycleL   = key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "change option"))
	keyCycleR   = key.NewBinding(key.WithKeys("right", " "))
	keyNewline  = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "new line"))

	keyUp       = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	keyDown     = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	keyNew      = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "log new"))
	keyEdit     = key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "view/edit"))
	keyComplete = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark completed"))
	keyCancel   = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "mark cancelled"))
	keyDelete   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	keyRefresh  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	keySort     = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort"))
	keyPageNext = key.NewBinding(key.WithKeys("pgdown", "right", "l"), key.WithHelp("→", "next page"))
	keyPagePrev = key.NewBinding(key.WithKeys("pgup", "left", "h"), key.WithHelp("←", "prev page"))
	keySortRev  = key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "reverse sort"))
	keyExit     = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))

	keyYes     = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm"))
	keyNo      = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep"))
	keyDismiss = key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok"))
)
