package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newTextInput(placeholder string, charLimit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = charLimit
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newPasswordInput(placeholder string) textinput.Model {
	ti := newTextInput(placeholder, 128)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

// newTextArea is a multi-line input without length or line limits.
func newTextArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.KeyMap.InsertNewline = keyNewline
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetHeight(3)
	return ta
}

// fieldSet is an ordered group of text inputs with a single focused entry
type fieldSet struct {
	inputs []textinput.Model
	focus  int
}

func newFieldSet(inputs ...textinput.Model) fieldSet {
	f := fieldSet{inputs: inputs}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *fieldSet) move(step int) {
	n := len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = ((f.focus+step)%n + n) % n
	f.inputs[f.focus].Focus()
}

func (f *fieldSet) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f fieldSet) value(i int) string {
	return f.inputs[i].Value()
}

func (f fieldSet) view(i int, label string) string {
	style := labelStyle
	if i == f.focus {
		style = focusedLabelStyle
	}
	return style.Render(label) + "\n" + f.inputs[i].View()
}
