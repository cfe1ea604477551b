package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"talon/internal/loc"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	locationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	successorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	exitStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Undo   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Undo, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Undo, k.Quit}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous successor")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next successor")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "step forward")),
		Undo:   key.NewBinding(key.WithKeys("u", "backspace"), key.WithHelp("u", "step back")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type exploreModel struct {
	title      string
	current    loc.RefProgramLocation
	successors []loc.RefProgramLocation
	cursor     int
	history    []loc.RefProgramLocation
	errMsg     string
	width      int
	keys       keyMap
	help       help.Model
}

// NewExploreModel returns a Bubble Tea model that steps a location
// forward interactively. The program the location was resolved against
// must stay unmodified while the model runs.
func NewExploreModel(title string, start loc.RefProgramLocation) tea.Model {
	m := &exploreModel{
		title: title,
		keys:  defaultKeyMap(),
		help:  help.New(),
		width: 80,
	}
	m.setCurrent(start)
	return m
}

func (m *exploreModel) setCurrent(l loc.RefProgramLocation) {
	m.current = l
	m.cursor = 0
	m.errMsg = ""
	next, err := l.AdvanceForward()
	if err != nil {
		m.successors = nil
		m.errMsg = err.Error()
		return
	}
	m.successors = next
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.help.Width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor+1 < len(m.successors) {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.successors) {
				m.history = append(m.history, m.current)
				m.setCurrent(m.successors[m.cursor])
			}
			return m, nil
		case key.Matches(msg, m.keys.Undo):
			if n := len(m.history); n > 0 {
				previous := m.history[n-1]
				m.history = m.history[:n-1]
				m.setCurrent(previous)
			}
			return m, nil
		}
		// Digits jump straight to a successor.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			i := int(s[0] - '1')
			if i < len(m.successors) {
				m.history = append(m.history, m.current)
				m.setCurrent(m.successors[i])
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *exploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.line(titleStyle, m.title))
	b.WriteString(m.line(locationStyle, "at "+describe(m.current)))
	b.WriteString("\n")

	switch {
	case m.errMsg != "":
		b.WriteString(m.line(errStyle, "graph inconsistency: "+m.errMsg))
	case len(m.successors) == 0:
		b.WriteString(m.line(exitStyle, "program exit point (no structural successors)"))
	default:
		for i, succ := range m.successors {
			prefix := "  "
			style := successorStyle
			if i == m.cursor {
				prefix = "> "
				style = cursorStyle
			}
			b.WriteString(m.line(style, fmt.Sprintf("%s%d. %s", prefix, i+1, describe(succ))))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// line truncates the plain text to the window width, then styles and
// terminates it. Truncation happens before styling so escape sequences
// never count against the width.
func (m *exploreModel) line(style lipgloss.Style, s string) string {
	if m.width > 4 && runewidth.StringWidth(s) > m.width-1 {
		s = runewidth.Truncate(s, m.width-4, "...")
	}
	return style.Render(s) + "\n"
}

// describe renders a location with as much context as it can resolve.
func describe(l loc.RefProgramLocation) string {
	fl := l.FunctionLocation()
	name := l.Function().Name()
	switch fl.Kind() {
	case loc.KindInstruction:
		instruction := fl.Instruction()
		if addr, ok := instruction.Address(); ok {
			return fmt.Sprintf("%s %s  0x%x %s", name, fl, addr, instruction.Text())
		}
		return fmt.Sprintf("%s %s  %s", name, fl, instruction.Text())
	case loc.KindEdge:
		return fmt.Sprintf("%s edge %s", name, fl.Edge())
	case loc.KindEmptyBlock:
		return fmt.Sprintf("%s %s", name, fl)
	default:
		return fmt.Sprintf("%s <invalid>", name)
	}
}
