// Package tui is a terminal front end for the calculator engine. It maps
// key presses to engine events and renders the display value.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"go-chi-calculator/internal/engine"
	"go-chi-calculator/internal/keymap"
	"go-chi-calculator/internal/observability"
)

// tapeLimit bounds the key history shown above the display.
const tapeLimit = 24

var (
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1).
			Width(tapeLimit).
			Align(lipgloss.Right).
			Bold(true)

	tapeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(tapeLimit + 4).
			Align(lipgloss.Right)

	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model holding the calculator state.
type Model struct {
	state engine.State
	tape  string
}

// New returns a model in the initial calculator state.
func New() Model {
	return Model{state: engine.Initial()}
}

// State returns the current calculator state.
func (m Model) State() engine.State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.apply(engine.ResultEntered{}), nil
	case tea.KeyEsc:
		return m.apply(engine.CleanEntered{}), nil
	case tea.KeyRunes:
		if len(key.Runes) != 1 {
			return m, nil
		}
		if !key.Alt && key.Runes[0] == 'q' {
			return m, tea.Quit
		}
		if ev, ok := keymap.Translate(keymap.Key{Value: string(key.Runes), Alt: key.Alt}); ok {
			return m.apply(ev), nil
		}
	}

	return m, nil
}

func (m Model) apply(ev engine.Event) Model {
	m.state = engine.Transition(m.state, ev)

	if _, clean := ev.(engine.CleanEntered); clean {
		m.tape = ""
	} else {
		m.tape += keymap.Format([]engine.Event{ev})
		if len(m.tape) > tapeLimit {
			m.tape = m.tape[len(m.tape)-tapeLimit:]
		}
	}

	observability.Logger.Debug("calculator event applied",
		zap.String("event", ev.Name()),
		zap.String("display", m.state.Display()),
	)
	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(tapeStyle.Render(m.tape))
	b.WriteString("\n")
	b.WriteString(displayStyle.Render(m.state.Display()))
	b.WriteString("\n")

	if op := m.state.Pending; op != engine.OperationNone {
		b.WriteString(pendingStyle.Render(" pending " + op.Symbol()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(" 0-9 . + - * / = · enter result · c/esc clear · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run starts an interactive calculator session on the terminal.
func Run(opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(), opts...).Run()
	return err
}
