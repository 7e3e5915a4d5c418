package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	targetStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUI implements UI with an interactive action picker. Everything else is
// rendered the same way SimpleUI does.
type TUI struct {
	*SimpleUI

	programOptions []tea.ProgramOption
}

// NewTUI creates a new TUI on top of simple.
func NewTUI(simple *SimpleUI, programOptions ...tea.ProgramOption) *TUI {
	return &TUI{SimpleUI: simple, programOptions: programOptions}
}

// PickAction lets the user choose an action with the keyboard.
func (t *TUI) PickAction(ctx context.Context, actions []m.CodeAction) (int, error) {
	if len(actions) < 2 {
		return t.SimpleUI.PickAction(ctx, actions)
	}

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(t.cmd.OutOrStdout()),
	}, t.programOptions...)

	final, err := tea.NewProgram(newActionPickerModel(actions), opts...).Run()
	if err != nil {
		return NoSelection, fmt.Errorf("run action picker: %w", err)
	}

	picker, ok := final.(actionPickerModel)
	if !ok {
		return NoSelection, nil
	}

	return picker.chosen, nil
}

type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

func defaultPickerKeys() pickerKeyMap {
	return pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

type actionPickerModel struct {
	actions []m.CodeAction
	keys    pickerKeyMap
	cursor  int
	chosen  int
	done    bool
}

func newActionPickerModel(actions []m.CodeAction) actionPickerModel {
	return actionPickerModel{
		actions: actions,
		keys:    defaultPickerKeys(),
		chosen:  NoSelection,
	}
}

func (apm actionPickerModel) Init() tea.Cmd {
	return nil
}

func (apm actionPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return apm, nil
	}

	switch {
	case key.Matches(keyMsg, apm.keys.Quit):
		apm.done = true
		return apm, tea.Quit

	case key.Matches(keyMsg, apm.keys.Choose):
		apm.chosen = apm.cursor
		apm.done = true

		return apm, tea.Quit

	case key.Matches(keyMsg, apm.keys.Up):
		if apm.cursor > 0 {
			apm.cursor--
		}

	case key.Matches(keyMsg, apm.keys.Down):
		if apm.cursor < len(apm.actions)-1 {
			apm.cursor++
		}
	}

	return apm, nil
}

func (apm actionPickerModel) View() string {
	if apm.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Code actions"))
	b.WriteString("\n\n")

	for i, action := range apm.actions {
		line := fmt.Sprintf("  %s", action.Title)
		if i == apm.cursor {
			line = selectedStyle.Render("> " + action.Title)
		}

		b.WriteString(line)

		if target := describeTarget(action); target != "" {
			b.WriteString(" ")
			b.WriteString(targetStyle.Render(target))
		}

		b.WriteString("\n")
	}

	help := []string{}
	for _, binding := range []key.Binding{apm.keys.Up, apm.keys.Down, apm.keys.Choose, apm.keys.Quit} {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")

	return b.String()
}
