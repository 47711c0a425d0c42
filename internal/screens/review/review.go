// Package review implements the interactive error-review session: each
// missed answer is shown, the learner retypes what they think the
// answer was, the correct answer is revealed, and they report whether
// they remembered it. Remembered entries clear from the notebook;
// forgotten ones resurface later. Sessions award no XP.
package review

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/state"
	"github.com/abhisek/lingua/internal/ui/components"
	"github.com/abhisek/lingua/internal/ui/layout"
	"github.com/abhisek/lingua/internal/ui/theme"
)

// Marker persists one review outcome.
type Marker func(question string, remembered bool) error

type phase int

const (
	phaseRecall phase = iota
	phaseReveal
	phaseDone
)

// Model is the Bubble Tea model for a review session.
type Model struct {
	entries []state.ErrorRecord
	mark    Marker

	gems   int
	streak int

	idx        int
	phase      phase
	input      components.TextInput
	choice     components.Choice
	remembered int
	forgotten  int
	err        error

	width  int
	height int
}

// New creates a session over the given notebook entries.
func New(entries []state.ErrorRecord, gems, streak int, mark Marker) Model {
	return Model{
		entries: entries,
		mark:    mark,
		gems:    gems,
		streak:  streak,
		input:   newRecallInput(),
	}
}

func newRecallInput() components.TextInput {
	return components.NewTextInput("type the answer from memory, then Enter", 200)
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.phase {
		case phaseRecall:
			if msg.String() == "enter" {
				entry := m.entries[m.idx]
				m.input.Submit(answerMatches(entry.CorrectAnswer, m.input.Value()))
				m.phase = phaseReveal
				m.choice = components.NewChoice("Did you remember it?", []string{
					"Remembered",
					"Forgot",
				})
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case phaseReveal:
			if msg.String() == "q" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.choice, cmd = m.choice.Update(msg)
			if m.choice.Done() {
				remembered := m.choice.Chosen == 0
				entry := m.entries[m.idx]
				if err := m.mark(entry.Question, remembered); err != nil {
					m.err = err
					m.phase = phaseDone
					return m, nil
				}
				if remembered {
					m.remembered++
				} else {
					m.forgotten++
				}
				m.idx++
				if m.idx >= len(m.entries) {
					m.phase = phaseDone
				} else {
					m.phase = phaseRecall
					m.input = newRecallInput()
					return m, m.input.Init()
				}
			}
			return m, cmd

		case phaseDone:
			switch msg.String() {
			case "enter", "esc", "q":
				return m, tea.Quit
			}
			return m, nil
		}
	}

	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader("Error Review", m.gems, m.streak, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	var content string
	switch m.phase {
	case phaseDone:
		content = m.viewSummary()
	default:
		content = m.viewEntry()
	}

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m Model) keyHints() []layout.KeyHint {
	switch m.phase {
	case phaseRecall:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Reveal answer"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseReveal:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Q", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Finish"},
		}
	}
}

func (m Model) viewEntry() string {
	entry := m.entries[m.idx]
	var b strings.Builder

	bar := components.ProgressBar{
		Label:   fmt.Sprintf("Entry %d of %d", m.idx+1, len(m.entries)),
		Percent: float64(m.idx) / float64(len(m.entries)),
		Width:   m.width - 8,
	}
	b.WriteString("  " + bar.View() + "\n\n")

	var card strings.Builder
	card.WriteString(theme.Body.Bold(true).Render(entry.Question) + "\n\n")
	card.WriteString(theme.Incorrect.Render("You answered: "+entry.UserAnswer) + "\n\n")
	card.WriteString(m.input.View() + "\n")

	if m.phase == phaseReveal {
		card.WriteString("\n" + theme.Correct.Render("Correct answer: "+entry.CorrectAnswer) + "\n")
		if entry.Explanation != "" {
			card.WriteString("\n" + theme.Hint.Render(entry.Explanation) + "\n")
		}
		card.WriteString("\n" + m.choice.View())
	}

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		theme.Card.Width(min(m.width-8, 70)).Render(card.String())))
	return b.String()
}

func (m Model) viewSummary() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Review complete!"))
	b.WriteString("\n\n")

	line := fmt.Sprintf("Remembered: %d        Forgot: %d", m.remembered, m.forgotten)
	b.WriteString(lipgloss.NewStyle().
		Width(m.width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(line))
	b.WriteString("\n\n")

	if m.forgotten > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Forgotten entries stay in the notebook and will come back."))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Session ended early: " + m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func answerMatches(correct, typed string) bool {
	return strings.EqualFold(strings.TrimSpace(correct), strings.TrimSpace(typed))
}

// Run starts the Bubble Tea program for one session.
func Run(entries []state.ErrorRecord, gems, streak int, mark Marker) error {
	p := tea.NewProgram(New(entries, gems, streak, mark))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
