package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"benign/pkg/study"
)

type dimension struct {
	label string
	hint  string
	set   func(*study.ManualRatings, int)
}

var dimensions = []dimension{
	{"Funniness", "1 = not funny at all, 7 = extremely funny",
		func(r *study.ManualRatings, v int) { r.Funniness = &v }},
	{"Category fit", "1 = wrong category entirely, 7 = perfect fit",
		func(r *study.ManualRatings, v int) { r.CategoryFit = &v }},
	{"Structural coherence", "1 = setup and punchline unrelated, 7 = tight setup/punchline structure",
		func(r *study.ManualRatings, v int) { r.StructuralCoherence = &v }},
	{"Originality", "1 = a joke everyone knows, 7 = never heard anything like it",
		func(r *study.ManualRatings, v int) { r.Originality = &v }},
}

type styles struct {
	title     lipgloss.Style
	meta      lipgloss.Style
	setup     lipgloss.Style
	punchline lipgloss.Style
	prompt    lipgloss.Style
	hint      lipgloss.Style
	done      lipgloss.Style
	errText   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		setup:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		punchline: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		prompt:    lipgloss.NewStyle().Bold(true),
		hint:      lipgloss.NewStyle().Faint(true),
		done:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		errText:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

type model struct {
	jokes   []study.Generation
	pending []int
	save    func([]study.Generation) error

	pos       int
	dim       int
	notes     textinput.Model
	noting    bool
	completed int
	saveErr   error
	styles    styles
}

func newModel(jokes []study.Generation, pending []int, save func([]study.Generation) error) model {
	notes := textinput.New()
	notes.Placeholder = "optional notes, enter to continue"
	notes.CharLimit = 200
	return model{
		jokes:   jokes,
		pending: pending,
		save:    save,
		notes:   notes,
		styles:  newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) current() *study.Generation {
	return &m.jokes[m.pending[m.pos]]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.noting {
		switch key.Type {
		case tea.KeyEnter:
			m.current().Ratings.Notes = strings.TrimSpace(m.notes.Value())
			return m.finishJoke()
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.finishJoke()
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "s":
		return m.advance()
	case "1", "2", "3", "4", "5", "6", "7":
		value := int(key.String()[0] - '0')
		dimensions[m.dim].set(&m.current().Ratings, value)
		m.dim++
		if m.dim == len(dimensions) {
			m.noting = true
			m.notes.SetValue("")
			m.notes.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

func (m model) finishJoke() (tea.Model, tea.Cmd) {
	m.noting = false
	m.notes.Blur()
	m.completed++
	m.saveErr = m.save(m.jokes)
	return m.advance()
}

func (m model) advance() (tea.Model, tea.Cmd) {
	m.dim = 0
	m.pos++
	if m.pos >= len(m.pending) {
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.pos >= len(m.pending) {
		return m.styles.done.Render("All jokes rated.") + "\n"
	}
	j := m.current()

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Joke Rating Session"))
	fmt.Fprintf(&b, "  %s\n\n", m.styles.meta.Render(
		fmt.Sprintf("joke %d/%d  |  %s  |  %s  |  t=%.1f",
			m.pos+1, len(m.pending), j.Model, j.Category, j.Temperature)))

	if j.Setup != "" || j.Punchline != "" {
		b.WriteString(m.styles.setup.Render(j.Setup) + "\n")
		b.WriteString(m.styles.punchline.Render(j.Punchline) + "\n\n")
	} else {
		b.WriteString(m.styles.setup.Render(j.RawResponse) + "\n\n")
	}

	if m.noting {
		b.WriteString(m.styles.prompt.Render("Notes") + "\n")
		b.WriteString(m.notes.View() + "\n")
	} else {
		d := dimensions[m.dim]
		fmt.Fprintf(&b, "%s (%d/%d)\n", m.styles.prompt.Render(d.label), m.dim+1, len(dimensions))
		b.WriteString(m.styles.hint.Render(d.hint) + "\n")
		b.WriteString(m.styles.hint.Render("press 1-7 to rate, s to skip joke, q to quit") + "\n")
	}

	if m.saveErr != nil {
		b.WriteString("\n" + m.styles.errText.Render("save failed: "+m.saveErr.Error()) + "\n")
	}
	return b.String()
}
