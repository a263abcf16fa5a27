// Package tui renders the dashboard in the terminal with bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/business-dashboard/internal/form"
	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/store"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// operationDoneMsg arrives when a store operation started from the UI has
// finished and its result is visible in the store.
type operationDoneMsg struct{}

func waitForStore(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return operationDoneMsg{}
	}
}

var fieldMeta = map[form.FieldName]struct{ label, placeholder string }{
	form.BusinessName: {"Business Name *", "e.g., Cake & Co"},
	form.Location:     {"Location *", "e.g., Mumbai"},
}

type Model struct {
	ctx     context.Context
	store   *store.Store
	form    *form.Machine
	log     logger.ILogger
	styles  Styles
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	width   int
}

func NewModel(ctx context.Context, s *store.Store, m *form.Machine, log logger.ILogger) Model {
	inputs := make([]textinput.Model, len(form.FieldNames))
	for i, name := range form.FieldNames {
		ti := textinput.New()
		ti.Placeholder = fieldMeta[name].placeholder
		ti.Prompt = "> "
		ti.SetValue(m.Field(name).Value)
		inputs[i] = ti
	}
	inputs[0].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		store:   s,
		form:    m,
		log:     log,
		styles:  DefaultStyles(),
		inputs:  inputs,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.store.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case operationDoneMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.store.Snapshot().ViewMode == store.ViewCard {
			return m.updateCard(msg)
		}
		return m.updateForm(msg)
	}

	if m.store.Snapshot().ViewMode == store.ViewForm {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return m.moveFocus(1), textinput.Blink
	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFocus(-1), textinput.Blink
	case tea.KeyEnter:
		return m.submit()
	}

	name := form.FieldNames[m.focus]
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if after := m.inputs[m.focus].Value(); after != before {
		m.form.Change(name, after)
	}
	return m, cmd
}

// moveFocus leaves the focused field, which counts as a blur.
func (m Model) moveFocus(delta int) Model {
	m.form.Blur(form.FieldNames[m.focus])
	m.inputs[m.focus].Blur()

	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	done, err := m.form.Submit(m.ctx, m.store)
	switch {
	case errors.Is(err, form.ErrInvalidForm):
		m.log.Debug("tui", "submission blocked by validation", nil)
		return m, nil
	case err != nil:
		m.log.Debug("tui", "submission not started", map[string]interface{}{"reason": err.Error()})
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, waitForStore(done))
}

func (m Model) updateCard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		done, err := m.store.RegenerateHeadline(m.ctx)
		if err != nil {
			m.log.Debug("tui", "regenerate not started", map[string]interface{}{"reason": err.Error()})
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, waitForStore(done))
	}
	return m, nil
}

// View switches between the form and the card on the store's view mode.
func (m Model) View() string {
	snap := m.store.Snapshot()
	var body string
	if snap.ViewMode == store.ViewCard {
		body = m.cardView(snap)
	} else {
		body = m.formView(snap)
	}

	panel := m.styles.Panel
	if m.width > 4 && m.width < 64 {
		panel = panel.Width(m.width - 4)
	}
	return panel.Render(body)
}

func (m Model) formView(snap store.State) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Business Dashboard"))
	sb.WriteString("\n")

	if snap.LastError != nil && snap.LastError.Submit != "" {
		sb.WriteString(m.styles.Banner.Render(snap.LastError.Submit))
		sb.WriteString("\n\n")
	}

	fields := m.form.Fields()
	for i, name := range form.FieldNames {
		sb.WriteString(m.styles.Label.Render(fieldMeta[name].label))
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n")
		if f := fields[name]; f.Invalid() {
			sb.WriteString(m.styles.FieldError.Render(f.Error))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.button(snap.Loading, "Get Business Data", "Loading..."))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("tab: next field • enter: submit • ctrl+c: quit"))
	return sb.String()
}

func (m Model) cardView(snap store.State) string {
	rec := snap.Record

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(rec.Name + " Dashboard"))
	sb.WriteString("\n")

	if snap.LastError != nil && snap.LastError.Submit != "" {
		sb.WriteString(m.styles.Banner.Render(snap.LastError.Submit))
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("%s %.1f (%d reviews)  %s\n\n",
		m.styles.Star.Render("★"), rec.Rating, rec.Reviews, m.styles.Badge.Render("Google Rating")))

	sb.WriteString(m.styles.SectionTitle.Render("SEO HEADLINE"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Headline.Render(rec.Headline))
	sb.WriteString("\n\n")

	if snap.LastError != nil && snap.LastError.Regenerate != "" {
		sb.WriteString(m.styles.Banner.Render(snap.LastError.Regenerate))
		sb.WriteString("\n\n")
	}

	sb.WriteString(m.button(snap.Loading, "Regenerate SEO Headline", "Generating..."))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("r: regenerate headline • q: quit"))
	return sb.String()
}

func (m Model) button(loading bool, label, busyLabel string) string {
	if loading {
		return m.styles.ButtonOff.Render(m.spinner.View() + " " + busyLabel)
	}
	return m.styles.Button.Render(label)
}
