// Package tui renders the recipe form on the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/feedback"
	"github.com/thomas-vilte/dishform/internal/form"
	"github.com/thomas-vilte/dishform/internal/i18n"
	"github.com/thomas-vilte/dishform/internal/models"
	"github.com/thomas-vilte/dishform/internal/probe"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Padding(0, 1)
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("42")).Padding(0, 1)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder())
	helpKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Submit  key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Next:    key.NewBinding(key.WithKeys("tab", "down")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "up")),
	Left:    key.NewBinding(key.WithKeys("left")),
	Right:   key.NewBinding(key.WithKeys("right")),
	Enter:   key.NewBinding(key.WithKeys("enter")),
	Submit:  key.NewBinding(key.WithKeys("ctrl+s")),
	Dismiss: key.NewBinding(key.WithKeys("esc")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
}

type probeResultMsg probe.Result

type submitDoneMsg struct {
	result *form.SubmitResult
	err    error
}

// hideNotificationMsg closes the notification opened by submission seq.
type hideNotificationMsg struct {
	seq int
}

type Model struct {
	ctx    context.Context
	ctrl   *form.Controller
	prober *probe.Prober
	trans  *i18n.Translations

	inputs    map[models.FieldName]*textinput.Model
	inputErrs map[models.FieldName]string
	errs      form.ValidationErrors
	focus     int

	spinner    spinner.Model
	submitting bool
	banner     string
	seq        int
	quitting   bool
}

// New builds the form model. prober may be nil to skip the availability
// check.
func New(ctx context.Context, ctrl *form.Controller, prober *probe.Prober, t *i18n.Translations) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		prober:    prober,
		trans:     t,
		inputs:    make(map[models.FieldName]*textinput.Model),
		inputErrs: make(map[models.FieldName]string),
		spinner:   s,
	}

	for _, name := range []models.FieldName{
		models.FieldDishName,
		models.FieldPreparationTime,
		models.FieldNoOfSlices,
		models.FieldDiameter,
		models.FieldSpicinessScale,
		models.FieldSlicesOfBread,
	} {
		f, _ := models.LookupField(name)
		ti := textinput.New()
		if f.PlaceholderID != "" {
			ti.Placeholder = t.GetMessage(f.PlaceholderID, 0, nil)
		}
		ti.Prompt = "› "
		ti.CharLimit = 64
		m.inputs[name] = &ti
	}
	m.syncInputs()
	m.focusCurrent()

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.prober != nil {
		cmds = append(cmds, m.runProbe)
	}
	return tea.Batch(cmds...)
}

func (m Model) runProbe() tea.Msg {
	return probeResultMsg(<-m.prober.Start(m.ctx))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case probeResultMsg:
		if !msg.Available && m.prober != nil {
			if raised, text := m.prober.Banner().Get(); raised {
				m.banner = text
			}
		}
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case hideNotificationMsg:
		if msg.seq == m.seq {
			m.ctrl.Feedback().Dismiss(feedback.ReasonTimeout)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Dismiss):
		m.ctrl.Feedback().Dismiss(feedback.ReasonExplicit)
		return m, nil
	}

	if m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Enter):
		if m.focus == len(m.ctrl.VisibleFields()) {
			return m.submit()
		}
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, keys.Next):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, keys.Prev):
		m.moveFocus(-1)
		return m, nil
	}

	field, ok := m.focusedField()
	if !ok {
		return m, nil
	}

	if field == models.FieldDishType {
		switch {
		case key.Matches(msg, keys.Right):
			m.cycleDishType(1)
		case key.Matches(msg, keys.Left):
			m.cycleDishType(-1)
		}
		return m, nil
	}

	ti, ok := m.inputs[field]
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	delete(m.inputErrs, field)
	m.ctrl.Feedback().ClearError()
	return m, cmd
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.submitting = false

	if msg.err != nil {
		var verrs form.ValidationErrors
		if errors.As(msg.err, &verrs) {
			m.errs = verrs
		}
		return m, nil
	}

	m.errs = nil
	m.inputErrs = make(map[models.FieldName]string)
	m.syncInputs()
	m.focus = 0
	m.focusCurrent()

	m.seq++
	seq := m.seq
	return m, tea.Tick(m.ctrl.Feedback().AutoHide(), func(time.Time) tea.Msg {
		return hideNotificationMsg{seq: seq}
	})
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.commitFocused()

	m.errs = m.ctrl.Validate()
	if len(m.errs) > 0 || m.hasVisibleInputErrs() {
		return m, nil
	}

	m.submitting = true
	return m, tea.Batch(m.spinner.Tick, m.submitCmd())
}

// hasVisibleInputErrs reports rejected input on a rendered field. Errors left
// on another variant's fields stay for when that variant comes back.
func (m Model) hasVisibleInputErrs() bool {
	for _, f := range m.ctrl.VisibleFields() {
		if _, ok := m.inputErrs[f.Name]; ok {
			return true
		}
	}
	return false
}

func (m Model) submitCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		result, err := ctrl.Submit(ctx)
		return submitDoneMsg{result: result, err: err}
	}
}

func (m *Model) focusedField() (models.FieldName, bool) {
	fields := m.ctrl.VisibleFields()
	if m.focus < 0 || m.focus >= len(fields) {
		return "", false
	}
	return fields[m.focus].Name, true
}

// moveFocus commits the field being left and focuses the next one,
// wrapping around the save button.
func (m *Model) moveFocus(delta int) {
	m.commitFocused()

	n := len(m.ctrl.VisibleFields()) + 1
	m.focus = ((m.focus+delta)%n + n) % n
	m.focusCurrent()
}

func (m *Model) focusCurrent() {
	for _, ti := range m.inputs {
		ti.Blur()
	}
	if field, ok := m.focusedField(); ok {
		if ti, ok := m.inputs[field]; ok {
			ti.Focus()
		}
	}
}

// commitFocused hands the focused input to the controller. Rejected values
// stay in the input with their error shown under it.
func (m *Model) commitFocused() {
	field, ok := m.focusedField()
	if !ok {
		return
	}
	ti, ok := m.inputs[field]
	if !ok {
		return
	}

	if err := m.ctrl.Set(field, ti.Value()); err != nil {
		m.inputErrs[field] = m.rejectionMessage(err)
		return
	}
	delete(m.inputErrs, field)

	d := m.ctrl.Draft()
	switch field {
	case models.FieldDiameter:
		ti.SetValue(d.Pizza.Diameter)
	case models.FieldPreparationTime:
		ti.SetValue(d.PreparationTime)
	}
}

func (m *Model) rejectionMessage(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidDiameter):
		return m.trans.GetMessage("validation.diameter_number", 0, nil)
	case errors.Is(err, domainErrors.ErrInvalidPreparationTime):
		return m.trans.GetMessage("validation.preparation_format", 0, nil)
	}
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func (m *Model) cycleDishType(delta int) {
	types := models.DishTypes()
	current := m.ctrl.Draft().DishType

	idx := -1
	for i, dt := range types {
		if dt == current {
			idx = i
		}
	}
	switch {
	case idx == -1 && delta > 0:
		idx = 0
	case idx == -1:
		idx = len(types) - 1
	default:
		idx = ((idx+delta)%len(types) + len(types)) % len(types)
	}

	_ = m.ctrl.SetDishType(string(types[idx]))
	m.errs = nil
}

// syncInputs copies the controller draft into the inputs.
func (m *Model) syncInputs() {
	d := m.ctrl.Draft()
	values := map[models.FieldName]string{
		models.FieldDishName:        d.Name,
		models.FieldPreparationTime: d.PreparationTime,
		models.FieldNoOfSlices:      d.Pizza.NoOfSlices,
		models.FieldDiameter:        d.Pizza.Diameter,
		models.FieldSpicinessScale:  d.Soup.SpicinessScale,
		models.FieldSlicesOfBread:   d.Sandwich.SlicesOfBread,
	}
	for field, v := range values {
		m.inputs[field].SetValue(v)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.trans.GetMessage("tui.title", 0, nil)))
	b.WriteString("\n\n")

	if m.banner != "" {
		b.WriteString(bannerStyle.Render(m.banner))
		b.WriteString("\n\n")
	}

	draft := m.ctrl.Draft()
	fields := m.ctrl.VisibleFields()
	for i, f := range fields {
		text := m.trans.GetMessage(f.LabelID, 0, nil)
		label := labelStyle.Render(text)
		if i == m.focus {
			label = focusStyle.Render(text)
		}
		b.WriteString(label)
		b.WriteString("\n")

		if f.Name == models.FieldDishType {
			b.WriteString(m.renderSelector(draft.DishType))
		} else {
			b.WriteString(m.inputs[f.Name].View())
		}
		b.WriteString("\n")

		if msg := m.fieldError(f.Name); msg != "" {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	snap := m.ctrl.Feedback().Snapshot()
	if m.submitting {
		b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.trans.GetMessage("tui.saving", 0, nil)))
	} else {
		save := m.trans.GetMessage("tui.save", 0, nil)
		style := buttonStyle
		if m.focus == len(fields) {
			style = style.BorderForeground(lipgloss.Color("205")).Foreground(lipgloss.Color("205"))
		}
		b.WriteString(style.Render(save))
	}
	b.WriteString("\n")

	if snap.Err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(domainErrors.ErrSubmissionFailed.Message + ": " + snap.Err.Error()))
		b.WriteString("\n")
	}

	if snap.NotificationOpen {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(snap.Notification))
		b.WriteString("\n")
	}

	if len(m.errs) > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.trans.GetMessage("validation.summary", len(m.errs), map[string]interface{}{
			"Count": len(m.errs),
		})))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpKeyStyle.Render(m.trans.GetMessage("tui.help", 0, nil)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderSelector(current models.DishType) string {
	text := m.trans.GetMessage("tui.choose_type", 0, nil)
	if id := current.MessageID(); id != "" {
		text = m.trans.GetMessage(id, 0, nil)
	}
	return selectorStyle.Render("‹ " + text + " ›")
}

func (m Model) fieldError(field models.FieldName) string {
	if msg, ok := m.inputErrs[field]; ok {
		return msg
	}
	if fe := m.errs.For(field); fe.MessageID != "" {
		return fe.Message(m.trans)
	}
	return ""
}

// Banner returns the unavailable-service message, or "" when none is shown.
func (m Model) Banner() string {
	return m.banner
}
