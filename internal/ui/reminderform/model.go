package reminderform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/theme"
)

// ReminderCreatedMsg is dispatched when a new reminder is created via
// the form.
type ReminderCreatedMsg struct {
	Reminder model.Reminder
}

// ReminderUpdatedMsg is dispatched when an existing reminder is updated
// via the form.
type ReminderUpdatedMsg struct {
	Reminder model.Reminder
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title   string
	notes   string
	patient string
	dueAt   string
	status  string
}

// Model is the Bubble Tea model for the reminder create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	patients []string
	width    int
	height   int
}

// New creates a new reminder form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{status: model.ReminderStatusOpen},
		width:  width,
		height: height,
	}
}

// SetPatients sets the known patient names offered by the patient
// selector. An empty list leaves the field as free text.
func (m *Model) SetPatients(patients []string) {
	m.patients = patients
}

// StartCreate initializes the form for creating a new reminder.
// prefillPatient seeds the patient field when the form is opened from
// an event detail view.
func (m *Model) StartCreate(prefillPatient string) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.notes = ""
	m.fb.patient = prefillPatient
	m.fb.dueAt = ""
	m.fb.status = model.ReminderStatusOpen
	m.form = m.buildForm(false)
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing reminder.
func (m *Model) StartEdit(r model.Reminder) tea.Cmd {
	m.editMode = true
	m.editID = r.ID
	m.fb.title = r.Title
	m.fb.notes = r.Notes
	m.fb.patient = r.Patient
	m.fb.status = r.Status
	if r.DueAt != nil {
		m.fb.dueAt = r.DueAt.Format("2006-01-02 15:04")
	} else {
		m.fb.dueAt = ""
	}
	m.form = m.buildForm(true)
	return m.form.Init()
}

// Update handles messages for the reminder form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the reminder form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Reminder"
	if m.editMode {
		titleText = "Edit Reminder"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm(edit bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Call patient about follow-up...").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		m.patientField(),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional details...").
			Value(&m.fb.notes),
		huh.NewInput().
			Title("Due").
			Placeholder("YYYY-MM-DD HH:MM (optional)").
			Value(&m.fb.dueAt).
			Validate(validateOptionalDateTime),
	}

	if edit {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Open", model.ReminderStatusOpen),
					huh.NewOption("Done", model.ReminderStatusDone),
				).
				Value(&m.fb.status),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) patientField() huh.Field {
	if len(m.patients) == 0 {
		return huh.NewInput().
			Title("Patient").
			Placeholder("Patient name (optional)").
			Value(&m.fb.patient)
	}

	opts := []huh.Option[string]{
		huh.NewOption("None", ""),
	}
	for _, p := range m.patients {
		opts = append(opts, huh.NewOption(p, p))
	}
	return huh.NewSelect[string]().
		Title("Patient").
		Options(opts...).
		Value(&m.fb.patient)
}

func (m Model) handleSubmit() tea.Cmd {
	r := model.Reminder{
		Title:   m.fb.title,
		Notes:   m.fb.notes,
		Patient: m.fb.patient,
		Status:  m.fb.status,
	}

	if m.fb.dueAt != "" {
		if t, err := parseDateTime(m.fb.dueAt); err == nil {
			r.DueAt = &t
		}
	}

	if m.editMode {
		r.ID = m.editID
		return func() tea.Msg { return ReminderUpdatedMsg{Reminder: r} }
	}
	return func() tea.Msg { return ReminderCreatedMsg{Reminder: r} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

// parseDateTime accepts a date with optional time of day.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func validateOptionalDateTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := parseDateTime(s); err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD or YYYY-MM-DD HH:MM")
	}
	return nil
}
