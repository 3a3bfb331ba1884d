// Package tui hosts the booking wizard in a full-screen BubbleTea program.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/timeportal/core"
	"github.com/jask/timeportal/internal/logging"
)

type target int

const (
	targetName target = iota
	targetEmail
	targetYear
	targetRing
	targetSearch
	targetTravelers
	targetPurpose
)

// stepTargets lists the focusable controls of each wizard step in tab order.
var stepTargets = [][]target{
	{targetName, targetEmail},
	{targetYear},
	{targetRing, targetSearch},
	{targetTravelers, targetPurpose},
}

type Options struct {
	Wizard        *core.Wizard
	Keys          []core.KeyBinding
	ReferenceYear int
	Logger        *zap.Logger
}

type Model struct {
	width  int
	height int

	wizard   *core.Wizard
	keys     *core.KeyRegistry
	pointers *core.PointerDispatcher

	year      *core.Dial
	travelers *core.Dial
	ring      *core.Radial

	name    textinput.Model
	email   textinput.Model
	search  textinput.Model
	purpose textinput.Model
	focus   int

	referenceYear int
	status        string
	statusErr     bool
	confirmed     []core.Booking
	quitting      bool
	log           *zap.Logger
}

func New(opts Options) Model {
	w := opts.Wizard
	if w == nil {
		w = core.NewWizard(core.WizardOptions{})
	}
	bindings := opts.Keys
	if len(bindings) == 0 {
		bindings = core.DefaultKeyBindings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ref := opts.ReferenceYear
	if ref == 0 {
		ref = time.Now().Year()
	}
	b := w.Bounds()
	pointers := core.NewPointerDispatcher()

	m := Model{
		width:         80,
		height:        32,
		wizard:        w,
		keys:          core.NewKeyRegistry(bindings),
		pointers:      pointers,
		ring:          core.NewRadial(w.Locations(), w.Draft().LocationID),
		name:          newInput("Amelia Earhart", 64),
		email:         newInput("amelia@example.com", 96),
		search:        newInput("type a city", 32),
		purpose:       newInput("What brings you there?", 160),
		referenceYear: ref,
		status:        "Ready",
		log:           logger.With(zap.String(logging.FieldComponent, "tui")),
	}
	m.year = core.NewDial(core.DialConfig{
		Min:   float64(b.YearMin),
		Max:   float64(b.YearMax),
		Step:  float64(b.YearStep),
		Label: "Year",
	}, float64(w.Draft().Year), pointers)
	m.travelers = core.NewDial(core.DialConfig{
		Min:   float64(b.TravelersMin),
		Max:   float64(b.TravelersMax),
		Step:  1,
		Label: "Travelers",
	}, float64(w.Draft().Travelers), pointers)

	cx, cy := canvasCenterPointer()
	m.year.SetCenter(cx, cy)
	m.travelers.SetCenter(cx, cy)
	m.year.OnChange(func(v float64) { w.SetField(core.FieldYear, v) })
	m.travelers.OnChange(func(v float64) { w.SetField(core.FieldTravelers, v) })

	m.syncFromDraft()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = cardWidth - 4
	return in
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Confirmed returns every booking confirmed during the session.
func (m Model) Confirmed() []core.Booking {
	return append([]core.Booking(nil), m.confirmed...)
}

func (m Model) Wizard() *core.Wizard { return m.wizard }

func (m Model) ActiveScope() string {
	switch m.focusTarget() {
	case targetYear, targetTravelers:
		return core.ScopeDial
	case targetRing:
		return core.ScopeRing
	}
	return core.ScopeForm
}

func (m Model) focusTarget() target {
	targets := stepTargets[m.stepIndex()]
	if m.focus < 0 || m.focus >= len(targets) {
		return targets[0]
	}
	return targets[m.focus]
}

func (m Model) stepIndex() int {
	step := m.wizard.Step()
	if step >= len(stepTargets) {
		return len(stepTargets) - 1
	}
	return step
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

// syncFromDraft pushes the wizard draft into every control and resets focus
// to the first control of the current step.
func (m *Model) syncFromDraft() tea.Cmd {
	d := m.wizard.Draft()
	m.name.SetValue(d.Name)
	m.email.SetValue(d.Email)
	m.purpose.SetValue(d.Purpose)
	m.search.SetValue("")
	m.year.PointerUp()
	m.travelers.PointerUp()
	m.year.SetValue(float64(d.Year))
	m.travelers.SetValue(float64(d.Travelers))
	m.ring.Select(d.LocationID)
	m.focus = 0
	return m.applyFocus()
}

func (m *Model) applyFocus() tea.Cmd {
	m.name.Blur()
	m.email.Blur()
	m.search.Blur()
	m.purpose.Blur()
	if in := m.input(m.focusTarget()); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *Model) input(t target) *textinput.Model {
	switch t {
	case targetName:
		return &m.name
	case targetEmail:
		return &m.email
	case targetSearch:
		return &m.search
	case targetPurpose:
		return &m.purpose
	}
	return nil
}

func (m *Model) dial(t target) *core.Dial {
	switch t {
	case targetYear:
		return m.year
	case targetTravelers:
		return m.travelers
	}
	return nil
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	n := len(stepTargets[m.stepIndex()])
	m.focus = ((m.focus+delta)%n + n) % n
	return m.applyFocus()
}

func (m *Model) focusOn(t target) tea.Cmd {
	for i, candidate := range stepTargets[m.stepIndex()] {
		if candidate == t {
			m.focus = i
			return m.applyFocus()
		}
	}
	return nil
}

// commitInput writes the value of a text input back into the draft.
func (m *Model) commitInput(t target) {
	switch t {
	case targetName:
		m.wizard.SetField(core.FieldName, m.name.Value())
	case targetEmail:
		m.wizard.SetField(core.FieldEmail, m.email.Value())
	case targetPurpose:
		m.wizard.SetField(core.FieldPurpose, m.purpose.Value())
	}
}

func (m *Model) selectLocation(id string) {
	if !m.wizard.SelectLocation(id) {
		return
	}
	m.ring.Select(id)
}

// resolveSearch moves the ring to whatever destination the search box names.
func (m *Model) resolveSearch() tea.Cmd {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		return nil
	}
	loc, ok := core.Locations(m.wizard.Locations()).Resolve(query)
	if !ok {
		return core.StatusCmd("No destination matches " + query)
	}
	m.selectLocation(loc.ID)
	m.search.SetValue("")
	return core.StatusCmd("Destination set to " + loc.Name)
}

func (m *Model) advance() tea.Cmd {
	m.commitInput(m.focusTarget())
	return m.wizard.RequestAdvance()
}

func (m *Model) retreat() tea.Cmd {
	return m.wizard.RequestRetreat()
}

func (m *Model) quit() tea.Cmd {
	m.wizard.Cancel()
	m.year.PointerUp()
	m.travelers.PointerUp()
	m.quitting = true
	return tea.Quit
}

// turn nudges the focused dial by one step or the ring by one item.
func (m *Model) turn(delta int) {
	switch t := m.focusTarget(); t {
	case targetYear, targetTravelers:
		d := m.dial(t)
		field := core.FieldYear
		if t == targetTravelers {
			field = core.FieldTravelers
		}
		d.SetValue(d.Value() + float64(delta)*d.Config().Step)
		m.wizard.SetField(field, d.Value())
	case targetRing:
		n := m.ring.Len()
		if n == 0 {
			return
		}
		i := ((m.ring.SelectedIndex()+delta)%n + n) % n
		m.selectLocation(m.ring.Items()[i].ID)
	}
}
