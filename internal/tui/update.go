package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/timeportal/core"
	"github.com/jask/timeportal/internal/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case core.StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case core.TransitionDoneMsg:
		step, session := m.wizard.Step(), m.wizard.SessionID()
		cmd := m.wizard.Update(msg)
		if m.wizard.Step() != step || m.wizard.SessionID() != session {
			sync := m.syncFromDraft()
			return m, tea.Batch(cmd, sync)
		}
		return m, cmd
	case core.BookingConfirmedMsg:
		m.confirmed = append(m.confirmed, msg.Booking)
		m.log.Info("booking shown",
			zap.String(logging.FieldBookingID, msg.Booking.ID.String()),
			zap.String(logging.FieldSessionID, msg.Booking.SessionID.String()),
		)
		m.SetStatus(msg.Booking.Summary())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if in := m.input(m.focusTarget()); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := m.ActiveScope()
	switch m.keys.ActionFor(msg, scope) {
	case core.ActionQuit:
		cmd := m.quit()
		return m, cmd
	case core.ActionNext:
		cmd := m.advance()
		return m, cmd
	case core.ActionBack:
		m.commitInput(m.focusTarget())
		cmd := m.retreat()
		return m, cmd
	case core.ActionFocusNext:
		m.commitInput(m.focusTarget())
		cmd := m.moveFocus(1)
		return m, cmd
	case core.ActionFocusPrev:
		m.commitInput(m.focusTarget())
		cmd := m.moveFocus(-1)
		return m, cmd
	case core.ActionIncrease:
		m.turn(1)
		return m, nil
	case core.ActionDecrease:
		m.turn(-1)
		return m, nil
	case core.ActionSelect:
		cmd := m.selectField()
		return m, cmd
	}

	t := m.focusTarget()
	in := m.input(t)
	if in == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	m.commitInput(t)
	return m, cmd
}

// selectField handles enter inside a text input: the search box resolves its
// query, the last input of a step advances, any other input hands focus on.
func (m *Model) selectField() tea.Cmd {
	t := m.focusTarget()
	if t == targetSearch {
		return m.resolveSearch()
	}
	m.commitInput(t)
	targets := stepTargets[m.stepIndex()]
	if m.focus >= len(targets)-1 {
		return m.advance()
	}
	return m.moveFocus(1)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px, py := pointerCoords(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.pointers.Press()
		cmd := m.press(msg.X, msg.Y, px, py)
		return m, cmd
	case tea.MouseActionMotion:
		if !m.pointers.Pressed() {
			return m, nil
		}
		if d := m.dial(m.focusTarget()); d != nil {
			d.PointerMove(px, py)
		}
		return m, nil
	case tea.MouseActionRelease:
		m.pointers.Release(px, py)
		return m, nil
	}
	return m, nil
}

func (m *Model) press(x, y int, px, py float64) tea.Cmd {
	step := m.wizard.Step()
	if m.wizard.HasBack() && backRect(step).contains(x, y) {
		m.commitInput(m.focusTarget())
		return m.retreat()
	}
	if nextRect(step, nextLabel(m.wizard)).contains(x, y) {
		return m.advance()
	}
	if t, ok := inputAt(step, y); ok {
		m.commitInput(m.focusTarget())
		return m.focusOn(t)
	}
	if !canvasRect().contains(x, y) {
		return nil
	}
	switch step {
	case 1, 3:
		t := targetYear
		if step == 3 {
			t = targetTravelers
		}
		cmd := m.focusOn(t)
		m.dial(t).PointerDown(px, py)
		return cmd
	case 2:
		cmd := m.focusOn(targetRing)
		cx, cy := canvasCenterPointer()
		if i, ok := m.ring.HitTest(px-cx, py-cy, ringPointerRadius, ringHitTolerance); ok {
			m.selectLocation(m.ring.Items()[i].ID)
		}
		return cmd
	}
	return nil
}
