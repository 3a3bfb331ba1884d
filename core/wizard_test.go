package core

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewWizardCapsPartySize(t *testing.T) {
	b := DefaultBounds()
	b.TravelersMin, b.TravelersMax, b.TravelersDefault = 0, 50, 40
	w := newTestWizard(t, WizardOptions{Bounds: b})
	assert.Equal(t, MinTravelers, w.Bounds().TravelersMin)
	assert.Equal(t, MaxTravelers, w.Bounds().TravelersMax)
	assert.Equal(t, MaxTravelers, w.Draft().Travelers)

	assert.True(t, w.SetField(FieldTravelers, 50))
	assert.Equal(t, MaxTravelers, w.Draft().Travelers)
}

func newTestWizard(t *testing.T, opts WizardOptions) *Wizard {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return NewWizard(opts)
}

// settle runs cmd (sleeping through any tick) and feeds the result back into
// the wizard, returning whatever the wizard emits in turn.
func settle(t *testing.T, w *Wizard, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(TransitionDoneMsg)
	require.True(t, ok, "expected TransitionDoneMsg, got %T", msg)
	next := w.Update(done)
	if next == nil {
		return nil
	}
	return next()
}

func TestWizardDefaults(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	assert.Equal(t, 0, w.Step())
	assert.Equal(t, 4, w.StepCount())
	assert.False(t, w.HasBack())
	assert.Equal(t, "Next", w.NextLabel())
	assert.Equal(t, BookingDraft{Year: 2150, LocationID: "new-york", Travelers: 1}, w.Draft())
	assert.Equal(t, "New York", w.SelectedLocationName())
	assert.Equal(t, "Traveler Information", w.CurrentStep().Title)
}

func TestWizardRetreatAtFirstStepIsNoop(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	assert.Nil(t, w.RequestRetreat())
	assert.False(t, w.Transitioning())
	assert.Equal(t, 0, w.Step())
}

func TestWizardStepMovesOnlyAfterTransition(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	cmd := w.RequestAdvance()
	require.NotNil(t, cmd)
	assert.True(t, w.Transitioning())
	assert.Equal(t, 0, w.Step(), "step must not move before the delay elapses")

	dir, seq := w.Pending()
	assert.Equal(t, DirectionForward, dir)
	w.Update(TransitionDoneMsg{Seq: seq})
	assert.Equal(t, 1, w.Step())
	assert.False(t, w.Transitioning())
	assert.True(t, w.HasBack())

	_, seq = w.Pending()
	assert.Zero(t, seq)
	require.NotNil(t, w.RequestRetreat())
	_, seq = w.Pending()
	w.Update(TransitionDoneMsg{Seq: seq})
	assert.Equal(t, 0, w.Step())
}

func TestWizardIgnoresRequestsWhileTransitioning(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	require.NotNil(t, w.RequestAdvance())
	_, seq := w.Pending()

	assert.Nil(t, w.RequestAdvance())
	assert.Nil(t, w.RequestRetreat())
	_, again := w.Pending()
	assert.Equal(t, seq, again)

	w.Update(TransitionDoneMsg{Seq: seq})
	assert.Equal(t, 1, w.Step())
}

func TestWizardCancelDropsPendingTransition(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	require.NotNil(t, w.RequestAdvance())
	_, seq := w.Pending()
	w.Cancel()
	assert.False(t, w.Transitioning())

	assert.Nil(t, w.Update(TransitionDoneMsg{Seq: seq}))
	assert.Equal(t, 0, w.Step(), "stale completion must not move the step")

	require.NotNil(t, w.RequestAdvance())
	_, next := w.Pending()
	assert.Greater(t, next, seq)
	w.Cancel()
	w.Cancel()
}

func TestWizardTickCarriesSequence(t *testing.T) {
	w := newTestWizard(t, WizardOptions{TransitionDelay: 5 * time.Millisecond})
	assert.Equal(t, 5*time.Millisecond, w.Delay())
	start := time.Now()
	cmd := w.RequestAdvance()
	require.NotNil(t, cmd)
	msg := cmd()
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	_, seq := w.Pending()
	assert.Equal(t, TransitionDoneMsg{Seq: seq}, msg)
}

func TestWizardAdvanceOnLastStepSubmits(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	for i := 0; i < 3; i++ {
		assert.Nil(t, settle(t, w, w.RequestAdvance()))
	}
	require.Equal(t, 3, w.Step())
	assert.Equal(t, "Confirm Booking", w.NextLabel())

	w.SetField(FieldName, "Grace")
	cmd := w.RequestAdvance()
	dir, _ := w.Pending()
	assert.Equal(t, DirectionSubmit, dir)
	assert.Equal(t, 3, w.Step())

	msg := settle(t, w, cmd)
	confirmed, ok := msg.(BookingConfirmedMsg)
	require.True(t, ok, "expected BookingConfirmedMsg, got %T", msg)
	assert.Equal(t, "Grace", confirmed.Booking.Draft.Name)
	assert.Equal(t, 0, w.Step())
}

func TestWizardSubmitOnlyOnLastStep(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	_, ok := w.Submit()
	assert.False(t, ok)
}

func TestWizardSubmitResetsDraft(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})
	for i := 0; i < 3; i++ {
		settle(t, w, w.RequestAdvance())
	}
	before := w.SessionID()
	require.True(t, w.SetField(FieldEmail, "ada@example.com"))
	require.True(t, w.SetField(FieldPurpose, "research"))
	require.True(t, w.SetField(FieldTravelers, 4))

	var observed []Booking
	w.OnConfirmed(func(b Booking) { observed = append(observed, b) })

	b, ok := w.Submit()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", b.Draft.Email)
	assert.Equal(t, 4, b.Draft.Travelers)
	assert.Equal(t, before, b.SessionID)
	assert.Equal(t, fixedNow, b.ConfirmedAt)
	assert.Equal(t, "New York", b.LocationName)
	assert.Equal(t, "Your journey to New York in 2150 has been confirmed.", b.Summary())
	assert.Len(t, observed, 1)

	assert.Equal(t, 0, w.Step())
	assert.Equal(t, BookingDraft{Year: 2150, LocationID: "new-york", Travelers: 1}, w.Draft())
	assert.NotEqual(t, before, w.SessionID())
}

func TestWizardSetField(t *testing.T) {
	w := newTestWizard(t, WizardOptions{})

	assert.True(t, w.SetField(FieldYear, 1850.0))
	assert.Equal(t, 1850, w.Draft().Year)
	assert.True(t, w.SetField(FieldYear, "1900"))
	assert.Equal(t, 1900, w.Draft().Year)
	assert.True(t, w.SetField(FieldYear, 3000))
	assert.Equal(t, 2500, w.Draft().Year)
	assert.False(t, w.SetField(FieldYear, "soon"))
	assert.Equal(t, 2500, w.Draft().Year)

	assert.True(t, w.SetField(FieldTravelers, 0))
	assert.Equal(t, 1, w.Draft().Travelers)
	assert.True(t, w.SetField(FieldTravelers, int64(11)))
	assert.Equal(t, 10, w.Draft().Travelers)

	assert.False(t, w.SetField(FieldName, 42))
	assert.False(t, w.SetField(Field("age"), "9"))

	assert.True(t, w.SetField(FieldLocation, "cairo"))
	assert.Equal(t, "Cairo", w.SelectedLocationName())
	assert.False(t, w.SetField(FieldLocation, "atlantis"))
	assert.Equal(t, "cairo", w.Draft().LocationID)
}

func TestWizardRequireFieldsGatesAdvance(t *testing.T) {
	w := newTestWizard(t, WizardOptions{RequireFields: true})
	cmd := w.RequestAdvance()
	require.NotNil(t, cmd)
	assert.False(t, w.Transitioning())
	status, ok := cmd().(StatusMsg)
	require.True(t, ok)
	assert.True(t, status.IsErr)
	assert.Contains(t, status.Text, "name, email")

	w.SetField(FieldName, "Ada")
	w.SetField(FieldEmail, "ada@example.com")
	settle(t, w, w.RequestAdvance())
	assert.Equal(t, 1, w.Step())
}

func TestWizardFallsBackToFirstLocation(t *testing.T) {
	locs := Locations{{ID: "mars", Name: "Mars"}, {ID: "moon", Name: "Moon"}}
	w := newTestWizard(t, WizardOptions{Locations: locs})
	assert.Equal(t, "mars", w.Draft().LocationID)
}

func TestWizardEndToEnd(t *testing.T) {
	w := newTestWizard(t, WizardOptions{TransitionDelay: time.Millisecond})
	pointers := NewPointerDispatcher()
	b := w.Bounds()
	year := NewDial(DialConfig{
		Min:  float64(b.YearMin),
		Max:  float64(b.YearMax),
		Step: float64(b.YearStep),
	}, float64(w.Draft().Year), pointers)
	year.SetCenter(96, 96)
	year.OnChange(func(v float64) { w.SetField(FieldYear, v) })
	ring := NewRadial(w.Locations(), w.Draft().LocationID)

	require.True(t, w.SetField(FieldName, "Ada"))
	settle(t, w, w.RequestAdvance())
	require.Equal(t, 1, w.Step())

	angle := ComputeAngle(1850, 1800, 2500)
	assert.InDelta(t, 25.714, angle, 1e-3)
	x, y := pointAt(96, 96, 80, angle)
	pointers.Press()
	year.PointerDown(x, y)
	pointers.Release(x+300, y+300)
	assert.False(t, year.Dragging())
	assert.Equal(t, 1850, w.Draft().Year)

	settle(t, w, w.RequestAdvance())
	require.Equal(t, 2, w.Step())

	_, ok := ring.Select("tokyo")
	require.True(t, ok)
	require.True(t, w.SelectLocation("tokyo"))
	settle(t, w, w.RequestAdvance())
	require.Equal(t, 3, w.Step())

	msg := settle(t, w, w.RequestAdvance())
	confirmed, ok := msg.(BookingConfirmedMsg)
	require.True(t, ok)
	assert.Equal(t, BookingDraft{Name: "Ada", Year: 1850, LocationID: "tokyo", Travelers: 1}, confirmed.Booking.Draft)
	assert.Equal(t, "Tokyo", confirmed.Booking.LocationName)

	assert.Equal(t, 0, w.Step())
	assert.Equal(t, w.Bounds().NewDraft(), w.Draft())
}

func TestEraLabel(t *testing.T) {
	assert.Equal(t, "Past - 173 years ago", EraLabel(1850, 2023))
	assert.Equal(t, "Future - 127 years from now", EraLabel(2150, 2023))
	assert.Equal(t, "Future - 0 years from now", EraLabel(2023, 2023))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "forward", DirectionForward.String())
	assert.Equal(t, "back", DirectionBack.String())
	assert.Equal(t, "submit", DirectionSubmit.String())
	assert.Equal(t, "none", DirectionNone.String())
}
