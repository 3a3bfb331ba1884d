package core

import (
	"math"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/timeportal/internal/logging"
)

// DefaultTransitionDelay matches half of the card flip animation.
const DefaultTransitionDelay = 400 * time.Millisecond

type Step struct {
	Title    string
	Subtitle string
	Required []Field
}

func DefaultSteps() []Step {
	return []Step{
		{Title: "Traveler Information", Subtitle: "Tell us about yourself", Required: []Field{FieldName, FieldEmail}},
		{Title: "Destination Time", Subtitle: "When would you like to travel?", Required: []Field{FieldYear}},
		{Title: "Destination Place", Subtitle: "Where would you like to travel?", Required: []Field{FieldLocation}},
		{Title: "Journey Details", Subtitle: "Final details for your time travel", Required: []Field{FieldTravelers}},
	}
}

type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBack
	DirectionSubmit
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBack:
		return "back"
	case DirectionSubmit:
		return "submit"
	}
	return "none"
}

type WizardOptions struct {
	Steps           []Step
	Locations       Locations
	Bounds          Bounds
	TransitionDelay time.Duration
	// RequireFields refuses to advance while the current step's required
	// fields are blank.
	RequireFields bool
	Logger        *zap.Logger
	Now           func() time.Time
}

type transition struct {
	seq uint64
	dir Direction
}

// Wizard owns the booking draft and the current step. Step changes are
// scheduled behind a fixed delay; requests made while one is pending are
// dropped.
type Wizard struct {
	steps     []Step
	locations Locations
	bounds    Bounds
	delay     time.Duration
	require   bool
	log       *zap.Logger
	now       func() time.Time

	step      int
	draft     BookingDraft
	sessionID uuid.UUID
	seq       uint64
	pending   *transition

	onConfirmed func(Booking)
}

func NewWizard(opts WizardOptions) *Wizard {
	if len(opts.Steps) == 0 {
		opts.Steps = DefaultSteps()
	}
	if len(opts.Locations) == 0 {
		opts.Locations = DefaultLocations()
	}
	if opts.Bounds == (Bounds{}) {
		opts.Bounds = DefaultBounds()
	}
	if !opts.Locations.Contains(opts.Bounds.DefaultLocation) {
		opts.Bounds.DefaultLocation = opts.Locations[0].ID
	}
	opts.Bounds.TravelersMin = clampInt(opts.Bounds.TravelersMin, MinTravelers, MaxTravelers)
	opts.Bounds.TravelersMax = clampInt(opts.Bounds.TravelersMax, opts.Bounds.TravelersMin, MaxTravelers)
	opts.Bounds.TravelersDefault = clampInt(opts.Bounds.TravelersDefault, opts.Bounds.TravelersMin, opts.Bounds.TravelersMax)
	if opts.TransitionDelay < 0 {
		opts.TransitionDelay = 0
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	w := &Wizard{
		steps:     append([]Step(nil), opts.Steps...),
		locations: append(Locations(nil), opts.Locations...),
		bounds:    opts.Bounds,
		delay:     opts.TransitionDelay,
		require:   opts.RequireFields,
		log:       opts.Logger.With(zap.String(logging.FieldComponent, "wizard")),
		now:       opts.Now,
	}
	w.Reset()
	return w
}

// OnConfirmed registers fn to observe every confirmed booking.
func (w *Wizard) OnConfirmed(fn func(Booking)) {
	w.onConfirmed = fn
}

// Reset starts a fresh session: first step, default draft, nothing pending.
func (w *Wizard) Reset() {
	w.step = 0
	w.draft = w.bounds.NewDraft()
	w.pending = nil
	w.sessionID = uuid.New()
}

func (w *Wizard) SessionID() uuid.UUID { return w.sessionID }

func (w *Wizard) Step() int { return w.step }

func (w *Wizard) StepCount() int { return len(w.steps) }

func (w *Wizard) CurrentStep() Step { return w.steps[w.step] }

func (w *Wizard) IsLast() bool { return w.step == len(w.steps)-1 }

func (w *Wizard) HasBack() bool { return w.step > 0 }

func (w *Wizard) NextLabel() string {
	if w.IsLast() {
		return "Confirm Booking"
	}
	return "Next"
}

func (w *Wizard) Draft() BookingDraft { return w.draft }

func (w *Wizard) Bounds() Bounds { return w.bounds }

func (w *Wizard) Locations() Locations {
	return append(Locations(nil), w.locations...)
}

func (w *Wizard) Delay() time.Duration { return w.delay }

func (w *Wizard) Transitioning() bool { return w.pending != nil }

// Pending reports the direction and sequence of the in-flight transition.
func (w *Wizard) Pending() (Direction, uint64) {
	if w.pending == nil {
		return DirectionNone, 0
	}
	return w.pending.dir, w.pending.seq
}

func (w *Wizard) SelectedLocationName() string {
	return w.locations.Name(w.draft.LocationID)
}

func (w *Wizard) RequestAdvance() tea.Cmd {
	if w.pending != nil {
		w.log.Debug("advance ignored while transitioning", zap.Int(logging.FieldStep, w.step))
		return nil
	}
	if w.require {
		if missing := w.draft.Missing(w.steps[w.step].Required); len(missing) > 0 {
			return ErrorCmd(errors.Newf("missing %s", errors.Safe(joinFields(missing))))
		}
	}
	if w.IsLast() {
		return w.begin(DirectionSubmit)
	}
	return w.begin(DirectionForward)
}

func (w *Wizard) RequestRetreat() tea.Cmd {
	if w.pending != nil || w.step == 0 {
		return nil
	}
	return w.begin(DirectionBack)
}

func (w *Wizard) begin(dir Direction) tea.Cmd {
	w.seq++
	seq := w.seq
	w.pending = &transition{seq: seq, dir: dir}
	w.log.Debug("transition scheduled",
		zap.Int(logging.FieldStep, w.step),
		zap.Uint64("seq", seq),
		zap.Stringer("direction", dir),
		zap.Duration("delay", w.delay),
	)
	if w.delay == 0 {
		return func() tea.Msg { return TransitionDoneMsg{Seq: seq} }
	}
	return tea.Tick(w.delay, func(time.Time) tea.Msg {
		return TransitionDoneMsg{Seq: seq}
	})
}

// Cancel drops the in-flight transition; its completion message becomes stale.
func (w *Wizard) Cancel() {
	if w.pending == nil {
		return
	}
	w.log.Debug("transition cancelled", zap.Uint64("seq", w.pending.seq))
	w.pending = nil
}

func (w *Wizard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TransitionDoneMsg:
		return w.Complete(msg.Seq)
	}
	return nil
}

// Complete applies the transition identified by seq. Stale or unknown
// sequences are ignored.
func (w *Wizard) Complete(seq uint64) tea.Cmd {
	if w.pending == nil || w.pending.seq != seq {
		return nil
	}
	dir := w.pending.dir
	w.pending = nil
	switch dir {
	case DirectionForward:
		if w.step < len(w.steps)-1 {
			w.step++
		}
	case DirectionBack:
		if w.step > 0 {
			w.step--
		}
	case DirectionSubmit:
		if b, ok := w.Submit(); ok {
			return confirmedCmd(b)
		}
	}
	w.log.Debug("step changed", zap.Int(logging.FieldStep, w.step))
	return nil
}

// Submit confirms the draft when on the last step, then starts a new session.
func (w *Wizard) Submit() (Booking, bool) {
	if !w.IsLast() {
		return Booking{}, false
	}
	b := Booking{
		ID:           uuid.New(),
		SessionID:    w.sessionID,
		Draft:        w.draft,
		LocationName: w.SelectedLocationName(),
		ConfirmedAt:  w.now(),
	}
	w.log.Info("booking confirmed",
		zap.String(logging.FieldBookingID, b.ID.String()),
		zap.String(logging.FieldSessionID, b.SessionID.String()),
		zap.String("location", b.Draft.LocationID),
		zap.Int("year", b.Draft.Year),
		zap.Int("travelers", b.Draft.Travelers),
	)
	w.Reset()
	if w.onConfirmed != nil {
		w.onConfirmed(b)
	}
	return b, true
}

// SetField writes one draft field. Text fields take strings; year and
// travelers take ints, floats or numeric strings and are clamped to their
// bounds; location must name a configured id. It reports whether the draft
// accepted the value.
func (w *Wizard) SetField(f Field, value any) bool {
	if !f.Valid() {
		w.log.Debug("unknown field", zap.String("field", string(f)))
		return false
	}
	switch f {
	case FieldName, FieldEmail, FieldPurpose:
		s, ok := value.(string)
		if !ok {
			return false
		}
		switch f {
		case FieldName:
			w.draft.Name = s
		case FieldEmail:
			w.draft.Email = s
		default:
			w.draft.Purpose = s
		}
		return true
	case FieldYear:
		n, ok := toInt(value)
		if !ok {
			return false
		}
		w.draft.Year = clampInt(n, w.bounds.YearMin, w.bounds.YearMax)
		return true
	case FieldTravelers:
		n, ok := toInt(value)
		if !ok {
			return false
		}
		w.draft.Travelers = clampInt(n, w.bounds.TravelersMin, w.bounds.TravelersMax)
		return true
	case FieldLocation:
		id, ok := value.(string)
		if !ok {
			return false
		}
		return w.SelectLocation(id)
	}
	return false
}

// SelectLocation is the choiceSelected event. Unknown ids are ignored.
func (w *Wizard) SelectLocation(id string) bool {
	if !w.locations.Contains(id) {
		return false
	}
	w.draft.LocationID = id
	return true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if !isFinite(n) {
			return 0, false
		}
		return int(math.Round(n)), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func joinFields(fs []Field) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
