package core

import "math"

// DialConfig bounds a Dial. Step defaults to 1 when zero.
type DialConfig struct {
	Min   float64
	Max   float64
	Step  float64
	Label string
}

func (c DialConfig) valid() bool {
	return c.Max > c.Min && c.Step > 0 && isFinite(c.Min) && isFinite(c.Max) && isFinite(c.Step)
}

// ComputeAngle maps value onto the dial face in degrees, 0 at the top,
// clockwise. A collapsed range reports 0.
func ComputeAngle(value, min, max float64) float64 {
	if !(max > min) || !isFinite(value) {
		return 0
	}
	return 360 * (value - min) / (max - min)
}

// DragValue converts a pointer position around (cx, cy) into a stepped value
// in [min, max]. ok is false when the range or coordinates cannot be mapped,
// in which case the caller keeps its current value.
func DragValue(px, py, cx, cy, min, max, step float64) (float64, bool) {
	if !(max > min) || !(step > 0) {
		return 0, false
	}
	for _, f := range []float64{px, py, cx, cy, min, max, step} {
		if !isFinite(f) {
			return 0, false
		}
	}
	return valueAtAngle(PointerAngle(px-cx, py-cy), min, max, step), true
}

// PointerAngle is atan2 rotated so that straight up is 0 and angles grow
// clockwise in screen coordinates (y down), normalised into [0, 360).
func PointerAngle(dx, dy float64) float64 {
	raw := math.Atan2(dy, dx) * 180 / math.Pi
	angle := math.Mod(raw+90, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func valueAtAngle(angle, min, max, step float64) float64 {
	v := min + (max-min)*angle/360
	v = math.Round(v/step) * step
	return clampFloat(v, min, max)
}

// Dial is the drag state of one circular selector.
type Dial struct {
	cfg      DialConfig
	value    float64
	dragging bool

	cx, cy float64

	pointers *PointerDispatcher
	release  ReleaseHandle

	onChange func(float64)
}

func NewDial(cfg DialConfig, initial float64, pointers *PointerDispatcher) *Dial {
	if cfg.Step == 0 {
		cfg.Step = 1
	}
	d := &Dial{cfg: cfg, value: initial, pointers: pointers}
	d.SetValue(initial)
	return d
}

func (d *Dial) Config() DialConfig { return d.cfg }

func (d *Dial) Label() string { return d.cfg.Label }

func (d *Dial) Value() float64 { return d.value }

func (d *Dial) IntValue() int { return int(math.Round(d.value)) }

func (d *Dial) Dragging() bool { return d.dragging }

func (d *Dial) Angle() float64 {
	return ComputeAngle(d.value, d.cfg.Min, d.cfg.Max)
}

// Percentage is the filled share of the dial face, 0..100.
func (d *Dial) Percentage() float64 {
	return d.Angle() / 360 * 100
}

// OnChange registers fn to receive every value produced by a drag.
func (d *Dial) OnChange(fn func(float64)) {
	d.onChange = fn
}

// SetCenter records the dial centre in the coordinate space of later pointer
// events.
func (d *Dial) SetCenter(cx, cy float64) {
	d.cx, d.cy = cx, cy
}

// SetValue snaps v onto the dial's step grid. Invalid ranges hold the value.
func (d *Dial) SetValue(v float64) {
	if !d.cfg.valid() || !isFinite(v) {
		return
	}
	d.value = clampFloat(math.Round(v/d.cfg.Step)*d.cfg.Step, d.cfg.Min, d.cfg.Max)
}

// PointerDown starts a drag and applies the press position. The drag ends on
// the next release seen by the dispatcher, wherever it happens.
func (d *Dial) PointerDown(x, y float64) {
	if d.dragging {
		d.apply(x, y)
		return
	}
	d.dragging = true
	if d.pointers != nil {
		d.release = d.pointers.OnRelease(func(float64, float64) {
			d.PointerUp()
		})
	}
	d.apply(x, y)
}

func (d *Dial) PointerMove(x, y float64) {
	if !d.dragging {
		return
	}
	d.apply(x, y)
}

func (d *Dial) PointerUp() {
	if !d.dragging {
		return
	}
	d.dragging = false
	d.release.Remove()
	d.release = ReleaseHandle{}
}

func (d *Dial) apply(x, y float64) {
	v, ok := DragValue(x, y, d.cx, d.cy, d.cfg.Min, d.cfg.Max, d.cfg.Step)
	if !ok {
		return
	}
	d.value = v
	if d.onChange != nil {
		d.onChange(v)
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
