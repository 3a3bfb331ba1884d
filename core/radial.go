package core

import "math"

// PlacementAngle is the fixed angle of item i among n, 0 at the top.
func PlacementAngle(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) * 360 / float64(n)
}

// Placement is the offset of item i from the selector centre at radius r,
// in screen coordinates (y down).
func Placement(i, n int, radius float64) (float64, float64) {
	rad := (PlacementAngle(i, n) - 90) * math.Pi / 180
	return radius * math.Cos(rad), radius * math.Sin(rad)
}

// RotationFor is the selector rotation that brings item i to the top.
func RotationFor(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return -float64(i) * 360 / float64(n)
}

// Radial rotates a fixed ring of locations so the selected one sits on top.
type Radial struct {
	items    []Location
	selected int
	rotation float64
}

func NewRadial(items []Location, selectedID string) *Radial {
	r := &Radial{items: append([]Location(nil), items...)}
	r.Select(selectedID)
	return r
}

func (r *Radial) Items() []Location {
	return append([]Location(nil), r.items...)
}

func (r *Radial) Len() int { return len(r.items) }

func (r *Radial) Rotation() float64 { return r.rotation }

func (r *Radial) SelectedIndex() int { return r.selected }

func (r *Radial) Selected() (Location, bool) {
	if r.selected < 0 || r.selected >= len(r.items) {
		return Location{}, false
	}
	return r.items[r.selected], true
}

// Select moves the ring to id. Unknown ids leave the selection untouched.
func (r *Radial) Select(id string) (float64, bool) {
	for i, it := range r.items {
		if it.ID == id {
			return r.SelectIndex(i)
		}
	}
	return r.rotation, false
}

func (r *Radial) SelectIndex(i int) (float64, bool) {
	if i < 0 || i >= len(r.items) {
		return r.rotation, false
	}
	r.selected = i
	r.rotation = RotationFor(i, len(r.items))
	return r.rotation, true
}

// ItemAngle is where item i currently appears once the ring is rotated.
func (r *Radial) ItemAngle(i int) float64 {
	return normalizeDegrees(PlacementAngle(i, len(r.items)) + r.rotation)
}

// HitTest resolves a pointer offset from the centre to the item drawn
// nearest to it. Points closer than radius-tolerance or further than
// radius+tolerance hit nothing.
func (r *Radial) HitTest(dx, dy, radius, tolerance float64) (int, bool) {
	if len(r.items) == 0 || !isFinite(dx) || !isFinite(dy) {
		return 0, false
	}
	dist := math.Hypot(dx, dy)
	if dist < radius-tolerance || dist > radius+tolerance {
		return 0, false
	}
	angle := PointerAngle(dx, dy)
	best, bestDelta := -1, math.MaxFloat64
	for i := range r.items {
		delta := angularDistance(angle, r.ItemAngle(i))
		if delta < bestDelta {
			best, bestDelta = i, delta
		}
	}
	if bestDelta > 180/float64(len(r.items)) {
		return 0, false
	}
	return best, true
}

func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func angularDistance(a, b float64) float64 {
	d := math.Abs(normalizeDegrees(a) - normalizeDegrees(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}
