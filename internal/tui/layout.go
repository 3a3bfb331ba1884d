package tui

import "github.com/jask/timeportal/core"

// Terminal cells are roughly twice as tall as they are wide. Pointer rows are
// scaled by cellAspect so the dial geometry stays circular.
const cellAspect = 2.0

const (
	cardLeft   = 2
	cardWidth  = 44
	bodyTop    = 6
	ringRadius = 6 // rows; columns span twice as many cells
	canvasRows = 2*ringRadius + 1
	canvasCols = 4*ringRadius + 1

	// canvasTop is the first canvas row relative to bodyTop.
	canvasTop    = 1
	canvasIndent = (cardWidth - canvasCols) / 2

	// ringPointerRadius is the ring radius in pointer space.
	ringPointerRadius = 2 * ringRadius
	ringHitTolerance  = 4.0
)

// Body rows below the canvas, relative to bodyTop.
const (
	belowCanvas    = canvasTop + canvasRows
	searchRow      = belowCanvas + 1
	suggestRow     = belowCanvas + 2
	purposeLabel   = belowCanvas + 1
	purposeRow     = belowCanvas + 2
	summaryHeading = belowCanvas + 4
	summaryLines   = 4
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// canvasRect is where the dial or ring canvas is drawn on screen.
func canvasRect() rect {
	return rect{x: cardLeft + canvasIndent, y: bodyTop + canvasTop, w: canvasCols, h: canvasRows}
}

// canvasCenter is the canvas centre cell.
func canvasCenter() (int, int) {
	r := canvasRect()
	return r.x + 2*ringRadius, r.y + ringRadius
}

// pointerCoords converts a cell to the aspect-corrected pointer space.
func pointerCoords(x, y int) (float64, float64) {
	return float64(x), float64(y) * cellAspect
}

func canvasCenterPointer() (float64, float64) {
	return pointerCoords(canvasCenter())
}

// bodyHeight is the number of body rows each step draws.
func bodyHeight(step int) int {
	switch step {
	case 0:
		return 5
	case 1:
		return belowCanvas + 1
	case 2:
		return suggestRow + 1
	default:
		return summaryHeading + 1 + summaryLines
	}
}

// inputAt reports which text input, if any, is drawn on screen row y.
func inputAt(step, y int) (target, bool) {
	row := y - bodyTop
	switch step {
	case 0:
		switch row {
		case 0, 1:
			return targetName, true
		case 3, 4:
			return targetEmail, true
		}
	case 2:
		if row == searchRow {
			return targetSearch, true
		}
	case 3:
		if row == purposeLabel || row == purposeRow {
			return targetPurpose, true
		}
	}
	return 0, false
}

func buttonRow(step int) int {
	return bodyTop + bodyHeight(step) + 1
}

const backLabel = "[ Back ]"

func nextLabel(w *core.Wizard) string {
	return "[ " + w.NextLabel() + " ]"
}

func backRect(step int) rect {
	return rect{x: cardLeft, y: buttonRow(step), w: len(backLabel), h: 1}
}

func nextRect(step int, label string) rect {
	return rect{x: cardLeft + cardWidth - len(label), y: buttonRow(step), w: len(label), h: 1}
}
