package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/timeportal/core"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	step := m.wizard.Step()
	current := m.wizard.CurrentStep()

	lines := []string{
		m.renderHeader(),
		m.renderStatusBar(),
		"",
		indent(titleStyle.Render(current.Title)),
		indent(subtitleStyle.Render(current.Subtitle)),
		"",
	}
	body := fitLines(m.renderBody(step), bodyHeight(step))
	if m.wizard.Transitioning() {
		for i, line := range body {
			body[i] = flipStyle.Render(ansi.Strip(line))
		}
	}
	for _, line := range body {
		lines = append(lines, indent(line))
	}
	lines = append(lines, "", m.renderButtons(step))

	main := fitHeight(strings.Join(lines, "\n"), max(1, m.height-1))
	return main + "\n" + m.renderFooter()
}

func indent(s string) string {
	return strings.Repeat(" ", cardLeft) + s
}

func (m Model) renderBody(step int) []string {
	switch step {
	case 0:
		return []string{
			m.fieldLabel("Name", targetName),
			m.name.View(),
			"",
			m.fieldLabel("Email", targetEmail),
			m.email.View(),
		}
	case 1:
		out := []string{m.fieldLabel("Destination year", targetYear)}
		out = append(out, center(renderDial(m.year))...)
		era := core.EraLabel(m.wizard.Draft().Year, m.referenceYear)
		return append(out, centerText(mutedStyle.Render(era), ansi.StringWidth(era)))
	case 2:
		out := []string{m.fieldLabel("Destination", targetRing)}
		out = append(out, center(renderRing(m.ring))...)
		return append(out,
			labelStyle.Render("Selected destination: ")+dialValueStyle.Render(m.wizard.SelectedLocationName()),
			m.search.View(),
			m.renderSuggestions(),
		)
	default:
		d := m.wizard.Draft()
		out := []string{m.fieldLabel("Number of travelers", targetTravelers)}
		out = append(out, center(renderDial(m.travelers))...)
		out = append(out,
			"",
			m.fieldLabel("Purpose of travel", targetPurpose),
			m.purpose.View(),
			"",
			titleStyle.Render("Journey summary"),
			summaryLine("Traveler", strings.TrimSpace(d.Name+" "+bracketed(d.Email))),
			summaryLine("When", fmt.Sprintf("%d (%s)", d.Year, core.EraLabel(d.Year, m.referenceYear))),
			summaryLine("Where", m.wizard.SelectedLocationName()),
			summaryLine("Party", travelersText(d.Travelers)),
		)
		return out
	}
}

// maxSuggestions bounds the destinations listed under the search box.
const maxSuggestions = 3

func (m Model) renderSuggestions() string {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		return ""
	}
	matches := core.Locations(m.wizard.Locations()).Suggest(query, maxSuggestions)
	if len(matches) == 0 {
		return mutedStyle.Render("  no match")
	}
	names := make([]string, len(matches))
	for i, l := range matches {
		names[i] = l.Name
	}
	return mutedStyle.Render("  " + strings.Join(names, " · "))
}

func (m Model) fieldLabel(text string, t target) string {
	if m.focusTarget() == t {
		return focusStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func bracketed(email string) string {
	if strings.TrimSpace(email) == "" {
		return ""
	}
	return "<" + email + ">"
}

func summaryLine(label, value string) string {
	if value == "" {
		value = "-"
	}
	return mutedStyle.Render(fmt.Sprintf("%-9s", label+":")) + " " + dialValueStyle.Render(value)
}

func travelersText(n int) string {
	if n == 1 {
		return "1 traveler"
	}
	return fmt.Sprintf("%d travelers", n)
}

func (m Model) renderButtons(step int) string {
	next := nextLabel(m.wizard)
	left := ""
	if m.wizard.HasBack() {
		left = buttonStyle.Render(backLabel)
	}
	leftW := 0
	if left != "" {
		leftW = len(backLabel)
	}
	gap := max(1, nextRect(step, next).x-cardLeft-leftW)
	return indent(left + strings.Repeat(" ", gap) + primaryButtonStyle.Render(next))
}

func (m Model) renderHeader() string {
	left := "Time Portal"
	right := fmt.Sprintf("Step %d of %d", m.wizard.Step()+1, m.wizard.StepCount())
	if m.wizard.Transitioning() {
		dir, _ := m.wizard.Pending()
		right = "flipping " + dir.String() + "  " + right
	}
	width := max(1, m.width)
	gap := max(1, width-ansi.StringWidth(left)-ansi.StringWidth(right)-2)
	return renderBar(headerBarStyle, width, " "+left+strings.Repeat(" ", gap)+right+" ")
}

func (m Model) renderStatusBar() string {
	msg := strings.TrimSpace(m.status)
	if msg == "" {
		msg = "Ready"
	}
	if m.statusErr {
		return renderBar(statusErrStyle, max(1, m.width), msg)
	}
	return renderBar(statusBarStyle, max(1, m.width), msg)
}

func (m Model) renderFooter() string {
	return renderFooter(m.keys.BindingsForScope(m.ActiveScope()), max(1, m.width))
}

// cell is one styled character of a canvas.
type cell struct {
	ch    string
	style *lipgloss.Style
}

type canvas [canvasRows][canvasCols]cell

func newCanvas() *canvas {
	c := &canvas{}
	for r := range c {
		for col := range c[r] {
			c[r][col] = cell{ch: " "}
		}
	}
	return c
}

func (c *canvas) set(r, col int, ch string, style *lipgloss.Style) {
	if r < 0 || r >= canvasRows || col < 0 || col >= canvasCols {
		return
	}
	c[r][col] = cell{ch: ch, style: style}
}

// text writes s centred on row r.
func (c *canvas) text(r int, s string, style *lipgloss.Style) {
	runes := []rune(s)
	if len(runes) > canvasCols {
		runes = runes[:canvasCols]
	}
	start := (canvasCols - len(runes)) / 2
	for i, ch := range runes {
		c.set(r, start+i, string(ch), style)
	}
}

func (c *canvas) lines() []string {
	out := make([]string, canvasRows)
	for r := range c {
		var b strings.Builder
		for _, cl := range c[r] {
			if cl.style == nil {
				b.WriteString(cl.ch)
				continue
			}
			b.WriteString(cl.style.Render(cl.ch))
		}
		out[r] = b.String()
	}
	return out
}

// onRing reports whether canvas cell (r, col) lies on the ring and its
// offset from the centre in pointer space.
func onRing(r, col int) (float64, float64, bool) {
	dx := float64(col - 2*ringRadius)
	dy := float64(r-ringRadius) * cellAspect
	return dx, dy, math.Abs(math.Hypot(dx, dy)-ringPointerRadius) <= 1
}

// ringCell is the canvas cell drawn at angle degrees on the ring.
func ringCell(angle float64) (int, int) {
	rad := angle * math.Pi / 180
	col := 2*ringRadius + int(math.Round(ringPointerRadius*math.Sin(rad)))
	r := ringRadius + int(math.Round(-ringPointerRadius*math.Cos(rad)/cellAspect))
	return r, col
}

func renderDial(d *core.Dial) []string {
	c := newCanvas()
	filledTo := d.Angle()
	for r := 0; r < canvasRows; r++ {
		for col := 0; col < canvasCols; col++ {
			dx, dy, ok := onRing(r, col)
			if !ok {
				continue
			}
			if filledTo > 0 && core.PointerAngle(dx, dy) <= filledTo {
				c.set(r, col, "●", &ringFillStyle)
			} else {
				c.set(r, col, "·", &ringTrackStyle)
			}
		}
	}
	mr, mc := ringCell(filledTo)
	c.set(mr, mc, "◆", &ringMarkerStyle)
	c.text(ringRadius-1, d.Label(), &mutedStyle)
	c.text(ringRadius, fmt.Sprintf("%d", d.IntValue()), &dialValueStyle)
	c.text(ringRadius+1, fmt.Sprintf("%.0f%%", d.Percentage()), &mutedStyle)
	return c.lines()
}

func renderRing(ring *core.Radial) []string {
	c := newCanvas()
	for r := 0; r < canvasRows; r++ {
		for col := 0; col < canvasCols; col++ {
			if _, _, ok := onRing(r, col); ok {
				c.set(r, col, "·", &ringTrackStyle)
			}
		}
	}
	items := ring.Items()
	for i, loc := range items {
		r, col := ringCell(ring.ItemAngle(i))
		style := &itemStyle
		if i == ring.SelectedIndex() {
			style = &itemActiveStyle
		}
		badge := []rune(loc.Abbrev())
		start := min(max(0, col-len(badge)/2), canvasCols-len(badge))
		for j, ch := range badge {
			c.set(r, start+j, string(ch), style)
		}
	}
	if sel, ok := ring.Selected(); ok {
		c.text(ringRadius, sel.Name, &dialValueStyle)
	}
	return c.lines()
}

func center(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Repeat(" ", canvasIndent) + line
	}
	return out
}

func centerText(s string, width int) string {
	pad := max(0, (cardWidth-width)/2)
	return strings.Repeat(" ", pad) + s
}

func fitLines(lines []string, height int) []string {
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func fitHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	return strings.Join(fitLines(strings.Split(s, "\n"), height), "\n")
}
