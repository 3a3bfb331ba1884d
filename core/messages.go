package core

import tea "github.com/charmbracelet/bubbletea"

type StatusMsg struct {
	Text  string
	IsErr bool
}

// TransitionDoneMsg fires when a scheduled step transition's delay elapses.
type TransitionDoneMsg struct {
	Seq uint64
}

// BookingConfirmedMsg carries the booking produced by a submit.
type BookingConfirmedMsg struct {
	Booking Booking
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{Text: "", IsErr: false}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

func confirmedCmd(b Booking) tea.Cmd {
	return func() tea.Msg { return BookingConfirmedMsg{Booking: b} }
}
