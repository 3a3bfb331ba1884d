package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Field string

const (
	FieldName      Field = "name"
	FieldEmail     Field = "email"
	FieldYear      Field = "year"
	FieldLocation  Field = "location"
	FieldTravelers Field = "travelers"
	FieldPurpose   Field = "purpose"
)

func (f Field) Valid() bool {
	switch f {
	case FieldName, FieldEmail, FieldYear, FieldLocation, FieldTravelers, FieldPurpose:
		return true
	}
	return false
}

type BookingDraft struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Year       int    `json:"year"`
	LocationID string `json:"location"`
	Travelers  int    `json:"travelers"`
	Purpose    string `json:"purpose"`
}

// A party is always between MinTravelers and MaxTravelers strong.
const (
	MinTravelers = 1
	MaxTravelers = 10
)

// Bounds carries the numeric limits and defaults a draft is held to.
type Bounds struct {
	YearMin          int
	YearMax          int
	YearStep         int
	YearDefault      int
	TravelersMin     int
	TravelersMax     int
	TravelersDefault int
	DefaultLocation  string
}

func DefaultBounds() Bounds {
	return Bounds{
		YearMin:          1800,
		YearMax:          2500,
		YearStep:         10,
		YearDefault:      2150,
		TravelersMin:     MinTravelers,
		TravelersMax:     MaxTravelers,
		TravelersDefault: 1,
		DefaultLocation:  "new-york",
	}
}

func (b Bounds) NewDraft() BookingDraft {
	return BookingDraft{
		Year:       b.YearDefault,
		LocationID: b.DefaultLocation,
		Travelers:  b.TravelersDefault,
	}
}

// Text returns the string value of a text field.
func (d BookingDraft) Text(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPurpose:
		return d.Purpose
	case FieldLocation:
		return d.LocationID
	case FieldYear:
		return fmt.Sprint(d.Year)
	case FieldTravelers:
		return fmt.Sprint(d.Travelers)
	}
	return ""
}

// Missing lists the fields among required that have no value.
func (d BookingDraft) Missing(required []Field) []Field {
	var out []Field
	for _, f := range required {
		if strings.TrimSpace(d.Text(f)) == "" {
			out = append(out, f)
		}
	}
	return out
}

// Booking is the record emitted when a draft is confirmed.
type Booking struct {
	ID           uuid.UUID    `json:"id"`
	SessionID    uuid.UUID    `json:"session_id"`
	Draft        BookingDraft `json:"draft"`
	LocationName string       `json:"location_name"`
	ConfirmedAt  time.Time    `json:"confirmed_at"`
}

func (b Booking) Summary() string {
	return fmt.Sprintf("Your journey to %s in %d has been confirmed.", b.LocationName, b.Draft.Year)
}

// EraLabel describes year relative to the reference year.
func EraLabel(year, reference int) string {
	if year < reference {
		return fmt.Sprintf("Past - %d years ago", reference-year)
	}
	return fmt.Sprintf("Future - %d years from now", year-reference)
}
