package wizard

import (
	"strings"

	"mechanicbook/models"
)

// Driveable is a tri-state answer: not given, yes or no.
type Driveable int

const (
	DriveableUnset Driveable = iota
	DriveableYes
	DriveableNo
)

// Bool returns nil while unset.
func (d Driveable) Bool() *bool {
	if d == DriveableUnset {
		return nil
	}
	v := d == DriveableYes
	return &v
}

// Car is the normalised vehicle context collected on the first step.
type Car struct {
	Reg       string
	Postcode  string
	AreaLabel string
	Vehicle   *models.Vehicle
}

// Form mirrors what the user typed, untrimmed.
type Form struct {
	Reg             string
	Postcode        string
	Name            string
	Email           string
	Phone           string
	AddressLine     string
	AddressPostcode string
	Notes           string
}

// Session is everything one customer has entered during a booking.
// It is owned by a single UI loop and mutated only through Wizard methods.
type Session struct {
	CurrentStep      int
	Submitted        bool
	Car              Car
	SelectedCategory string
	Basket           Basket
	Availability     []models.AvailabilitySlot
	Driveable        Driveable
	Notes            string
	Contact          models.Contact
	Clarifier        *Clarifier
	Form             Form
	Receipt          *models.SubmitJobResponse

	addressPrefilled bool
}

// NewSession returns an empty session using the given clarifier questions.
func NewSession(questions []string) *Session {
	return &Session{Clarifier: NewClarifier(questions)}
}

func (s *Session) hasSlot(day, slot string) bool {
	for _, a := range s.Availability {
		if a.Day == day && a.Slot == slot {
			return true
		}
	}
	return false
}

// toggleSlot flips the (day, slot) pair and reports whether it is now selected.
func (s *Session) toggleSlot(day, slot string) bool {
	for i, a := range s.Availability {
		if a.Day == day && a.Slot == slot {
			s.Availability = append(s.Availability[:i], s.Availability[i+1:]...)
			return false
		}
	}
	s.Availability = append(s.Availability, models.AvailabilitySlot{Day: day, Slot: slot})
	return true
}

func normalizeUpper(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// compactReg strips all whitespace from a registration and uppercases it.
func compactReg(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}
