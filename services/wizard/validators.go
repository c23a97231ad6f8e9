package wizard

import (
	"fmt"
	"regexp"
	"strings"

	"mechanicbook/models"
)

// Scope names the part of the wizard a validation message belongs to.
type Scope string

const (
	ScopeCar      Scope = "car"
	ScopeCategory Scope = "category"
	ScopeServices Scope = "services"
	ScopeDetails  Scope = "details"
	ScopeSubmit   Scope = "submit"
)

const (
	MsgVehicleStep     = "Enter a valid registration and postcode to continue."
	MsgCategoryMissing = "Select a category to continue."
	MsgBasketEmpty     = "Add at least one service to your basket."
	MsgContactInvalid  = "Please add your name, phone and address with a valid postcode. Email is optional."
	MsgNoAvailability  = "Select an availability slot for the week."
	MsgDriveableUnset  = "Tell us if the vehicle is driveable."
	MsgSubmitFailed    = "We couldn't send your request. Please try again."
)

// MinPhoneLength is the shortest phone number accepted on the details step.
const MinPhoneLength = 6

var (
	postcodePattern = regexp.MustCompile(`(?i)^[A-Za-z]{1,2}\d[A-Za-z\d]?\s*\d[A-Za-z]{2}$`)
	emailPattern    = regexp.MustCompile(`.+@.+\..+`)
)

// Verdict is the outcome of one validator.
type Verdict struct {
	Valid   bool
	Scope   Scope
	Message string
}

func pass() Verdict { return Verdict{Valid: true} }

func fail(scope Scope, msg string) Verdict {
	return Verdict{Scope: scope, Message: msg}
}

// Err converts a failing verdict into a *ValidationError, or nil when valid.
func (v Verdict) Err() error {
	if v.Valid {
		return nil
	}
	return &ValidationError{Scope: v.Scope, Message: v.Message}
}

// ValidationError is returned by Advance when the current step does not pass.
type ValidationError struct {
	Scope   Scope
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Scope, e.Message)
}

// ValidatePostcode reports whether s has the shape of a UK postcode. Surrounding space is ignored.
func ValidatePostcode(s string) bool {
	return postcodePattern.MatchString(strings.TrimSpace(s))
}

// ValidateEmail accepts an empty address; anything else must look like user@host.tld.
func ValidateEmail(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || emailPattern.MatchString(s)
}

// ValidateVehicleStep checks the raw registration and postcode inputs.
func ValidateVehicleStep(reg, postcode string) Verdict {
	if strings.TrimSpace(reg) == "" || !ValidatePostcode(postcode) {
		return fail(ScopeCar, MsgVehicleStep)
	}
	return pass()
}

func ValidateCategorySelected(categoryID string) Verdict {
	if categoryID == "" {
		return fail(ScopeCategory, MsgCategoryMissing)
	}
	return pass()
}

func ValidateBasketNotEmpty(b *Basket) Verdict {
	if b == nil || b.Count() == 0 {
		return fail(ScopeServices, MsgBasketEmpty)
	}
	return pass()
}

// ValidateCategoryStep runs the category check before the basket check.
func ValidateCategoryStep(categoryID string, b *Basket) Verdict {
	if v := ValidateCategorySelected(categoryID); !v.Valid {
		return v
	}
	return ValidateBasketNotEmpty(b)
}

// ValidateContact checks name, phone, optional email, address line and address postcode together.
func ValidateContact(c models.Contact) Verdict {
	switch {
	case strings.TrimSpace(c.Name) == "",
		len(strings.TrimSpace(c.Phone)) < MinPhoneLength,
		!ValidateEmail(c.Email),
		strings.TrimSpace(c.AddressLine) == "",
		!ValidatePostcode(c.AddressPostcode):
		return fail(ScopeDetails, MsgContactInvalid)
	}
	return pass()
}

func ValidateAvailability(slots []models.AvailabilitySlot) Verdict {
	if len(slots) == 0 {
		return fail(ScopeDetails, MsgNoAvailability)
	}
	return pass()
}

func ValidateDriveable(d Driveable) Verdict {
	if d == DriveableUnset {
		return fail(ScopeDetails, MsgDriveableUnset)
	}
	return pass()
}

// ValidateDetailsStep reports the first failing details check, in display order.
func ValidateDetailsStep(c models.Contact, slots []models.AvailabilitySlot, d Driveable) Verdict {
	if v := ValidateContact(c); !v.Valid {
		return v
	}
	if v := ValidateAvailability(slots); !v.Valid {
		return v
	}
	return ValidateDriveable(d)
}
