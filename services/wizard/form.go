package wizard

import (
	"errors"
	"strings"

	"mechanicbook/models"
)

// SetReg records the registration as typed and queues a vehicle lookup.
func (w *Wizard) SetReg(raw string) View {
	w.session.Form.Reg = raw
	views := w.clearErrors(ScopeCar)
	if w.scheduler != nil {
		w.scheduler.Schedule(FieldVehicle, raw)
	}
	return w.emit(views | ViewCar)
}

// SetPostcode records the vehicle postcode as typed and queues an area lookup.
func (w *Wizard) SetPostcode(raw string) View {
	w.session.Form.Postcode = raw
	views := w.clearErrors(ScopeCar)
	if w.scheduler != nil {
		w.scheduler.Schedule(FieldArea, raw)
	}
	return w.emit(views | ViewCar)
}

// SelectCategory picks the category whose services are shown.
func (w *Wizard) SelectCategory(id string) (View, error) {
	if w.catalog != nil {
		if _, ok := w.catalog.FindCategory(id); !ok {
			return 0, ErrUnknownCategory
		}
	}
	w.session.SelectedCategory = id
	views := w.clearErrors(ScopeCategory, ScopeServices)
	return w.emit(views | ViewCategories | ViewServices | ViewDetails | ViewConfirm), nil
}

// ToggleService adds or removes s from the basket.
func (w *Wizard) ToggleService(s models.Service) View {
	w.session.Basket.Toggle(s)
	views := w.clearErrors(ScopeServices)
	return w.emit(views | viewsBasket)
}

// AddService adds s if it is not already in the basket.
func (w *Wizard) AddService(s models.Service) View {
	if !w.session.Basket.Add(s) {
		return 0
	}
	return w.emit(viewsBasket)
}

// AddServiceByID resolves id against the catalogue and adds it.
func (w *Wizard) AddServiceByID(id string) (View, error) {
	s, err := w.lookupService(id)
	if err != nil {
		return 0, err
	}
	return w.AddService(s), nil
}

// ToggleServiceByID resolves id against the catalogue and toggles it.
func (w *Wizard) ToggleServiceByID(id string) (View, error) {
	s, err := w.lookupService(id)
	if err != nil {
		return 0, err
	}
	return w.ToggleService(s), nil
}

func (w *Wizard) lookupService(id string) (models.Service, error) {
	if w.catalog == nil {
		return models.Service{}, ErrCatalogMissing
	}
	s, ok := w.catalog.FindService(id)
	if !ok {
		return models.Service{}, ErrUnknownService
	}
	return *s, nil
}

func (w *Wizard) RemoveService(id string) View {
	if !w.session.Basket.Remove(id) {
		return 0
	}
	return w.emit(viewsBasket)
}

// ToggleAvailability flips one (day, slot) selection.
func (w *Wizard) ToggleAvailability(day, slot string) View {
	w.session.toggleSlot(day, slot)
	views := w.clearErrors(ScopeDetails)
	return w.emit(views | ViewAvailability | ViewDetails | ViewConfirm)
}

func (w *Wizard) SetDriveable(driveable bool) View {
	if driveable {
		w.session.Driveable = DriveableYes
	} else {
		w.session.Driveable = DriveableNo
	}
	views := w.clearErrors(ScopeDetails)
	return w.emit(views | ViewDetails | ViewConfirm)
}

// ClearDriveable withdraws a previous driveable answer.
func (w *Wizard) ClearDriveable() View {
	w.session.Driveable = DriveableUnset
	views := w.clearErrors(ScopeDetails)
	return w.emit(views | ViewDetails | ViewConfirm)
}

func (w *Wizard) SetNotes(raw string) View {
	w.session.Form.Notes = raw
	w.session.Notes = strings.TrimSpace(raw)
	return w.emit(ViewConfirm)
}

func (w *Wizard) SetName(raw string) View {
	w.session.Form.Name = raw
	w.session.Contact.Name = strings.TrimSpace(raw)
	return w.contactChanged()
}

func (w *Wizard) SetEmail(raw string) View {
	w.session.Form.Email = raw
	w.session.Contact.Email = strings.TrimSpace(raw)
	return w.contactChanged()
}

func (w *Wizard) SetPhone(raw string) View {
	w.session.Form.Phone = raw
	w.session.Contact.Phone = strings.TrimSpace(raw)
	return w.contactChanged()
}

func (w *Wizard) SetAddressLine(raw string) View {
	w.session.Form.AddressLine = raw
	w.session.Contact.AddressLine = strings.TrimSpace(raw)
	return w.contactChanged()
}

func (w *Wizard) SetAddressPostcode(raw string) View {
	w.session.Form.AddressPostcode = raw
	w.session.Contact.AddressPostcode = normalizeUpper(raw)
	return w.contactChanged()
}

func (w *Wizard) contactChanged() View {
	views := w.clearErrors(ScopeDetails)
	return w.emit(views | ViewDetails | ViewConfirm)
}

// StartClarifier starts, or restarts, the clarifying questions.
func (w *Wizard) StartClarifier() View {
	w.session.Clarifier.Start()
	return w.emit(viewsClarifier)
}

// AnswerClarifier records an answer to the current question. Blank answers are ignored.
func (w *Wizard) AnswerClarifier(text string) View {
	if !w.session.Clarifier.Answer(text) {
		return 0
	}
	return w.emit(viewsClarifier)
}

// StopClarifier ends the questions early.
func (w *Wizard) StopClarifier() View {
	if !w.session.Clarifier.Stop() {
		return 0
	}
	return w.emit(viewsClarifier)
}

// SetClarifierQuestions swaps in a question list, typically one supplied by the backend.
func (w *Wizard) SetClarifierQuestions(questions []string) View {
	if len(questions) == 0 {
		return 0
	}
	w.questions = append([]string(nil), questions...)
	w.session.Clarifier.SetQuestions(questions)
	return w.emit(viewsClarifier)
}

// ApplyLookupResult dispatches a coordinator result to the matching field.
func (w *Wizard) ApplyLookupResult(res LookupResult) View {
	switch res.Field {
	case FieldVehicle:
		return w.ApplyVehicleResult(res)
	case FieldArea:
		return w.ApplyAreaResult(res)
	}
	return 0
}

func (w *Wizard) stale(res LookupResult) bool {
	return w.sequencer != nil && res.Seq != w.sequencer.Latest(res.Field)
}

// ApplyVehicleResult stores a vehicle lookup outcome unless a newer lookup has been issued.
// It applies on any step and never navigates.
func (w *Wizard) ApplyVehicleResult(res LookupResult) View {
	if res.Field != FieldVehicle || w.stale(res) {
		return 0
	}
	car := &w.session.Car
	views := ViewCar | viewsCar
	switch {
	case res.Skipped:
		car.Vehicle = nil
	case res.Err != nil:
		car.Reg = normalizeUpper(res.Query)
		car.Vehicle = nil
		views |= w.setLookupError(FieldVehicle, res.Err)
	default:
		car.Reg = normalizeUpper(res.Query)
		car.Vehicle = nil
		if res.Vehicle != nil {
			v := *res.Vehicle
			car.Vehicle = &v
		}
		views |= w.clearLookupError(FieldVehicle)
	}
	return w.emit(views)
}

// ApplyAreaResult stores an area label lookup outcome unless a newer lookup has been issued.
func (w *Wizard) ApplyAreaResult(res LookupResult) View {
	if res.Field != FieldArea || w.stale(res) {
		return 0
	}
	car := &w.session.Car
	views := ViewCar | viewsCar
	switch {
	case res.Skipped:
		car.AreaLabel = ""
	case res.Err != nil:
		car.Postcode = normalizeUpper(res.Query)
		car.AreaLabel = ""
		views |= w.setLookupError(FieldArea, res.Err)
	default:
		car.Postcode = normalizeUpper(res.Query)
		car.AreaLabel = res.AreaLabel
		views |= w.clearLookupError(FieldArea) | w.prefillAddressPostcode()
	}
	return w.emit(views)
}

// userMessager is implemented by errors that carry a message meant for the customer,
// such as the API client's error for non-2xx answers.
type userMessager interface {
	UserMessage() string
}

// lookupMessage prefers the customer-facing text of err over its full error string.
func lookupMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

func (w *Wizard) setLookupError(field Field, err error) View {
	msg := lookupMessage(err)
	w.errs[ScopeCar] = msg
	w.lookupErrs[field] = msg
	return ViewErrors
}

// clearLookupError removes the car message only when this field's previous lookup put it there.
// Validation messages stay until the customer edits an input.
func (w *Wizard) clearLookupError(field Field) View {
	msg, ok := w.lookupErrs[field]
	if !ok {
		return 0
	}
	delete(w.lookupErrs, field)
	if w.errs[ScopeCar] != msg {
		return 0
	}
	return w.clearErrors(ScopeCar)
}
