package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mechanicbook/models"
)

// StepID identifies a wizard step.
type StepID string

const (
	StepCar      StepID = "car"
	StepCategory StepID = "category"
	StepDetails  StepID = "details"
	StepConfirm  StepID = "confirm"
)

type Step struct {
	ID    StepID
	Label string
}

// Steps is the fixed step order.
var Steps = []Step{
	{ID: StepCar, Label: "Car"},
	{ID: StepCategory, Label: "Select work"},
	{ID: StepDetails, Label: "Details"},
	{ID: StepConfirm, Label: "Book"},
}

const MsgCatalogUnavailable = "Unable to load services right now."

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownService  = errors.New("unknown service")
	ErrCatalogMissing  = errors.New("catalogue not loaded")
)

// Submitter sends a finished booking to the backend.
type Submitter interface {
	Submit(ctx context.Context, payload models.JobPayload) (*models.SubmitJobResponse, error)
}

// Sequencer reports the latest sequence number issued per lookup field.
type Sequencer interface {
	Latest(field Field) uint64
}

// SubmitError wraps a failed submission. The session stays on the confirm step.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit booking: %v", e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

type Option func(*Wizard)

func WithCatalog(c *models.Catalog) Option {
	return func(w *Wizard) { w.catalog = c }
}

func WithSubmitter(s Submitter) Option {
	return func(w *Wizard) { w.submitter = s }
}

// WithSequencer lets the wizard drop lookup results that are no longer the latest.
func WithSequencer(s Sequencer) Option {
	return func(w *Wizard) { w.sequencer = s }
}

// WithScheduler forwards reg and postcode edits to a debounced lookup coordinator.
func WithScheduler(s Scheduler) Option {
	return func(w *Wizard) { w.scheduler = s }
}

func WithQuestions(q []string) Option {
	return func(w *Wizard) { w.questions = append([]string(nil), q...) }
}

// WithListener registers fn to be told which views went stale after every mutation.
func WithListener(fn func(View)) Option {
	return func(w *Wizard) { w.listener = fn }
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// Scheduler accepts debounced lookup requests.
type Scheduler interface {
	Schedule(field Field, query string)
}

// Wizard drives a Session through the booking steps. It is not safe for concurrent use.
type Wizard struct {
	session    *Session
	catalog    *models.Catalog
	catalogErr string
	questions  []string
	errs       map[Scope]string
	lookupErrs map[Field]string // car message last set by each lookup

	submitter Submitter
	sequencer Sequencer
	scheduler Scheduler
	listener  func(View)
	now       func() time.Time
}

// New builds a wizard with an empty session.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		errs:       make(map[Scope]string),
		lookupErrs: make(map[Field]string),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.session = NewSession(w.questions)
	return w
}

// Session exposes the underlying session for read access.
func (w *Wizard) Session() *Session { return w.session }

func (w *Wizard) Catalog() *models.Catalog { return w.catalog }

// SetCatalog installs a freshly loaded catalogue.
func (w *Wizard) SetCatalog(c *models.Catalog) View {
	w.catalog = c
	w.catalogErr = ""
	return w.emit(ViewCategories | ViewServices | ViewDetails)
}

// CatalogFailed records a terminal catalogue load failure; there is no retry.
func (w *Wizard) CatalogFailed(err error) View {
	w.catalog = nil
	w.catalogErr = MsgCatalogUnavailable
	return w.emit(ViewCategories | ViewServices)
}

func (w *Wizard) CatalogError() string { return w.catalogErr }

func (w *Wizard) CurrentStep() int { return w.session.CurrentStep }

func (w *Wizard) CurrentStepID() StepID { return Steps[w.session.CurrentStep].ID }

func (w *Wizard) IsLastStep() bool { return w.session.CurrentStep == len(Steps)-1 }

func (w *Wizard) IsSubmitted() bool { return w.session.Submitted }

// Errors returns a copy of the visible validation messages keyed by scope.
func (w *Wizard) Errors() map[Scope]string {
	out := make(map[Scope]string, len(w.errs))
	for k, v := range w.errs {
		out[k] = v
	}
	return out
}

func (w *Wizard) Error(scope Scope) string { return w.errs[scope] }

func (w *Wizard) emit(v View) View {
	if v != 0 && w.listener != nil {
		w.listener(v)
	}
	return v
}

func (w *Wizard) clearErrors(scopes ...Scope) View {
	var changed bool
	for _, s := range scopes {
		if _, ok := w.errs[s]; ok {
			delete(w.errs, s)
			changed = true
		}
	}
	if changed {
		return ViewErrors
	}
	return 0
}

// Advance validates the current step and moves forward. On the last step a passing
// validation submits the booking; after a successful submit the wizard is inert.
func (w *Wizard) Advance(ctx context.Context) (View, error) {
	s := w.session
	if s.Submitted {
		return 0, nil
	}
	views := w.clearErrors(ScopeCar, ScopeCategory, ScopeServices, ScopeDetails, ScopeSubmit)

	v := w.validateCurrent()
	if !v.Valid {
		w.errs[v.Scope] = v.Message
		return w.emit(views | ViewErrors), v.Err()
	}
	views |= w.commitStep()

	if w.IsLastStep() {
		return w.submit(ctx, views)
	}

	s.CurrentStep++
	views |= ViewProgress | ViewNavigation | w.enterStep()
	return w.emit(views), nil
}

func (w *Wizard) validateCurrent() Verdict {
	s := w.session
	switch w.CurrentStepID() {
	case StepCar:
		return ValidateVehicleStep(s.Form.Reg, s.Form.Postcode)
	case StepCategory:
		return ValidateCategoryStep(s.SelectedCategory, &s.Basket)
	case StepDetails:
		return ValidateDetailsStep(s.Contact, s.Availability, s.Driveable)
	}
	return pass()
}

// commitStep normalises data after the current step passed.
func (w *Wizard) commitStep() View {
	s := w.session
	if w.CurrentStepID() != StepCar {
		return 0
	}
	s.Car.Reg = normalizeUpper(s.Form.Reg)
	s.Car.Postcode = normalizeUpper(s.Form.Postcode)
	return ViewCar | viewsCar | w.prefillAddressPostcode()
}

func (w *Wizard) enterStep() View {
	if w.CurrentStepID() == StepDetails {
		return ViewAvailability | ViewClarifier | ViewDetails | w.prefillAddressPostcode()
	}
	return 0
}

func (w *Wizard) submit(ctx context.Context, views View) (View, error) {
	s := w.session
	payload := BuildPayload(s)
	if w.submitter != nil {
		receipt, err := w.submitter.Submit(ctx, payload)
		if err != nil {
			w.errs[ScopeSubmit] = MsgSubmitFailed
			return w.emit(views | ViewErrors | ViewNavigation), &SubmitError{Err: err}
		}
		s.Receipt = receipt
	}
	s.Submitted = true
	return w.emit(views | ViewProgress | ViewNavigation | ViewConfirm), nil
}

// Retreat moves back one step. It never validates and leaves error messages alone.
func (w *Wizard) Retreat() View {
	s := w.session
	if s.Submitted || s.CurrentStep == 0 {
		return 0
	}
	s.CurrentStep--
	return w.emit(ViewProgress | ViewNavigation | w.enterStep())
}

// Reset discards the session and starts a new booking with the same catalogue.
func (w *Wizard) Reset() View {
	w.session = NewSession(w.questions)
	w.errs = make(map[Scope]string)
	w.lookupErrs = make(map[Field]string)
	return w.emit(ViewAll)
}

// prefillAddressPostcode copies the vehicle postcode into an empty address postcode, once per session.
func (w *Wizard) prefillAddressPostcode() View {
	s := w.session
	if s.addressPrefilled || s.Car.Postcode == "" {
		return 0
	}
	s.addressPrefilled = true
	if strings.TrimSpace(s.Form.AddressPostcode) != "" {
		return 0
	}
	s.Form.AddressPostcode = s.Car.Postcode
	s.Contact.AddressPostcode = s.Car.Postcode
	return ViewDetails | ViewConfirm
}

// Payload assembles the submission body from the current session.
func (w *Wizard) Payload() models.JobPayload { return BuildPayload(w.session) }

// clarifierIncluded reports whether the clarifier answers travel with the booking.
// Any started flow counts, including one still waiting on a question.
func clarifierIncluded(s *Session) bool {
	return s.Clarifier != nil && s.Clarifier.State().Active
}

// BuildPayload converts a session into the wire payload.
func BuildPayload(s *Session) models.JobPayload {
	p := models.JobPayload{
		Reg:          s.Car.Reg,
		Postcode:     s.Car.Postcode,
		AreaLabel:    s.Car.AreaLabel,
		Category:     s.SelectedCategory,
		Services:     []models.ServiceItem{},
		Availability: append([]models.AvailabilitySlot{}, s.Availability...),
		Contact:      s.Contact,
		Notes:        s.Notes,
		Driveable:    s.Driveable.Bool(),
		Total:        s.Basket.Total(),
	}
	if p.Reg == "" {
		p.Reg = normalizeUpper(s.Form.Reg)
	}
	if p.Postcode == "" {
		p.Postcode = normalizeUpper(s.Form.Postcode)
	}
	if s.Car.Vehicle != nil {
		v := *s.Car.Vehicle
		p.Vehicle = &v
	}
	for _, item := range s.Basket.Items() {
		p.Services = append(p.Services, item.Item())
	}
	if clarifierIncluded(s) {
		sum := s.Clarifier.Summary()
		p.Clarifier = &sum
	}
	return p
}
