package wizard

import (
	"fmt"
	"strings"
	"time"
)

// View is a bit set of derived displays that must be re-rendered after a mutation.
type View uint16

const (
	ViewProgress View = 1 << iota
	ViewNavigation
	ViewErrors
	ViewCar
	ViewCategories
	ViewServices
	ViewBasket
	ViewMobileBasket
	ViewDetails
	ViewAvailability
	ViewClarifier
	ViewConfirm

	ViewAll = ViewProgress | ViewNavigation | ViewErrors | ViewCar | ViewCategories | ViewServices |
		ViewBasket | ViewMobileBasket | ViewDetails | ViewAvailability | ViewClarifier | ViewConfirm
)

const (
	viewsBasket    = ViewServices | ViewBasket | ViewMobileBasket | ViewDetails | ViewConfirm
	viewsCar       = ViewBasket | ViewMobileBasket | ViewDetails | ViewConfirm
	viewsClarifier = ViewClarifier | ViewDetails | ViewConfirm
)

// Has reports whether every view in o is set in v.
func (v View) Has(o View) bool { return v&o == o }

// AvailabilityWindows are the bookable windows offered each day.
var AvailabilityWindows = []string{"8am - 12pm", "12pm - 4pm", "4pm - 8pm"}

// AvailabilityDays is how many days ahead, today included, the availability grid covers.
const AvailabilityDays = 7

const dayLayout = "2006-01-02"

// FormatAvailabilityDay turns "2025-10-20" into "Mon 20 Oct". Unparseable input is returned unchanged.
func FormatAvailabilityDay(day string) string {
	t, err := time.Parse(dayLayout, day)
	if err != nil {
		return day
	}
	return t.Format("Mon 2 Jan")
}

type StepState struct {
	ID       StepID
	Label    string
	Number   int
	Active   bool
	Complete bool
}

// NavigationView drives the progress bar and the back/next controls.
type NavigationView struct {
	Steps       []StepState
	BackEnabled bool
	NextEnabled bool
	NextLabel   string
}

func (w *Wizard) Navigation() NavigationView {
	s := w.session
	nav := NavigationView{
		BackEnabled: s.CurrentStep > 0 && !s.Submitted,
		NextEnabled: !s.Submitted,
		NextLabel:   "Continue",
	}
	switch {
	case s.Submitted:
		nav.NextLabel = "Request sent!"
	case w.IsLastStep():
		nav.NextLabel = "Send request"
	}
	for i, st := range Steps {
		nav.Steps = append(nav.Steps, StepState{
			ID:       st.ID,
			Label:    st.Label,
			Number:   i + 1,
			Active:   i == s.CurrentStep && !s.Submitted,
			Complete: i < s.CurrentStep || s.Submitted,
		})
	}
	return nav
}

// CarSummaryLines lists reg, vehicle and location, skipping whatever is unknown.
func (w *Wizard) CarSummaryLines() []string {
	car := w.session.Car
	var lines []string
	if car.Reg != "" {
		lines = append(lines, car.Reg)
	}
	if car.Vehicle != nil {
		lines = append(lines, car.Vehicle.Label())
	}
	var loc []string
	for _, part := range []string{car.Postcode, car.AreaLabel} {
		if part != "" {
			loc = append(loc, part)
		}
	}
	if len(loc) > 0 {
		lines = append(lines, strings.Join(loc, " • "))
	}
	return lines
}

// CarSummary is the single-block version of CarSummaryLines.
func (w *Wizard) CarSummary() string {
	lines := w.CarSummaryLines()
	if len(lines) == 0 {
		return "Add your registration and postcode to start your quote."
	}
	return strings.Join(lines, "\n")
}

type CategoryCard struct {
	ID      string
	Name    string
	Summary string
	Active  bool
}

type ServiceCard struct {
	ID          string
	Name        string
	Description string
	Details     string
	Price       string
	Rating      string
	Reviews     int
	Tag         string
	Expect      []string
	InBasket    bool
	ActionLabel string
}

// CategoryView is the category grid plus the services of the selected category.
type CategoryView struct {
	Cards       []CategoryCard
	Lead        string
	Title       string
	Services    []ServiceCard
	Placeholder string
	LoadError   string
}

func (w *Wizard) CategoryView() CategoryView {
	s := w.session
	cv := CategoryView{LoadError: w.catalogErr}
	if w.catalog == nil {
		return cv
	}
	for _, c := range w.catalog.Categories {
		cv.Cards = append(cv.Cards, CategoryCard{ID: c.ID, Name: c.Name, Summary: c.Summary, Active: c.ID == s.SelectedCategory})
	}
	cat, ok := w.catalog.FindCategory(s.SelectedCategory)
	if !ok {
		cv.Placeholder = "Select a category to see services."
		return cv
	}
	cv.Lead, cv.Title = cat.Lead, cat.Name
	for _, svc := range cat.Services {
		in := s.Basket.Contains(svc.ID)
		label := "Add"
		if in {
			label = "Added"
		}
		cv.Services = append(cv.Services, ServiceCard{
			ID:          svc.ID,
			Name:        svc.Name,
			Description: svc.Description,
			Details:     svc.Details,
			Price:       FormatPrice(svc.Price),
			Rating:      fmt.Sprintf("%.2f", svc.Rating),
			Reviews:     svc.Reviews,
			Tag:         svc.Tag,
			Expect:      append([]string(nil), svc.WhatToExpect...),
			InBasket:    in,
			ActionLabel: label,
		})
	}
	return cv
}

type BasketLine struct {
	ID    string
	Name  string
	Price string
}

// BasketView is the basket panel shown beside the category and details steps.
type BasketView struct {
	CarLines  []string
	Lines     []BasketLine
	Empty     bool
	EmptyText string
	Total     string
}

func (w *Wizard) BasketView() BasketView {
	b := &w.session.Basket
	bv := BasketView{CarLines: w.CarSummaryLines(), Total: b.FormatTotal()}
	if b.Count() == 0 {
		bv.Empty = true
		bv.EmptyText = "Add services to see your quote."
		return bv
	}
	for _, item := range b.Items() {
		bv.Lines = append(bv.Lines, BasketLine{ID: item.ID, Name: item.Name, Price: FormatPrice(item.Price)})
	}
	return bv
}

// MobileBasketView is the compact basket bar.
type MobileBasketView struct {
	Label string
	Total string
	Empty bool
}

func (w *Wizard) MobileBasket() MobileBasketView {
	b := &w.session.Basket
	mv := MobileBasketView{Label: b.MobileLabel(), Empty: b.Count() == 0}
	if !mv.Empty {
		mv.Total = b.FormatTotal()
	}
	return mv
}

// DetailsSummary is the side panel on the details step.
type DetailsSummary struct {
	CategoryName    string
	CategorySummary string
	Services        []string
	Availability    []string
	Driveable       string
	Address         string
	Clarifier       string
}

func (w *Wizard) DetailsSummary() DetailsSummary {
	s := w.session
	ds := DetailsSummary{CategoryName: "Category not selected yet."}
	if cat, ok := w.catalog.FindCategory(s.SelectedCategory); ok {
		ds.CategoryName, ds.CategorySummary = cat.Name, cat.Summary
	}
	for _, item := range s.Basket.Items() {
		ds.Services = append(ds.Services, fmt.Sprintf("%s (%s)", item.Name, FormatPrice(item.Price)))
	}
	for _, a := range s.Availability {
		ds.Availability = append(ds.Availability, fmt.Sprintf("%s on %s", a.Slot, FormatAvailabilityDay(a.Day)))
	}
	if len(ds.Availability) == 0 {
		ds.Availability = []string{"Availability not set"}
	}
	switch s.Driveable {
	case DriveableYes:
		ds.Driveable = "Vehicle can be driven"
	case DriveableNo:
		ds.Driveable = "Vehicle not driveable"
	default:
		ds.Driveable = "Driveable status not provided"
	}
	ds.Address = "Address pending"
	if s.Contact.AddressLine != "" {
		pc := s.Contact.AddressPostcode
		if pc == "" {
			pc = "postcode needed"
		}
		ds.Address = fmt.Sprintf("%s (%s)", s.Contact.AddressLine, pc)
	}
	ds.Clarifier = "Clarifier not completed yet."
	if s.Clarifier.State().Complete {
		ds.Clarifier = "Clarifier summary ready to share."
	}
	return ds
}

// ConfirmSummary is the read-only review shown on the last step.
type ConfirmSummary struct {
	Vehicle      string
	Services     []string
	Availability []string
	Driveable    string
	Contact      string
	Email        string
	Address      string
	Notes        string
	Clarifier    []string
	Total        string
}

func (w *Wizard) ConfirmSummary() ConfirmSummary {
	s := w.session
	cs := ConfirmSummary{
		Vehicle:   strings.Join(w.CarSummaryLines(), " • "),
		Driveable: "Not stated",
		Contact:   fmt.Sprintf("%s • %s", orDash(s.Contact.Name), orDash(s.Contact.Phone)),
		Email:     orDefault(s.Contact.Email, "Not provided"),
		Address:   "-",
		Notes:     orDefault(s.Notes, "Not provided"),
		Total:     s.Basket.FormatTotal(),
	}
	if cs.Vehicle == "" {
		cs.Vehicle = "Vehicle pending"
	}
	for _, item := range s.Basket.Items() {
		cs.Services = append(cs.Services, item.Name)
	}
	if len(cs.Services) == 0 {
		cs.Services = []string{"None selected"}
	}
	for _, a := range s.Availability {
		cs.Availability = append(cs.Availability, fmt.Sprintf("%s • %s", FormatAvailabilityDay(a.Day), a.Slot))
	}
	if len(cs.Availability) == 0 {
		cs.Availability = []string{"Not provided"}
	}
	switch s.Driveable {
	case DriveableYes:
		cs.Driveable = "Yes"
	case DriveableNo:
		cs.Driveable = "No"
	}
	if s.Contact.AddressLine != "" {
		cs.Address = fmt.Sprintf("%s • %s", s.Contact.AddressLine, s.Contact.AddressPostcode)
	}
	if clarifierIncluded(s) {
		cs.Clarifier = s.Clarifier.SummaryLines()
	} else {
		cs.Clarifier = []string{"Not run yet."}
	}
	return cs
}

// ClarifierView describes the clarifier panel.
type ClarifierView struct {
	Active     bool
	Complete   bool
	Stopped    bool
	StartLabel string
	Hint       string
	Progress   string
	Question   string
	NextLabel  string
	StopLabel  string
	Summary    []string
}

func (w *Wizard) ClarifierView() ClarifierView {
	c := w.session.Clarifier
	st := c.State()
	cv := ClarifierView{
		Active:     st.Active,
		Complete:   st.Complete,
		Stopped:    st.Stopped,
		StartLabel: "Start clarifier",
	}
	if !st.Active {
		cv.Hint = "We will tailor questions to describe symptoms for the mechanic."
		return cv
	}
	cv.StartLabel = "Restart clarifier"
	if st.Complete {
		cv.Summary = c.SummaryLines()
		return cv
	}
	cv.Question, _ = c.CurrentQuestion()
	cv.Progress = c.Progress()
	cv.NextLabel = "Next question"
	if c.IsLastQuestion() {
		cv.NextLabel = "Finish"
	}
	cv.StopLabel = "I've told you all I know"
	return cv
}

type SlotOption struct {
	Slot   string
	Active bool
}

// DayColumn is one day of the availability grid.
type DayColumn struct {
	Day   string
	Label string
	Slots []SlotOption
}

// WeekAvailability builds the 7-day grid starting today, marking selected slots.
func (w *Wizard) WeekAvailability() []DayColumn {
	today := w.now()
	cols := make([]DayColumn, 0, AvailabilityDays)
	for i := 0; i < AvailabilityDays; i++ {
		d := today.AddDate(0, 0, i)
		day := d.Format(dayLayout)
		col := DayColumn{Day: day, Label: d.Format("Mon 2 Jan")}
		for _, slot := range AvailabilityWindows {
			col.Slots = append(col.Slots, SlotOption{Slot: slot, Active: w.session.hasSlot(day, slot)})
		}
		cols = append(cols, col)
	}
	return cols
}

func orDash(s string) string { return orDefault(s, "-") }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
