package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"mechanicbook/models"
	"mechanicbook/render"
	"mechanicbook/services/wizard"

	"github.com/charmbracelet/huh"
)

const (
	actionContinue = "continue"
	actionBack     = "back"
)

// lookupWait bounds how long the car step waits for both lookups after input.
const lookupWait = 6 * time.Second

var emptyClarify = models.ClarifyRequest{}

type flow struct {
	w       *wizard.Wizard
	lookups *wizard.Lookups
	out     io.Writer
}

func (f *flow) println(s string) {
	if s != "" {
		fmt.Fprintln(f.out, s)
	}
}

func (f *flow) run(ctx context.Context) error {
	for !f.w.IsSubmitted() {
		f.println("\n" + render.Progress(f.w.Navigation()))

		var action string
		var err error
		switch f.w.CurrentStepID() {
		case wizard.StepCar:
			action, err = f.carStep(ctx)
		case wizard.StepCategory:
			action, err = f.categoryStep()
		case wizard.StepDetails:
			action, err = f.detailsStep()
		case wizard.StepConfirm:
			action, err = f.confirmStep()
		}
		if err != nil {
			return err
		}

		if action == actionBack {
			f.w.Retreat()
			continue
		}
		if _, err := f.w.Advance(ctx); err != nil {
			var se *wizard.SubmitError
			if !errors.As(err, &se) {
				return err
			}
		}
		f.println(render.Errors(f.w.Errors()))
	}

	receipt := f.w.Session().Receipt
	f.println(render.Title("Request sent!"))
	if receipt != nil && receipt.Job != nil {
		f.println(fmt.Sprintf("Reference %s", receipt.Job.ID))
		if receipt.SMS.Skipped {
			f.println(render.Muted("No confirmation text: " + receipt.SMS.Reason))
		}
	}
	return nil
}

func (f *flow) navField(action *string) huh.Field {
	opts := []huh.Option[string]{huh.NewOption(f.w.Navigation().NextLabel, actionContinue)}
	if f.w.Navigation().BackEnabled {
		opts = append(opts, huh.NewOption("Back", actionBack))
	}
	*action = actionContinue
	return huh.NewSelect[string]().Title("Next").Options(opts...).Value(action)
}

func (f *flow) carStep(ctx context.Context) (string, error) {
	s := f.w.Session()
	reg, postcode := s.Form.Reg, s.Form.Postcode
	var action string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Registration").Placeholder("AB12 CDE").Value(&reg),
		huh.NewInput().Title("Postcode").Placeholder("SW1A 1AA").Value(&postcode),
		f.navField(&action),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	f.w.SetReg(reg)
	f.w.SetPostcode(postcode)
	f.awaitLookups(ctx)
	f.println(render.CarSummary(f.w.CarSummaryLines()))
	return action, nil
}

// awaitLookups applies results until both fields have reported their latest lookup.
func (f *flow) awaitLookups(ctx context.Context) {
	pending := map[wizard.Field]bool{wizard.FieldVehicle: true, wizard.FieldArea: true}
	timeout := time.NewTimer(lookupWait)
	defer timeout.Stop()
	for len(pending) > 0 {
		select {
		case res := <-f.lookups.Results():
			f.w.ApplyLookupResult(res)
			if res.Seq == f.lookups.Latest(res.Field) {
				delete(pending, res.Field)
			}
		case <-timeout.C:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (f *flow) categoryStep() (string, error) {
	if msg := f.w.CatalogError(); msg != "" {
		f.println(render.Category(f.w.CategoryView()))
		return "", errors.New(msg)
	}
	cat := f.w.Catalog()
	s := f.w.Session()

	category := s.SelectedCategory
	if category == "" && len(cat.Categories) > 0 {
		category = cat.Categories[0].ID
	}
	catOpts := make([]huh.Option[string], 0, len(cat.Categories))
	for _, c := range cat.Categories {
		catOpts = append(catOpts, huh.NewOption(c.Name+" - "+c.Summary, c.ID))
	}
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("What do you need?").Options(catOpts...).Value(&category),
	)).Run(); err != nil {
		return "", err
	}
	if _, err := f.w.SelectCategory(category); err != nil {
		return "", err
	}
	f.println(render.Category(f.w.CategoryView()))

	selected, svcOpts := f.serviceOptions()
	var action string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().Title("Services").Options(svcOpts...).Value(&selected),
		f.navField(&action),
	)).Run(); err != nil {
		return "", err
	}
	f.applyServices(selected)
	f.println(render.Basket(f.w.BasketView()))
	return action, nil
}

func (f *flow) serviceOptions() ([]string, []huh.Option[string]) {
	cv := f.w.CategoryView()
	var selected []string
	opts := make([]huh.Option[string], 0, len(cv.Services))
	for _, s := range cv.Services {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", s.Name, s.Price), s.ID).Selected(s.InBasket))
		if s.InBasket {
			selected = append(selected, s.ID)
		}
	}
	return selected, opts
}

// applyServices toggles the shown category's services so the basket matches the selection.
func (f *flow) applyServices(selected []string) {
	want := make(map[string]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}
	basket := &f.w.Session().Basket
	for _, s := range f.w.CategoryView().Services {
		if want[s.ID] != basket.Contains(s.ID) {
			f.w.ToggleServiceByID(s.ID)
		}
	}
}

func (f *flow) detailsStep() (string, error) {
	s := f.w.Session()
	f.println(render.Details(f.w.DetailsSummary()))

	slots, slotOpts := slotOptions(f.w.WeekAvailability())
	driveable := driveableChoice(s.Driveable)
	notes := s.Notes
	runClarifier := false

	if err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().Title("When are you available?").Options(slotOpts...).Value(&slots),
		huh.NewSelect[string]().Title("Can the car be driven?").
			Options(
				huh.NewOption("Not sure yet", driveableUnset),
				huh.NewOption("Yes", driveableYes),
				huh.NewOption("No", driveableNo),
			).Value(&driveable),
		huh.NewText().Title("Anything else the mechanic should know?").Value(&notes),
		huh.NewConfirm().Title("Answer a few quick questions about the problem?").Value(&runClarifier),
	)).Run(); err != nil {
		return "", err
	}
	f.applySlots(slots)
	f.applyDriveable(driveable)
	f.w.SetNotes(notes)

	if runClarifier {
		if err := f.clarifier(); err != nil {
			return "", err
		}
	}

	c := s.Contact
	var action string
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&c.Name),
		huh.NewInput().Title("Email (optional)").Value(&c.Email),
		huh.NewInput().Title("Phone").Value(&c.Phone),
		huh.NewInput().Title("Address").Value(&c.AddressLine),
		huh.NewInput().Title("Address postcode").Value(&c.AddressPostcode),
		f.navField(&action),
	)).Run(); err != nil {
		return "", err
	}
	f.w.SetName(c.Name)
	f.w.SetEmail(c.Email)
	f.w.SetPhone(c.Phone)
	f.w.SetAddressLine(c.AddressLine)
	f.w.SetAddressPostcode(c.AddressPostcode)
	return action, nil
}

const (
	driveableUnset = ""
	driveableYes   = "yes"
	driveableNo    = "no"
)

func driveableChoice(d wizard.Driveable) string {
	switch d {
	case wizard.DriveableYes:
		return driveableYes
	case wizard.DriveableNo:
		return driveableNo
	}
	return driveableUnset
}

// applyDriveable leaves the answer unset for "Not sure yet" so the details step asks again.
func (f *flow) applyDriveable(choice string) {
	switch choice {
	case driveableYes:
		f.w.SetDriveable(true)
	case driveableNo:
		f.w.SetDriveable(false)
	default:
		f.w.ClearDriveable()
	}
}

func (f *flow) clarifier() error {
	f.w.StartClarifier()
	for {
		cv := f.w.ClarifierView()
		if !cv.Active || cv.Complete {
			break
		}
		f.println(render.Clarifier(cv))
		var answer string
		stop := false
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title(cv.Question).Value(&answer),
			huh.NewConfirm().Title(cv.StopLabel+"?").Value(&stop),
		)).Run(); err != nil {
			return err
		}
		if strings.TrimSpace(answer) != "" {
			f.w.AnswerClarifier(answer)
		}
		if stop {
			f.w.StopClarifier()
		}
	}
	f.println(render.Clarifier(f.w.ClarifierView()))
	return nil
}

const slotSep = "|"

func slotOptions(cols []wizard.DayColumn) ([]string, []huh.Option[string]) {
	var selected []string
	var opts []huh.Option[string]
	for _, col := range cols {
		for _, s := range col.Slots {
			key := col.Day + slotSep + s.Slot
			opts = append(opts, huh.NewOption(col.Label+" • "+s.Slot, key).Selected(s.Active))
			if s.Active {
				selected = append(selected, key)
			}
		}
	}
	return selected, opts
}

// applySlots toggles the grid so the session matches the chosen slot keys.
func (f *flow) applySlots(keys []string) {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	for _, col := range f.w.WeekAvailability() {
		for _, s := range col.Slots {
			if want[col.Day+slotSep+s.Slot] != s.Active {
				f.w.ToggleAvailability(col.Day, s.Slot)
			}
		}
	}
}

func (f *flow) confirmStep() (string, error) {
	f.println(render.Confirm(f.w.ConfirmSummary()))
	var action string
	if err := huh.NewForm(huh.NewGroup(f.navField(&action))).Run(); err != nil {
		return "", err
	}
	return action, nil
}
