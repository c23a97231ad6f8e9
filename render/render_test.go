package render

import (
	"strings"
	"testing"
	"time"

	"mechanicbook/models"
	"mechanicbook/services/wizard"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	out := Progress(wizard.NavigationView{Steps: []wizard.StepState{
		{Number: 1, Label: "Car", Complete: true},
		{Number: 2, Label: "Select work", Active: true},
		{Number: 3, Label: "Details"},
	}})
	assert.Contains(t, out, "✓ 1 Car")
	assert.Contains(t, out, "› 2 Select work")
	assert.Contains(t, out, "3 Details")
}

func TestErrorsSortedByScope(t *testing.T) {
	out := Errors(map[wizard.Scope]string{
		wizard.ScopeServices: "Add at least one service to continue.",
		wizard.ScopeCar:      "Enter your registration and a valid UK postcode to continue.",
	})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "registration")
	assert.Empty(t, Errors(nil))
}

func TestCategoryPlaceholderAndError(t *testing.T) {
	assert.Contains(t, Category(wizard.CategoryView{LoadError: "Unable to load services right now."}), "Unable to load services right now.")

	out := Category(wizard.CategoryView{
		Cards:       []wizard.CategoryCard{{ID: "repairs", Name: "Repairs", Active: false}},
		Placeholder: "Select a category to see services.",
	})
	assert.Contains(t, out, "○ Repairs")
	assert.Contains(t, out, "Select a category to see services.")
}

func TestCategoryServices(t *testing.T) {
	out := Category(wizard.CategoryView{
		Cards: []wizard.CategoryCard{{ID: "repairs", Name: "Repairs", Active: true}},
		Title: "Repairs",
		Services: []wizard.ServiceCard{{
			Name: "Brake pads replacement", Price: "£89.99", Rating: "4.80", Reviews: 120,
			Expect: []string{"Inspection"}, ActionLabel: "Added",
		}},
	})
	assert.Contains(t, out, "● Repairs")
	assert.Contains(t, out, "Brake pads replacement")
	assert.Contains(t, out, "£89.99")
	assert.Contains(t, out, "★ 4.80 (120 reviews)")
	assert.Contains(t, out, "[Added]")
}

func TestBasketAndMobile(t *testing.T) {
	out := Basket(wizard.BasketView{
		CarLines: []string{"AB12CDE"},
		Lines:    []wizard.BasketLine{{Name: "Battery", Price: "£129.00"}},
		Total:    "£129.00",
	})
	assert.Contains(t, out, "AB12CDE")
	assert.Contains(t, out, "Battery")
	assert.Contains(t, out, "Total £129.00")

	assert.Equal(t, "No services yet", MobileBasket(wizard.MobileBasketView{Label: "No services yet", Empty: true}))
	assert.Equal(t, "1 service • £129.00", MobileBasket(wizard.MobileBasketView{Label: "1 service", Total: "£129.00"}))
}

func TestConfirm(t *testing.T) {
	out := Confirm(wizard.ConfirmSummary{
		Vehicle:      "AB12CDE",
		Services:     []string{"Brake pads replacement"},
		Availability: []string{"Tue 21 Oct • 8am - 12pm"},
		Driveable:    "Yes",
		Contact:      "Jane Doe • 07700900123",
		Total:        "£89.99",
	})
	assert.Contains(t, out, "Vehicle")
	assert.Contains(t, out, "Brake pads replacement")
	assert.Contains(t, out, "Jane Doe • 07700900123")
	assert.Contains(t, out, "£89.99")
}

func TestClarifier(t *testing.T) {
	assert.Contains(t, Clarifier(wizard.ClarifierView{Hint: "We will tailor questions"}), "We will tailor questions")
	out := Clarifier(wizard.ClarifierView{Active: true, Progress: "Question 1 of 3", Question: "When did the issue first appear?"})
	assert.Contains(t, out, "Question 1 of 3")
	assert.Contains(t, out, "When did the issue first appear?")
}

func TestWeek(t *testing.T) {
	out := Week([]wizard.DayColumn{{
		Day: "2025-10-20", Label: "Mon 20 Oct",
		Slots: []wizard.SlotOption{{Slot: "8am - 12pm", Active: true}, {Slot: "12pm - 4pm"}},
	}})
	assert.Contains(t, out, "Mon 20 Oct")
	assert.Contains(t, out, "[x] 8am - 12pm")
	assert.Contains(t, out, "[ ] 12pm - 4pm")
}

func TestJobs(t *testing.T) {
	assert.Equal(t, "No jobs yet.", Jobs(nil))

	out := Jobs([]models.Job{{
		ID:        "j1",
		CreatedAt: time.Date(2025, 10, 20, 9, 30, 0, 0, time.UTC),
		Reg:       "AB12CDE",
		Status:    models.JobStatusPending,
		Contact:   models.Contact{Name: "Jane Doe", Phone: "07700900123"},
		Services:  []models.ServiceItem{{Name: "Battery"}, {Name: "MOT"}},
	}})
	assert.Contains(t, out, "j1")
	assert.Contains(t, out, "AB12CDE")
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, "Battery, MOT")
}
