package render

import (
	"fmt"
	"sort"
	"strings"

	"mechanicbook/services/wizard"

	"github.com/charmbracelet/lipgloss"
)

// Progress renders the step bar, e.g. "✓ 1 Car  › 2 Select work  3 Details  4 Book".
func Progress(nav wizard.NavigationView) string {
	parts := make([]string, 0, len(nav.Steps))
	for _, st := range nav.Steps {
		label := fmt.Sprintf("%d %s", st.Number, st.Label)
		switch {
		case st.Complete:
			parts = append(parts, doneStepStyle.Render("✓ "+label))
		case st.Active:
			parts = append(parts, activeStepStyle.Render("› "+label))
		default:
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// Errors lists scoped messages in a stable order.
func Errors(errs map[wizard.Scope]string) string {
	if len(errs) == 0 {
		return ""
	}
	scopes := make([]string, 0, len(errs))
	for s := range errs {
		scopes = append(scopes, string(s))
	}
	sort.Strings(scopes)
	lines := make([]string, 0, len(scopes))
	for _, s := range scopes {
		lines = append(lines, errorStyle.Render("! "+errs[wizard.Scope(s)]))
	}
	return strings.Join(lines, "\n")
}

func CarSummary(lines []string) string {
	if len(lines) == 0 {
		return mutedStyle.Render("Add your registration and postcode to start your quote.")
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Category renders the category cards and the services of the selected one.
func Category(cv wizard.CategoryView) string {
	if cv.LoadError != "" {
		return errorStyle.Render(cv.LoadError)
	}
	var b strings.Builder
	for _, c := range cv.Cards {
		marker := "○"
		if c.Active {
			marker = "●"
		}
		fmt.Fprintf(&b, "%s %s %s\n", marker, c.Name, mutedStyle.Render(c.Summary))
	}
	if cv.Placeholder != "" {
		b.WriteString("\n" + mutedStyle.Render(cv.Placeholder))
		return b.String()
	}
	b.WriteString("\n" + titleStyle.Render(cv.Title) + "\n")
	if cv.Lead != "" {
		b.WriteString(mutedStyle.Render(cv.Lead) + "\n")
	}
	for _, s := range cv.Services {
		b.WriteString("\n" + ServiceCard(s) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func ServiceCard(s wizard.ServiceCard) string {
	head := fmt.Sprintf("%s  %s", s.Name, priceStyle.Render(s.Price))
	if s.Tag != "" {
		head += " " + tagStyle.Render(s.Tag)
	}
	lines := []string{head, s.Description}
	if s.Reviews > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("★ %s (%d reviews)", s.Rating, s.Reviews)))
	}
	for _, e := range s.Expect {
		lines = append(lines, "  - "+e)
	}
	lines = append(lines, "["+s.ActionLabel+"]")
	return strings.Join(lines, "\n")
}

func Basket(bv wizard.BasketView) string {
	var lines []string
	lines = append(lines, bv.CarLines...)
	if len(bv.CarLines) > 0 {
		lines = append(lines, "")
	}
	if bv.Empty {
		lines = append(lines, mutedStyle.Render(bv.EmptyText))
	}
	for _, l := range bv.Lines {
		lines = append(lines, fmt.Sprintf("%s  %s", l.Name, priceStyle.Render(l.Price)))
	}
	lines = append(lines, "", "Total "+priceStyle.Render(bv.Total))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func MobileBasket(mv wizard.MobileBasketView) string {
	if mv.Empty {
		return mutedStyle.Render(mv.Label)
	}
	return fmt.Sprintf("%s • %s", mv.Label, priceStyle.Render(mv.Total))
}

func Details(ds wizard.DetailsSummary) string {
	lines := []string{titleStyle.Render(ds.CategoryName)}
	if ds.CategorySummary != "" {
		lines = append(lines, mutedStyle.Render(ds.CategorySummary))
	}
	lines = append(lines, ds.Services...)
	lines = append(lines, ds.Availability...)
	lines = append(lines, ds.Driveable, ds.Address, ds.Clarifier)
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Confirm renders the review table shown before sending.
func Confirm(cs wizard.ConfirmSummary) string {
	rows := [][2]string{
		{"Vehicle", cs.Vehicle},
		{"Services", strings.Join(cs.Services, ", ")},
		{"Availability", strings.Join(cs.Availability, "\n")},
		{"Driveable", cs.Driveable},
		{"Contact", cs.Contact},
		{"Email", cs.Email},
		{"Address", cs.Address},
		{"Notes", cs.Notes},
		{"Clarifier", strings.Join(cs.Clarifier, "\n")},
		{"Total", priceStyle.Render(cs.Total)},
	}
	label := lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("245"))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(r[0]), r[1]))
	}
	return strings.Join(out, "\n")
}

func Clarifier(cv wizard.ClarifierView) string {
	if !cv.Active {
		return mutedStyle.Render(cv.Hint)
	}
	if cv.Complete {
		return panelStyle.Render(strings.Join(cv.Summary, "\n"))
	}
	return fmt.Sprintf("%s\n%s", mutedStyle.Render(cv.Progress), titleStyle.Render(cv.Question))
}

// Week renders the availability grid with ticked slots marked.
func Week(cols []wizard.DayColumn) string {
	rendered := make([]string, 0, len(cols))
	for _, col := range cols {
		lines := []string{titleStyle.Render(col.Label)}
		for _, s := range col.Slots {
			box := "[ ]"
			if s.Active {
				box = "[x]"
			}
			lines = append(lines, box+" "+s.Slot)
		}
		rendered = append(rendered, lipgloss.NewStyle().MarginRight(2).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
