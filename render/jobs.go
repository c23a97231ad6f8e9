package render

import (
	"fmt"
	"strings"

	"mechanicbook/models"

	"github.com/charmbracelet/lipgloss"
)

// Status colours a job status.
func Status(s models.JobStatus) string {
	c, ok := statusColors[string(s)]
	if !ok {
		return string(s)
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(s))
}

// JobLine is the one-line admin summary of a job.
func JobLine(j models.Job) string {
	names := make([]string, 0, len(j.Services))
	for _, s := range j.Services {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("%s  %s  %-8s %-9s %s  %s  %s",
		mutedStyle.Render(j.CreatedAt.Local().Format("02 Jan 15:04")),
		j.ID,
		j.Reg,
		Status(j.Status),
		j.Contact.Name,
		j.Contact.Phone,
		strings.Join(names, ", "),
	)
}

// Jobs lists jobs newest first as returned by the server.
func Jobs(list []models.Job) string {
	if len(list) == 0 {
		return mutedStyle.Render("No jobs yet.")
	}
	lines := make([]string, 0, len(list))
	for _, j := range list {
		lines = append(lines, JobLine(j))
	}
	return strings.Join(lines, "\n")
}
