package models

import (
	"strings"
	"time"
)

// JobStatus is the lifecycle state of a submitted booking request.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusDone      JobStatus = "done"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusDone, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// ParseJobStatus normalises raw input into a JobStatus and reports whether it is known.
func ParseJobStatus(raw string) (JobStatus, bool) {
	s := JobStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Contact holds the customer's contact and service address.
type Contact struct {
	Name            string `bson:"name" json:"name"`
	Email           string `bson:"email,omitempty" json:"email,omitempty"`
	Phone           string `bson:"phone" json:"phone"`
	AddressLine     string `bson:"addressLine" json:"addressLine"`
	AddressPostcode string `bson:"addressPostcode" json:"addressPostcode"`
}

// AvailabilitySlot is one (day, window) pair the customer ticked.
type AvailabilitySlot struct {
	Day  string `bson:"day" json:"day"`   // YYYY-MM-DD
	Slot string `bson:"slot" json:"slot"` // e.g. "8am - 12pm"
}

// ServiceItem is the compact form of a basket entry stored on a job.
type ServiceItem struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// ClarifierPair is one answered clarifying question.
type ClarifierPair struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}

// ClarifierSummary is the outcome of the clarifying-question sub-flow.
type ClarifierSummary struct {
	Pairs     []ClarifierPair `bson:"pairs" json:"pairs"`
	Stopped   bool            `bson:"stopped" json:"stopped"`               // customer chose to stop early
	Completed bool            `bson:"completed" json:"completed"`           // sub-flow reached its end
	Note      string          `bson:"note,omitempty" json:"note,omitempty"` // explicit "nothing provided" marker
}

// JobPayload is the aggregated booking a customer submits.
type JobPayload struct {
	Reg          string             `json:"reg"`
	Postcode     string             `json:"postcode"`
	AreaLabel    string             `json:"areaLabel,omitempty"`
	Vehicle      *Vehicle           `json:"vehicle,omitempty"`
	Category     string             `json:"category,omitempty"`
	Services     []ServiceItem      `json:"services"`
	Availability []AvailabilitySlot `json:"availability"`
	Clarifier    *ClarifierSummary  `json:"clarifier,omitempty"`
	Contact      Contact            `json:"contact"`
	Notes        string             `json:"notes,omitempty"`
	Driveable    *bool              `json:"driveable"`
	Total        float64            `json:"total"`
}

// Job is a persisted booking request.
type Job struct {
	ID           string             `bson:"id" json:"id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	Reg          string             `bson:"reg" json:"reg"`
	Postcode     string             `bson:"postcode" json:"postcode"`
	AreaLabel    string             `bson:"area_label,omitempty" json:"area_label,omitempty"`
	Vehicle      *Vehicle           `bson:"vehicle,omitempty" json:"vehicle,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Services     []ServiceItem      `bson:"services" json:"services"`
	Availability []AvailabilitySlot `bson:"availability" json:"availability"`
	Clarifier    *ClarifierSummary  `bson:"clarifier,omitempty" json:"clarifier,omitempty"`
	Contact      Contact            `bson:"contact" json:"contact"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Driveable    *bool              `bson:"driveable,omitempty" json:"driveable,omitempty"`
	Total        float64            `bson:"total" json:"total"`
	Status       JobStatus          `bson:"status" json:"status"`
	UpdatedAt    time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// UpdateJobStatusRequest is the body of PATCH /api/admin/jobs.
type UpdateJobStatusRequest struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`
}

// SMSResult reports what happened to the confirmation text.
type SMSResult struct {
	SID     string `json:"sid,omitempty"`
	To      string `json:"to,omitempty"`
	Queued  bool   `json:"queued,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// SubmitJobResponse is returned from POST /api/jobs.
type SubmitJobResponse struct {
	Job *Job      `json:"job"`
	SMS SMSResult `json:"sms"`
}

// SMSPayload is the body of a queued SMS task.
type SMSPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}
