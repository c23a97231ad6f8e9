package jobs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	jobsRepo "mechanicbook/database/repository/jobs"
	"mechanicbook/models"
	"mechanicbook/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidStatus = errors.New("Invalid status")
	ErrMissingFields = errors.New("id and status are required")
	ErrJobNotFound   = jobsRepo.ErrJobNotFound
)

// ReasonSMSFailed is reported to the customer when the provider rejected the text.
const ReasonSMSFailed = "SMS failed"

// PayloadError lists every problem found in a submitted booking.
type PayloadError struct {
	Details []string
}

func (e *PayloadError) Error() string {
	return "Invalid payload: " + strings.Join(e.Details, ", ")
}

// JobService accepts bookings from customers and status changes from admins.
type JobService interface {
	Submit(ctx context.Context, payload models.JobPayload) (*models.SubmitJobResponse, error)
	List(ctx context.Context, limit int) ([]models.Job, error)
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error)
}

type DefaultJobService struct {
	Repo     jobsRepo.JobRepository
	Notifier notification.SMSNotifier
	Logger   *zap.Logger
	now      func() time.Time
}

func NewJobService(repo jobsRepo.JobRepository, notifier notification.SMSNotifier, logger *zap.Logger) *DefaultJobService {
	if notifier == nil {
		notifier = notification.NoopNotifier{Reason: notification.ReasonNotConfigured}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultJobService{Repo: repo, Notifier: notifier, Logger: logger, now: time.Now}
}

// ValidatePayload returns the field problems in a fixed order.
func ValidatePayload(p models.JobPayload) []string {
	var details []string
	required := []struct {
		value string
		msg   string
	}{
		{p.Reg, "reg is required"},
		{p.Postcode, "postcode is required"},
		{p.Contact.Name, "contact.name is required"},
		{p.Contact.Phone, "contact.phone is required"},
		{p.Contact.AddressLine, "contact.addressLine is required"},
		{p.Contact.AddressPostcode, "contact.addressPostcode is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			details = append(details, r.msg)
		}
	}
	if p.Services == nil {
		details = append(details, "services must be an array")
	}
	return details
}

// Submit stores the booking as pending and then tries to text the customer.
// SMS problems are reported in the response, never as an error.
func (s *DefaultJobService) Submit(ctx context.Context, p models.JobPayload) (*models.SubmitJobResponse, error) {
	if details := ValidatePayload(p); len(details) > 0 {
		return nil, &PayloadError{Details: details}
	}

	now := s.now().UTC()
	job := &models.Job{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Reg:          strings.ToUpper(strings.TrimSpace(p.Reg)),
		Postcode:     strings.ToUpper(strings.TrimSpace(p.Postcode)),
		AreaLabel:    p.AreaLabel,
		Vehicle:      p.Vehicle,
		Category:     p.Category,
		Services:     p.Services,
		Availability: p.Availability,
		Clarifier:    p.Clarifier,
		Contact:      p.Contact,
		Notes:        p.Notes,
		Driveable:    p.Driveable,
		Total:        sumServices(p.Services),
		Status:       models.JobStatusPending,
	}
	if job.Availability == nil {
		job.Availability = []models.AvailabilitySlot{}
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to store job: %w", err)
	}
	s.Logger.Info("Job submitted", zap.String("id", job.ID), zap.String("reg", job.Reg), zap.Int("services", len(job.Services)))

	return &models.SubmitJobResponse{Job: job, SMS: s.notify(ctx, job)}, nil
}

func (s *DefaultJobService) notify(ctx context.Context, job *models.Job) models.SMSResult {
	body := notification.BookingReceivedMessage(job.Contact.Name, job.Reg)
	res, err := s.Notifier.SendSMS(ctx, job.Contact.Phone, body)
	if err != nil {
		s.Logger.Warn("Confirmation SMS failed", zap.String("id", job.ID), zap.Error(err))
		return models.SMSResult{To: job.Contact.Phone, Skipped: true, Reason: ReasonSMSFailed}
	}
	return res
}

func (s *DefaultJobService) List(ctx context.Context, limit int) ([]models.Job, error) {
	list, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if list == nil {
		list = []models.Job{}
	}
	return list, nil
}

func (s *DefaultJobService) UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" || status == "" {
		return nil, ErrMissingFields
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	job, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, jobsRepo.ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	s.Logger.Info("Job status updated", zap.String("id", id), zap.String("status", string(status)))
	return job, nil
}

// sumServices adds prices in whole pence.
func sumServices(items []models.ServiceItem) float64 {
	var pence int64
	for _, it := range items {
		pence += int64(math.Round(it.Price * 100))
	}
	return float64(pence) / 100
}
