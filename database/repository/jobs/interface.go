package jobsRepo

import (
	"context"
	"errors"

	"mechanicbook/models"
)

// DefaultListLimit caps how many jobs List returns when no limit is given.
const DefaultListLimit = 200

var ErrJobNotFound = errors.New("job not found")

// JobRepository persists submitted booking requests.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// List returns the newest jobs first.
	List(ctx context.Context, limit int) ([]models.Job, error)
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
