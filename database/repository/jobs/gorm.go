package jobsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mechanicbook/models"

	"gorm.io/gorm"
)

// jobRow is the relational shape of a job; nested values are stored as JSON columns.
type jobRow struct {
	ID           string    `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
	Reg          string `gorm:"size:16;index"`
	Postcode     string `gorm:"size:16"`
	AreaLabel    string
	Vehicle      *models.Vehicle           `gorm:"serializer:json"`
	Category     string                    `gorm:"size:64"`
	Services     []models.ServiceItem      `gorm:"serializer:json"`
	Availability []models.AvailabilitySlot `gorm:"serializer:json"`
	Clarifier    *models.ClarifierSummary  `gorm:"serializer:json"`
	Contact      models.Contact            `gorm:"serializer:json"`
	Notes        string
	Driveable    *bool
	Total        float64
	Status       string `gorm:"size:16;index"`
}

func (jobRow) TableName() string { return "jobs" }

func toRow(j *models.Job) *jobRow {
	return &jobRow{
		ID:           j.ID,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
		Reg:          j.Reg,
		Postcode:     j.Postcode,
		AreaLabel:    j.AreaLabel,
		Vehicle:      j.Vehicle,
		Category:     j.Category,
		Services:     j.Services,
		Availability: j.Availability,
		Clarifier:    j.Clarifier,
		Contact:      j.Contact,
		Notes:        j.Notes,
		Driveable:    j.Driveable,
		Total:        j.Total,
		Status:       string(j.Status),
	}
}

func (r *jobRow) toJob() models.Job {
	return models.Job{
		ID:           r.ID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Reg:          r.Reg,
		Postcode:     r.Postcode,
		AreaLabel:    r.AreaLabel,
		Vehicle:      r.Vehicle,
		Category:     r.Category,
		Services:     r.Services,
		Availability: r.Availability,
		Clarifier:    r.Clarifier,
		Contact:      r.Contact,
		Notes:        r.Notes,
		Driveable:    r.Driveable,
		Total:        r.Total,
		Status:       models.JobStatus(r.Status),
	}
}

type gormJobRepo struct {
	db *gorm.DB
}

// NewGormJobRepo returns a JobRepository on Postgres or SQLite, migrating the jobs table.
func NewGormJobRepo(db *gorm.DB) (JobRepository, error) {
	if err := db.AutoMigrate(&jobRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate jobs table: %w", err)
	}
	return &gormJobRepo{db: db}, nil
}

func (r *gormJobRepo) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(toRow(job)).Error; err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (r *gormJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var row jobRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	job := row.toJob()
	return &job, nil
}

func (r *gormJobRepo) List(ctx context.Context, limit int) ([]models.Job, error) {
	var rows []jobRow
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(normalizeLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs := make([]models.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].toJob())
	}
	return jobs, nil
}

func (r *gormJobRepo) UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	res := r.db.WithContext(ctx).
		Model(&jobRow{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update job status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrJobNotFound
	}
	return r.GetByID(ctx, id)
}
