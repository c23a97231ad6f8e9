package wizard

import (
	"context"
	"errors"
	"sync"

	"mechanicbook/models"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{Categories: []models.Category{
		{
			ID:      "repairs",
			Name:    "Repairs",
			Summary: "Brakes, suspension and more",
			Lead:    "Fixed-price repairs",
			Services: []models.Service{
				{ID: "brake-pads", Name: "Front brake pads", Price: 89.99, Rating: 4.8, Reviews: 120, WhatToExpect: []string{"Pads replaced"}},
				{ID: "brake-discs", Name: "Front discs and pads", Price: 189.5},
			},
		},
		{
			ID:   "diagnostics",
			Name: "Diagnostics",
			Services: []models.Service{
				{ID: "warning-light", Name: "Warning light check", Price: 0.1},
				{ID: "noise", Name: "Noise investigation", Price: 0.2},
			},
		},
	}}
}

type recordingSubmitter struct {
	mu       sync.Mutex
	payloads []models.JobPayload
	err      error
}

func (r *recordingSubmitter) Submit(_ context.Context, p models.JobPayload) (*models.SubmitJobResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
	if r.err != nil {
		return nil, r.err
	}
	return &models.SubmitJobResponse{Job: &models.Job{ID: "job-1", Status: models.JobStatusPending}}, nil
}

func (r *recordingSubmitter) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

type fixedSequencer map[Field]uint64

func (f fixedSequencer) Latest(field Field) uint64 { return f[field] }

type fakeVehicles struct {
	mu      sync.Mutex
	calls   []string
	blockOn string
	release chan struct{}
	started chan string
	err     error
}

func (f *fakeVehicles) LookupVehicle(ctx context.Context, reg string) (*models.Vehicle, error) {
	f.mu.Lock()
	f.calls = append(f.calls, reg)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- reg
	}
	if f.blockOn != "" && reg == f.blockOn {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.Vehicle{Reg: reg, Make: "Ford", Model: "Fiesta", Year: "2018"}, nil
}

func (f *fakeVehicles) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeAreas struct {
	label string
	err   error
}

func (f fakeAreas) LookupArea(_ context.Context, _ string) (string, error) {
	return f.label, f.err
}

var errBackend = errors.New("backend down")
