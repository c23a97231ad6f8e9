package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mechanicbook/models"
	"mechanicbook/services/catalog"
	"mechanicbook/services/jobs"
	"mechanicbook/services/postcode"
	"mechanicbook/services/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeJobService struct {
	submitResp *models.SubmitJobResponse
	submitErr  error
	list       []models.Job
	listErr    error
	updated    *models.Job
	updateErr  error
	gotLimit   int
}

func (f *fakeJobService) Submit(_ context.Context, p models.JobPayload) (*models.SubmitJobResponse, error) {
	return f.submitResp, f.submitErr
}

func (f *fakeJobService) List(_ context.Context, limit int) ([]models.Job, error) {
	f.gotLimit = limit
	return f.list, f.listErr
}

func (f *fakeJobService) UpdateStatus(_ context.Context, id string, status models.JobStatus) (*models.Job, error) {
	return f.updated, f.updateErr
}

type fakeVehicles struct {
	resp *models.VehicleLookupResponse
	err  error
}

func (f fakeVehicles) Lookup(context.Context, models.VehicleLookupRequest) (*models.VehicleLookupResponse, error) {
	return f.resp, f.err
}

type fakePostcodes struct {
	resp *models.AreaLookupResponse
	err  error
}

func (f fakePostcodes) Lookup(context.Context, string) (*models.AreaLookupResponse, error) {
	return f.resp, f.err
}

type failingCatalog struct{}

func (failingCatalog) Catalog(context.Context) (*models.Catalog, error) {
	return nil, errors.New("file missing")
}

func serve(method, path, body string, h gin.HandlerFunc, route string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, h)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitJobHandler(t *testing.T) {
	fs := &fakeJobService{submitResp: &models.SubmitJobResponse{
		Job: &models.Job{ID: "j1", Reg: "AB12CDE", Status: models.JobStatusPending},
		SMS: models.SMSResult{Skipped: true, Reason: "Twilio not configured"},
	}}
	h := NewJobsHandler(fs)

	w := serve(http.MethodPost, "/api/jobs", `{"reg":"ab12cde"}`, h.SubmitJobHandler, "/api/jobs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"j1"`)
	assert.Contains(t, w.Body.String(), `"reason":"Twilio not configured"`)
}

func TestSubmitJobHandlerInvalidPayload(t *testing.T) {
	fs := &fakeJobService{submitErr: &jobs.PayloadError{Details: []string{"reg is required", "postcode is required"}}}
	h := NewJobsHandler(fs)

	w := serve(http.MethodPost, "/api/jobs", `{}`, h.SubmitJobHandler, "/api/jobs")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid payload","details":["reg is required","postcode is required"]}`, w.Body.String())

	w = serve(http.MethodPost, "/api/jobs", `not json`, h.SubmitJobHandler, "/api/jobs")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"Invalid payload"`)
}

func TestSubmitJobHandlerStoreFailure(t *testing.T) {
	h := NewJobsHandler(&fakeJobService{submitErr: errors.New("db down")})
	w := serve(http.MethodPost, "/api/jobs", `{}`, h.SubmitJobHandler, "/api/jobs")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListJobsHandler(t *testing.T) {
	fs := &fakeJobService{list: []models.Job{{ID: "j1"}, {ID: "j2"}}}
	h := NewAdminHandler(fs)

	w := serve(http.MethodGet, "/api/admin/jobs?limit=5", "", h.ListJobsHandler, "/api/admin/jobs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, fs.gotLimit)
	assert.Contains(t, w.Body.String(), `"jobs":[`)
}

func TestUpdateJobStatusHandler(t *testing.T) {
	tests := []struct {
		name string
		svc  *fakeJobService
		body string
		code int
		want string
	}{
		{"ok", &fakeJobService{updated: &models.Job{ID: "j1", Status: models.JobStatusDone}}, `{"id":"j1","status":"done"}`, http.StatusOK, `"status":"done"`},
		{"missing", &fakeJobService{updateErr: jobs.ErrMissingFields}, `{}`, http.StatusBadRequest, `{"error":"id and status are required"}`},
		{"bad body", &fakeJobService{updateErr: jobs.ErrMissingFields}, `{`, http.StatusBadRequest, `{"error":"id and status are required"}`},
		{"invalid", &fakeJobService{updateErr: jobs.ErrInvalidStatus}, `{"id":"j1","status":"x"}`, http.StatusBadRequest, `{"error":"Invalid status"}`},
		{"not found", &fakeJobService{updateErr: jobs.ErrJobNotFound}, `{"id":"nope","status":"done"}`, http.StatusNotFound, `{"error":"Job not found"}`},
		{"store error", &fakeJobService{updateErr: errors.New("db")}, `{"id":"j1","status":"done"}`, http.StatusInternalServerError, `{"error":"Failed to update job"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminHandler(tt.svc)
			w := serve(http.MethodPatch, "/api/admin/jobs", tt.body, h.UpdateJobStatusHandler, "/api/admin/jobs")
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestVehicleLookupHandler(t *testing.T) {
	ok := &models.VehicleLookupResponse{Reg: "AB12CDE", Source: models.LookupSourceStub, Vehicle: &models.Vehicle{Make: "Ford"}}
	tests := []struct {
		name string
		svc  fakeVehicles
		body string
		code int
		want string
	}{
		{"ok", fakeVehicles{resp: ok}, `{"reg":"AB12CDE"}`, http.StatusOK, `"make":"Ford"`},
		{"reg required", fakeVehicles{err: vehicle.ErrRegRequired}, `{"reg":""}`, http.StatusBadRequest, `{"error":"Registration is required"}`},
		{"bad body", fakeVehicles{}, `[`, http.StatusBadRequest, `{"error":"Registration is required"}`},
		{"dvla key", fakeVehicles{err: vehicle.ErrDVLANotConfigured}, `{"reg":"AB12CDE"}`, http.StatusInternalServerError, `{"error":"DVLA test API key is not configured"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLookupHandler(tt.svc, nil)
			w := serve(http.MethodPost, "/api/lookup/vehicle", tt.body, h.VehicleLookupHandler, "/api/lookup/vehicle")
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestPostcodeLookupHandler(t *testing.T) {
	tests := []struct {
		name string
		svc  fakePostcodes
		code int
	}{
		{"ok", fakePostcodes{resp: &models.AreaLookupResponse{Postcode: "SW1A 1AA", AreaLabel: "Westminster, London"}}, http.StatusOK},
		{"invalid", fakePostcodes{err: postcode.ErrInvalidPostcode}, http.StatusBadRequest},
		{"not found", fakePostcodes{err: postcode.ErrNotFound}, http.StatusNotFound},
		{"upstream", fakePostcodes{err: postcode.ErrLookupFailed}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLookupHandler(nil, tt.svc)
			w := serve(http.MethodGet, "/api/lookup/postcode/SW1A%201AA", "", h.PostcodeLookupHandler, "/api/lookup/postcode/:postcode")
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestCatalogHandler(t *testing.T) {
	h := NewCatalogHandler(catalog.NewFileCatalog(""))
	w := serve(http.MethodGet, "/api/catalog", "", h.GetCatalogHandler, "/api/catalog")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"brake-pads"`)

	h = NewCatalogHandler(failingCatalog{})
	w = serve(http.MethodGet, "/api/catalog", "", h.GetCatalogHandler, "/api/catalog")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Unable to load services right now."}`, w.Body.String())
}
