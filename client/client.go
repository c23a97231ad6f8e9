// Package client talks to the mechanicbook HTTP API. It satisfies the wizard's
// lookup, catalogue and submission collaborators and carries the admin calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mechanicbook/models"
)

// DefaultBaseURL points at a locally running server.
const DefaultBaseURL = "http://localhost:8080"

// APIError is any non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Details []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s (%d): %s", msg, e.Status, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s (%d)", msg, e.Status)
}

// UserMessage is the server's error text without status or details, for showing to customers.
func (e *APIError) UserMessage() string { return e.Message }

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

type Option func(*Client)

// WithToken sets the admin bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LookupVehicle resolves a registration for the car step.
func (c *Client) LookupVehicle(ctx context.Context, reg string) (*models.Vehicle, error) {
	var resp models.VehicleLookupResponse
	if err := c.do(ctx, http.MethodPost, "/api/lookup/vehicle", models.VehicleLookupRequest{Reg: reg}, &resp); err != nil {
		return nil, err
	}
	return resp.Vehicle, nil
}

// LookupArea returns the area label for a postcode.
func (c *Client) LookupArea(ctx context.Context, postcode string) (string, error) {
	var resp models.AreaLookupResponse
	if err := c.do(ctx, http.MethodGet, "/api/lookup/postcode/"+url.PathEscape(postcode), nil, &resp); err != nil {
		return "", err
	}
	return resp.AreaLabel, nil
}

func (c *Client) Catalog(ctx context.Context) (*models.Catalog, error) {
	var cat models.Catalog
	if err := c.do(ctx, http.MethodGet, "/api/catalog", nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) Clarify(ctx context.Context, req models.ClarifyRequest) (*models.ClarifyResponse, error) {
	var resp models.ClarifyResponse
	if err := c.do(ctx, http.MethodPost, "/api/clarify", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submit posts a finished booking.
func (c *Client) Submit(ctx context.Context, payload models.JobPayload) (*models.SubmitJobResponse, error) {
	var resp models.SubmitJobResponse
	if err := c.do(ctx, http.MethodPost, "/api/jobs", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListJobs needs the admin token. limit <= 0 uses the server default.
func (c *Client) ListJobs(ctx context.Context, limit int) ([]models.Job, error) {
	path := "/api/admin/jobs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var resp struct {
		Jobs []models.Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *Client) UpdateJobStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	var resp struct {
		Job *models.Job `json:"job"`
	}
	body := models.UpdateJobStatusRequest{ID: id, Status: status}
	if err := c.do(ctx, http.MethodPatch, "/api/admin/jobs", body, &resp); err != nil {
		return nil, err
	}
	return resp.Job, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb struct {
			Error   string   `json:"error"`
			Details []string `json:"details"`
		}
		if raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); json.Unmarshal(raw, &eb) == nil {
			apiErr.Message, apiErr.Details = eb.Error, eb.Details
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
