package vehicle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"mechanicbook/models"
)

// DefaultDVLAURL is the DVLA vehicle enquiry endpoint.
const DefaultDVLAURL = "https://driver-vehicle-licensing.api.gov.uk/vehicle-enquiry/v1/vehicles"

// DVLAClient calls the DVLA vehicle enquiry API.
type DVLAClient struct {
	URL    string
	APIKey string
	HTTP   *http.Client
}

func NewDVLAClient(url, apiKey string) *DVLAClient {
	if url == "" {
		url = DefaultDVLAURL
	}
	return &DVLAClient{URL: url, APIKey: apiKey, HTTP: &http.Client{Timeout: 10 * time.Second}}
}

type dvlaRequest struct {
	RegistrationNumber string `json:"registrationNumber"`
}

type dvlaVehicle struct {
	RegistrationNumber   string `json:"registrationNumber"`
	Make                 string `json:"make"`
	Model                string `json:"model"`
	TypeApprovalCategory string `json:"typeApproval"`
	YearOfManufacture    int    `json:"yearOfManufacture"`
	FuelType             string `json:"fuelType"`
	EngineFuelType       string `json:"engineFuelType"`
	Colour               string `json:"colour"`
}

// Lookup fetches one registration.
func (c *DVLAClient) Lookup(ctx context.Context, reg string) (*models.Vehicle, error) {
	if c.APIKey == "" {
		return nil, ErrDVLANotConfigured
	}
	body, err := json.Marshal(dvlaRequest{RegistrationNumber: reg})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build DVLA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DVLA request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(details)}
	}

	var v dvlaVehicle
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode DVLA response: %w", err)
	}
	return v.toVehicle(reg), nil
}

func (v dvlaVehicle) toVehicle(reg string) *models.Vehicle {
	out := &models.Vehicle{
		Reg:      reg,
		Make:     firstNonEmpty(v.Make, "Unknown"),
		Model:    firstNonEmpty(v.Model, v.TypeApprovalCategory, "Unknown"),
		Year:     "Unknown",
		FuelType: firstNonEmpty(v.FuelType, v.EngineFuelType),
		Colour:   v.Colour,
	}
	if v.YearOfManufacture > 0 {
		out.Year = strconv.Itoa(v.YearOfManufacture)
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
