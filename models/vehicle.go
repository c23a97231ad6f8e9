package models

import "fmt"

// LookupSource says where a vehicle record came from.
type LookupSource string

const (
	LookupSourceDVLA LookupSource = "dvla"
	LookupSourceStub LookupSource = "stub"
)

// Vehicle is what a registration lookup resolves to.
type Vehicle struct {
	Reg      string `bson:"reg,omitempty" json:"reg,omitempty"`
	Make     string `bson:"make" json:"make"`
	Model    string `bson:"model" json:"model"`
	Year     string `bson:"year,omitempty" json:"year,omitempty"`
	FuelType string `bson:"fuelType,omitempty" json:"fuelType,omitempty"`
	Colour   string `bson:"colour,omitempty" json:"colour,omitempty"`
}

// Label renders "Make Model (Year)", dropping parts that are missing.
func (v Vehicle) Label() string {
	name := v.Make
	if v.Model != "" {
		if name != "" {
			name += " "
		}
		name += v.Model
	}
	if v.Year != "" {
		if name == "" {
			return v.Year
		}
		return fmt.Sprintf("%s (%s)", name, v.Year)
	}
	return name
}

// VehicleLookupRequest is the body of POST /api/lookup/vehicle.
type VehicleLookupRequest struct {
	Reg      string `json:"reg"`
	Postcode string `json:"postcode,omitempty"`
}

// VehicleLookupResponse echoes the normalised query alongside the resolved vehicle.
type VehicleLookupResponse struct {
	Reg       string       `json:"reg"`
	Postcode  string       `json:"postcode,omitempty"`
	Vehicle   *Vehicle     `json:"vehicle"`
	Source    LookupSource `json:"source"`           // dvla or stub
	Cached    bool         `json:"cached,omitempty"` // served from the lookup cache
	DVLAReady bool         `json:"dvlaReady"`        // true when the service holds a DVLA key
}

// AreaLookupResponse resolves a postcode to a human area label.
type AreaLookupResponse struct {
	Postcode  string `json:"postcode"`
	AreaLabel string `json:"areaLabel"`
}
