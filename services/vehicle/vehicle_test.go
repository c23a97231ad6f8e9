package vehicle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mechanicbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubLookup(t *testing.T) {
	tests := []struct {
		reg   string
		make  string
		model string
		year  string
	}{
		{"AB12CDE", "Ford", "Fiesta", "2018"},
		{"CD34EFG", "Volkswagen", "Golf", "2020"},
		{"EF56GHI", "Vauxhall", "Corsa", "2017"},
		// 'Z' is 90, 90 % 8 == 2
		{"ZZ99ZZZ", "Example Motors", "Hatchback", "2016"},
	}
	for _, tt := range tests {
		t.Run(tt.reg, func(t *testing.T) {
			v := StubLookup(tt.reg)
			assert.Equal(t, tt.make, v.Make)
			assert.Equal(t, tt.model, v.Model)
			assert.Equal(t, tt.year, v.Year)
			assert.Equal(t, tt.reg, v.Reg)
		})
	}
}

func TestNormalizeReg(t *testing.T) {
	assert.Equal(t, "AB12CDE", NormalizeReg(" ab12 cde "))
	assert.Empty(t, NormalizeReg("   "))
}

func TestServiceRequiresReg(t *testing.T) {
	svc := &DefaultVehicleService{Mode: ModeStub}
	_, err := svc.Lookup(context.Background(), models.VehicleLookupRequest{Reg: "  "})
	assert.ErrorIs(t, err, ErrRegRequired)
}

func TestServiceStubMode(t *testing.T) {
	svc := &DefaultVehicleService{Mode: ModeStub}
	resp, err := svc.Lookup(context.Background(), models.VehicleLookupRequest{Reg: "ab12 cde", Postcode: "sw1a 1aa"})
	require.NoError(t, err)
	assert.Equal(t, "AB12CDE", resp.Reg)
	assert.Equal(t, "SW1A 1AA", resp.Postcode)
	assert.Equal(t, models.LookupSourceStub, resp.Source)
	assert.False(t, resp.DVLAReady)
	assert.Equal(t, "Fiesta", resp.Vehicle.Model)
}

func TestServiceTestModeWithoutKey(t *testing.T) {
	svc := &DefaultVehicleService{Mode: ModeTest, DVLA: NewDVLAClient("", "")}
	_, err := svc.Lookup(context.Background(), models.VehicleLookupRequest{Reg: "AB12CDE"})
	assert.ErrorIs(t, err, ErrDVLANotConfigured)
	assert.Equal(t, "DVLA test API key is not configured", err.Error())
}

func TestDVLAClientLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		var body dvlaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "AB12CDE", body.RegistrationNumber)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"registrationNumber":"AB12CDE","make":"FORD","yearOfManufacture":2018,"engineFuelType":"PETROL","colour":"BLUE","typeApproval":"M1"}`))
	}))
	defer srv.Close()

	svc := &DefaultVehicleService{Mode: ModeTest, DVLA: NewDVLAClient(srv.URL, "secret")}
	resp, err := svc.Lookup(context.Background(), models.VehicleLookupRequest{Reg: "AB12CDE"})
	require.NoError(t, err)
	assert.Equal(t, models.LookupSourceDVLA, resp.Source)
	assert.True(t, resp.DVLAReady)
	assert.Equal(t, &models.Vehicle{Reg: "AB12CDE", Make: "FORD", Model: "M1", Year: "2018", FuelType: "PETROL", Colour: "BLUE"}, resp.Vehicle)
}

func TestDVLAClientUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Vehicle not found"}`))
	}))
	defer srv.Close()

	_, err := NewDVLAClient(srv.URL, "secret").Lookup(context.Background(), "ZZ99ZZZ")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusNotFound, ue.Status)
	assert.Equal(t, `DVLA lookup failed (404): {"message":"Vehicle not found"}`, err.Error())
}

func TestDVLAMissingFieldsFallBackToUnknown(t *testing.T) {
	v := dvlaVehicle{}.toVehicle("AB12CDE")
	assert.Equal(t, "Unknown", v.Make)
	assert.Equal(t, "Unknown", v.Model)
	assert.Equal(t, "Unknown", v.Year)
}
