package vehicle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mechanicbook/models"
	"mechanicbook/utils"

	"go.uber.org/zap"
)

// Lookup modes.
const (
	ModeStub = "stub"
	ModeTest = "test"
)

// CachePrefix namespaces vehicle lookups in Redis.
const CachePrefix = "lookup:vehicle:"

var (
	ErrRegRequired       = errors.New("Registration is required")
	ErrDVLANotConfigured = errors.New("DVLA test API key is not configured")
)

// UpstreamError is a non-2xx answer from DVLA.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("DVLA lookup failed (%d): %s", e.Status, e.Body)
}

// VehicleService resolves registrations to vehicles.
type VehicleService interface {
	Lookup(ctx context.Context, req models.VehicleLookupRequest) (*models.VehicleLookupResponse, error)
}

type DefaultVehicleService struct {
	Mode   string
	DVLA   *DVLAClient
	Cache  *utils.JSONCache
	Logger *zap.Logger
}

// NormalizeReg trims, uppercases and removes inner spaces.
func NormalizeReg(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

func (s *DefaultVehicleService) dvlaReady() bool {
	return s.DVLA != nil && s.DVLA.APIKey != ""
}

func (s *DefaultVehicleService) Lookup(ctx context.Context, req models.VehicleLookupRequest) (*models.VehicleLookupResponse, error) {
	reg := NormalizeReg(req.Reg)
	if reg == "" {
		return nil, ErrRegRequired
	}
	resp := &models.VehicleLookupResponse{
		Reg:       reg,
		Postcode:  strings.ToUpper(strings.TrimSpace(req.Postcode)),
		DVLAReady: s.dvlaReady(),
	}

	var cached models.VehicleLookupResponse
	if err := s.Cache.Get(ctx, reg, &cached); err == nil && cached.Vehicle != nil {
		resp.Vehicle, resp.Source, resp.Cached = cached.Vehicle, cached.Source, true
		return resp, nil
	} else if err != nil && !errors.Is(err, utils.ErrCacheMiss) {
		s.logger().Warn("vehicle cache read failed", zap.String("reg", reg), zap.Error(err))
	}

	if strings.EqualFold(s.Mode, ModeTest) {
		if s.DVLA == nil {
			return nil, ErrDVLANotConfigured
		}
		v, err := s.DVLA.Lookup(ctx, reg)
		if err != nil {
			return nil, err
		}
		resp.Vehicle, resp.Source = v, models.LookupSourceDVLA
	} else {
		resp.Vehicle, resp.Source = StubLookup(reg), models.LookupSourceStub
	}

	if err := s.Cache.Set(ctx, reg, resp); err != nil {
		s.logger().Warn("vehicle cache write failed", zap.String("reg", reg), zap.Error(err))
	}
	return resp, nil
}

func (s *DefaultVehicleService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
