package postcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"mechanicbook/models"
	"mechanicbook/utils"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public postcodes.io API.
const DefaultBaseURL = "https://api.postcodes.io"

// CachePrefix namespaces area lookups in Redis.
const CachePrefix = "lookup:postcode:"

var (
	ErrInvalidPostcode = errors.New("Enter a valid UK postcode.")
	ErrLookupFailed    = errors.New("Postcode lookup failed.")
	ErrNotFound        = errors.New("Postcode not found.")
)

var shape = regexp.MustCompile(`(?i)^[A-Za-z]{1,2}\d[A-Za-z\d]?\s*\d[A-Za-z]{2}$`)

// PostcodeService resolves a postcode to a human-readable area.
type PostcodeService interface {
	Lookup(ctx context.Context, postcode string) (*models.AreaLookupResponse, error)
}

type DefaultPostcodeService struct {
	BaseURL string
	HTTP    *http.Client
	Cache   *utils.JSONCache
	Logger  *zap.Logger
}

func NewPostcodeService(baseURL string, cache *utils.JSONCache, logger *zap.Logger) *DefaultPostcodeService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &DefaultPostcodeService{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Cache:   cache,
		Logger:  logger,
	}
}

type lookupResponse struct {
	Status int `json:"status"`
	Result *struct {
		AdminDistrict string `json:"admin_district"`
		Region        string `json:"region"`
		Country       string `json:"country"`
	} `json:"result"`
}

// Normalize trims and uppercases a postcode.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (s *DefaultPostcodeService) Lookup(ctx context.Context, raw string) (*models.AreaLookupResponse, error) {
	pc := Normalize(raw)
	if !shape.MatchString(pc) {
		return nil, ErrInvalidPostcode
	}
	key := strings.ReplaceAll(pc, " ", "")

	var cached models.AreaLookupResponse
	if err := s.Cache.Get(ctx, key, &cached); err == nil {
		cached.Postcode = pc
		return &cached, nil
	} else if !errors.Is(err, utils.ErrCacheMiss) {
		s.logger().Warn("postcode cache read failed", zap.String("postcode", pc), zap.Error(err))
	}

	label, err := s.fetch(ctx, pc)
	if err != nil {
		return nil, err
	}
	resp := &models.AreaLookupResponse{Postcode: pc, AreaLabel: label}
	if err := s.Cache.Set(ctx, key, resp); err != nil {
		s.logger().Warn("postcode cache write failed", zap.String("postcode", pc), zap.Error(err))
	}
	return resp, nil
}

func (s *DefaultPostcodeService) fetch(ctx context.Context, pc string) (string, error) {
	endpoint := fmt.Sprintf("%s/postcodes/%s", s.BaseURL, url.PathEscape(pc))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build postcode request: %w", err)
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		s.logger().Warn("postcode request failed", zap.String("postcode", pc), zap.Error(err))
		return "", ErrLookupFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ErrLookupFailed
	}
	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", ErrLookupFailed
	}
	if body.Status != http.StatusOK || body.Result == nil {
		return "", ErrNotFound
	}
	return AreaLabel(body.Result.AdminDistrict, body.Result.Region, body.Result.Country), nil
}

// AreaLabel joins district and region, falling back to the country.
func AreaLabel(district, region, country string) string {
	var parts []string
	for _, p := range []string{district, region} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return country
}

func (s *DefaultPostcodeService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
