package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"mechanicbook/models"
)

//go:embed services.json
var defaultCatalog []byte

var ErrInvalidCatalog = errors.New("invalid catalogue")

// CatalogSource supplies the service catalogue.
type CatalogSource interface {
	Catalog(ctx context.Context) (*models.Catalog, error)
}

// FileCatalog reads services.json from disk, or the built-in catalogue when Path is empty.
// The parsed catalogue is cached after the first successful load.
type FileCatalog struct {
	Path string

	mu     sync.Mutex
	cached *models.Catalog
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{Path: path}
}

func (f *FileCatalog) Catalog(_ context.Context) (*models.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cached != nil {
		return f.cached, nil
	}

	data := defaultCatalog
	if f.Path != "" {
		raw, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalogue: %w", err)
		}
		data = raw
	}
	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.cached = c
	return c, nil
}

// Default returns the built-in catalogue.
func Default() *models.Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalogue document.
func Parse(data []byte) (*models.Catalog, error) {
	var c models.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that categories are non-empty, ids are unique and prices are not negative.
func Validate(c *models.Catalog) error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}
	seenCat := map[string]bool{}
	seenSvc := map[string]bool{}
	for _, cat := range c.Categories {
		if cat.ID == "" || seenCat[cat.ID] {
			return fmt.Errorf("%w: missing or duplicate category id %q", ErrInvalidCatalog, cat.ID)
		}
		seenCat[cat.ID] = true
		if len(cat.Services) == 0 {
			return fmt.Errorf("%w: category %q has no services", ErrInvalidCatalog, cat.ID)
		}
		for _, s := range cat.Services {
			if s.ID == "" || seenSvc[s.ID] {
				return fmt.Errorf("%w: missing or duplicate service id %q", ErrInvalidCatalog, s.ID)
			}
			if s.Price < 0 {
				return fmt.Errorf("%w: service %q has a negative price", ErrInvalidCatalog, s.ID)
			}
			seenSvc[s.ID] = true
		}
	}
	return nil
}
