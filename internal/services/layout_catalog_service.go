package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"slidedeck/internal/data/embedded"
	"slidedeck/internal/logger"
	"slidedeck/pkg/decktypes"
)

// LayoutCatalogService provides the catalog of presentation layouts and
// validates layout content against each layout's JSON Schema.
type LayoutCatalogService struct {
	initialized bool
	data        []byte
	layouts     []decktypes.LayoutEntry
	schemas     map[string]*gojsonschema.Schema // normalized id -> compiled schema
}

// NewLayoutCatalogService creates a LayoutCatalogService backed by the embedded catalog.
func NewLayoutCatalogService() *LayoutCatalogService {
	return NewLayoutCatalogServiceFromData(embedded.LayoutCatalogData)
}

// NewLayoutCatalogServiceFromData creates a LayoutCatalogService from catalog YAML.
func NewLayoutCatalogServiceFromData(data []byte) *LayoutCatalogService {
	return &LayoutCatalogService{
		initialized: false,
		data:        data,
	}
}

// Name returns the service name "layout_catalog" for registration.
func (l *LayoutCatalogService) Name() string {
	return "layout_catalog"
}

// Initialize parses the catalog and compiles every layout schema.
func (l *LayoutCatalogService) Initialize() error {
	if l.initialized {
		return nil
	}

	var file decktypes.LayoutCatalogFile
	if err := yaml.Unmarshal(l.data, &file); err != nil {
		return fmt.Errorf("failed to parse layout catalog: %w", err)
	}

	if err := l.validateUniqueIDs(file.Layouts); err != nil {
		return fmt.Errorf("layout catalog validation failed: %w", err)
	}

	schemas := make(map[string]*gojsonschema.Schema, len(file.Layouts))
	for _, layout := range file.Layouts {
		if layout.Schema == nil {
			return fmt.Errorf("layout '%s' has no schema", layout.ID)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(layout.Schema))
		if err != nil {
			return fmt.Errorf("layout '%s' has an invalid schema: %w", layout.ID, err)
		}
		schemas[l.normalizeID(layout.ID)] = schema
	}

	l.layouts = file.Layouts
	l.schemas = schemas
	l.initialized = true

	logger.ServiceOperation(l.Name(), "initialize", "layouts", len(l.layouts))
	return nil
}

// List returns summaries of every layout in catalog order.
func (l *LayoutCatalogService) List() ([]decktypes.LayoutSummary, error) {
	if !l.initialized {
		return nil, fmt.Errorf("layout catalog: %w", ErrServiceNotInitialized)
	}

	summaries := make([]decktypes.LayoutSummary, 0, len(l.layouts))
	for _, layout := range l.layouts {
		summaries = append(summaries, layout.Summary())
	}
	return summaries, nil
}

// Get returns the full layout entry for id (case-insensitive).
func (l *LayoutCatalogService) Get(id string) (decktypes.LayoutEntry, error) {
	if !l.initialized {
		return decktypes.LayoutEntry{}, fmt.Errorf("layout catalog: %w", ErrServiceNotInitialized)
	}

	normalizedID := l.normalizeID(id)
	for _, layout := range l.layouts {
		if l.normalizeID(layout.ID) == normalizedID {
			return layout, nil
		}
	}
	return decktypes.LayoutEntry{}, fmt.Errorf("%w: '%s'", ErrLayoutNotFound, id)
}

// Defaults returns a copy of the default content for layout id.
func (l *LayoutCatalogService) Defaults(id string) (map[string]interface{}, error) {
	layout, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	defaults := make(map[string]interface{}, len(layout.Defaults))
	for key, value := range layout.Defaults {
		defaults[key] = value
	}
	return defaults, nil
}

// Validate checks JSON content against the schema of layout id. It returns
// the violations found; an empty slice means the content is valid. Errors are
// reserved for unknown layouts and content that is not JSON.
func (l *LayoutCatalogService) Validate(id string, content []byte) ([]string, error) {
	layout, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	if !json.Valid(content) {
		return nil, fmt.Errorf("layout '%s': content is not valid JSON", layout.ID)
	}

	result, err := l.schemas[l.normalizeID(layout.ID)].Validate(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, fmt.Errorf("layout '%s': validation failed: %w", layout.ID, err)
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}

// validateUniqueIDs checks for empty and duplicate layout IDs (case-insensitive).
func (l *LayoutCatalogService) validateUniqueIDs(layouts []decktypes.LayoutEntry) error {
	seenIDs := make(map[string]string)

	for _, layout := range layouts {
		if layout.ID == "" {
			return fmt.Errorf("layout '%s' has empty ID field", layout.Name)
		}

		normalizedID := l.normalizeID(layout.ID)
		if existingID, exists := seenIDs[normalizedID]; exists {
			return fmt.Errorf("duplicate layout ID found: '%s' and '%s' (case insensitive)", existingID, layout.ID)
		}
		seenIDs[normalizedID] = layout.ID
	}

	return nil
}

func (l *LayoutCatalogService) normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
