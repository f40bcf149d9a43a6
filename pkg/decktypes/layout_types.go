package decktypes

// LayoutEntry describes one presentation layout: its identity and the schema
// of the fields a user may edit.
type LayoutEntry struct {
	// ID is the unique layout identifier (e.g., "stats-ey-slide")
	ID string `yaml:"id" json:"id"`

	// Name is a human-readable layout name
	Name string `yaml:"name" json:"name"`

	// Description explains what the layout is for
	Description string `yaml:"description" json:"description"`

	// Group is the template family the layout belongs to (e.g., "ey")
	Group string `yaml:"group" json:"group"`

	// Schema is a JSON Schema document describing the editable fields
	Schema map[string]interface{} `yaml:"schema" json:"schema,omitempty"`

	// Defaults holds the content used when a field is not provided
	Defaults map[string]interface{} `yaml:"defaults" json:"defaults,omitempty"`
}

// LayoutSummary is the short form of a layout returned by listings.
type LayoutSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// Summary returns the short form of the entry.
func (l LayoutEntry) Summary() LayoutSummary {
	return LayoutSummary{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Group:       l.Group,
	}
}

// LayoutCatalogFile is the structure of the embedded layout catalog YAML file.
type LayoutCatalogFile struct {
	Layouts []LayoutEntry `yaml:"layouts"`
}
