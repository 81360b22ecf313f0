package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// ImportSchema is the top-level YAML structure for a schedule import.
type ImportSchema struct {
	ProjectID    string             `yaml:"project_id"`
	Defaults     *DefaultsImport    `yaml:"defaults,omitempty"`
	Lanes        []LaneImport       `yaml:"lanes,omitempty"`
	Items        []ItemImport       `yaml:"items"`
	Dependencies []DependencyImport `yaml:"dependencies,omitempty"`
}

// DefaultsImport defines file-wide defaults that cascade to items.
type DefaultsImport struct {
	Type     string `yaml:"type,omitempty"`
	Lane     string `yaml:"lane,omitempty"`
	Timezone string `yaml:"timezone,omitempty"`
}

// LaneImport defines a lane to create (or reuse, matched by slug) before the
// items are inserted.
type LaneImport struct {
	Slug       string               `yaml:"slug"`
	Name       string               `yaml:"name,omitempty"`
	Color      string               `yaml:"color,omitempty"`
	SortOrder  int                  `yaml:"sort_order,omitempty"`
	AutoAssign *domain.ConditionSet `yaml:"auto_assign,omitempty"`
}

// ItemImport defines a timeline item in the import file. Refs are file-local
// handles used by dependencies; they never persist.
type ItemImport struct {
	Ref         string            `yaml:"ref"`
	Title       string            `yaml:"title"`
	Type        string            `yaml:"type,omitempty"`
	Lane        string            `yaml:"lane,omitempty"`
	Kind        string            `yaml:"kind,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Status      string            `yaml:"status,omitempty"`
	StartsAt    *string           `yaml:"starts_at,omitempty"`
	EndsAt      *string           `yaml:"ends_at,omitempty"`
	DueAt       *string           `yaml:"due_at,omitempty"`
	Timezone    string            `yaml:"timezone,omitempty"`
	Priority    *float64          `yaml:"priority,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Links       map[string]string `yaml:"links,omitempty"`
}

// DependencyImport defines a precedence edge between two imported items.
type DependencyImport struct {
	FromRef string `yaml:"from_ref"`
	ToRef   string `yaml:"to_ref"`
	Kind    string `yaml:"kind,omitempty"`
	Note    string `yaml:"note,omitempty"`
}

// LoadImportSchema reads and parses a schedule import YAML file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
