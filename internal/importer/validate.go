package importer

import (
	"fmt"
	"time"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

var validItemStatuses = map[string]bool{"planned": true, "confirmed": true, "done": true, "cancelled": true}

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if schema.ProjectID == "" {
		errs = append(errs, fmt.Errorf("project_id is required"))
	}
	errs = append(errs, validateDefaults(schema.Defaults)...)
	errs = append(errs, validateLanes(schema.Lanes)...)

	itemRefs := make(map[string]bool)
	errs = append(errs, validateItems(schema.Items, itemRefs)...)

	errs = append(errs, validateDependencies(schema.Dependencies, itemRefs)...)

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if d.Type != "" && !domain.ValidItemTypes[d.Type] {
		errs = append(errs, fmt.Errorf("defaults.type: invalid value %q", d.Type))
	}
	if d.Lane != "" {
		l := domain.LaneDefinition{Slug: domain.NormalizeSlug(d.Lane)}
		if err := l.ValidateSlug(); err != nil {
			errs = append(errs, fmt.Errorf("defaults.lane: %w", err))
		}
	}

	return errs
}

func validateLanes(lanes []LaneImport) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, l := range lanes {
		prefix := fmt.Sprintf("lanes[%d]", i)

		slug := domain.NormalizeSlug(l.Slug)
		def := domain.LaneDefinition{Slug: slug}
		if err := def.ValidateSlug(); err != nil {
			errs = append(errs, fmt.Errorf("%s.slug: %w", prefix, err))
			continue
		}
		if seen[slug] {
			errs = append(errs, fmt.Errorf("%s.slug: duplicate slug %q", prefix, slug))
		}
		seen[slug] = true
	}

	return errs
}

func validateItems(items []ItemImport, itemRefs map[string]bool) []error {
	var errs []error

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if itemRefs[it.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		} else {
			itemRefs[it.Ref] = true
		}

		if it.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if it.Type != "" && !domain.ValidItemTypes[it.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, it.Type))
		}
		if it.Status != "" && !validItemStatuses[it.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, it.Status))
		}

		start := validateOptionalTime(prefix+".starts_at", it.StartsAt, &errs)
		end := validateOptionalTime(prefix+".ends_at", it.EndsAt, &errs)
		validateOptionalTime(prefix+".due_at", it.DueAt, &errs)
		if start != nil && end != nil && !end.After(*start) {
			errs = append(errs, fmt.Errorf("%s: ends_at %q must be after starts_at %q", prefix, *it.EndsAt, *it.StartsAt))
		}
		if it.EndsAt != nil && *it.EndsAt != "" && (it.StartsAt == nil || *it.StartsAt == "") {
			errs = append(errs, fmt.Errorf("%s: ends_at requires starts_at", prefix))
		}
	}

	return errs
}

func validateDependencies(deps []DependencyImport, itemRefs map[string]bool) []error {
	var errs []error

	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if d.FromRef == "" {
			errs = append(errs, fmt.Errorf("%s.from_ref is required", prefix))
		} else if !itemRefs[d.FromRef] {
			errs = append(errs, fmt.Errorf("%s.from_ref: ref %q not found in items", prefix, d.FromRef))
		}

		if d.ToRef == "" {
			errs = append(errs, fmt.Errorf("%s.to_ref is required", prefix))
		} else if !itemRefs[d.ToRef] {
			errs = append(errs, fmt.Errorf("%s.to_ref: ref %q not found in items", prefix, d.ToRef))
		}

		if d.FromRef != "" && d.FromRef == d.ToRef {
			errs = append(errs, fmt.Errorf("%s: self-dependency (from_ref == to_ref == %q)", prefix, d.FromRef))
		}

		if d.Kind != "" && d.Kind != string(domain.DependencyFS) && d.Kind != string(domain.DependencySS) {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q (expected FS or SS)", prefix, d.Kind))
		}
	}

	if len(deps) > 1 {
		errs = append(errs, detectCycles(deps)...)
	}

	return errs
}

func detectCycles(deps []DependencyImport) []error {
	graph := make(map[string][]string)
	nodes := make(map[string]bool)
	for _, d := range deps {
		if d.FromRef != "" && d.ToRef != "" && d.FromRef != d.ToRef {
			graph[d.FromRef] = append(graph[d.FromRef], d.ToRef)
			nodes[d.FromRef] = true
			nodes[d.ToRef] = true
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, neighbor := range graph[node] {
			if color[neighbor] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", node, neighbor))
				return true
			}
			if color[neighbor] == white {
				if visit(neighbor) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}

	return errs
}

func validateOptionalTime(field string, s *string, errs *[]error) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid timestamp %q (expected RFC 3339)", field, *s))
		return nil
	}
	return &t
}
