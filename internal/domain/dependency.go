package domain

import "time"

// Dependency is a directed precedence edge between two timeline items in
// the same project. No cycle may exist among a project's edges; the
// dependency service enforces this on write.
type Dependency struct {
	ID         string
	ProjectID  string
	FromItemID string
	ToItemID   string
	Kind       DependencyKind
	Note       string
	CreatedAt  time.Time
}

// DependencyEdge is the caller-supplied shape for replacing an item's
// incoming edges.
type DependencyEdge struct {
	FromItemID string `json:"fromItemId" yaml:"from"`
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
}
