package secondary

import "context"

// TemplateStore defines the secondary port for template bodies.
type TemplateStore interface {
	// Load returns the body of the named template.
	Load(ctx context.Context, name string) (string, error)

	// List returns the names of all available templates.
	List(ctx context.Context) ([]string, error)
}

// ProjectLocator defines the secondary port for finding projects in a solution.
type ProjectLocator interface {
	// SolutionRoot returns the directory holding the backend projects.
	SolutionRoot() string

	// FindBySuffix returns the absolute path of the project directory matching
	// the first suffix that has any match.
	FindBySuffix(ctx context.Context, suffixes ...string) (string, error)
}
