package primary

import (
	"context"

	"github.com/example/tablegen/internal/core/metadata"
)

// GeneratorService defines the primary port for code generation.
type GeneratorService interface {
	// GenerateEntity writes the entity model for a table.
	GenerateEntity(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// GenerateBusinessLayer writes the business class, request types and controller.
	GenerateBusinessLayer(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// GenerateFrontendView writes the Vue page for a table.
	GenerateFrontendView(ctx context.Context, req FrontendRequest) (*GenerateResponse, error)

	// GenerateFrontendAPIClient writes the Vue API client for a table.
	GenerateFrontendAPIClient(ctx context.Context, req FrontendRequest) (*GenerateResponse, error)

	// GenerateAll runs every backend step and, when a root is given, both frontend steps.
	GenerateAll(ctx context.Context, req FrontendRequest) (*GenerateResponse, error)
}

// GenerateRequest identifies the table to generate from.
type GenerateRequest struct {
	TableID string
	DryRun  bool
}

// FrontendRequest adds the frontend project root to a generation request.
type FrontendRequest struct {
	TableID  string
	RootPath string
	DryRun   bool
}

// GenerateResponse lists the artifacts written, or planned in a dry run.
type GenerateResponse struct {
	SessionID string
	DryRun    bool
	Artifacts []Artifact
}

// Artifact describes one generated file.
type Artifact struct {
	Kind  metadata.ArtifactKind
	Path  string
	Bytes int
}
