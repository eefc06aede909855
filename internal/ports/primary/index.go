package primary

import "context"

// IndexService defines the primary port for the generated-entity index.
type IndexService interface {
	// Refresh rescans the solution sources and replaces the stored manifest.
	Refresh(ctx context.Context) (*RefreshResponse, error)

	// List returns the entities the duplicate guard would see.
	List(ctx context.Context) ([]*GeneratedEntity, error)
}

// RefreshResponse summarizes an index refresh.
type RefreshResponse struct {
	Scanned int
}

// GeneratedEntity is an entity already present in the solution.
type GeneratedEntity struct {
	ClassName string
	TableName string
	Source    string
}
