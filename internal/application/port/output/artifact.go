package output

import (
	"context"

	"shopcheck/internal/domain/entity"
)

type ArtifactStore interface {
	// Save stores the snapshot under key and returns the written locations.
	Save(ctx context.Context, key string, snapshot *entity.PageSnapshot) ([]string, error)
}
