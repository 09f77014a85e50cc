package vectorDB

import (
	"context"

	"github.com/SHoar/Wedding-AI/internal/domain/commonModels"
)

// Collection is a persisted, named set of embedded documentation chunks.
type Collection interface {
	Count(ctx context.Context) (int, error)
	Add(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, k int) ([]commonModels.DocChunk, error)
	// Reset drops every stored chunk. The collection stays usable.
	Reset(ctx context.Context) error
	Close() error
}
