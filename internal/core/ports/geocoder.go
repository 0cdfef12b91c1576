package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Geocoder resolves a free-form address text to map coordinates. Used by the
// delivery route query; implementations are expected to degrade to a fixed
// fallback point rather than fail the query.
type Geocoder interface {
	Resolve(ctx context.Context, addressText string) (kernel.GeoPoint, error)
}
