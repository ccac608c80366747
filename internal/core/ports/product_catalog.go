package ports

import (
	"context"

	"relaypost/internal/core/domain/model/kernel"
)

// ProductCatalog answers existence checks against the product store.
// Products themselves are owned elsewhere; the core only verifies that a
// supplied product reference points at something real.
type ProductCatalog interface {
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
