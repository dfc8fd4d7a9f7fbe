package lookup

//go:generate mockgen -package=mocks -destination=mocks/mock_lookup.go github.com/KirkDiggler/partybac/internal/lookup Lookup

import (
	"context"

	"github.com/KirkDiggler/partybac/internal/models"
)

// Lookup resolves a scanned product code to a drink
type Lookup interface {
	// LookupProduct returns the product for a code. Found is false when the
	// service does not know the code.
	LookupProduct(ctx context.Context, input *LookupProductInput) (*LookupProductOutput, error)
}

// LookupProductInput contains the scanned code
type LookupProductInput struct {
	Code string
}

// LookupProductOutput contains the product, if found
type LookupProductOutput struct {
	Found   bool
	Product *models.Product
}
