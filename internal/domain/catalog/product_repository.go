package catalog

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindAllActive(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// DeductStock atomically decrements stock by quantity, guarded so the
	// row is only updated when enough stock remains. Returns
	// shared.ErrInsufficientStock when the guard rejects the update and
	// shared.ErrNotFound when the product does not exist. Must be called
	// inside the billing transaction scope.
	DeductStock(ctx context.Context, id uuid.UUID, quantity int64) error

	// RestoreStock adds quantity back to stock unconditionally. Applies to
	// deactivated products as well; bill deletion restores their stock too.
	RestoreStock(ctx context.Context, id uuid.UUID, quantity int64) error
}
