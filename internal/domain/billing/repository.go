package billing

import (
	"context"

	"github.com/google/uuid"
)

// BillRepository defines the persistence contract for bills.
// Save and Delete cascade over items and payments; both are only ever
// called inside the billing transaction scope.
type BillRepository interface {
	// FindByID loads the bill header with its items and payments.
	// Returns shared.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// Save persists the bill header, its items and its payments together
	Save(ctx context.Context, bill *Bill) error

	// DeletePayments removes the bill's payment records. Deleting
	// payments for a bill that has none is not an error.
	DeletePayments(ctx context.Context, id uuid.UUID) error

	// Delete removes the bill's items and then the header. Returns
	// shared.ErrNotFound when the bill does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
