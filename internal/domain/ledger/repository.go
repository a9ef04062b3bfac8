package ledger

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository defines the persistence contract for sales ledger
// entries. Entries are append-only; the only mutation is the cascade
// delete when their bill is deleted, so there is no update operation.
type EntryRepository interface {
	SaveAll(ctx context.Context, entries []SalesEntry) error
	FindByBill(ctx context.Context, billID uuid.UUID) ([]SalesEntry, error)
	DeleteByBill(ctx context.Context, billID uuid.UUID) error
	CountByBill(ctx context.Context, billID uuid.UUID) (int64, error)
}
