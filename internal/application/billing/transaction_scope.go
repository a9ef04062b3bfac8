package billing

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/catalog"
	"github.com/bizpulse/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to billing repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a billing
// transaction touches. All repositories returned share the same underlying
// database transaction.
//
// Aggregate boundary notes:
//   - Bills: Repository for the Bill aggregate root. Items and payments are
//     child entities persisted through this repository.
//   - Products: Used for stock deduction and restoration. Stock changes go
//     through guarded repository operations, never through Save.
//   - Ledger: Append-only repository for per-line sales entries that mirror
//     the bill at commit time.
type TransactionalRepositories interface {
	// Bills returns the bill repository scoped to the current transaction
	Bills() billing.BillRepository
	// Products returns the product repository scoped to the current transaction
	Products() catalog.ProductRepository
	// Ledger returns the sales ledger repository scoped to the current transaction
	Ledger() ledger.EntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	bills    billing.BillRepository
	products catalog.ProductRepository
	entries  ledger.EntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	bills billing.BillRepository,
	products catalog.ProductRepository,
	entries ledger.EntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		bills:    bills,
		products: products,
		entries:  entries,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Bills returns the bill repository.
func (s *NoOpTransactionScope) Bills() billing.BillRepository {
	return s.bills
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Ledger returns the sales ledger repository.
func (s *NoOpTransactionScope) Ledger() ledger.EntryRepository {
	return s.entries
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
