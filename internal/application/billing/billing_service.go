package billing

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/catalog"
	"github.com/bizpulse/backend/internal/domain/ledger"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the billing transaction core. It turns a validated cart
// into a bill, its line items, the stock deduction, the mirrored sales
// ledger entries and the optional payment, all inside one transaction
// scope, and can undo the whole set symmetrically on deletion.
type Service struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewService creates a billing Service bound to a transaction scope
func NewService(scope TransactionScope, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scope:  scope,
		logger: logger,
	}
}

// CreateBill validates the cart, checks availability and commits the
// bill atomically. Structural validation happens before the scope is
// opened; nothing touches storage for a malformed cart. Stock
// correctness rests on the guarded deduction inside the scope, so
// concurrent creates can never oversell a product.
func (s *Service) CreateBill(ctx context.Context, input CreateBillInput) (*BillSummary, error) {
	if err := validateCart(input); err != nil {
		return nil, err
	}

	tax := valueobject.ZeroINR()
	if input.TaxAmount != nil {
		tax = valueobject.NewMoneyINR(*input.TaxAmount)
	}
	discount := valueobject.ZeroINR()
	if input.DiscountAmount != nil {
		discount = valueobject.NewMoneyINR(*input.DiscountAmount)
	}

	bill, err := billing.NewBill(input.CustomerName, tax, discount)
	if err != nil {
		return nil, err
	}

	var summary *BillSummary
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := make([]*catalog.Product, 0, len(input.Items))
		for _, line := range input.Items {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				if shared.IsNotFound(err) {
					return shared.NewDomainErrorf("PRODUCT_UNAVAILABLE",
						"Product %s does not exist", line.ProductID)
				}
				return err
			}
			if !product.IsSellable() {
				return shared.NewDomainErrorf("PRODUCT_UNAVAILABLE",
					"Product %s is not available for sale", product.Name)
			}
			if !product.HasStock(line.Quantity) {
				return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
					"Insufficient stock for %s: requested %d, short by %d",
					product.Name, line.Quantity, product.Shortfall(line.Quantity))
			}
			products = append(products, product)

			name := line.ProductName
			if name == "" {
				name = product.Name
			}
			if _, err := bill.AddItem(product.ID, name, line.Quantity, valueobject.NewMoneyINR(line.UnitPrice)); err != nil {
				return err
			}
		}

		if err := bill.VerifyTotal(); err != nil {
			return err
		}
		if input.TotalAmount != nil {
			if err := bill.VerifyExplicitTotal(valueobject.NewMoneyINR(*input.TotalAmount)); err != nil {
				return err
			}
		}
		if input.PaymentMethod != "" {
			bill.AttachPayment(input.PaymentMethod, bill.CreatedAt)
		}

		if err := repos.Bills().Save(ctx, bill); err != nil {
			return err
		}

		// The availability check above gives the caller a useful message;
		// the guarded update here is what makes concurrent creates safe.
		for i := range bill.Items {
			item := &bill.Items[i]
			if err := repos.Products().DeductStock(ctx, item.ProductID, item.Quantity); err != nil {
				if shared.IsInsufficientStock(err) {
					return shared.NewDomainErrorf("INSUFFICIENT_STOCK",
						"Insufficient stock for %s: requested %d", item.ProductName, item.Quantity)
				}
				return err
			}
		}

		taxParts := bill.AllocateTax()
		discountParts := bill.AllocateDiscount()
		entries := make([]ledger.SalesEntry, 0, len(bill.Items))
		for i := range bill.Items {
			entry, err := ledger.NewEntryFromSale(bill, &bill.Items[i], products[i], taxParts[i], discountParts[i], input.PaymentMethod)
			if err != nil {
				return err
			}
			entries = append(entries, *entry)
		}
		if err := repos.Ledger().SaveAll(ctx, entries); err != nil {
			return err
		}

		summary = &BillSummary{
			BillID:      bill.ID,
			BillNumber:  bill.Number,
			TotalAmount: bill.TotalAmount,
			ItemCount:   bill.ItemCount(),
			CreatedAt:   bill.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bill created",
		zap.String("bill_id", summary.BillID.String()),
		zap.String("bill_number", summary.BillNumber),
		zap.String("total", summary.TotalAmount.StringFixed(2)),
		zap.Int("items", summary.ItemCount))
	return summary, nil
}

// DeleteBill reverts a bill completely: restores stock per item (even
// for products deactivated since the sale), then deletes payments,
// ledger entries, items and the header. The operation is the exact
// inverse of CreateBill's stock effect. A second delete on the same id
// returns NOT_FOUND.
func (s *Service) DeleteBill(ctx context.Context, billID uuid.UUID) (*RevertSummary, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill ID cannot be empty")
	}

	var summary *RevertSummary
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		bill, err := repos.Bills().FindByID(ctx, billID)
		if err != nil {
			return err
		}

		var restored int64
		for _, item := range bill.Items {
			if err := repos.Products().RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			restored += item.Quantity
		}

		if err := repos.Bills().DeletePayments(ctx, bill.ID); err != nil {
			return err
		}
		if err := repos.Ledger().DeleteByBill(ctx, bill.ID); err != nil {
			return err
		}
		if err := repos.Bills().Delete(ctx, bill.ID); err != nil {
			return err
		}

		summary = &RevertSummary{
			BillID:        bill.ID,
			BillNumber:    bill.Number,
			ItemsReverted: len(bill.Items),
			StockRestored: restored,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bill deleted",
		zap.String("bill_id", summary.BillID.String()),
		zap.String("bill_number", summary.BillNumber),
		zap.Int("items_reverted", summary.ItemsReverted),
		zap.Int64("stock_restored", summary.StockRestored))
	return summary, nil
}

// GetBill returns the bill header with its items and payments
func (s *Service) GetBill(ctx context.Context, billID uuid.UUID) (*BillDetail, error) {
	if billID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill ID cannot be empty")
	}

	var detail *BillDetail
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		bill, err := repos.Bills().FindByID(ctx, billID)
		if err != nil {
			return err
		}
		detail = ToBillDetail(bill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func validateCart(input CreateBillInput) error {
	if len(input.Items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cart must contain at least one item")
	}
	for i, line := range input.Items {
		if line.ProductID == uuid.Nil {
			return shared.NewDomainErrorf("VALIDATION_ERROR", "Item %d has no product reference", i+1)
		}
		if line.Quantity <= 0 {
			return shared.NewDomainErrorf("VALIDATION_ERROR", "Item %d has non-positive quantity", i+1)
		}
		if !line.UnitPrice.IsPositive() {
			return shared.NewDomainErrorf("VALIDATION_ERROR", "Item %d has non-positive unit price", i+1)
		}
	}
	if input.TaxAmount != nil && input.TaxAmount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Tax amount cannot be negative")
	}
	if input.DiscountAmount != nil && input.DiscountAmount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Discount amount cannot be negative")
	}
	if input.TotalAmount != nil && !input.TotalAmount.GreaterThan(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Total amount must be positive")
	}
	return nil
}
