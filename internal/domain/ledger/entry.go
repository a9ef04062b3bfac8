package ledger

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/catalog"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesEntry is an append-only, denormalized sales line. One entry
// mirrors one bill item and is created and deleted with it, never
// edited independently. Product name, category, price and unit cost are
// snapshots taken at sale time, so analytics stay stable across product
// renames, price changes and deactivation.
type SalesEntry struct {
	ID             uuid.UUID
	BillID         uuid.UUID
	BillNumber     string
	CustomerName   string
	ProductID      uuid.UUID
	ProductName    string
	Category       string
	Quantity       int64
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	TaxAmount      decimal.Decimal // proportional share of the bill tax
	DiscountAmount decimal.Decimal // proportional share of the bill discount
	UnitCost       decimal.Decimal // cost snapshot; profit source of truth
	PaymentMethod  string
	SoldAt         time.Time
	SaleDate       time.Time // date component only, for bucket queries
}

// NewEntryFromSale builds the ledger mirror of one bill item. The
// allocated tax and discount come from the bill's proportional split;
// the unit cost is snapshotted from the product as it was sold.
func NewEntryFromSale(bill *billing.Bill, item *billing.BillItem, product *catalog.Product, allocatedTax, allocatedDiscount valueobject.Money, paymentMethod string) (*SalesEntry, error) {
	if bill == nil || item == nil || product == nil {
		return nil, shared.NewDomainError("INVALID_ENTRY", "Bill, item and product are required")
	}
	if item.BillID != bill.ID {
		return nil, shared.NewDomainError("INVALID_ENTRY", "Item does not belong to the bill")
	}

	soldAt := bill.CreatedAt
	y, m, d := soldAt.Date()
	return &SalesEntry{
		ID:             uuid.New(),
		BillID:         bill.ID,
		BillNumber:     bill.Number,
		CustomerName:   bill.CustomerName,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Category:       product.Category,
		Quantity:       item.Quantity,
		UnitPrice:      item.UnitPrice,
		TotalPrice:     item.TotalPrice,
		TaxAmount:      allocatedTax.Amount(),
		DiscountAmount: allocatedDiscount.Amount(),
		UnitCost:       product.Cost,
		PaymentMethod:  paymentMethod,
		SoldAt:         soldAt,
		SaleDate:       time.Date(y, m, d, 0, 0, 0, 0, soldAt.Location()),
	}, nil
}

// Profit returns the line profit from the cost snapshot
func (e *SalesEntry) Profit() decimal.Decimal {
	return e.TotalPrice.Sub(e.UnitCost.Mul(decimal.NewFromInt(e.Quantity)))
}
