package billing

import (
	"fmt"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus represents the status of a bill
type BillStatus string

// BillStatusCompleted is the only status the transaction core ever
// writes. The field exists for forward compatibility; no component
// transitions a bill out of it.
const BillStatusCompleted BillStatus = "completed"

// Bill is the aggregate root for a committed point-of-sale transaction.
// It owns its line items and payments; they are written together and
// deleted together.
type Bill struct {
	shared.BaseEntity
	Number         string
	CustomerName   string
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Status         BillStatus
	Items          []BillItem
	Payments       []Payment
}

// BillItem is a line on a bill. The product name is a snapshot taken at
// sale time so the line survives product rename or deactivation. Items
// are immutable once the bill is committed.
type BillItem struct {
	ID          uuid.UUID
	BillID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
}

// Payment records money received against a bill. The core writes at
// most one, for the full total, at bill creation.
type Payment struct {
	ID          uuid.UUID
	BillID      uuid.UUID
	Method      string
	Amount      decimal.Decimal
	ProcessedAt time.Time
}

// NewBill creates a bill shell with no items yet. Negative tax or
// discount amounts are rejected.
func NewBill(customerName string, tax, discount valueobject.Money) (*Bill, error) {
	if tax.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX", "Tax amount cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}

	base := shared.NewBaseEntity()
	return &Bill{
		BaseEntity:     base,
		Number:         FormatBillNumber(base.ID, base.CreatedAt),
		CustomerName:   customerName,
		Subtotal:       decimal.Zero,
		TaxAmount:      tax.Amount(),
		DiscountAmount: discount.Amount(),
		TotalAmount:    tax.Amount().Sub(discount.Amount()),
		Status:         BillStatusCompleted,
		Items:          make([]BillItem, 0),
		Payments:       make([]Payment, 0),
	}, nil
}

// FormatBillNumber derives the human-readable display number. The bill
// id remains the uniqueness guarantee; the display number is derived
// from the creation date and the id's first eight characters.
func FormatBillNumber(id uuid.UUID, createdAt time.Time) string {
	return fmt.Sprintf("BILL-%s-%s", createdAt.Format("20060102"), id.String()[:8])
}

// AddItem appends a line item and recalculates totals
func (b *Bill) AddItem(productID uuid.UUID, productName string, quantity int64, unitPrice valueobject.Money) (*BillItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	item := BillItem{
		ID:          uuid.New(),
		BillID:      b.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		TotalPrice:  unitPrice.Amount().Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   b.CreatedAt,
	}
	b.Items = append(b.Items, item)
	b.recalculateTotals()

	return &b.Items[len(b.Items)-1], nil
}

// VerifyTotal rejects a bill whose computed total went below zero,
// which happens when the discount exceeds subtotal plus tax. Checked
// once all lines are in; intermediate states may legitimately be
// negative while items are still being added.
func (b *Bill) VerifyTotal() error {
	if b.TotalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal plus tax")
	}
	return nil
}

// VerifyExplicitTotal checks a caller-supplied total against the
// computed one. The two must agree to the paisa; the stores never
// enforce this, the core does.
func (b *Bill) VerifyExplicitTotal(total valueobject.Money) error {
	if !total.IsPositive() {
		return shared.NewDomainError("INVALID_TOTAL", "Total amount must be positive")
	}
	if !total.Amount().Round(2).Equal(b.TotalAmount.Round(2)) {
		return shared.NewDomainErrorf("VALIDATION_ERROR",
			"Total amount %s does not match computed total %s",
			total.Amount().StringFixed(2), b.TotalAmount.StringFixed(2))
	}
	return nil
}

// AttachPayment records a single payment for the full bill total
func (b *Bill) AttachPayment(method string, processedAt time.Time) *Payment {
	payment := Payment{
		ID:          uuid.New(),
		BillID:      b.ID,
		Method:      method,
		Amount:      b.TotalAmount,
		ProcessedAt: processedAt,
	}
	b.Payments = append(b.Payments, payment)
	return &b.Payments[len(b.Payments)-1]
}

// ItemCount returns the number of line items
func (b *Bill) ItemCount() int {
	return len(b.Items)
}

// TotalQuantity returns the sum of all item quantities
func (b *Bill) TotalQuantity() int64 {
	var total int64
	for _, item := range b.Items {
		total += item.Quantity
	}
	return total
}

// LineWeights returns each line's total as an allocation weight.
// Tax and discount are spread over the lines proportionally to these.
func (b *Bill) LineWeights() []decimal.Decimal {
	weights := make([]decimal.Decimal, len(b.Items))
	for i, item := range b.Items {
		weights[i] = item.TotalPrice
	}
	return weights
}

// AllocateTax splits the bill tax across the lines proportionally to
// their share of the subtotal. A zero subtotal allocates zero to every
// line.
func (b *Bill) AllocateTax() []valueobject.Money {
	return valueobject.NewMoneyINR(b.TaxAmount).AllocateProportionally(b.LineWeights())
}

// AllocateDiscount splits the bill discount the same way as AllocateTax
func (b *Bill) AllocateDiscount() []valueobject.Money {
	return valueobject.NewMoneyINR(b.DiscountAmount).AllocateProportionally(b.LineWeights())
}

func (b *Bill) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range b.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	b.Subtotal = subtotal
	b.TotalAmount = subtotal.Add(b.TaxAmount).Sub(b.DiscountAmount)
}
