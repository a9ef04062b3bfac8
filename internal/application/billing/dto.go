package billing

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemInput is one canonical cart line. Legacy field-name aliases are
// resolved at the HTTP boundary; by the time input reaches the service a
// line always carries a single product reference.
type CartItemInput struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateBillInput is the canonical input to CreateBill.
type CreateBillInput struct {
	CustomerName   string           `json:"customer_name,omitempty"`
	Items          []CartItemInput  `json:"items"`
	TaxAmount      *decimal.Decimal `json:"tax_amount,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discount_amount,omitempty"`
	// TotalAmount, when supplied, must equal subtotal + tax - discount.
	// When absent the total is computed.
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
}

// BillSummary is the result of a successful CreateBill.
type BillSummary struct {
	BillID      uuid.UUID       `json:"bill_id"`
	BillNumber  string          `json:"bill_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RevertSummary is the result of a successful DeleteBill.
type RevertSummary struct {
	BillID        uuid.UUID `json:"bill_id"`
	BillNumber    string    `json:"bill_number"`
	ItemsReverted int       `json:"items_reverted"`
	StockRestored int64     `json:"stock_restored"`
}

// BillItemDetail is one line of a bill detail view.
type BillItemDetail struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// PaymentDetail is one payment of a bill detail view.
type PaymentDetail struct {
	ID          uuid.UUID       `json:"id"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// BillDetail is the full read view of a bill: header plus items and payments.
type BillDetail struct {
	ID             uuid.UUID        `json:"id"`
	BillNumber     string           `json:"bill_number"`
	CustomerName   string           `json:"customer_name,omitempty"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	TaxAmount      decimal.Decimal  `json:"tax_amount"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	Items          []BillItemDetail `json:"items"`
	Payments       []PaymentDetail  `json:"payments"`
}

// ToBillDetail maps a bill aggregate to its detail view.
func ToBillDetail(bill *billing.Bill) *BillDetail {
	detail := &BillDetail{
		ID:             bill.ID,
		BillNumber:     bill.Number,
		CustomerName:   bill.CustomerName,
		Subtotal:       bill.Subtotal,
		TaxAmount:      bill.TaxAmount,
		DiscountAmount: bill.DiscountAmount,
		TotalAmount:    bill.TotalAmount,
		Status:         string(bill.Status),
		CreatedAt:      bill.CreatedAt,
		Items:          make([]BillItemDetail, 0, len(bill.Items)),
		Payments:       make([]PaymentDetail, 0, len(bill.Payments)),
	}
	for _, item := range bill.Items {
		detail.Items = append(detail.Items, BillItemDetail{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	for _, payment := range bill.Payments {
		detail.Payments = append(detail.Payments, PaymentDetail{
			ID:          payment.ID,
			Method:      payment.Method,
			Amount:      payment.Amount,
			ProcessedAt: payment.ProcessedAt,
		})
	}
	return detail
}
