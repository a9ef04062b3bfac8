package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is derived per bill from its aggregated payments.
// It is never stored.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// DateBucket names a relative date range for invoice filtering
type DateBucket string

const (
	BucketToday      DateBucket = "today"
	BucketYesterday  DateBucket = "yesterday"
	BucketLast7Days  DateBucket = "last_7_days"
	BucketLast30Days DateBucket = "last_30_days"
	BucketCustom     DateBucket = "custom"
)

// ListFilter represents the invoice list filter options
type ListFilter struct {
	Bucket        DateBucket     `form:"bucket"`
	From          *time.Time     `form:"from" time_format:"2006-01-02"`
	To            *time.Time     `form:"to" time_format:"2006-01-02"`
	PaymentStatus *PaymentStatus `form:"payment_status"`
	Page          int            `form:"page" binding:"omitempty,min=1"`
	PageSize      int            `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// InvoiceRow is what the read repository returns per bill: the header
// joined with its aggregated payment sum.
type InvoiceRow struct {
	BillID       uuid.UUID
	BillNumber   string
	CustomerName string
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	Discount     decimal.Decimal
	TotalAmount  decimal.Decimal
	PaidAmount   decimal.Decimal
	ItemCount    int64
	CreatedAt    time.Time
}

// InvoiceView is one row of the invoice listing
type InvoiceView struct {
	BillID        uuid.UUID       `json:"bill_id"`
	BillNumber    string          `json:"bill_number"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Discount      decimal.Decimal `json:"discount_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	ItemCount     int64           `json:"item_count"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DerivePaymentStatus classifies a bill from its aggregated paid amount.
// Overpayment still counts as paid.
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case !paid.IsPositive():
		return PaymentStatusUnpaid
	case paid.LessThan(total):
		return PaymentStatusPartial
	default:
		return PaymentStatusPaid
	}
}
