package report

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateBucket names a relative reporting range
type DateBucket string

const (
	BucketToday      DateBucket = "today"
	BucketYesterday  DateBucket = "yesterday"
	BucketLast7Days  DateBucket = "last_7_days"
	BucketLast30Days DateBucket = "last_30_days"
)

// Aggregate is the raw ledger aggregation for a range. Profit comes
// from the per-entry cost snapshots, not from live product cost.
type Aggregate struct {
	BillCount     int64           `json:"bill_count"`
	TotalQuantity int64           `json:"total_quantity"`
	Revenue       decimal.Decimal `json:"revenue"`
	TaxCollected  decimal.Decimal `json:"tax_collected"`
	DiscountGiven decimal.Decimal `json:"discount_given"`
	Profit        decimal.Decimal `json:"profit"`
}

// Summary is the sales summary view for a bucket
type Summary struct {
	Bucket        DateBucket      `json:"bucket"`
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	BillCount     int64           `json:"bill_count"`
	TotalQuantity int64           `json:"total_quantity"`
	Revenue       decimal.Decimal `json:"revenue"`
	TaxCollected  decimal.Decimal `json:"tax_collected"`
	DiscountGiven decimal.Decimal `json:"discount_given"`
	Profit        decimal.Decimal `json:"profit"`
	AverageSale   decimal.Decimal `json:"average_sale"`
}

// ProductSales is one row of the by-product grouping
type ProductSales struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
}

// CategorySales is one row of the by-category grouping
type CategorySales struct {
	Category string          `json:"category"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// resolveBucket turns a bucket into a half-open [from, to) range
// relative to now.
func resolveBucket(bucket DateBucket, now time.Time) (time.Time, time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch bucket {
	case BucketToday:
		return midnight, midnight.AddDate(0, 0, 1), nil
	case BucketYesterday:
		return midnight.AddDate(0, 0, -1), midnight, nil
	case BucketLast7Days:
		return midnight.AddDate(0, 0, -6), midnight.AddDate(0, 0, 1), nil
	case BucketLast30Days:
		return midnight.AddDate(0, 0, -29), midnight.AddDate(0, 0, 1), nil
	default:
		return time.Time{}, time.Time{}, shared.NewDomainErrorf("VALIDATION_ERROR", "Unknown date bucket %q", bucket)
	}
}
