package persistence

import (
	"context"
	"time"

	"github.com/bizpulse/backend/internal/application/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements report.ReadRepository over the
// sales ledger. Profit comes from the per-entry unit-cost snapshots.
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

type aggregateScan struct {
	BillCount     int64           `gorm:"column:bill_count"`
	TotalQuantity int64           `gorm:"column:total_quantity"`
	Revenue       decimal.Decimal `gorm:"column:revenue"`
	TaxCollected  decimal.Decimal `gorm:"column:tax_collected"`
	DiscountGiven decimal.Decimal `gorm:"column:discount_given"`
	Profit        decimal.Decimal `gorm:"column:profit"`
}

// Aggregate sums the ledger over [from, to)
func (r *GormSalesReportRepository) Aggregate(ctx context.Context, from, to time.Time) (*report.Aggregate, error) {
	var scan aggregateScan
	err := r.db.WithContext(ctx).
		Table("sales_entries").
		Select(`COUNT(DISTINCT bill_id) AS bill_count,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(total_price), 0) AS revenue,
			COALESCE(SUM(tax_amount), 0) AS tax_collected,
			COALESCE(SUM(discount_amount), 0) AS discount_given,
			COALESCE(SUM(total_price - unit_cost * quantity), 0) AS profit`).
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Scan(&scan).Error
	if err != nil {
		return nil, err
	}
	return &report.Aggregate{
		BillCount:     scan.BillCount,
		TotalQuantity: scan.TotalQuantity,
		Revenue:       scan.Revenue,
		TaxCollected:  scan.TaxCollected,
		DiscountGiven: scan.DiscountGiven,
		Profit:        scan.Profit,
	}, nil
}

type productSalesScan struct {
	ProductID   uuid.UUID       `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	Category    string          `gorm:"column:category"`
	Quantity    int64           `gorm:"column:quantity"`
	Revenue     decimal.Decimal `gorm:"column:revenue"`
	Profit      decimal.Decimal `gorm:"column:profit"`
}

// GroupByProduct groups the ledger by product over [from, to), best
// sellers first
func (r *GormSalesReportRepository) GroupByProduct(ctx context.Context, from, to time.Time) ([]report.ProductSales, error) {
	var scans []productSalesScan
	err := r.db.WithContext(ctx).
		Table("sales_entries").
		Select(`product_id,
			MAX(product_name) AS product_name,
			MAX(category) AS category,
			SUM(quantity) AS quantity,
			SUM(total_price) AS revenue,
			SUM(total_price - unit_cost * quantity) AS profit`).
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Group("product_id").
		Order("revenue DESC").
		Scan(&scans).Error
	if err != nil {
		return nil, err
	}

	rows := make([]report.ProductSales, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, report.ProductSales(s))
	}
	return rows, nil
}

type categorySalesScan struct {
	Category string          `gorm:"column:category"`
	Quantity int64           `gorm:"column:quantity"`
	Revenue  decimal.Decimal `gorm:"column:revenue"`
	Profit   decimal.Decimal `gorm:"column:profit"`
}

// GroupByCategory groups the ledger by category over [from, to)
func (r *GormSalesReportRepository) GroupByCategory(ctx context.Context, from, to time.Time) ([]report.CategorySales, error) {
	var scans []categorySalesScan
	err := r.db.WithContext(ctx).
		Table("sales_entries").
		Select(`category,
			SUM(quantity) AS quantity,
			SUM(total_price) AS revenue,
			SUM(total_price - unit_cost * quantity) AS profit`).
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Group("category").
		Order("revenue DESC").
		Scan(&scans).Error
	if err != nil {
		return nil, err
	}

	rows := make([]report.CategorySales, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, report.CategorySales(s))
	}
	return rows, nil
}

var _ report.ReadRepository = (*GormSalesReportRepository)(nil)
