package persistence

import (
	"context"
	"time"

	"github.com/bizpulse/backend/internal/application/invoice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceQueryRepository implements invoice.ReadRepository. It
// joins bill headers with their aggregated payments; the payment-status
// filter is applied with HAVING because the status only exists after
// the aggregation.
type GormInvoiceQueryRepository struct {
	db *gorm.DB
}

// NewGormInvoiceQueryRepository creates a new GormInvoiceQueryRepository
func NewGormInvoiceQueryRepository(db *gorm.DB) *GormInvoiceQueryRepository {
	return &GormInvoiceQueryRepository{db: db}
}

type invoiceRowScan struct {
	BillID       uuid.UUID       `gorm:"column:bill_id"`
	BillNumber   string          `gorm:"column:bill_number"`
	CustomerName string          `gorm:"column:customer_name"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal"`
	TaxAmount    decimal.Decimal `gorm:"column:tax_amount"`
	Discount     decimal.Decimal `gorm:"column:discount_amount"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount"`
	PaidAmount   decimal.Decimal `gorm:"column:paid_amount"`
	ItemCount    int64           `gorm:"column:item_count"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
}

// Query returns one page of aggregated invoice rows plus the total
// count of matching bills
func (r *GormInvoiceQueryRepository) Query(ctx context.Context, q invoice.Query) ([]invoice.InvoiceRow, int64, error) {
	base := r.aggregated(ctx, q)

	var total int64
	if err := r.db.WithContext(ctx).
		Table("(?) AS matched", base).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var scans []invoiceRowScan
	page := base.Order("created_at DESC")
	if q.Limit > 0 {
		page = page.Limit(q.Limit).Offset(q.Offset)
	}
	if err := page.Scan(&scans).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]invoice.InvoiceRow, 0, len(scans))
	for _, s := range scans {
		rows = append(rows, invoice.InvoiceRow(s))
	}
	return rows, total, nil
}

// aggregated builds the grouped query without ordering or paging so it
// can serve both the page select and the count
func (r *GormInvoiceQueryRepository) aggregated(ctx context.Context, q invoice.Query) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("bills b").
		Select(`b.id AS bill_id,
			b.number AS bill_number,
			b.customer_name AS customer_name,
			b.subtotal AS subtotal,
			b.tax_amount AS tax_amount,
			b.discount_amount AS discount_amount,
			b.total_amount AS total_amount,
			COALESCE(SUM(p.amount), 0) AS paid_amount,
			(SELECT COUNT(*) FROM bill_items i WHERE i.bill_id = b.id) AS item_count,
			b.created_at AS created_at`).
		Joins("LEFT JOIN payments p ON p.bill_id = b.id").
		Group("b.id, b.number, b.customer_name, b.subtotal, b.tax_amount, b.discount_amount, b.total_amount, b.created_at")

	if q.From != nil {
		query = query.Where("b.created_at >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("b.created_at < ?", *q.To)
	}

	if q.Status != nil {
		switch *q.Status {
		case invoice.PaymentStatusUnpaid:
			query = query.Having("COALESCE(SUM(p.amount), 0) <= 0")
		case invoice.PaymentStatusPartial:
			query = query.Having("COALESCE(SUM(p.amount), 0) > 0 AND COALESCE(SUM(p.amount), 0) < b.total_amount")
		case invoice.PaymentStatusPaid:
			query = query.Having("COALESCE(SUM(p.amount), 0) > 0 AND COALESCE(SUM(p.amount), 0) >= b.total_amount")
		}
	}
	return query
}

var _ invoice.ReadRepository = (*GormInvoiceQueryRepository)(nil)
