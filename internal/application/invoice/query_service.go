package invoice

import (
	"context"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Query is the resolved read query handed to the repository. The
// payment-status filter requires aggregating payments first, so the
// repository must apply it after the aggregation (a HAVING-style
// post-filter), never in the initial WHERE.
type Query struct {
	From   *time.Time // inclusive
	To     *time.Time // exclusive
	Status *PaymentStatus
	Limit  int
	Offset int
}

// ReadRepository is the read-side port the query service depends on.
// Implementations join bill headers with their aggregated payments.
type ReadRepository interface {
	Query(ctx context.Context, q Query) ([]InvoiceRow, int64, error)
}

// QueryService lists invoices with derived payment status, date-bucket
// filtering and pagination. It performs no writes.
type QueryService struct {
	repo   ReadRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(repo ReadRepository, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{
		repo:   repo,
		now:    time.Now,
		logger: logger,
	}
}

// List returns one page of invoices matching the filter
func (s *QueryService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[InvoiceView], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	from, to, err := s.resolveRange(filter)
	if err != nil {
		return nil, err
	}
	if filter.PaymentStatus != nil {
		switch *filter.PaymentStatus {
		case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		default:
			return nil, shared.NewDomainErrorf("VALIDATION_ERROR",
				"Unknown payment status %q", *filter.PaymentStatus)
		}
	}

	rows, total, err := s.repo.Query(ctx, Query{
		From:   from,
		To:     to,
		Status: filter.PaymentStatus,
		Limit:  filter.PageSize,
		Offset: (filter.Page - 1) * filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	views := make([]InvoiceView, 0, len(rows))
	for _, row := range rows {
		views = append(views, InvoiceView{
			BillID:        row.BillID,
			BillNumber:    row.BillNumber,
			CustomerName:  row.CustomerName,
			Subtotal:      row.Subtotal,
			TaxAmount:     row.TaxAmount,
			Discount:      row.Discount,
			TotalAmount:   row.TotalAmount,
			PaidAmount:    row.PaidAmount,
			ItemCount:     row.ItemCount,
			PaymentStatus: DerivePaymentStatus(row.PaidAmount, row.TotalAmount),
			CreatedAt:     row.CreatedAt,
		})
	}

	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &page, nil
}

// resolveRange turns a bucket into a half-open [from, to) range in the
// service's local time.
func (s *QueryService) resolveRange(filter ListFilter) (*time.Time, *time.Time, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch filter.Bucket {
	case "":
		return nil, nil, nil
	case BucketToday:
		from, to := midnight, midnight.AddDate(0, 0, 1)
		return &from, &to, nil
	case BucketYesterday:
		from, to := midnight.AddDate(0, 0, -1), midnight
		return &from, &to, nil
	case BucketLast7Days:
		from, to := midnight.AddDate(0, 0, -6), midnight.AddDate(0, 0, 1)
		return &from, &to, nil
	case BucketLast30Days:
		from, to := midnight.AddDate(0, 0, -29), midnight.AddDate(0, 0, 1)
		return &from, &to, nil
	case BucketCustom:
		if filter.From == nil || filter.To == nil {
			return nil, nil, shared.NewDomainError("VALIDATION_ERROR",
				"Custom date range requires both from and to")
		}
		if filter.To.Before(*filter.From) {
			return nil, nil, shared.NewDomainError("VALIDATION_ERROR",
				"Date range end must not precede its start")
		}
		// To is a date in practice; extend it to the end of that day.
		to := filter.To.AddDate(0, 0, 1)
		return filter.From, &to, nil
	default:
		return nil, nil, shared.NewDomainErrorf("VALIDATION_ERROR", "Unknown date bucket %q", filter.Bucket)
	}
}
