package report

import (
	"context"
	"fmt"
	"time"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReadRepository is the read-side port over the sales ledger
type ReadRepository interface {
	// Aggregate sums the ledger over [from, to)
	Aggregate(ctx context.Context, from, to time.Time) (*Aggregate, error)
	// GroupByProduct groups the ledger by product over [from, to),
	// ordered by revenue descending
	GroupByProduct(ctx context.Context, from, to time.Time) ([]ProductSales, error)
	// GroupByCategory groups the ledger by category over [from, to),
	// ordered by revenue descending
	GroupByCategory(ctx context.Context, from, to time.Time) ([]CategorySales, error)
}

// Cache is the report cache port. Implementations are free to lose
// entries at any time; the service always recomputes on a miss.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// SalesReportService answers time-bucketed sales questions over the
// ledger. Read-only; summaries are cached briefly.
type SalesReportService struct {
	repo     ReadRepository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewSalesReportService creates a new SalesReportService. cache may be
// nil, in which case every summary is recomputed.
func NewSalesReportService(repo ReadRepository, cache Cache, cacheTTL time.Duration, logger *zap.Logger) *SalesReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &SalesReportService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Summary returns the sales summary for a bucket
func (s *SalesReportService) Summary(ctx context.Context, bucket DateBucket) (*Summary, error) {
	from, to, err := resolveBucket(bucket, s.now())
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:summary:%s:%s", bucket, from.Format("2006-01-02"))
	if s.cache != nil {
		var cached Summary
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	agg, err := s.repo.Aggregate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	average := decimal.Zero
	if agg.BillCount > 0 {
		average = agg.Revenue.Div(decimal.NewFromInt(agg.BillCount)).Round(2)
	}

	summary := &Summary{
		Bucket:        bucket,
		From:          from,
		To:            to,
		BillCount:     agg.BillCount,
		TotalQuantity: agg.TotalQuantity,
		Revenue:       agg.Revenue,
		TaxCollected:  agg.TaxCollected,
		DiscountGiven: agg.DiscountGiven,
		Profit:        agg.Profit,
		AverageSale:   average,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return summary, nil
}

// ByProduct groups sales by product over an explicit date range
func (s *SalesReportService) ByProduct(ctx context.Context, from, to time.Time) ([]ProductSales, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.GroupByProduct(ctx, from, to)
}

// ByCategory groups sales by category over an explicit date range
func (s *SalesReportService) ByCategory(ctx context.Context, from, to time.Time) ([]CategorySales, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.GroupByCategory(ctx, from, to)
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return shared.NewDomainError("VALIDATION_ERROR", "Date range requires both from and to")
	}
	if to.Before(from) {
		return shared.NewDomainError("VALIDATION_ERROR", "Date range end must not precede its start")
	}
	return nil
}
