package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/bizpulse/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatusItem is one active product's stock-health line
type StatusItem struct {
	ProductID       uuid.UUID           `json:"product_id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Category        string              `json:"category"`
	Stock           int64               `json:"stock"`
	MinStock        int64               `json:"min_stock"`
	Health          catalog.StockHealth `json:"health"`
	ProfitPerUnit   decimal.Decimal     `json:"profit_per_unit"`
	ProfitMarginPct decimal.Decimal     `json:"profit_margin_percent"`
	ValuationCost   decimal.Decimal     `json:"valuation_at_cost"`
	ValuationPrice  decimal.Decimal     `json:"valuation_at_price"`
}

// Report is the full inventory status view. Warnings carry observed
// data-integrity problems (negative stock); the report renders them
// rather than failing.
type Report struct {
	Items            []StatusItem                `json:"items"`
	CountsByHealth   map[catalog.StockHealth]int `json:"counts_by_health"`
	TotalAtCost      decimal.Decimal             `json:"total_valuation_at_cost"`
	TotalAtPrice     decimal.Decimal             `json:"total_valuation_at_price"`
	IntegrityWarning []string                    `json:"integrity_warnings,omitempty"`
}

// StatusService builds the inventory status report. Read-only.
type StatusService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(products catalog.ProductRepository, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{
		products: products,
		logger:   logger,
	}
}

// Report classifies every active product, computes per-product profit
// figures and the aggregate valuation. Items are ordered most urgent
// first, then by name.
func (s *StatusService) Report(ctx context.Context) (*Report, error) {
	products, err := s.products.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Items:          make([]StatusItem, 0, len(products)),
		CountsByHealth: make(map[catalog.StockHealth]int),
		TotalAtCost:    decimal.Zero,
		TotalAtPrice:   decimal.Zero,
	}

	for i := range products {
		p := &products[i]
		health := p.Health()

		if p.Stock < 0 {
			warning := fmt.Sprintf("product %s (%s) has negative stock %d", p.Name, p.Code, p.Stock)
			report.IntegrityWarning = append(report.IntegrityWarning, warning)
			s.logger.Warn("negative stock observed",
				zap.String("product_id", p.ID.String()),
				zap.Int64("stock", p.Stock))
		}

		report.Items = append(report.Items, StatusItem{
			ProductID:       p.ID,
			Code:            p.Code,
			Name:            p.Name,
			Category:        p.Category,
			Stock:           p.Stock,
			MinStock:        p.MinStock,
			Health:          health,
			ProfitPerUnit:   p.ProfitPerUnit(),
			ProfitMarginPct: p.ProfitMarginPercent(),
			ValuationCost:   p.ValuationAtCost(),
			ValuationPrice:  p.ValuationAtPrice(),
		})
		report.CountsByHealth[health]++
		report.TotalAtCost = report.TotalAtCost.Add(p.ValuationAtCost())
		report.TotalAtPrice = report.TotalAtPrice.Add(p.ValuationAtPrice())
	}

	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if a.Health != b.Health {
			return a.Health.MoreUrgentThan(b.Health)
		}
		return a.Name < b.Name
	})

	return report, nil
}
