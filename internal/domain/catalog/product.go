package catalog

import (
	"strings"

	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StockHealth classifies a product's stock level for alerting
type StockHealth string

const (
	StockHealthOutOfStock StockHealth = "out_of_stock"
	StockHealthLow        StockHealth = "low_stock"
	StockHealthWarning    StockHealth = "warning"
	StockHealthGood       StockHealth = "good"
)

// severityRank orders stock states from most to least urgent
func (s StockHealth) severityRank() int {
	switch s {
	case StockHealthOutOfStock:
		return 0
	case StockHealthLow:
		return 1
	case StockHealthWarning:
		return 2
	default:
		return 3
	}
}

// MoreUrgentThan reports whether this state should sort before the other
// in stock alerts.
func (s StockHealth) MoreUrgentThan(other StockHealth) bool {
	return s.severityRank() < other.severityRank()
}

// Product represents a product/SKU in the catalog.
// Stock is owned by the billing transaction core: catalog management sets
// the opening stock at creation and never changes it afterwards.
type Product struct {
	shared.BaseEntity
	Code     string
	Name     string
	Category string
	Price    decimal.Decimal // unit selling price
	Cost     decimal.Decimal // unit cost price
	Stock    int64
	MinStock int64
	Active   bool
}

// NewProduct creates a new active product with an opening stock level
func NewProduct(code, name, category string, price, cost valueobject.Money, stock, minStock int64) (*Product, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if price.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if cost.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Opening stock cannot be negative")
	}
	if minStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(code),
		Name:       name,
		Category:   category,
		Price:      price.Amount(),
		Cost:       cost.Amount(),
		Stock:      stock,
		MinStock:   minStock,
		Active:     true,
	}, nil
}

// Update updates the product's descriptive fields and prices.
// Stock is deliberately not part of this operation.
func (p *Product) Update(name, category string, price, cost valueobject.Money, minStock int64) error {
	if err := validateName(name); err != nil {
		return err
	}
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if cost.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if minStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Minimum stock cannot be negative")
	}

	p.Name = name
	p.Category = category
	p.Price = price.Amount()
	p.Cost = cost.Amount()
	p.MinStock = minStock
	p.Touch()

	return nil
}

// Deactivate soft-deletes the product. Deactivated products cannot be
// sold but their stock is still restored when a bill is deleted.
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

// IsSellable reports whether the product can appear on a new bill
func (p *Product) IsSellable() bool {
	return p.Active
}

// HasStock reports whether the product can cover the requested quantity
func (p *Product) HasStock(quantity int64) bool {
	return p.Stock >= quantity
}

// Shortfall returns how many units are missing to cover the requested
// quantity; zero when stock is sufficient.
func (p *Product) Shortfall(quantity int64) int64 {
	if p.Stock >= quantity {
		return 0
	}
	return quantity - p.Stock
}

// Health classifies the current stock level
func (p *Product) Health() StockHealth {
	switch {
	case p.Stock <= 0:
		return StockHealthOutOfStock
	case p.Stock <= p.MinStock:
		return StockHealthLow
	case p.Stock <= 2*p.MinStock:
		return StockHealthWarning
	default:
		return StockHealthGood
	}
}

// ProfitPerUnit returns selling price minus cost
func (p *Product) ProfitPerUnit() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

// ProfitMarginPercent returns the margin as a percentage of selling price.
// Zero-priced products report a zero margin.
func (p *Product) ProfitMarginPercent() decimal.Decimal {
	if p.Price.IsZero() {
		return decimal.Zero
	}
	return p.ProfitPerUnit().Div(p.Price).Mul(decimal.NewFromInt(100)).Round(2)
}

// ValuationAtCost returns stock quantity valued at cost price
func (p *Product) ValuationAtCost() decimal.Decimal {
	return p.Cost.Mul(decimal.NewFromInt(p.Stock))
}

// ValuationAtPrice returns stock quantity valued at selling price
func (p *Product) ValuationAtPrice() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Stock))
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
