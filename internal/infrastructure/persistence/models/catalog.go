package models

import (
	"github.com/bizpulse/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for catalog.Product
type ProductModel struct {
	BaseModel
	Code     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Category string          `gorm:"type:varchar(100);index"`
	Price    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Cost     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Stock    int64           `gorm:"not null;default:0"`
	MinStock int64           `gorm:"not null;default:0"`
	Active   bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the model to a domain product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		Category:   m.Category,
		Price:      m.Price,
		Cost:       m.Cost,
		Stock:      m.Stock,
		MinStock:   m.MinStock,
		Active:     m.Active,
	}
}

// FromDomain populates the model from a domain product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Code = p.Code
	m.Name = p.Name
	m.Category = p.Category
	m.Price = p.Price
	m.Cost = p.Cost
	m.Stock = p.Stock
	m.MinStock = p.MinStock
	m.Active = p.Active
}
