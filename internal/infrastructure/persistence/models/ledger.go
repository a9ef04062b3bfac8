package models

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesEntryModel is the persistence model for ledger.SalesEntry.
// SaleDate is stored as its own indexed column so bucket queries never
// need to truncate SoldAt.
type SalesEntryModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillNumber     string          `gorm:"type:varchar(50);not null"`
	CustomerName   string          `gorm:"type:varchar(200)"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Category       string          `gorm:"type:varchar(100);index"`
	Quantity       int64           `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod  string          `gorm:"type:varchar(50)"`
	SoldAt         time.Time       `gorm:"not null;index"`
	SaleDate       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SalesEntryModel) TableName() string {
	return "sales_entries"
}

// ToDomain converts the model to a domain sales entry
func (m *SalesEntryModel) ToDomain() ledger.SalesEntry {
	return ledger.SalesEntry{
		ID:             m.ID,
		BillID:         m.BillID,
		BillNumber:     m.BillNumber,
		CustomerName:   m.CustomerName,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Category:       m.Category,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		TotalPrice:     m.TotalPrice,
		TaxAmount:      m.TaxAmount,
		DiscountAmount: m.DiscountAmount,
		UnitCost:       m.UnitCost,
		PaymentMethod:  m.PaymentMethod,
		SoldAt:         m.SoldAt,
		SaleDate:       m.SaleDate,
	}
}

// FromDomain populates the model from a domain sales entry
func (m *SalesEntryModel) FromDomain(e *ledger.SalesEntry) {
	m.ID = e.ID
	m.BillID = e.BillID
	m.BillNumber = e.BillNumber
	m.CustomerName = e.CustomerName
	m.ProductID = e.ProductID
	m.ProductName = e.ProductName
	m.Category = e.Category
	m.Quantity = e.Quantity
	m.UnitPrice = e.UnitPrice
	m.TotalPrice = e.TotalPrice
	m.TaxAmount = e.TaxAmount
	m.DiscountAmount = e.DiscountAmount
	m.UnitCost = e.UnitCost
	m.PaymentMethod = e.PaymentMethod
	m.SoldAt = e.SoldAt
	m.SaleDate = e.SaleDate
}
