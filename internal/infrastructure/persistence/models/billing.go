package models

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for billing.Bill
type BillModel struct {
	BaseModel
	Number         string             `gorm:"type:varchar(50);not null;index"`
	CustomerName   string             `gorm:"type:varchar(200)"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount    decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Status         string             `gorm:"type:varchar(20);not null;default:'completed'"`
	Items          []BillItemModel    `gorm:"foreignKey:BillID;references:ID"`
	Payments       []BillPaymentModel `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// BillItemModel is the persistence model for billing.BillItem
type BillItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// BillPaymentModel is the persistence model for billing.Payment
type BillPaymentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method      string          `gorm:"type:varchar(50);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ProcessedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillPaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model and its children to a domain bill
func (m *BillModel) ToDomain() *billing.Bill {
	bill := &billing.Bill{
		BaseEntity:     m.BaseModel.ToDomain(),
		Number:         m.Number,
		CustomerName:   m.CustomerName,
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		DiscountAmount: m.DiscountAmount,
		TotalAmount:    m.TotalAmount,
		Status:         billing.BillStatus(m.Status),
		Items:          make([]billing.BillItem, 0, len(m.Items)),
		Payments:       make([]billing.Payment, 0, len(m.Payments)),
	}
	for _, item := range m.Items {
		bill.Items = append(bill.Items, billing.BillItem{
			ID:          item.ID,
			BillID:      item.BillID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			CreatedAt:   item.CreatedAt,
		})
	}
	for _, payment := range m.Payments {
		bill.Payments = append(bill.Payments, billing.Payment{
			ID:          payment.ID,
			BillID:      payment.BillID,
			Method:      payment.Method,
			Amount:      payment.Amount,
			ProcessedAt: payment.ProcessedAt,
		})
	}
	return bill
}

// FromDomain populates the model and its children from a domain bill
func (m *BillModel) FromDomain(bill *billing.Bill) {
	m.FromDomainBaseEntity(bill.BaseEntity)
	m.Number = bill.Number
	m.CustomerName = bill.CustomerName
	m.Subtotal = bill.Subtotal
	m.TaxAmount = bill.TaxAmount
	m.DiscountAmount = bill.DiscountAmount
	m.TotalAmount = bill.TotalAmount
	m.Status = string(bill.Status)

	m.Items = make([]BillItemModel, 0, len(bill.Items))
	for _, item := range bill.Items {
		m.Items = append(m.Items, BillItemModel{
			ID:          item.ID,
			BillID:      item.BillID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			CreatedAt:   item.CreatedAt,
		})
	}
	m.Payments = make([]BillPaymentModel, 0, len(bill.Payments))
	for _, payment := range bill.Payments {
		m.Payments = append(m.Payments, BillPaymentModel{
			ID:          payment.ID,
			BillID:      payment.BillID,
			Method:      payment.Method,
			Amount:      payment.Amount,
			ProcessedAt: payment.ProcessedAt,
		})
	}
}
