package dto

import (
	appbilling "github.com/bizpulse/backend/internal/application/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBillItemRequest is one cart line as clients send it. Older
// clients used different field names for the product reference, the
// quantity and the price; every alias is accepted and normalized here
// so the core only ever sees the canonical shape.
type CreateBillItemRequest struct {
	ProductID      string `json:"product_id"`
	ProductIDAlt   string `json:"id"`
	ProductIDCamel string `json:"productId"`

	ProductName string `json:"product_name"`

	Quantity    int64 `json:"quantity"`
	QuantityAlt int64 `json:"qty"`

	UnitPrice    *decimal.Decimal `json:"unit_price"`
	UnitPriceAlt *decimal.Decimal `json:"price"`
}

// CreateBillRequest is the bill-creation request body
type CreateBillRequest struct {
	CustomerName   string                  `json:"customer_name"`
	Items          []CreateBillItemRequest `json:"items" binding:"required"`
	TaxAmount      *decimal.Decimal        `json:"tax_amount"`
	DiscountAmount *decimal.Decimal        `json:"discount_amount"`
	TotalAmount    *decimal.Decimal        `json:"total_amount"`
	PaymentMethod  string                  `json:"payment_method"`
}

// productID resolves the product reference across aliases. Canonical
// name wins when several are present.
func (r CreateBillItemRequest) productID() string {
	if r.ProductID != "" {
		return r.ProductID
	}
	if r.ProductIDAlt != "" {
		return r.ProductIDAlt
	}
	return r.ProductIDCamel
}

func (r CreateBillItemRequest) quantity() int64 {
	if r.Quantity != 0 {
		return r.Quantity
	}
	return r.QuantityAlt
}

func (r CreateBillItemRequest) unitPrice() decimal.Decimal {
	if r.UnitPrice != nil {
		return *r.UnitPrice
	}
	if r.UnitPriceAlt != nil {
		return *r.UnitPriceAlt
	}
	return decimal.Zero
}

// ToInput normalizes the request into the canonical core input. A line
// whose product reference is not a UUID maps to uuid.Nil and is
// rejected by the core's cart validation with a line-numbered message.
func (r CreateBillRequest) ToInput() appbilling.CreateBillInput {
	items := make([]appbilling.CartItemInput, 0, len(r.Items))
	for _, line := range r.Items {
		productID, err := uuid.Parse(line.productID())
		if err != nil {
			productID = uuid.Nil
		}
		items = append(items, appbilling.CartItemInput{
			ProductID:   productID,
			ProductName: line.ProductName,
			Quantity:    line.quantity(),
			UnitPrice:   line.unitPrice(),
		})
	}
	return appbilling.CreateBillInput{
		CustomerName:   r.CustomerName,
		Items:          items,
		TaxAmount:      r.TaxAmount,
		DiscountAmount: r.DiscountAmount,
		TotalAmount:    r.TotalAmount,
		PaymentMethod:  r.PaymentMethod,
	}
}
