package persistence

import (
	"context"
	"errors"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/bizpulse/backend/internal/domain/shared"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID loads the bill header with its items and payments
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the bill header together with its items and payments
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	var model models.BillModel
	model.FromDomain(bill)
	return r.db.WithContext(ctx).Create(&model).Error
}

// DeletePayments removes the bill's payment records
func (r *GormBillRepository) DeletePayments(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("bill_id = ?", id).
		Delete(&models.BillPaymentModel{}).Error
}

// Delete removes the bill's items and then the header. GORM association
// cascades are deliberately not relied on here; the order is explicit.
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", id).
		Delete(&models.BillItemModel{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&models.BillModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ billing.BillRepository = (*GormBillRepository)(nil)
