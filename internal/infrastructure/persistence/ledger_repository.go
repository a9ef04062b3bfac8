package persistence

import (
	"context"

	"github.com/bizpulse/backend/internal/domain/ledger"
	"github.com/bizpulse/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLedgerRepository implements ledger.EntryRepository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// SaveAll inserts the entries in one batch
func (r *GormLedgerRepository) SaveAll(ctx context.Context, entries []ledger.SalesEntry) error {
	if len(entries) == 0 {
		return nil
	}
	entryModels := make([]models.SalesEntryModel, len(entries))
	for i := range entries {
		entryModels[i].FromDomain(&entries[i])
	}
	return r.db.WithContext(ctx).Create(&entryModels).Error
}

// FindByBill returns the ledger entries for a bill
func (r *GormLedgerRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]ledger.SalesEntry, error) {
	var entryModels []models.SalesEntryModel
	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]ledger.SalesEntry, 0, len(entryModels))
	for i := range entryModels {
		entries = append(entries, entryModels[i].ToDomain())
	}
	return entries, nil
}

// DeleteByBill removes every entry for a bill
func (r *GormLedgerRepository) DeleteByBill(ctx context.Context, billID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Delete(&models.SalesEntryModel{}).Error
}

// CountByBill returns the number of entries for a bill
func (r *GormLedgerRepository) CountByBill(ctx context.Context, billID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesEntryModel{}).
		Where("bill_id = ?", billID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ ledger.EntryRepository = (*GormLedgerRepository)(nil)
