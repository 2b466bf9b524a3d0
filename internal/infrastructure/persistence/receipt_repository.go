package persistence

import (
	"context"
	"errors"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReceiptRepository implements fiscal.ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormReceiptRepository) WithTx(tx *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: tx}
}

// FindByID finds a receipt by ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.Receipt, error) {
	var model models.ReceiptModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByClientAndPeriod returns every receipt of a client for one period
func (r *GormReceiptRepository) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) ([]fiscal.Receipt, error) {
	var rows []models.ReceiptModel
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND period = ?", clientID, period.String()).
		Order("emission_date, created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainReceipts(rows)
}

// FindByClientInRange returns every receipt of a client with a period in
// [from, to] inclusive. Periods are stored as "YYYY-MM", which orders the
// same as the periods themselves, so BETWEEN on text is correct.
func (r *GormReceiptRepository) FindByClientInRange(ctx context.Context, clientID uuid.UUID, from, to valueobject.Period) ([]fiscal.Receipt, error) {
	var rows []models.ReceiptModel
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND period BETWEEN ? AND ?", clientID, from.String(), to.String()).
		Order("period, emission_date").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainReceipts(rows)
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *fiscal.Receipt) error {
	var model models.ReceiptModel
	model.FromDomain(receipt)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

// Delete removes a receipt
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReceiptModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainReceipts(rows []models.ReceiptModel) ([]fiscal.Receipt, error) {
	receipts := make([]fiscal.Receipt, 0, len(rows))
	for i := range rows {
		receipt, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *receipt)
	}
	return receipts, nil
}
