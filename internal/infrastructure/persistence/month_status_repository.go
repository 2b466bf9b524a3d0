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

// GormMonthStatusRepository implements fiscal.MonthStatusRepository using GORM
type GormMonthStatusRepository struct {
	db *gorm.DB
}

// NewGormMonthStatusRepository creates a new GormMonthStatusRepository
func NewGormMonthStatusRepository(db *gorm.DB) *GormMonthStatusRepository {
	return &GormMonthStatusRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GormMonthStatusRepository) WithTx(tx *gorm.DB) *GormMonthStatusRepository {
	return &GormMonthStatusRepository{db: tx}
}

// FindByClientAndPeriod returns the row for a client and period, or
// shared.ErrNotFound when the month was never touched
func (r *GormMonthStatusRepository) FindByClientAndPeriod(ctx context.Context, clientID uuid.UUID, period valueobject.Period) (*fiscal.MonthStatus, error) {
	var model models.MonthStatusModel
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND period = ?", clientID, period.String()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindClosedPeriods returns the periods a client has closed, oldest first
func (r *GormMonthStatusRepository) FindClosedPeriods(ctx context.Context, clientID uuid.UUID) ([]valueobject.Period, error) {
	var rows []string
	err := r.db.WithContext(ctx).
		Model(&models.MonthStatusModel{}).
		Where("client_id = ? AND state = ?", clientID, fiscal.MonthStateClosed.String()).
		Order("period").
		Pluck("period", &rows).Error
	if err != nil {
		return nil, err
	}

	periods := make([]valueobject.Period, 0, len(rows))
	for _, raw := range rows {
		period, err := valueobject.ParsePeriod(raw)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, nil
}

// Save creates or updates a month status row
func (r *GormMonthStatusRepository) Save(ctx context.Context, status *fiscal.MonthStatus) error {
	var model models.MonthStatusModel
	model.FromDomain(status)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}
