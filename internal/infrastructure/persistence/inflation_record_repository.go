package persistence

import (
	"context"
	"errors"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/inflation"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInflationRecordRepository implements inflation.RecordRepository using GORM
type GormInflationRecordRepository struct {
	db *gorm.DB
}

// NewGormInflationRecordRepository creates a new GormInflationRecordRepository
func NewGormInflationRecordRepository(db *gorm.DB) *GormInflationRecordRepository {
	return &GormInflationRecordRepository{db: db}
}

// FindInRange returns records with a period in [from, to] inclusive, oldest first
func (r *GormInflationRecordRepository) FindInRange(ctx context.Context, from, to valueobject.Period) ([]inflation.Record, error) {
	var rows []models.InflationRecordModel
	err := r.db.WithContext(ctx).
		Where("period BETWEEN ? AND ?", from.String(), to.String()).
		Order("period").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]inflation.Record, 0, len(rows))
	for i := range rows {
		record, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// FindByPeriod returns the record for one period
func (r *GormInflationRecordRepository) FindByPeriod(ctx context.Context, period valueobject.Period) (*inflation.Record, error) {
	var model models.InflationRecordModel
	err := r.db.WithContext(ctx).
		Where("period = ?", period.String()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// Upsert stores a record. The conflict target is the period, not the ID: a
// corrected month replaces the earlier publication (last-write-wins).
func (r *GormInflationRecordRepository) Upsert(ctx context.Context, record *inflation.Record) error {
	var model models.InflationRecordModel
	model.FromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_rate_percent", "updated_at"}),
		}).
		Create(&model).Error
}

// LatestPeriod returns the most recent period with a published rate
func (r *GormInflationRecordRepository) LatestPeriod(ctx context.Context) (valueobject.Period, error) {
	var raw string
	err := r.db.WithContext(ctx).
		Model(&models.InflationRecordModel{}).
		Order("period DESC").
		Limit(1).
		Pluck("period", &raw).Error
	if err != nil {
		return valueobject.Period{}, err
	}
	if raw == "" {
		return valueobject.Period{}, shared.ErrNotFound
	}
	return valueobject.ParsePeriod(raw)
}
