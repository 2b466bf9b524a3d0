package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFiscalCategoryRepository implements fiscal.FiscalCategoryRepository using GORM
type GormFiscalCategoryRepository struct {
	db *gorm.DB
}

// NewGormFiscalCategoryRepository creates a new GormFiscalCategoryRepository
func NewGormFiscalCategoryRepository(db *gorm.DB) *GormFiscalCategoryRepository {
	return &GormFiscalCategoryRepository{db: db}
}

// FindByID finds a category row by ID
func (r *GormFiscalCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.FiscalCategory, error) {
	var model models.FiscalCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindCurrentByCode finds the open-ended current row for a code
func (r *GormFiscalCategoryRepository) FindCurrentByCode(ctx context.Context, code string) (*fiscal.FiscalCategory, error) {
	var model models.FiscalCategoryModel
	err := r.db.WithContext(ctx).
		Where("code = ? AND valid_to IS NULL", normalizeCode(code)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByCodeAsOf finds the row whose validity window covers the period
func (r *GormFiscalCategoryRepository) FindByCodeAsOf(ctx context.Context, code string, asOf valueobject.Period) (*fiscal.FiscalCategory, error) {
	var model models.FiscalCategoryModel
	err := r.db.WithContext(ctx).
		Where("code = ? AND valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)",
			normalizeCode(code), asOf.String(), asOf.String()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAllByCode returns every historical row for a code, oldest first
func (r *GormFiscalCategoryRepository) FindAllByCode(ctx context.Context, code string) ([]fiscal.FiscalCategory, error) {
	var rows []models.FiscalCategoryModel
	err := r.db.WithContext(ctx).
		Where("code = ?", normalizeCode(code)).
		Order("valid_from").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]fiscal.FiscalCategory, 0, len(rows))
	for i := range rows {
		category, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, nil
}

// Save creates or updates a category row
func (r *GormFiscalCategoryRepository) Save(ctx context.Context, category *fiscal.FiscalCategory) error {
	var model models.FiscalCategoryModel
	model.FromDomain(category)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
