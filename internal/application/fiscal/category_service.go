package fiscal

import (
	"context"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryService administers the fiscal category table
type CategoryService struct {
	categories fiscal.FiscalCategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categories fiscal.FiscalCategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryResponse represents a category row in API responses
type CategoryResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	AnnualCap decimal.Decimal `json:"annual_cap"`
	ValidFrom string          `json:"valid_from"`
	ValidTo   *string         `json:"valid_to,omitempty"`
	Current   bool            `json:"current"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateCategoryRequest represents a request to create a category's first row
type CreateCategoryRequest struct {
	Code      string          `json:"code" binding:"required"`
	AnnualCap decimal.Decimal `json:"annual_cap" binding:"required"`
	ValidFrom string          `json:"valid_from" binding:"required"`
}

// SupersedeCategoryRequest represents a cap change for an existing code
type SupersedeCategoryRequest struct {
	AnnualCap     decimal.Decimal `json:"annual_cap" binding:"required"`
	EffectiveFrom string          `json:"effective_from" binding:"required"`
}

// CreateCategory creates the initial row for a category code
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	validFrom, err := valueobject.ParsePeriod(req.ValidFrom)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	existing, err := s.categories.FindCurrentByCode(ctx, req.Code)
	if err != nil && !shared.IsCode(err, shared.CodeNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Category code already has a current row")
	}

	category, err := fiscal.NewFiscalCategory(req.Code, req.AnnualCap, validFrom)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// SupersedeCategory closes the current row for a code and opens a new one
// with the new cap. Historical rows stay immutable.
func (s *CategoryService) SupersedeCategory(ctx context.Context, code string, req SupersedeCategoryRequest) (*CategoryResponse, error) {
	effectiveFrom, err := valueobject.ParsePeriod(req.EffectiveFrom)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	current, err := s.categories.FindCurrentByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	successor, err := current.Supersede(req.AnnualCap, effectiveFrom)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Save(ctx, current); err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, successor); err != nil {
		return nil, err
	}
	return toCategoryResponse(successor), nil
}

// GetCurrentCategory returns the open-ended row for a code
func (s *CategoryService) GetCurrentCategory(ctx context.Context, code string) (*CategoryResponse, error) {
	category, err := s.categories.FindCurrentByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategoryAsOf returns the row covering a period for a code
func (s *CategoryService) GetCategoryAsOf(ctx context.Context, code, periodStr string) (*CategoryResponse, error) {
	period, err := valueobject.ParsePeriod(periodStr)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	category, err := s.categories.FindByCodeAsOf(ctx, code, period)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategoryHistory returns every row for a code, oldest first
func (s *CategoryService) ListCategoryHistory(ctx context.Context, code string) ([]CategoryResponse, error) {
	rows, err := s.categories.FindAllByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(rows))
	for i := range rows {
		responses[i] = *toCategoryResponse(&rows[i])
	}
	return responses, nil
}

func toCategoryResponse(c *fiscal.FiscalCategory) *CategoryResponse {
	resp := &CategoryResponse{
		ID:        c.ID,
		Code:      c.Code,
		AnnualCap: c.AnnualCap,
		ValidFrom: c.ValidFrom.String(),
		Current:   c.IsCurrent(),
		CreatedAt: c.CreatedAt,
	}
	if c.ValidTo != nil {
		s := c.ValidTo.String()
		resp.ValidTo = &s
	}
	return resp
}
