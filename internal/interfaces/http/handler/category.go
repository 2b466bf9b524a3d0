package handler

import (
	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles category table endpoints
type CategoryHandler struct {
	BaseHandler
	categories *appfiscal.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories *appfiscal.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.POST("", h.Create)
	g.POST("/:code/supersede", h.Supersede)
	g.GET("/:code", h.GetAsOf)
	g.GET("/:code/history", h.History)
}

// Create creates the first row of a category code
func (h *CategoryHandler) Create(c *gin.Context) {
	var req appfiscal.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// Supersede records a cap change for a code, closing the previous row
func (h *CategoryHandler) Supersede(c *gin.Context) {
	var req appfiscal.SupersedeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.SupersedeCategory(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// GetAsOf returns the category row in force for a period. Without the
// as_of query parameter it returns the current row.
func (h *CategoryHandler) GetAsOf(c *gin.Context) {
	var (
		category *appfiscal.CategoryResponse
		err      error
	)
	if asOf := c.Query("as_of"); asOf != "" {
		category, err = h.categories.GetCategoryAsOf(c.Request.Context(), c.Param("code"), asOf)
	} else {
		category, err = h.categories.GetCurrentCategory(c.Request.Context(), c.Param("code"))
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, category)
}

// History returns all rows of a category code ordered by validity
func (h *CategoryHandler) History(c *gin.Context) {
	history, err := h.categories.ListCategoryHistory(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}
