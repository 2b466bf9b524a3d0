package handler

import (
	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SummaryHandler handles month summary endpoints
type SummaryHandler struct {
	BaseHandler
	summaries *appfiscal.MonthSummaryService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaries *appfiscal.MonthSummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// RegisterRoutes registers summary routes
func (h *SummaryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/months/summary", h.GetSummary)
}

// GetSummary returns the per-month totals and review counts for a client
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	summary, err := h.summaries.GetSummary(c.Request.Context(), clientID, c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
