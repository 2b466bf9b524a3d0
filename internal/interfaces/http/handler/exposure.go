package handler

import (
	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExposureHandler handles cap exposure endpoints
type ExposureHandler struct {
	BaseHandler
	exposure *appfiscal.ExposureService
}

// NewExposureHandler creates a new ExposureHandler
func NewExposureHandler(exposure *appfiscal.ExposureService) *ExposureHandler {
	return &ExposureHandler{exposure: exposure}
}

// RegisterRoutes registers exposure routes
func (h *ExposureHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/exposure", h.GetExposure)
}

// GetExposure returns the rolling 12-month accumulation, cap percentage
// and risk tier for a client as of a period
func (h *ExposureHandler) GetExposure(c *gin.Context) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	result, err := h.exposure.Exposure(c.Request.Context(), clientID, c.Query("as_of"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
