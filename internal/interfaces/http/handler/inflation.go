package handler

import (
	appinflation "github.com/Agustinixnova/monotributistapp-sub005/internal/application/inflation"
	"github.com/gin-gonic/gin"
)

// InflationHandler handles inflation series and adjustment endpoints
type InflationHandler struct {
	BaseHandler
	adjustments *appinflation.AdjustmentService
}

// NewInflationHandler creates a new InflationHandler
func NewInflationHandler(adjustments *appinflation.AdjustmentService) *InflationHandler {
	return &InflationHandler{adjustments: adjustments}
}

// RegisterRoutes registers inflation routes
func (h *InflationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/inflation")
	g.PUT("/records", h.UpsertRecord)
	g.GET("/records", h.ListRecords)
	g.GET("/records/:period", h.GetRecord)
	g.GET("/latest", h.Latest)
	g.POST("/adjustment", h.Adjustment)
}

// UpsertRecord publishes or corrects a monthly rate. Re-publishing a
// period replaces the stored rate.
func (h *InflationHandler) UpsertRecord(c *gin.Context) {
	var req appinflation.UpsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.adjustments.UpsertRecord(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// ListRecords returns the rates stored for an inclusive period range
func (h *InflationHandler) ListRecords(c *gin.Context) {
	records, err := h.adjustments.ListRecords(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// GetRecord returns the rate stored for one period
func (h *InflationHandler) GetRecord(c *gin.Context) {
	record, err := h.adjustments.GetRecord(c.Request.Context(), c.Param("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// LatestResponse reports the most recent published period, empty when the
// series has no data yet
type LatestResponse struct {
	Period string `json:"period"`
}

// Latest returns the most recently published period
func (h *InflationHandler) Latest(c *gin.Context) {
	period, err := h.adjustments.LatestPeriod(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LatestResponse{Period: period})
}

// Adjustment restates an amount across a window by compounding the
// monthly rates
func (h *InflationHandler) Adjustment(c *gin.Context) {
	var req appinflation.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.adjustments.Adjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
