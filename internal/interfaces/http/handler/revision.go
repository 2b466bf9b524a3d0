package handler

import (
	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RevisionHandler handles receipt review and month close endpoints.
// Every route requires the acting reviewer's identity.
type RevisionHandler struct {
	BaseHandler
	revisions *appfiscal.RevisionService
}

// NewRevisionHandler creates a new RevisionHandler
func NewRevisionHandler(revisions *appfiscal.RevisionService) *RevisionHandler {
	return &RevisionHandler{revisions: revisions}
}

// MonthRequest identifies a client month in request bodies
type MonthRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	Period   string    `json:"period" binding:"required,period"`
}

// RegisterRoutes registers revision routes
func (h *RevisionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/receipts", middleware.RequireReviewer())
	receipts.POST("/:id/mark-ok", h.MarkOk)
	receipts.POST("/:id/mark-observed", h.MarkObserved)

	months := rg.Group("/months", middleware.RequireReviewer())
	months.POST("/mark-all-ok", h.MarkAllOk)
	months.POST("/close", h.CloseMonth)
}

// MarkOk approves a pending receipt
func (h *RevisionHandler) MarkOk(c *gin.Context) {
	receiptID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	reviewer, err := getReviewerID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	receipt, err := h.revisions.MarkOk(c.Request.Context(), receiptID, reviewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// MarkObserved flags a receipt with a mandatory note
func (h *RevisionHandler) MarkObserved(c *gin.Context) {
	receiptID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	reviewer, err := getReviewerID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req appfiscal.MarkObservedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.revisions.MarkObserved(c.Request.Context(), receiptID, reviewer, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// MarkAllOk approves every pending receipt of a client month
func (h *RevisionHandler) MarkAllOk(c *gin.Context) {
	reviewer, err := getReviewerID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req MonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.revisions.MarkAllOk(c.Request.Context(), req.ClientID, req.Period, reviewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CloseMonth closes a client month once its receipts pass the guard
func (h *RevisionHandler) CloseMonth(c *gin.Context) {
	reviewer, err := getReviewerID(c)
	if err != nil {
		h.Unauthorized(c, err.Error())
		return
	}

	var req MonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.revisions.CloseMonth(c.Request.Context(), req.ClientID, req.Period, reviewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
