package handler

import (
	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt ledger endpoints
type ReceiptHandler struct {
	BaseHandler
	receipts *appfiscal.ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(receipts *appfiscal.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// RegisterRoutes registers receipt routes
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/receipts")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create enters a new receipt into the ledger
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req appfiscal.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receipts.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// List returns the receipts of a client for one period
func (h *ReceiptHandler) List(c *gin.Context) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	receipts, err := h.receipts.ListReceipts(c.Request.Context(), clientID, c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipts)
}

// GetByID returns one receipt
func (h *ReceiptHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receipts.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Update edits a receipt while its month is open. The period is frozen.
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req appfiscal.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.receipts.UpdateReceipt(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// Delete removes a receipt while its month is open
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receipts.DeleteReceipt(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
