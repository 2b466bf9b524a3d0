package handler

import (
	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client registry endpoints
type ClientHandler struct {
	BaseHandler
	clients *appfiscal.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clients *appfiscal.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// RegisterRoutes registers client routes
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/clients")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id/category", h.Recategorize)
}

// Create registers a new client
func (h *ClientHandler) Create(c *gin.Context) {
	var req appfiscal.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clients.CreateClient(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// List returns clients matching the filter
func (h *ClientHandler) List(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clients, err := h.clients.ListClients(c.Request.Context(), shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, clients)
}

// GetByID returns one client
func (h *ClientHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clients.GetClient(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// Recategorize moves a client to a different category code
func (h *ClientHandler) Recategorize(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req appfiscal.RecategorizeClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clients.RecategorizeClient(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}
