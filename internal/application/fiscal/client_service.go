package fiscal

import (
	"context"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService provides application-level client operations
type ClientService struct {
	clients fiscal.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clients fiscal.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	TaxID         string    `json:"tax_id,omitempty"`
	CategoryCode  string    `json:"category_code"`
	InvoicingMode string    `json:"invoicing_mode"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Name          string `json:"name" binding:"required"`
	TaxID         string `json:"tax_id"`
	CategoryCode  string `json:"category_code" binding:"required"`
	InvoicingMode string `json:"invoicing_mode" binding:"required,oneof=autonomous managed"`
}

// RecategorizeClientRequest represents a category change for a client
type RecategorizeClientRequest struct {
	CategoryCode string `json:"category_code" binding:"required"`
}

// CreateClient registers a new client
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientResponse, error) {
	client, err := fiscal.NewClient(req.Name, req.TaxID, req.CategoryCode, fiscal.InvoicingMode(req.InvoicingMode))
	if err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetClient returns a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// ListClients returns clients matching the filter
func (s *ClientService) ListClients(ctx context.Context, filter shared.Filter) ([]ClientResponse, error) {
	clients, err := s.clients.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = *toClientResponse(&clients[i])
	}
	return responses, nil
}

// RecategorizeClient moves a client to another category code
func (s *ClientService) RecategorizeClient(ctx context.Context, id uuid.UUID, req RecategorizeClientRequest) (*ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := client.Recategorize(req.CategoryCode); err != nil {
		return nil, err
	}

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

func toClientResponse(c *fiscal.Client) *ClientResponse {
	return &ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		TaxID:         c.TaxID,
		CategoryCode:  c.CategoryCode,
		InvoicingMode: c.InvoicingMode.String(),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
