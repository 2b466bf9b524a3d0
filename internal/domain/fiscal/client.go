package fiscal

import (
	"strings"
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared"
)

// InvoicingMode determines who enters receipts for a client: the client
// themselves or the accountant studio on their behalf. Permission checks are
// a collaborator concern; the month-closed invariant applies to both modes.
type InvoicingMode string

const (
	InvoicingModeAutonomous InvoicingMode = "autonomous"
	InvoicingModeManaged    InvoicingMode = "managed"
)

// IsValid checks if the mode is a valid InvoicingMode
func (m InvoicingMode) IsValid() bool {
	return m == InvoicingModeAutonomous || m == InvoicingModeManaged
}

// String returns the string representation of InvoicingMode
func (m InvoicingMode) String() string {
	return string(m)
}

// Client is a monotributo taxpayer tracked by the system
type Client struct {
	shared.BaseAggregateRoot
	Name          string
	TaxID         string // CUIT
	CategoryCode  string
	InvoicingMode InvoicingMode
}

// NewClient creates a new client in the given fiscal category
func NewClient(name, taxID, categoryCode string, mode InvoicingMode) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Client name cannot be empty")
	}
	categoryCode = strings.TrimSpace(strings.ToUpper(categoryCode))
	if categoryCode == "" {
		return nil, shared.NewValidationError("Client category code cannot be empty")
	}
	if !mode.IsValid() {
		return nil, shared.NewValidationError("Invoicing mode must be autonomous or managed")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             strings.TrimSpace(taxID),
		CategoryCode:      categoryCode,
		InvoicingMode:     mode,
	}, nil
}

// Recategorize moves the client to a different category code
func (c *Client) Recategorize(categoryCode string) error {
	categoryCode = strings.TrimSpace(strings.ToUpper(categoryCode))
	if categoryCode == "" {
		return shared.NewValidationError("Category code cannot be empty")
	}
	c.CategoryCode = categoryCode
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
