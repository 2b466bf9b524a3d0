package models

import (
	"time"

	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for clients
type ClientModel struct {
	AggregateModel
	Name          string `gorm:"size:255;not null"`
	TaxID         string `gorm:"size:20;index"`
	CategoryCode  string `gorm:"size:10;not null;index"`
	InvoicingMode string `gorm:"size:20;not null"`
}

// TableName returns the table name for ClientModel
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts ClientModel to a domain Client
func (m *ClientModel) ToDomain() *fiscal.Client {
	return &fiscal.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             m.TaxID,
		CategoryCode:      m.CategoryCode,
		InvoicingMode:     fiscal.InvoicingMode(m.InvoicingMode),
	}
}

// FromDomain populates ClientModel from a domain Client
func (m *ClientModel) FromDomain(c *fiscal.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.TaxID = c.TaxID
	m.CategoryCode = c.CategoryCode
	m.InvoicingMode = c.InvoicingMode.String()
}

// FiscalCategoryModel is the persistence model for category table rows.
// Validity bounds are stored in the period's canonical "YYYY-MM" form, which
// sorts correctly as text and so supports plain BETWEEN range queries.
type FiscalCategoryModel struct {
	AggregateModel
	Code      string          `gorm:"size:10;not null;index:idx_category_code_valid"`
	AnnualCap decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ValidFrom string          `gorm:"size:7;not null;index:idx_category_code_valid"`
	ValidTo   *string         `gorm:"size:7"`
}

// TableName returns the table name for FiscalCategoryModel
func (FiscalCategoryModel) TableName() string {
	return "fiscal_categories"
}

// ToDomain converts FiscalCategoryModel to a domain FiscalCategory
func (m *FiscalCategoryModel) ToDomain() (*fiscal.FiscalCategory, error) {
	validFrom, err := valueobject.ParsePeriod(m.ValidFrom)
	if err != nil {
		return nil, err
	}

	var validTo *valueobject.Period
	if m.ValidTo != nil {
		p, err := valueobject.ParsePeriod(*m.ValidTo)
		if err != nil {
			return nil, err
		}
		validTo = &p
	}

	return &fiscal.FiscalCategory{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		AnnualCap:         m.AnnualCap,
		ValidFrom:         validFrom,
		ValidTo:           validTo,
	}, nil
}

// FromDomain populates FiscalCategoryModel from a domain FiscalCategory
func (m *FiscalCategoryModel) FromDomain(c *fiscal.FiscalCategory) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.AnnualCap = c.AnnualCap
	m.ValidFrom = c.ValidFrom.String()
	m.ValidTo = nil
	if c.ValidTo != nil {
		s := c.ValidTo.String()
		m.ValidTo = &s
	}
}

// ReceiptModel is the persistence model for ledger receipts
type ReceiptModel struct {
	AggregateModel
	ClientID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_receipt_client_period"`
	Period            string          `gorm:"size:7;not null;index:idx_receipt_client_period"`
	EmissionDate      time.Time       `gorm:"not null"`
	Kind              string          `gorm:"size:2;not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CounterpartyName  string          `gorm:"size:255;not null"`
	CounterpartyTaxID string          `gorm:"size:20"`
	ReviewState       string          `gorm:"size:10;not null;index"`
	ObservationNote   string          `gorm:"type:text"`
	AttachmentURLs    pq.StringArray  `gorm:"type:text[]"`
	ReviewedBy        *uuid.UUID      `gorm:"type:uuid"`
	ReviewedAt        *time.Time
}

// TableName returns the table name for ReceiptModel
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToDomain converts ReceiptModel to a domain Receipt
func (m *ReceiptModel) ToDomain() (*fiscal.Receipt, error) {
	period, err := valueobject.ParsePeriod(m.Period)
	if err != nil {
		return nil, err
	}

	return &fiscal.Receipt{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClientID:          m.ClientID,
		Period:            period,
		EmissionDate:      m.EmissionDate,
		Kind:              fiscal.ReceiptKind(m.Kind),
		Amount:            m.Amount,
		Counterparty: fiscal.Counterparty{
			Name:  m.CounterpartyName,
			TaxID: m.CounterpartyTaxID,
		},
		ReviewState:     fiscal.ReviewState(m.ReviewState),
		ObservationNote: m.ObservationNote,
		AttachmentURLs:  m.AttachmentURLs,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
	}, nil
}

// FromDomain populates ReceiptModel from a domain Receipt
func (m *ReceiptModel) FromDomain(r *fiscal.Receipt) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ClientID = r.ClientID
	m.Period = r.Period.String()
	m.EmissionDate = r.EmissionDate
	m.Kind = r.Kind.String()
	m.Amount = r.Amount
	m.CounterpartyName = r.Counterparty.Name
	m.CounterpartyTaxID = r.Counterparty.TaxID
	m.ReviewState = r.ReviewState.String()
	m.ObservationNote = r.ObservationNote
	m.AttachmentURLs = r.AttachmentURLs
	m.ReviewedBy = r.ReviewedBy
	m.ReviewedAt = r.ReviewedAt
}

// MonthStatusModel is the persistence model for per-client month state rows.
// Only touched months have a row; absence means open.
type MonthStatusModel struct {
	AggregateModel
	ClientID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_month_client_period"`
	Period   string     `gorm:"size:7;not null;uniqueIndex:idx_month_client_period"`
	State    string     `gorm:"size:10;not null"`
	ClosedBy *uuid.UUID `gorm:"type:uuid"`
	ClosedAt *time.Time
}

// TableName returns the table name for MonthStatusModel
func (MonthStatusModel) TableName() string {
	return "month_statuses"
}

// ToDomain converts MonthStatusModel to a domain MonthStatus
func (m *MonthStatusModel) ToDomain() (*fiscal.MonthStatus, error) {
	period, err := valueobject.ParsePeriod(m.Period)
	if err != nil {
		return nil, err
	}

	return &fiscal.MonthStatus{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClientID:          m.ClientID,
		Period:            period,
		State:             fiscal.MonthState(m.State),
		ClosedBy:          m.ClosedBy,
		ClosedAt:          m.ClosedAt,
	}, nil
}

// FromDomain populates MonthStatusModel from a domain MonthStatus
func (m *MonthStatusModel) FromDomain(s *fiscal.MonthStatus) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.ClientID = s.ClientID
	m.Period = s.Period.String()
	m.State = s.State.String()
	m.ClosedBy = s.ClosedBy
	m.ClosedAt = s.ClosedAt
}
