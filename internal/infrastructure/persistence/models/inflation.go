package models

import (
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/inflation"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InflationRecordModel is the persistence model for the monthly inflation
// series. The period is unique: an upsert on conflict keeps last-write-wins.
type InflationRecordModel struct {
	BaseModel
	Period             string          `gorm:"size:7;not null;uniqueIndex"`
	MonthlyRatePercent decimal.Decimal `gorm:"type:decimal(10,4);not null"`
}

// TableName returns the table name for InflationRecordModel
func (InflationRecordModel) TableName() string {
	return "inflation_records"
}

// ToDomain converts InflationRecordModel to a domain Record
func (m *InflationRecordModel) ToDomain() (*inflation.Record, error) {
	period, err := valueobject.ParsePeriod(m.Period)
	if err != nil {
		return nil, err
	}

	return &inflation.Record{
		BaseEntity:         m.BaseModel.ToDomain(),
		Period:             period,
		MonthlyRatePercent: m.MonthlyRatePercent,
	}, nil
}

// FromDomain populates InflationRecordModel from a domain Record
func (m *InflationRecordModel) FromDomain(r *inflation.Record) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Period = r.Period.String()
	m.MonthlyRatePercent = r.MonthlyRatePercent
}
