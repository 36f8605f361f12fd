package models

import (
	"time"

	"fundportal/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string         `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// GetID returns the record identifier.
func (b Base) GetID() string { return b.ID }

// SetID assigns the record identifier.
func (b *Base) SetID(id string) { b.ID = id }

// InvestorScope ties a record to the investor that owns it.
type InvestorScope struct {
	InvestorID string `gorm:"type:varchar(64);not null;index" json:"investor_id"`
}

// GetInvestorID returns the owning investor.
func (s InvestorScope) GetInvestorID() string { return s.InvestorID }

// AssignInvestor sets the owning investor.
func (s *InvestorScope) AssignInvestor(id string) { s.InvestorID = id }

// Record is implemented by every entity held in the record store.
type Record interface {
	GetID() string
	Validate() error
}

// ScopedRecord is a Record owned by a single investor.
type ScopedRecord interface {
	Record
	GetInvestorID() string
}

// All lists every persisted model, in dependency order, for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Investor{},
		&CapitalContribution{},
		&DrawdownNotice{},
		&FeeCharge{},
		&Distribution{},
		&NAVStatement{},
		&FundInvestment{},
		&CoInvestment{},
		&Document{},
		&InvestorUpdate{},
		&AuditLog{},
	}
}
