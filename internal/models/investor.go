package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

// InvestorStatus is the account state of an investor.
type InvestorStatus string

const (
	InvestorActive   InvestorStatus = "Active"
	InvestorInactive InvestorStatus = "Inactive"
)

// CapitalCommitment is the capital an investor has pledged to the fund.
type CapitalCommitment struct {
	Total     decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"total"`
	Currency  string          `gorm:"type:char(3);not null;default:'INR'" json:"currency" binding:"omitempty,iso4217"`
	UnitClass string          `json:"unit_class"`
	Units     decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"units"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"unit_price"`
	StartDate time.Time       `json:"start_date"`
}

// IsBalanced reports whether Total equals Units * UnitPrice. This is
// informational only; unbalanced commitments are accepted.
func (c CapitalCommitment) IsBalanced() bool {
	return c.Total.Equal(c.Units.Mul(c.UnitPrice))
}

// Validate checks the commitment amounts.
func (c CapitalCommitment) Validate() error {
	if err := nonNegative("commitment total", c.Total); err != nil {
		return err
	}
	if err := nonNegative("units", c.Units); err != nil {
		return err
	}
	return nonNegative("unit price", c.UnitPrice)
}

// Investor is a limited partner of the fund. Its scoped records reference it
// by ID; deleting an investor makes them unreachable.
type Investor struct {
	Base
	Name          string            `gorm:"not null" json:"name"`
	Email         string            `gorm:"not null;index" json:"email"`
	ContactPerson string            `json:"contact_person"`
	ContactPhone  string            `json:"contact_phone"`
	Address       string            `json:"address"`
	UserID        *string           `gorm:"type:varchar(64);uniqueIndex" json:"user_id,omitempty"`
	Status        InvestorStatus    `gorm:"not null;default:'Active'" json:"status"`
	Commitment    CapitalCommitment `gorm:"embedded;embeddedPrefix:commitment_" json:"capital_commitment"`
}

// Validate checks an investor before it enters the store.
func (i Investor) Validate() error {
	if err := requireID(i.ID); err != nil {
		return err
	}
	if strings.TrimSpace(i.Name) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "investor name is required")
	}
	if strings.TrimSpace(i.Email) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "investor email is required")
	}
	switch i.Status {
	case InvestorActive, InvestorInactive:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid investor status")
	}
	return i.Commitment.Validate()
}

// IsActive reports whether the investor can sign in to the portal.
func (i Investor) IsActive() bool { return i.Status == InvestorActive }
