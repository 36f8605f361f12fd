package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

// NAVStatement is a periodic net asset value report for an investor's units.
type NAVStatement struct {
	Base
	InvestorScope
	Period         string          `gorm:"not null" json:"period"`
	Date           time.Time       `gorm:"not null;index" json:"date"`
	NAVPerUnit     decimal.Decimal `gorm:"column:nav_per_unit;type:numeric(20,4);not null" json:"nav_per_unit"`
	TotalUnits     decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"total_units"`
	TotalNAV       decimal.Decimal `gorm:"column:total_nav;type:numeric(20,4);not null" json:"total_nav"`
	Change         decimal.Decimal `gorm:"type:numeric(9,4);not null;default:0" json:"change"`
	AttachmentName string          `json:"attachment_name,omitempty"`
}

// NAVScale is the number of decimal places stored for NAV figures.
const NAVScale = 4

// TotalNAVFor returns perUnit * units rounded to the stored scale.
func TotalNAVFor(perUnit, units decimal.Decimal) decimal.Decimal {
	return perUnit.Mul(units).Round(NAVScale)
}

// TableName overrides the default acronym handling.
func (NAVStatement) TableName() string { return "nav_statements" }

// Validate enforces TotalNAV == NAVPerUnit * TotalUnits at NAVScale. Figures
// finer than NAVScale are rejected so a stored row validates the same way
// after the database rounds it.
func (s NAVStatement) Validate() error {
	if err := requireID(s.ID); err != nil {
		return err
	}
	if err := nonNegative("nav per unit", s.NAVPerUnit); err != nil {
		return err
	}
	if err := nonNegative("total units", s.TotalUnits); err != nil {
		return err
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"nav per unit", s.NAVPerUnit},
		{"total units", s.TotalUnits},
		{"total nav", s.TotalNAV},
	} {
		if err := withinScale(f.name, f.value, NAVScale); err != nil {
			return err
		}
	}
	if !s.TotalNAV.Equal(TotalNAVFor(s.NAVPerUnit, s.TotalUnits)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "total nav must equal nav per unit times total units")
	}
	return nil
}
