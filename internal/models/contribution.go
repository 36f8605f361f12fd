package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalContribution records money paid in by an investor, optionally in
// answer to a drawdown notice.
type CapitalContribution struct {
	Base
	InvestorScope
	Date       time.Time       `gorm:"not null" json:"date"`
	Amount     decimal.Decimal `gorm:"type:numeric(20,4);not null" json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference"`
	DrawdownID *string         `gorm:"type:varchar(64);index" json:"drawdown_id,omitempty"`
}

// Validate rejects contributions without a positive amount.
func (c CapitalContribution) Validate() error {
	if err := requireID(c.ID); err != nil {
		return err
	}
	return positive("contribution amount", c.Amount)
}
