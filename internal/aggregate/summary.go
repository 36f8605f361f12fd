package aggregate

import (
	"github.com/shopspring/decimal"

	"fundportal/internal/models"
)

// DashboardSummary is the headline block of the investor dashboard.
type DashboardSummary struct {
	InvestorID             string              `json:"investor_id"`
	InvestorName           string              `json:"investor_name"`
	Currency               string              `json:"currency"`
	UnitClass              string              `json:"unit_class"`
	TotalCommitment        decimal.Decimal     `json:"total_commitment"`
	TotalContributed       decimal.Decimal     `json:"total_contributed"`
	RemainingCommitment    decimal.Decimal     `json:"remaining_commitment"`
	ContributionPercentage decimal.NullDecimal `json:"contribution_percentage"`
	TotalFees              decimal.Decimal     `json:"total_fees"`
	TotalDistributed       decimal.Decimal     `json:"total_distributed"`
	CurrentNAV             decimal.NullDecimal `json:"current_nav"`
	CurrentNAVPerUnit      decimal.NullDecimal `json:"current_nav_per_unit"`
	Performance            decimal.NullDecimal `json:"performance_since_inception"`
	FeeTier                FeeTier             `json:"fee_tier"`
	ManagementFee          string              `json:"management_fee"`
	PerformanceFee         string              `json:"performance_fee"`
	Investments            InvestmentSummary   `json:"investments"`
	DocumentCount          int                 `json:"document_count"`
	PendingNotices         int                 `json:"pending_notices"`
}

// Summarize computes the dashboard figures for one investor's view. The
// performance baseline is the unit price of the investor's commitment.
func Summarize(view models.InvestorView, schedule FeeSchedule) DashboardSummary {
	commitment := view.Investor.Commitment
	tier := FeeTierFor(commitment.Total, schedule)

	s := DashboardSummary{
		InvestorID:             view.Investor.ID,
		InvestorName:           view.Investor.Name,
		Currency:               commitment.Currency,
		UnitClass:              commitment.UnitClass,
		TotalCommitment:        commitment.Total,
		TotalContributed:       TotalContributed(view.Contributions),
		RemainingCommitment:    RemainingCommitment(commitment, view.Contributions),
		ContributionPercentage: ContributionPercentage(commitment, view.Contributions),
		TotalFees:              TotalFees(view.Fees),
		TotalDistributed:       TotalDistributed(view.Distributions),
		Performance:            PerformanceSinceInception(view.NAVStatements, commitment.UnitPrice),
		FeeTier:                tier,
		ManagementFee:          tier.ManagementFee(),
		PerformanceFee:         tier.PerformanceFee(),
		Investments:            ActiveInvestmentSummary(view.FundInvestments),
		DocumentCount:          len(VisibleDocuments(view.Documents, view.Investor.ID)),
		PendingNotices:         len(PendingDrawdownNotices(view.DrawdownNotices)),
	}
	if latest, ok := LatestNAV(view.NAVStatements); ok {
		s.CurrentNAV = defined(latest.TotalNAV)
		s.CurrentNAVPerUnit = defined(latest.NAVPerUnit)
	}
	return s
}
