// Package aggregate derives the dashboard figures of an investor from their
// record collections. Every function is pure: inputs are never mutated and
// no I/O is performed.
//
// Percentages that cannot be computed (a zero denominator, an empty NAV
// history) are returned as an invalid decimal.NullDecimal, which encodes to
// JSON null.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"fundportal/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Undefined is the sentinel for a percentage that has no meaningful value.
var Undefined = decimal.NullDecimal{}

func defined(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// TotalContributed sums the contribution amounts. It is zero for an empty list.
func TotalContributed(contributions []models.CapitalContribution) decimal.Decimal {
	total := decimal.Zero
	for _, c := range contributions {
		total = total.Add(c.Amount)
	}
	return total
}

// RemainingCommitment is the commitment total minus everything contributed.
// The result is negative when contributions exceed the commitment.
func RemainingCommitment(commitment models.CapitalCommitment, contributions []models.CapitalContribution) decimal.Decimal {
	return commitment.Total.Sub(TotalContributed(contributions))
}

// TotalFees sums every fee charge, Paid and Pending alike.
func TotalFees(fees []models.FeeCharge) decimal.Decimal {
	total := decimal.Zero
	for _, f := range fees {
		total = total.Add(f.Amount)
	}
	return total
}

// TotalDistributed sums the distribution amounts.
func TotalDistributed(distributions []models.Distribution) decimal.Decimal {
	total := decimal.Zero
	for _, d := range distributions {
		total = total.Add(d.Amount)
	}
	return total
}

// ContributionPercentage is the share of the commitment paid in, as a
// percentage. It is Undefined when the commitment total is zero.
func ContributionPercentage(commitment models.CapitalCommitment, contributions []models.CapitalContribution) decimal.NullDecimal {
	if commitment.Total.IsZero() {
		return Undefined
	}
	return defined(TotalContributed(contributions).Div(commitment.Total).Mul(hundred))
}

// Chronological returns a copy of the statements ordered by date. Statements
// sharing a date keep their relative order.
func Chronological(statements []models.NAVStatement) []models.NAVStatement {
	sorted := make([]models.NAVStatement, len(statements))
	copy(sorted, statements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// LatestNAV returns the most recent statement. ok is false for an empty history.
func LatestNAV(statements []models.NAVStatement) (latest models.NAVStatement, ok bool) {
	if len(statements) == 0 {
		return models.NAVStatement{}, false
	}
	sorted := Chronological(statements)
	return sorted[len(sorted)-1], true
}

// PerformanceSinceInception is (latest NAV per unit / baseline - 1) * 100.
// It is Undefined for an empty history or a zero baseline.
func PerformanceSinceInception(statements []models.NAVStatement, baseline decimal.Decimal) decimal.NullDecimal {
	latest, ok := LatestNAV(statements)
	if !ok || baseline.IsZero() {
		return Undefined
	}
	return defined(latest.NAVPerUnit.Div(baseline).Sub(decimal.NewFromInt(1)).Mul(hundred))
}

// InvestmentSummary rolls up the fund's active portfolio.
type InvestmentSummary struct {
	Count        int                 `json:"count"`
	TotalInitial decimal.Decimal     `json:"total_initial"`
	TotalCurrent decimal.Decimal     `json:"total_current"`
	Performance  decimal.NullDecimal `json:"performance"`
}

// ActiveInvestmentSummary aggregates the investments whose status is Active.
// Performance is Undefined when nothing has been invested.
func ActiveInvestmentSummary(investments []models.FundInvestment) InvestmentSummary {
	s := InvestmentSummary{TotalInitial: decimal.Zero, TotalCurrent: decimal.Zero}
	for _, inv := range investments {
		if inv.Status != models.FundInvestmentActive {
			continue
		}
		s.Count++
		s.TotalInitial = s.TotalInitial.Add(inv.InitialAmount)
		s.TotalCurrent = s.TotalCurrent.Add(inv.CurrentValue)
	}
	if s.TotalInitial.IsZero() {
		s.Performance = Undefined
		return s
	}
	s.Performance = defined(s.TotalCurrent.Div(s.TotalInitial).Sub(decimal.NewFromInt(1)).Mul(hundred))
	return s
}

// VisibleDocuments drops side letters unless the copy belongs to investorID
// and is flagged for display. Other categories pass through in order.
func VisibleDocuments(documents []models.Document, investorID string) []models.Document {
	visible := make([]models.Document, 0, len(documents))
	for _, doc := range documents {
		if doc.IsSideLetter() && !(doc.InvestorID == investorID && doc.ShowToCurrentInvestor) {
			continue
		}
		visible = append(visible, doc)
	}
	return visible
}

// PendingDrawdownNotices returns the notices awaiting payment past their due date.
func PendingDrawdownNotices(notices []models.DrawdownNotice) []models.DrawdownNotice {
	pending := make([]models.DrawdownNotice, 0)
	for _, n := range notices {
		if n.Status == models.NoticePending {
			pending = append(pending, n)
		}
	}
	return pending
}
