package aggregate_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"fundportal/internal/aggregate"
	"fundportal/internal/models"
	"fundportal/internal/seed"
)

func TestSummarize_SampleFund(t *testing.T) {
	view, err := seed.Store().ScopeToInvestor(seed.InvestorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	schedule, err := aggregate.DefaultFeeSchedule(decimal.NewFromInt(50_000_000), decimal.NewFromInt(100_000_000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := aggregate.Summarize(*view, schedule)

	checks := []struct {
		name string
		want string
		got  decimal.Decimal
	}{
		{"total_commitment", "20000000", s.TotalCommitment},
		{"total_contributed", "7300000", s.TotalContributed},
		{"remaining_commitment", "12700000", s.RemainingCommitment},
		{"total_fees", "450000", s.TotalFees},
		{"total_distributed", "0", s.TotalDistributed},
		{"contribution_percentage", "36.5", s.ContributionPercentage.Decimal},
		{"performance", "18.75", s.Performance.Decimal},
		{"current_nav", "23750000", s.CurrentNAV.Decimal},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}

	if s.FeeTier.Class != "Class A" {
		t.Errorf("expected Class A, got %s", s.FeeTier.Class)
	}
	if s.Investments.Count != 5 {
		t.Errorf("expected 5 investments, got %d", s.Investments.Count)
	}
	if s.DocumentCount != 6 {
		t.Errorf("expected 6 visible documents, got %d", s.DocumentCount)
	}
	if s.PendingNotices != 1 {
		t.Errorf("expected 1 pending notice, got %d", s.PendingNotices)
	}
}

func TestSummarize_EmptyInvestor(t *testing.T) {
	view := models.InvestorView{Investor: models.Investor{Base: models.Base{ID: "INV-NEW"}}}
	s := aggregate.Summarize(view, aggregate.FeeSchedule{})

	if s.ContributionPercentage.Valid {
		t.Error("expected undefined contribution percentage for zero commitment")
	}
	if s.Performance.Valid {
		t.Error("expected undefined performance without NAV history")
	}
	if s.CurrentNAV.Valid {
		t.Error("expected undefined current NAV without NAV history")
	}
}
