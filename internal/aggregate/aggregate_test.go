package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fundportal/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func contribution(id, amount string) models.CapitalContribution {
	return models.CapitalContribution{Base: models.Base{ID: id}, Amount: d(amount)}
}

func navAt(perUnit string, on string) models.NAVStatement {
	t, _ := time.Parse("2006-01-02", on)
	return models.NAVStatement{Date: t, NAVPerUnit: d(perUnit), TotalUnits: d("5000"), TotalNAV: d(perUnit).Mul(d("5000"))}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func assertDefined(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	if !got.Valid {
		t.Fatalf("expected %s, got undefined", want)
	}
	assertDecimal(t, want, got.Decimal)
}

func assertUndefined(t *testing.T, got decimal.NullDecimal) {
	t.Helper()
	if got.Valid {
		t.Errorf("expected undefined, got %s", got.Decimal)
	}
}

func TestCommitmentFigures(t *testing.T) {
	commitment := models.CapitalCommitment{Total: d("20000000")}
	contributions := []models.CapitalContribution{
		contribution("CC-2021-001", "5000000"),
		contribution("CC-2021-002", "2300000"),
	}

	assertDecimal(t, "7300000", TotalContributed(contributions))
	assertDecimal(t, "12700000", RemainingCommitment(commitment, contributions))
	assertDefined(t, "36.5", ContributionPercentage(commitment, contributions))
}

func TestTotalContributed(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assertDecimal(t, "0", TotalContributed(nil))
	})

	t.Run("order_independent", func(t *testing.T) {
		a := []models.CapitalContribution{
			contribution("a", "1.10"), contribution("b", "250000"), contribution("c", "0.01"),
		}
		b := []models.CapitalContribution{a[2], a[0], a[1]}
		if !TotalContributed(a).Equal(TotalContributed(b)) {
			t.Errorf("expected reorder to keep total, got %s and %s", TotalContributed(a), TotalContributed(b))
		}
		assertDecimal(t, "250001.11", TotalContributed(a))
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		in := []models.CapitalContribution{contribution("a", "10")}
		TotalContributed(in)
		assertDecimal(t, "10", in[0].Amount)
	})
}

func TestRemainingCommitment(t *testing.T) {
	t.Run("no_contributions", func(t *testing.T) {
		c := models.CapitalCommitment{Total: d("20000000")}
		assertDecimal(t, "20000000", RemainingCommitment(c, nil))
	})

	t.Run("over_contributed_is_negative", func(t *testing.T) {
		c := models.CapitalCommitment{Total: d("100")}
		got := RemainingCommitment(c, []models.CapitalContribution{contribution("a", "150")})
		assertDecimal(t, "-50", got)
	})
}

func TestContributionPercentage(t *testing.T) {
	t.Run("zero_commitment", func(t *testing.T) {
		c := models.CapitalCommitment{Total: decimal.Zero}
		assertUndefined(t, ContributionPercentage(c, []models.CapitalContribution{contribution("a", "5")}))
	})

	t.Run("non_decreasing", func(t *testing.T) {
		c := models.CapitalCommitment{Total: d("20000000")}
		var contributions []models.CapitalContribution
		prev := decimal.Zero
		for i, amount := range []string{"5000000", "0.5", "2300000", "17000000"} {
			contributions = append(contributions, contribution(string(rune('a'+i)), amount))
			got := ContributionPercentage(c, contributions)
			if !got.Valid || got.Decimal.LessThan(prev) {
				t.Fatalf("percentage decreased after adding %s: %s < %s", amount, got.Decimal, prev)
			}
			prev = got.Decimal
		}
	})
}

func TestTotalFees(t *testing.T) {
	t.Run("all_paid", func(t *testing.T) {
		fees := []models.FeeCharge{
			{Amount: d("100000"), Status: models.FeePaid},
			{Amount: d("100000"), Status: models.FeePaid},
			{Amount: d("125000"), Status: models.FeePaid},
			{Amount: d("125000"), Status: models.FeePaid},
		}
		assertDecimal(t, "450000", TotalFees(fees))
	})

	t.Run("pending_counts", func(t *testing.T) {
		fees := []models.FeeCharge{
			{Amount: d("100000"), Status: models.FeePaid},
			{Amount: d("350000"), Status: models.FeePending},
		}
		assertDecimal(t, "450000", TotalFees(fees))
	})
}

func TestTotalDistributed(t *testing.T) {
	assertDecimal(t, "0", TotalDistributed([]models.Distribution{}))
	assertDecimal(t, "300", TotalDistributed([]models.Distribution{{Amount: d("100")}, {Amount: d("200")}}))
}

func TestPerformanceSinceInception(t *testing.T) {
	baseline := d("4000")

	t.Run("quarterly_history", func(t *testing.T) {
		navs := []models.NAVStatement{
			navAt("4100", "2021-06-30"),
			navAt("4230", "2021-09-30"),
			navAt("4410", "2021-12-31"),
			navAt("4620", "2022-03-31"),
			navAt("4750", "2022-06-30"),
		}
		assertDefined(t, "18.75", PerformanceSinceInception(navs, baseline))
	})

	t.Run("unordered_input_uses_latest_date", func(t *testing.T) {
		navs := []models.NAVStatement{
			navAt("4750", "2022-06-30"),
			navAt("4100", "2021-06-30"),
			navAt("4410", "2021-12-31"),
		}
		assertDefined(t, "18.75", PerformanceSinceInception(navs, baseline))
		if navs[0].NAVPerUnit.String() != "4750" {
			t.Error("input order was modified")
		}
	})

	t.Run("empty_history", func(t *testing.T) {
		assertUndefined(t, PerformanceSinceInception(nil, baseline))
	})

	t.Run("zero_baseline", func(t *testing.T) {
		assertUndefined(t, PerformanceSinceInception([]models.NAVStatement{navAt("4100", "2021-06-30")}, decimal.Zero))
	})

	t.Run("below_baseline", func(t *testing.T) {
		assertDefined(t, "-5", PerformanceSinceInception([]models.NAVStatement{navAt("3800", "2021-06-30")}, baseline))
	})
}

func TestLatestNAV(t *testing.T) {
	if _, ok := LatestNAV(nil); ok {
		t.Error("expected no latest statement for empty history")
	}

	sameDay := navAt("4100", "2021-06-30")
	restated := navAt("4120", "2021-06-30")
	latest, ok := LatestNAV([]models.NAVStatement{sameDay, restated})
	if !ok {
		t.Fatal("expected a latest statement")
	}
	assertDecimal(t, "4120", latest.NAVPerUnit)
}

func TestActiveInvestmentSummary(t *testing.T) {
	t.Run("active_only", func(t *testing.T) {
		investments := []models.FundInvestment{
			{Name: "Incred Holdings", InitialAmount: d("10000000"), CurrentValue: d("12000000"), Status: models.FundInvestmentActive},
			{Name: "Customer Capital", InitialAmount: d("30000000"), CurrentValue: d("33000000"), Status: models.FundInvestmentActive},
			{Name: "Exited Co", InitialAmount: d("5000000"), CurrentValue: d("1"), Status: models.FundInvestmentExited},
		}
		s := ActiveInvestmentSummary(investments)
		if s.Count != 2 {
			t.Errorf("expected 2 active investments, got %d", s.Count)
		}
		assertDecimal(t, "40000000", s.TotalInitial)
		assertDecimal(t, "45000000", s.TotalCurrent)
		assertDefined(t, "12.5", s.Performance)
	})

	t.Run("none_active", func(t *testing.T) {
		s := ActiveInvestmentSummary([]models.FundInvestment{{Status: models.FundInvestmentExited, InitialAmount: d("1")}})
		if s.Count != 0 {
			t.Errorf("expected 0 active investments, got %d", s.Count)
		}
		assertDecimal(t, "0", s.TotalInitial)
		assertUndefined(t, s.Performance)
	})
}

func TestVisibleDocuments(t *testing.T) {
	const investorID = "INV-20210515-001"
	doc := func(id, category, owner string, show bool) models.Document {
		return models.Document{
			Base:                  models.Base{ID: id},
			InvestorScope:         models.InvestorScope{InvestorID: owner},
			Title:                 id,
			Category:              category,
			ShowToCurrentInvestor: show,
		}
	}

	docs := []models.Document{
		doc("DOC-PPM", models.CategoryPPM, investorID, false),
		doc("DOC-SL", models.CategorySideLetter, investorID, true),
		doc("DOC-SL-HIDDEN", models.CategorySideLetter, investorID, false),
		doc("DOC-SL-OTHER", models.CategorySideLetter, "INV-OTHER", true),
		doc("DOC-MEMO", "Board Memo", investorID, false),
	}

	got := VisibleDocuments(docs, investorID)
	var ids []string
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	want := []string{"DOC-PPM", "DOC-SL", "DOC-MEMO"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
			break
		}
	}
}

func TestPendingDrawdownNotices(t *testing.T) {
	paid := time.Date(2021, 6, 25, 0, 0, 0, 0, time.UTC)
	notices := []models.DrawdownNotice{
		{Base: models.Base{ID: "DD-2021-001"}, Status: models.NoticePaid, PaymentDate: &paid},
		{Base: models.Base{ID: "DD-2023-001"}, Status: models.NoticePending},
		{Base: models.Base{ID: "DD-2023-002"}, Status: models.NoticeSent},
	}
	got := PendingDrawdownNotices(notices)
	if len(got) != 1 || got[0].ID != "DD-2023-001" {
		t.Errorf("expected only DD-2023-001, got %+v", got)
	}
	if len(PendingDrawdownNotices(nil)) != 0 {
		t.Error("expected no pending notices for empty input")
	}
}
