package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fundportal/internal/aggregate"
	"fundportal/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleView() models.InvestorView {
	inv := models.Investor{Name: "Acme Family Office | Trust", Email: "acme@example.com", Status: models.InvestorActive}
	inv.ID = "INV-1"
	inv.Commitment = models.CapitalCommitment{
		Total: amt("20000000"), Currency: "INR", UnitClass: "Class A",
		Units: amt("200000"), UnitPrice: amt("100"),
	}

	c := models.CapitalContribution{Date: day("2024-01-15"), Amount: amt("7300000"), Method: "Wire"}
	c.ID = "CC-1"
	f := models.FeeCharge{Date: day("2024-03-31"), Type: "Management", Amount: amt("100000"), Status: models.FeePaid}
	f.ID = "FEE-1"
	navLate := models.NAVStatement{Period: "Q2 2024", Date: day("2024-06-30"), NAVPerUnit: amt("118.75"), TotalUnits: amt("73000"), TotalNAV: amt("8668750")}
	navLate.ID = "NAV-2"
	navEarly := models.NAVStatement{Period: "Q1 2024", Date: day("2024-03-31"), NAVPerUnit: amt("105"), TotalUnits: amt("73000"), TotalNAV: amt("7665000")}
	navEarly.ID = "NAV-1"
	notice := models.DrawdownNotice{IssueDate: day("2024-05-01"), DueDate: day("2024-05-31"), Amount: amt("2000000"), Status: models.NoticePending, Purpose: "Series B"}
	notice.ID = "DD-1"

	return models.InvestorView{
		Investor:        inv,
		Contributions:   []models.CapitalContribution{c},
		Fees:            []models.FeeCharge{f},
		NAVStatements:   []models.NAVStatement{navLate, navEarly},
		DrawdownNotices: []models.DrawdownNotice{notice},
	}
}

func summaryOf(t *testing.T, view models.InvestorView) aggregate.DashboardSummary {
	t.Helper()
	schedule, err := aggregate.DefaultFeeSchedule(amt("50000000"), amt("100000000"))
	if err != nil {
		t.Fatalf("fee schedule: %v", err)
	}
	return aggregate.Summarize(view, schedule)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		contains string
	}{
		{"rupees", "20000000", "INR", "20,000,000.00"},
		{"dollars with cents", "1234.5", "USD", "1,234.50"},
		{"rounds to minor unit", "10.005", "USD", "10.01"},
		{"unknown currency", "12.5", "ZZZ", "12.50 ZZZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAmount(amt(tt.amount), tt.currency)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatAmount(%s, %s) = %q, want it to contain %q", tt.amount, tt.currency, got, tt.contains)
			}
		})
	}
}

func TestFormatUndefined(t *testing.T) {
	if got := FormatPercent(decimal.NullDecimal{}); got != "n/a" {
		t.Errorf("FormatPercent(undefined) = %q, want n/a", got)
	}
	if got := FormatNullAmount(decimal.NullDecimal{}, "INR"); got != "n/a" {
		t.Errorf("FormatNullAmount(undefined) = %q, want n/a", got)
	}
	pct := decimal.NullDecimal{Decimal: amt("36.5"), Valid: true}
	if got := FormatPercent(pct); got != "36.50%" {
		t.Errorf("FormatPercent(36.5) = %q, want 36.50%%", got)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	view := sampleView()
	md := SummaryMarkdown(view, summaryOf(t, view))

	for _, want := range []string{
		`# Acme Family Office \| Trust`,
		"| Total commitment | ₹20,000,000.00 |",
		"| Contribution | 36.50% |",
		"| Performance since inception | 18.75% |",
		"fee tier Class A",
		"## Overdue drawdown notices",
		"DD-1",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("summary missing %q\n%s", want, md)
		}
	}

	// NAV history is chronological regardless of input order.
	if strings.Index(md, "Q1 2024") > strings.Index(md, "Q2 2024") {
		t.Error("NAV history not in date order")
	}
}

func TestSummaryMarkdown_empty_history(t *testing.T) {
	view := sampleView()
	view.NAVStatements = nil
	view.DrawdownNotices = nil
	md := SummaryMarkdown(view, summaryOf(t, view))

	if strings.Contains(md, "## NAV history") {
		t.Error("empty history should not render a NAV table")
	}
	if !strings.Contains(md, "| Current NAV | n/a |") {
		t.Errorf("undefined NAV should render as n/a\n%s", md)
	}
}

func TestWriteStatement(t *testing.T) {
	view := sampleView()
	var buf bytes.Buffer
	if err := WriteStatement(&buf, view, summaryOf(t, view)); err != nil {
		t.Fatalf("WriteStatement: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetContributions, SheetFees, SheetDistributions, SheetNAV, SheetNotices}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	t.Run("summary", func(t *testing.T) {
		v, _ := f.GetCellValue(SheetSummary, "B2")
		if v != "Acme Family Office | Trust" {
			t.Errorf("investor name = %q", v)
		}
	})

	t.Run("contributions", func(t *testing.T) {
		rows, err := f.GetRows(SheetContributions)
		if err != nil {
			t.Fatalf("GetRows: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows = %d, want header plus 1", len(rows))
		}
		if rows[1][0] != "CC-1" || rows[1][2] != "7300000" {
			t.Errorf("contribution row = %v", rows[1])
		}
	})

	t.Run("nav is chronological", func(t *testing.T) {
		first, _ := f.GetCellValue(SheetNAV, "A2")
		if first != "Q1 2024" {
			t.Errorf("first NAV period = %q, want Q1 2024", first)
		}
	})

	t.Run("empty sheet keeps header", func(t *testing.T) {
		rows, _ := f.GetRows(SheetDistributions)
		if len(rows) != 1 || rows[0][0] != "ID" {
			t.Errorf("distributions rows = %v", rows)
		}
	})
}
