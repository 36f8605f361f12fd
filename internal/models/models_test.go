package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := apperrors.CodeOf(err); got != code {
		t.Fatalf("expected error code %q, got %q (%v)", code, got, err)
	}
}

func TestDrawdownNotice_Transition(t *testing.T) {
	paidOn := time.Date(2021, 6, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from NoticeState
		to   NoticeState
		ok   bool
	}{
		{"draft to sent", Draft{}, Sent{}, true},
		{"sent to paid", Sent{}, Paid{On: paidOn}, true},
		{"sent to pending", Sent{}, Pending{}, true},
		{"pending to paid", Pending{}, Paid{On: paidOn}, true},
		{"draft to paid", Draft{}, Paid{On: paidOn}, false},
		{"paid to pending", Paid{On: paidOn}, Pending{}, false},
		{"sent to draft", Sent{}, Draft{}, false},
		{"pending to sent", Pending{}, Sent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := DrawdownNotice{Base: Base{ID: "DD-1"}}
			n.SetState(tt.from)

			err := n.Transition(tt.to)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if n.Status != tt.to.Status() {
					t.Errorf("expected status %s, got %s", tt.to.Status(), n.Status)
				}
				return
			}
			assertCode(t, err, "INVALID_NOTICE_TRANSITION")
			if n.Status != tt.from.Status() {
				t.Errorf("status changed on rejected transition: %s", n.Status)
			}
		})
	}
}

func TestDrawdownNotice_StateCarriesPaymentDate(t *testing.T) {
	paidOn := time.Date(2021, 9, 28, 0, 0, 0, 0, time.UTC)
	n := DrawdownNotice{Base: Base{ID: "DD-2"}}
	n.SetState(Sent{})
	if n.PaymentDate != nil {
		t.Fatal("sent notice must not carry a payment date")
	}

	if err := n.Transition(Paid{On: paidOn}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paid, ok := n.State().(Paid)
	if !ok {
		t.Fatalf("expected Paid state, got %T", n.State())
	}
	if !paid.On.Equal(paidOn) {
		t.Errorf("expected payment date %s, got %s", paidOn, paid.On)
	}
}

func TestDrawdownNotice_Validate(t *testing.T) {
	issue := time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC)
	due := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)
	valid := func() DrawdownNotice {
		return DrawdownNotice{Base: Base{ID: "DD-3"}, IssueDate: issue, DueDate: due, Amount: d("2000000"), Status: NoticePending}
	}

	t.Run("valid", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("paid without date", func(t *testing.T) {
		n := valid()
		n.Status = NoticePaid
		assertCode(t, n.Validate(), "INVALID_INPUT")
	})

	t.Run("payment date on pending notice", func(t *testing.T) {
		n := valid()
		n.PaymentDate = &due
		assertCode(t, n.Validate(), "INVALID_INPUT")
	})

	t.Run("negative amount", func(t *testing.T) {
		n := valid()
		n.Amount = d("-1")
		assertCode(t, n.Validate(), "INVALID_AMOUNT")
	})

	t.Run("due before issue", func(t *testing.T) {
		n := valid()
		n.DueDate = issue.AddDate(0, 0, -1)
		assertCode(t, n.Validate(), "INVALID_INPUT")
	})
}

func TestDrawdownNotice_IsOverdue(t *testing.T) {
	due := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)
	n := DrawdownNotice{DueDate: due, Status: NoticeSent}

	if n.IsOverdue(due) {
		t.Error("notice is not overdue on its due date")
	}
	if !n.IsOverdue(due.Add(24 * time.Hour)) {
		t.Error("expected overdue after due date")
	}
	n.Status = NoticeDraft
	if n.IsOverdue(due.Add(24 * time.Hour)) {
		t.Error("draft notices are never overdue")
	}
}

func TestRecordValidation(t *testing.T) {
	t.Run("contribution must be positive", func(t *testing.T) {
		c := CapitalContribution{Base: Base{ID: "CC-1"}, Amount: d("0")}
		assertCode(t, c.Validate(), "INVALID_AMOUNT")
		c.Amount = d("5000000")
		if err := c.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("contribution requires id", func(t *testing.T) {
		c := CapitalContribution{Amount: d("1")}
		assertCode(t, c.Validate(), "INVALID_INPUT")
	})

	t.Run("fee rejects negative amount", func(t *testing.T) {
		f := FeeCharge{Base: Base{ID: "FEE-1"}, Amount: d("-100"), Status: FeePaid}
		assertCode(t, f.Validate(), "INVALID_AMOUNT")
	})

	t.Run("fee rejects unknown status", func(t *testing.T) {
		f := FeeCharge{Base: Base{ID: "FEE-1"}, Amount: d("100"), Status: "Waived"}
		assertCode(t, f.Validate(), "INVALID_INPUT")
	})

	t.Run("distribution allows zero", func(t *testing.T) {
		dist := Distribution{Base: Base{ID: "DIST-1"}, Amount: decimal.Zero}
		if err := dist.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("nav total must match units", func(t *testing.T) {
		s := NAVStatement{Base: Base{ID: "NAV-1"}, NAVPerUnit: d("4100"), TotalUnits: d("5000"), TotalNAV: d("20500000")}
		if err := s.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s.TotalNAV = d("20500001")
		assertCode(t, s.Validate(), "INVALID_INPUT")
	})

	t.Run("nav figures are held at four decimal places", func(t *testing.T) {
		s := NAVStatement{Base: Base{ID: "NAV-1"}, NAVPerUnit: d("4100.1234"), TotalUnits: d("3.3333")}

		s.TotalNAV = s.NAVPerUnit.Mul(s.TotalUnits) // 13666.94132922
		assertCode(t, s.Validate(), "INVALID_INPUT")

		s.TotalNAV = d("13666.9413")
		if err := s.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !TotalNAVFor(s.NAVPerUnit, s.TotalUnits).Equal(s.TotalNAV) {
			t.Errorf("TotalNAVFor = %s, want %s", TotalNAVFor(s.NAVPerUnit, s.TotalUnits), s.TotalNAV)
		}

		s.NAVPerUnit = d("4100.12345")
		assertCode(t, s.Validate(), "INVALID_INPUT")
	})

	t.Run("trailing zeros beyond the scale are accepted", func(t *testing.T) {
		s := NAVStatement{Base: Base{ID: "NAV-1"}, NAVPerUnit: d("4100.000000"), TotalUnits: d("5000"), TotalNAV: d("20500000.00000")}
		if err := s.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("document requires title and category", func(t *testing.T) {
		doc := Document{Base: Base{ID: "DOC-1"}, Category: CategoryPPM}
		assertCode(t, doc.Validate(), "INVALID_INPUT")
		doc.Title = "Private Placement Memorandum"
		if err := doc.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("investor status", func(t *testing.T) {
		inv := Investor{Base: Base{ID: "INV-1"}, Name: "Trust", Email: "a@b.c", Status: "Dormant"}
		assertCode(t, inv.Validate(), "INVALID_INPUT")
		inv.Status = InvestorActive
		if err := inv.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCapitalCommitment_IsBalanced(t *testing.T) {
	c := CapitalCommitment{Total: d("20000000"), Units: d("5000"), UnitPrice: d("4000")}
	if !c.IsBalanced() {
		t.Error("expected balanced commitment")
	}
	c.Total = d("20000001")
	if c.IsBalanced() {
		t.Error("expected unbalanced commitment")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("unbalanced commitments are informational only: %v", err)
	}
}

func TestFundInvestment_ExpectedPerformance(t *testing.T) {
	f := FundInvestment{InitialAmount: d("10000000"), CurrentValue: d("12500000")}
	pct, ok := f.ExpectedPerformance()
	if !ok || !pct.Equal(d("25")) {
		t.Errorf("expected 25%%, got %s (ok=%v)", pct, ok)
	}

	f.InitialAmount = decimal.Zero
	if _, ok := f.ExpectedPerformance(); ok {
		t.Error("expected undefined performance for zero initial amount")
	}
}

func TestCoInvestment_Validate(t *testing.T) {
	valid := func() CoInvestment {
		return CoInvestment{
			Base: Base{ID: "COINV-1"}, Name: "TechFront Solutions",
			Amount: d("5000000"), Status: CoInvestmentActive,
			Documents: []CoInvestmentDocument{{Title: "Term Sheet"}},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CoInvestment)
		code   string
	}{
		{"missing name", func(c *CoInvestment) { c.Name = " " }, "INVALID_INPUT"},
		{"zero amount", func(c *CoInvestment) { c.Amount = decimal.Zero }, "INVALID_AMOUNT"},
		{"unknown status", func(c *CoInvestment) { c.Status = "Pending" }, "INVALID_INPUT"},
		{"untitled document", func(c *CoInvestment) { c.Documents = append(c.Documents, CoInvestmentDocument{URL: "x"}) }, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assertCode(t, c.Validate(), tt.code)
		})
	}
}

func TestNewFundInformation(t *testing.T) {
	day := func(s string) time.Time {
		v, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	t.Run("derives the term ends", func(t *testing.T) {
		info, err := NewFundInformation(day("2021-03-15"), []time.Time{day("2021-06-15"), day("2021-09-15")}, nil, 3, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !info.CommitmentPeriodEnd.Equal(day("2024-03-15")) {
			t.Errorf("commitment period end = %s", info.CommitmentPeriodEnd)
		}
		if !info.FundLifeEnd.Equal(day("2028-03-15")) {
			t.Errorf("fund life end = %s", info.FundLifeEnd)
		}
		if info.FinalCloseDate != nil {
			t.Error("expected no final close")
		}
		if !info.InCommitmentPeriod(day("2023-12-31")) || info.InCommitmentPeriod(day("2024-03-15")) {
			t.Error("commitment period should end on 2024-03-15")
		}
	})

	t.Run("no subsequent closings", func(t *testing.T) {
		info, err := NewFundInformation(day("2021-03-15"), nil, nil, 3, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.SubsequentClosingDates == nil {
			t.Error("expected an empty list, not nil")
		}
	})

	final := day("2021-05-01")
	tests := []struct {
		name       string
		first      time.Time
		subsequent []time.Time
		final      *time.Time
		commit     int
		life       int
	}{
		{"missing first close", time.Time{}, nil, nil, 3, 7},
		{"closing before first close", day("2021-03-15"), []time.Time{day("2021-01-01")}, nil, 3, 7},
		{"closings out of order", day("2021-03-15"), []time.Time{day("2021-09-15"), day("2021-06-15")}, nil, 3, 7},
		{"final close before a closing", day("2021-03-15"), []time.Time{day("2021-06-15")}, &final, 3, 7},
		{"zero commitment period", day("2021-03-15"), nil, nil, 0, 7},
		{"life shorter than commitment", day("2021-03-15"), nil, nil, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFundInformation(tt.first, tt.subsequent, tt.final, tt.commit, tt.life)
			assertCode(t, err, "INVALID_INPUT")
		})
	}
}
