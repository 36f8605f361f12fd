package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"fundportal/internal/aggregate"
	"fundportal/internal/models"
	"fundportal/internal/store"
	"fundportal/internal/testutil"
)

// fakeMirror is an in-memory store.Mirror.
type fakeMirror struct {
	mu      sync.Mutex
	entries map[string]bool
	snaps   map[string]store.Snapshot
	loads   int
	hits    int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{entries: map[string]bool{}, snaps: map[string]store.Snapshot{}}
}

func (m *fakeMirror) Save(_ context.Context, investorID string, snap store.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[investorID] = true
	m.snaps[investorID] = snap
	return nil
}

func (m *fakeMirror) Load(_ context.Context, investorID string) (store.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	snap, ok := m.snaps[investorID]
	if ok {
		m.hits++
	}
	return snap, ok, nil
}

func (m *fakeMirror) Invalidate(_ context.Context, investorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, investorID)
	delete(m.snaps, investorID)
	return nil
}

func testSchedule(t *testing.T) aggregate.FeeSchedule {
	t.Helper()
	schedule, err := aggregate.DefaultFeeSchedule(decimal.NewFromInt(50_000_000), decimal.NewFromInt(100_000_000))
	testutil.AssertNoError(t, err)
	return schedule
}

func TestDashboard_GetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	_, investor := testutil.SeedSampleFund(t, db)
	svc := NewDashboardService(db, nil, testSchedule(t))

	summary, err := svc.GetSummary(context.Background(), investor.ID)
	testutil.AssertNoError(t, err)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"total_contributed", summary.TotalContributed, "7300000"},
		{"remaining", summary.RemainingCommitment, "12700000"},
		{"contribution_pct", summary.ContributionPercentage.Decimal, "36.5"},
		{"total_fees", summary.TotalFees, "450000"},
		{"performance", summary.Performance.Decimal, "18.75"},
		{"current_nav", summary.CurrentNAV.Decimal, "23750000"},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if !c.got.Equal(testutil.Amount(t, c.want)) {
				t.Errorf("expected %s, got %s", c.want, c.got)
			}
		})
	}

	if summary.FeeTier.Class != "Class A" {
		t.Errorf("expected Class A, got %s", summary.FeeTier.Class)
	}
	if summary.Investments.Count != 5 {
		t.Errorf("expected 5 investments, got %d", summary.Investments.Count)
	}
	if summary.DocumentCount != 6 {
		t.Errorf("expected 6 visible documents, got %d", summary.DocumentCount)
	}
	if summary.PendingNotices != 1 {
		t.Errorf("expected 1 pending notice, got %d", summary.PendingNotices)
	}
}

func TestDashboard_GetView(t *testing.T) {
	t.Run("hides_side_letters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		investor := testutil.CreateTestInvestor(t, db, nil)
		testutil.CreateTestDocument(t, db, investor.ID, models.CategorySideLetter, false)
		shown := testutil.CreateTestDocument(t, db, investor.ID, models.CategorySideLetter, true)
		ppm := testutil.CreateTestDocument(t, db, investor.ID, models.CategoryPPM, false)
		svc := NewDashboardService(db, nil, testSchedule(t))

		view, err := svc.GetView(context.Background(), investor.ID)
		testutil.AssertNoError(t, err)

		if len(view.Documents) != 2 {
			t.Fatalf("expected 2 visible documents, got %d", len(view.Documents))
		}
		ids := map[string]bool{}
		for _, d := range view.Documents {
			ids[d.ID] = true
		}
		if !ids[shown.ID] || !ids[ppm.ID] {
			t.Errorf("expected %s and %s, got %v", shown.ID, ppm.ID, ids)
		}
	})

	t.Run("scoped_to_investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		investor := testutil.CreateTestInvestor(t, db, nil)
		other := testutil.CreateTestInvestor(t, db, nil)
		testutil.CreateTestContribution(t, db, investor.ID, "100")
		testutil.CreateTestContribution(t, db, other.ID, "200")
		testutil.CreateTestFundInvestment(t, db, "100", "150")
		svc := NewDashboardService(db, nil, testSchedule(t))

		view, err := svc.GetView(context.Background(), investor.ID)
		testutil.AssertNoError(t, err)

		if len(view.Contributions) != 1 || view.Contributions[0].InvestorID != investor.ID {
			t.Errorf("expected only the investor's contribution, got %+v", view.Contributions)
		}
		if len(view.FundInvestments) != 1 {
			t.Errorf("expected fund-wide investments, got %d", len(view.FundInvestments))
		}
	})

	t.Run("unknown_investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDashboardService(db, nil, testSchedule(t))

		_, err := svc.GetView(context.Background(), "INV-MISSING")
		testutil.AssertAppError(t, err, "INVESTOR_NOT_FOUND")
	})

	t.Run("empty_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		investor := testutil.CreateTestInvestor(t, db, nil)
		svc := NewDashboardService(db, nil, testSchedule(t))

		summary, err := svc.GetSummary(context.Background(), investor.ID)
		testutil.AssertNoError(t, err)
		if summary.Performance.Valid || summary.CurrentNAV.Valid {
			t.Error("expected undefined performance and NAV without statements")
		}
		if !summary.TotalContributed.IsZero() {
			t.Errorf("expected zero contributed, got %s", summary.TotalContributed)
		}
	})
}

func TestDashboard_mirror(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	investor := testutil.CreateTestInvestor(t, db, nil)
	mirror := newFakeMirror()
	dashboard := NewDashboardService(db, mirror, testSchedule(t))
	contributions := NewContributionService(db, dashboard)
	ctx := context.Background()

	_, err := dashboard.GetSummary(ctx, investor.ID)
	testutil.AssertNoError(t, err)
	if !mirror.entries[investor.ID] {
		t.Fatal("expected view to be mirrored")
	}

	_, err = dashboard.GetSummary(ctx, investor.ID)
	testutil.AssertNoError(t, err)
	if mirror.hits != 1 {
		t.Errorf("expected second read to hit the mirror, got %d hits", mirror.hits)
	}

	_, err = contributions.Create(investor.ID, &models.CapitalContribution{
		Date:   testutil.Date(t, "2021-06-25"),
		Amount: testutil.Amount(t, "5000000"),
	})
	testutil.AssertNoError(t, err)
	if mirror.entries[investor.ID] {
		t.Fatal("expected write to invalidate the mirror")
	}

	summary, err := dashboard.GetSummary(ctx, investor.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimal(t, summary.TotalContributed, "5000000")
}

func TestDashboard_GetPendingNotices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	investor := testutil.CreateTestInvestor(t, db, nil)
	pending := testutil.CreateTestNotice(t, db, investor.ID, "100", models.Pending{})
	testutil.CreateTestNotice(t, db, investor.ID, "100", models.Sent{})
	svc := NewDashboardService(db, store.NopMirror{}, testSchedule(t))

	notices, err := svc.GetPendingNotices(context.Background(), investor.ID)
	testutil.AssertNoError(t, err)
	if len(notices) != 1 || notices[0].ID != pending.ID {
		t.Errorf("expected only %s, got %+v", pending.ID, notices)
	}
}

func TestDashboard_GetReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	_, investor := testutil.SeedSampleFund(t, db)
	mirror := newFakeMirror()
	dashboard := NewDashboardService(db, mirror, testSchedule(t))

	view, summary, err := dashboard.GetReport(context.Background(), investor.ID)
	testutil.AssertNoError(t, err)

	if mirror.loads != 1 {
		t.Errorf("expected one load for view and summary, got %d", mirror.loads)
	}
	if summary.InvestorID != view.Investor.ID {
		t.Errorf("summary for %s, view for %s", summary.InvestorID, view.Investor.ID)
	}
	testutil.AssertDecimal(t, summary.TotalContributed, aggregate.TotalContributed(view.Contributions).String())
	if summary.DocumentCount != len(view.Documents) {
		t.Errorf("expected %d documents, got %d", len(view.Documents), summary.DocumentCount)
	}
}

func TestDashboard_NAVAtStoredScale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	investor := testutil.CreateTestInvestor(t, db, nil)
	dashboard := NewDashboardService(db, nil, testSchedule(t))
	navs := NewNAVService(db, dashboard)

	perUnit := testutil.Amount(t, "4100.1234")
	units := testutil.Amount(t, "3.3333")
	statement := func(total decimal.Decimal) *models.NAVStatement {
		return &models.NAVStatement{
			Period: "Q1 2024", Date: testutil.Date(t, "2024-03-31"),
			NAVPerUnit: perUnit, TotalUnits: units, TotalNAV: total,
		}
	}

	_, err := navs.Create(investor.ID, statement(perUnit.Mul(units)))
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = navs.Create(investor.ID, statement(models.TotalNAVFor(perUnit, units)))
	testutil.AssertNoError(t, err)

	summary, err := dashboard.GetSummary(context.Background(), investor.ID)
	testutil.AssertNoError(t, err)
	if !summary.CurrentNAV.Valid {
		t.Fatal("expected a current NAV")
	}
	testutil.AssertDecimal(t, summary.CurrentNAV.Decimal, "13666.9413")
}
