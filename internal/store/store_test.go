package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := apperrors.CodeOf(err); got != code {
		t.Fatalf("expected error code %q, got %q (%v)", code, got, err)
	}
}

func fee(id, investorID, amount string) models.FeeCharge {
	return models.FeeCharge{
		Base:          models.Base{ID: id},
		InvestorScope: models.InvestorScope{InvestorID: investorID},
		Date:          time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC),
		Type:          "Management Fee",
		Amount:        decimal.RequireFromString(amount),
		Status:        models.FeePaid,
	}
}

func ids[T models.Record](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.GetID()
	}
	return out
}

func assertIDs(t *testing.T, want []string, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCollection_FindByID(t *testing.T) {
	c, err := NewCollection(fee("FEE-1", "INV-1", "100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("found", func(t *testing.T) {
		got, err := c.FindByID("FEE-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != "FEE-1" {
			t.Errorf("expected FEE-1, got %s", got.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := c.FindByID("FEE-404")
		assertCode(t, err, "RECORD_NOT_FOUND")
	})
}

func TestCollection_Create(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		c := &Collection[models.FeeCharge]{}
		if err := c.Create(fee("FEE-1", "INV-1", "100")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertCode(t, c.Create(fee("FEE-1", "INV-1", "200")), "DUPLICATE_IDENTIFIER")
		if c.Len() != 1 {
			t.Errorf("expected 1 record, got %d", c.Len())
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		c := &Collection[models.FeeCharge]{}
		assertCode(t, c.Create(fee("FEE-1", "INV-1", "-1")), "INVALID_AMOUNT")
		if c.Len() != 0 {
			t.Errorf("expected empty collection, got %d", c.Len())
		}
	})

	t.Run("constructor_rejects_duplicates", func(t *testing.T) {
		_, err := NewCollection(fee("FEE-1", "INV-1", "1"), fee("FEE-1", "INV-1", "2"))
		assertCode(t, err, "DUPLICATE_IDENTIFIER")
	})
}

func TestCollection_Upsert(t *testing.T) {
	c, _ := NewCollection(
		fee("FEE-1", "INV-1", "100"),
		fee("FEE-2", "INV-1", "200"),
		fee("FEE-3", "INV-1", "300"),
	)

	t.Run("replace_keeps_position", func(t *testing.T) {
		if err := c.Upsert(fee("FEE-2", "INV-1", "250")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertIDs(t, []string{"FEE-1", "FEE-2", "FEE-3"}, ids(c.All()))

		got, err := c.FindByID("FEE-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Amount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected replaced amount 250, got %s", got.Amount)
		}
	})

	t.Run("new_id_appends", func(t *testing.T) {
		if err := c.Upsert(fee("FEE-0", "INV-1", "1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertIDs(t, []string{"FEE-1", "FEE-2", "FEE-3", "FEE-0"}, ids(c.All()))
	})

	t.Run("round_trip", func(t *testing.T) {
		rec := fee("FEE-RT", "INV-9", "42.42")
		if err := c.Upsert(rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := c.FindByID("FEE-RT")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.InvestorID != rec.InvestorID || !got.Amount.Equal(rec.Amount) {
			t.Errorf("expected %+v, got %+v", rec, got)
		}
	})

	t.Run("invalid_record_rejected", func(t *testing.T) {
		assertCode(t, c.Upsert(fee("FEE-1", "INV-1", "-5")), "INVALID_AMOUNT")
		got, _ := c.FindByID("FEE-1")
		if !got.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("rejected upsert changed the record: %s", got.Amount)
		}
	})
}

func TestCollection_Remove(t *testing.T) {
	c, _ := NewCollection(
		fee("FEE-1", "INV-1", "100"),
		fee("FEE-2", "INV-1", "200"),
		fee("FEE-3", "INV-1", "300"),
	)

	c.Remove("FEE-404")
	if c.Len() != 3 {
		t.Fatalf("removing an unknown id changed the collection")
	}

	c.Remove("FEE-2")
	assertIDs(t, []string{"FEE-1", "FEE-3"}, ids(c.All()))
	if _, err := c.FindByID("FEE-3"); err != nil {
		t.Errorf("index not rebuilt after remove: %v", err)
	}
	if c.Has("FEE-2") {
		t.Error("expected FEE-2 to be gone")
	}
}

func TestCollection_AllReturnsCopy(t *testing.T) {
	c, _ := NewCollection(fee("FEE-1", "INV-1", "100"))
	all := c.All()
	all[0].Amount = decimal.NewFromInt(999)

	got, _ := c.FindByID("FEE-1")
	if !got.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("mutating All() leaked into the collection")
	}
}

func newInvestor(id string) models.Investor {
	return models.Investor{
		Base:   models.Base{ID: id},
		Name:   id,
		Email:  id + "@example.com",
		Status: models.InvestorActive,
		Commitment: models.CapitalCommitment{
			Total: decimal.NewFromInt(1000), Currency: "INR",
		},
	}
}

func populated(t *testing.T) *Store {
	t.Helper()
	s := New()
	for _, id := range []string{"INV-1", "INV-2"} {
		if err := s.Investors.Create(newInvestor(id)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	must(s.Fees.Create(fee("FEE-1", "INV-1", "10")))
	must(s.Fees.Create(fee("FEE-2", "INV-2", "20")))
	must(s.Fees.Create(fee("FEE-3", "INV-1", "30")))
	must(s.Contributions.Create(models.CapitalContribution{
		Base: models.Base{ID: "CC-1"}, InvestorScope: models.InvestorScope{InvestorID: "INV-2"},
		Amount: decimal.NewFromInt(5),
	}))
	must(s.Documents.Create(models.Document{
		Base: models.Base{ID: "DOC-1"}, InvestorScope: models.InvestorScope{InvestorID: "INV-1"},
		Title: "PPM", Category: models.CategoryPPM,
	}))
	must(s.FundInvestments.Create(models.FundInvestment{
		Base: models.Base{ID: "INV-INCRED"}, Name: "Incred Holdings",
		InitialAmount: decimal.NewFromInt(10), CurrentValue: decimal.NewFromInt(10),
		Status: models.FundInvestmentActive,
	}))
	must(s.CoInvestments.Create(models.CoInvestment{
		Base: models.Base{ID: "COINV-1"}, InvestorScope: models.InvestorScope{InvestorID: "INV-2"},
		Name: "TechFront Solutions", Amount: decimal.NewFromInt(5000000), Status: models.CoInvestmentActive,
	}))
	return s
}

func TestStore_ScopeToInvestor(t *testing.T) {
	s := populated(t)

	t.Run("own_records_only", func(t *testing.T) {
		view, err := s.ScopeToInvestor("INV-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if view.Investor.ID != "INV-1" {
			t.Errorf("expected INV-1, got %s", view.Investor.ID)
		}
		assertIDs(t, []string{"FEE-1", "FEE-3"}, ids(view.Fees))
		assertIDs(t, []string{"DOC-1"}, ids(view.Documents))
		if len(view.Contributions) != 0 {
			t.Errorf("expected no contributions, got %v", ids(view.Contributions))
		}
		assertIDs(t, []string{"INV-INCRED"}, ids(view.FundInvestments))
		if len(view.CoInvestments) != 0 {
			t.Errorf("expected no co-investments, got %v", ids(view.CoInvestments))
		}
	})

	t.Run("co_investments_are_scoped", func(t *testing.T) {
		view, err := s.ScopeToInvestor("INV-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertIDs(t, []string{"COINV-1"}, ids(view.CoInvestments))
	})

	t.Run("unknown_investor", func(t *testing.T) {
		_, err := s.ScopeToInvestor("INV-404")
		assertCode(t, err, "INVESTOR_NOT_FOUND")
	})
}

func TestStore_DeleteInvestor(t *testing.T) {
	s := populated(t)
	s.DeleteInvestor("INV-1")

	if s.Investors.Has("INV-1") {
		t.Error("expected investor to be removed")
	}
	assertIDs(t, []string{"FEE-2"}, ids(s.Fees.All()))
	if s.Documents.Len() != 0 {
		t.Errorf("expected documents to be removed, got %d", s.Documents.Len())
	}
	if s.Contributions.Len() != 1 {
		t.Errorf("other investor's contributions must survive, got %d", s.Contributions.Len())
	}
	if s.FundInvestments.Len() != 1 {
		t.Errorf("fund investments are fund-wide and must survive")
	}
	if s.CoInvestments.Len() != 1 {
		t.Errorf("other investor's co-investments must survive, got %d", s.CoInvestments.Len())
	}
	s.DeleteInvestor("INV-2")
	if s.CoInvestments.Len() != 0 {
		t.Errorf("expected co-investments to be removed, got %d", s.CoInvestments.Len())
	}
	if _, err := s.ScopeToInvestor("INV-1"); apperrors.CodeOf(err) != "INVESTOR_NOT_FOUND" {
		t.Errorf("expected deleted investor to be unreachable, got %v", err)
	}

	s.DeleteInvestor("INV-404")
}

func TestSnapshotRestore(t *testing.T) {
	s := populated(t)

	restored, err := Restore(s.Snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, ids(s.Fees.All()), ids(restored.Fees.All()))
	assertIDs(t, ids(s.Investors.All()), ids(restored.Investors.All()))
	assertIDs(t, []string{"COINV-1"}, ids(restored.CoInvestments.All()))

	t.Run("invalid_snapshot", func(t *testing.T) {
		snap := s.Snapshot()
		snap.Fees = append(snap.Fees, fee("FEE-1", "INV-1", "1"))
		_, err := Restore(snap)
		assertCode(t, err, "DUPLICATE_IDENTIFIER")
	})
}

func TestNopMirror(t *testing.T) {
	ctx := context.Background()
	m := NewMirror(ctx, "", time.Minute)
	if _, ok := m.(NopMirror); !ok {
		t.Fatalf("expected NopMirror without an address, got %T", m)
	}
	if err := m.Save(ctx, "INV-1", Snapshot{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, err := m.Load(ctx, "INV-1"); ok || err != nil {
		t.Errorf("expected a miss, got ok=%v err=%v", ok, err)
	}
	if err := m.Invalidate(ctx, "INV-1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRestore_NAVAtStoredScale(t *testing.T) {
	d := decimal.RequireFromString
	nav := models.NAVStatement{
		Base: models.Base{ID: "NAV-1"}, InvestorScope: models.InvestorScope{InvestorID: "INV-1"},
		Period: "Q1 2024", Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		NAVPerUnit: d("4100.1234"), TotalUnits: d("3.3333"),
	}

	t.Run("unrounded product is rejected on insert", func(t *testing.T) {
		s := New()
		nav.TotalNAV = nav.NAVPerUnit.Mul(nav.TotalUnits)
		assertCode(t, s.NAVStatements.Create(nav), "INVALID_INPUT")
	})

	t.Run("stored row restores", func(t *testing.T) {
		s := New()
		if err := s.Investors.Create(newInvestor("INV-1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		nav.TotalNAV = models.TotalNAVFor(nav.NAVPerUnit, nav.TotalUnits)
		if err := s.NAVStatements.Create(nav); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// A NUMERIC(20,4) column hands back every figure at four places.
		snap := s.Snapshot()
		for i, n := range snap.NAVStatements {
			n.NAVPerUnit = n.NAVPerUnit.Round(models.NAVScale)
			n.TotalUnits = n.TotalUnits.Round(models.NAVScale)
			n.TotalNAV = n.TotalNAV.Round(models.NAVScale)
			snap.NAVStatements[i] = n
		}
		restored, err := Restore(snap)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := restored.NAVStatements.FindByID("NAV-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.TotalNAV.Equal(d("13666.9413")) {
			t.Errorf("total nav = %s, want 13666.9413", got.TotalNAV)
		}
	})
}
