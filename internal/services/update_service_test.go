package services

import (
	"strings"
	"testing"

	"fundportal/internal/pagination"
	"fundportal/internal/testutil"
)

func TestPostUpdate(t *testing.T) {
	t.Run("renders_markdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		investor := testutil.CreateTestInvestor(t, db, nil)
		admin := testutil.CreateTestAdmin(t, db)
		svc := NewUpdateService(db, nil)

		update, err := svc.PostUpdate(investor.ID, admin.ID, "Q2 NAV is **up 2.81%**.")
		testutil.AssertNoError(t, err)

		if !strings.Contains(update.HTML, "<strong>up 2.81%</strong>") {
			t.Errorf("expected rendered emphasis, got %q", update.HTML)
		}
		if update.AuthorID != admin.ID {
			t.Errorf("expected author %s, got %s", admin.ID, update.AuthorID)
		}
	})

	t.Run("raw_html_not_rendered", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		investor := testutil.CreateTestInvestor(t, db, nil)
		svc := NewUpdateService(db, nil)

		update, err := svc.PostUpdate(investor.ID, "", "<script>alert(1)</script>")
		testutil.AssertNoError(t, err)
		if strings.Contains(update.HTML, "<script>") {
			t.Errorf("expected raw html to be dropped, got %q", update.HTML)
		}
	})

	t.Run("empty_message", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		investor := testutil.CreateTestInvestor(t, db, nil)
		svc := NewUpdateService(db, nil)

		_, err := svc.PostUpdate(investor.ID, "", "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUpdateService(db, nil)

		_, err := svc.PostUpdate("INV-MISSING", "", "hello")
		testutil.AssertAppError(t, err, "INVESTOR_NOT_FOUND")
	})
}

func TestGetAndDeleteUpdates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	investor := testutil.CreateTestInvestor(t, db, nil)
	other := testutil.CreateTestInvestor(t, db, nil)
	svc := NewUpdateService(db, nil)

	first, err := svc.PostUpdate(investor.ID, "", "first")
	testutil.AssertNoError(t, err)
	_, err = svc.PostUpdate(investor.ID, "", "second")
	testutil.AssertNoError(t, err)
	_, err = svc.PostUpdate(other.ID, "", "elsewhere")
	testutil.AssertNoError(t, err)

	resp, err := svc.GetUpdates(investor.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if resp.TotalItems != 2 {
		t.Fatalf("expected 2 updates, got %d", resp.TotalItems)
	}
	for _, u := range resp.Data {
		if u.HTML == "" {
			t.Errorf("expected rendered html for %s", u.ID)
		}
	}

	err = svc.DeleteUpdate(other.ID, first.ID)
	testutil.AssertAppError(t, err, "RECORD_NOT_FOUND")

	testutil.AssertNoError(t, svc.DeleteUpdate(investor.ID, first.ID))
	resp, err = svc.GetUpdates(investor.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if resp.TotalItems != 1 {
		t.Errorf("expected 1 update after delete, got %d", resp.TotalItems)
	}
}
