package testutil_test

import (
	"testing"

	"fundportal/internal/errors"
	"fundportal/internal/models"
	"fundportal/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{
		"users", "investors", "capital_contributions", "drawdown_notices", "fee_charges",
		"distributions", "nav_statements", "fund_investments", "documents", "investor_updates", "audit_logs",
	} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	a := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, a)
	b := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, b)

	testutil.CreateTestUser(t, a)

	var count int64
	b.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("expected an empty second database, got %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}
	if user.Role != models.RoleInvestor {
		t.Errorf("expected investor role, got %s", user.Role)
	}

	admin := testutil.CreateTestAdmin(t, db)
	if !admin.IsAdmin() {
		t.Errorf("expected admin role, got %s", admin.Role)
	}

	investor := testutil.CreateTestInvestor(t, db, &user.ID)
	if !investor.Commitment.IsBalanced() {
		t.Error("expected a balanced commitment")
	}

	c := testutil.CreateTestContribution(t, db, investor.ID, "5000000")
	if c.Amount.String() != "5000000" {
		t.Errorf("expected amount 5000000, got %s", c.Amount)
	}

	n := testutil.CreateTestNotice(t, db, investor.ID, "2000000", models.Pending{})
	if n.Status != models.NoticePending {
		t.Errorf("expected Pending notice, got %s", n.Status)
	}

	doc := testutil.CreateTestDocument(t, db, investor.ID, models.CategorySideLetter, false)
	var stored models.Document
	db.First(&stored, "id = ?", doc.ID)
	if stored.ShowToCurrentInvestor || !stored.Downloadable {
		t.Errorf("unexpected document flags: %+v", stored)
	}
}

func TestSeedSampleFund(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user, investor := testutil.SeedSampleFund(t, db)
	if investor.UserID == nil || *investor.UserID != user.ID {
		t.Fatal("expected the sample investor to be linked to the login")
	}

	var ppm models.Document
	db.First(&ppm, "id = ?", "DOC-PPM")
	if ppm.Downloadable || ppm.Copyable {
		t.Errorf("PPM must be view-only, got %+v", ppm)
	}

	var notices int64
	db.Model(&models.DrawdownNotice{}).Where("investor_id = ?", investor.ID).Count(&notices)
	if notices != 3 {
		t.Errorf("expected 3 notices, got %d", notices)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrInvestorNotFound, "custom message")
	testutil.AssertAppError(t, err, "INVESTOR_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertDecimal(t *testing.T) {
	testutil.AssertDecimal(t, testutil.Amount(t, "7300000.00"), "7300000")
}
