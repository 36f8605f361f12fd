package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fundportal/internal/models"
	"fundportal/internal/seed"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

func testID(prefix string) string {
	return fmt.Sprintf("%s-TEST-%d", prefix, nextID())
}

// Date parses a YYYY-MM-DD date or fails the test.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("invalid date %q: %v", s, err)
	}
	return d
}

// Amount parses a decimal amount or fails the test.
func Amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return d
}

func create(t *testing.T, db *gorm.DB, record interface{}, what string) {
	t.Helper()
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test %s: %v", what, err)
	}
}

// CreateTestUser creates an investor login with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates an investor login with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	return createUser(t, db, email, models.RoleInvestor)
}

// CreateTestAdmin creates an administrator login.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, fmt.Sprintf("admin%d@test.com", nextID()), models.RoleAdmin)
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	create(t, db, user, "user")
	return user
}

// CreateTestInvestor creates an active investor with a 20,000,000 INR
// commitment of 5000 units at 4000. userID may be nil.
func CreateTestInvestor(t *testing.T, db *gorm.DB, userID *string) *models.Investor {
	t.Helper()

	id := testID("INV")
	investor := &models.Investor{
		Base:          models.Base{ID: id},
		Name:          "Investor " + id,
		Email:         fmt.Sprintf("investor%d@test.com", nextID()),
		ContactPerson: "Test Contact",
		UserID:        userID,
		Status:        models.InvestorActive,
		Commitment: models.CapitalCommitment{
			Total:     decimal.NewFromInt(20_000_000),
			Currency:  "INR",
			UnitClass: "Class A",
			Units:     decimal.NewFromInt(5000),
			UnitPrice: decimal.NewFromInt(4000),
			StartDate: Date(t, "2021-05-20"),
		},
	}
	create(t, db, investor, "investor")
	return investor
}

// CreateTestContribution records a wire transfer for the investor.
func CreateTestContribution(t *testing.T, db *gorm.DB, investorID, amount string) *models.CapitalContribution {
	t.Helper()

	c := &models.CapitalContribution{
		Base:          models.Base{ID: testID("CC")},
		InvestorScope: models.InvestorScope{InvestorID: investorID},
		Date:          Date(t, "2021-06-25"),
		Amount:        Amount(t, amount),
		Method:        "Wire Transfer",
		Reference:     testID("REF"),
	}
	create(t, db, c, "contribution")
	return c
}

// CreateTestFee creates a management fee with the given status.
func CreateTestFee(t *testing.T, db *gorm.DB, investorID, amount string, status models.FeeStatus) *models.FeeCharge {
	t.Helper()

	f := &models.FeeCharge{
		Base:          models.Base{ID: testID("FEE")},
		InvestorScope: models.InvestorScope{InvestorID: investorID},
		Date:          Date(t, "2021-06-30"),
		Type:          "Management Fee",
		Amount:        Amount(t, amount),
		Status:        status,
	}
	create(t, db, f, "fee")
	return f
}

// CreateTestNAV creates a NAV statement over 5000 units.
func CreateTestNAV(t *testing.T, db *gorm.DB, investorID, date, navPerUnit string) *models.NAVStatement {
	t.Helper()

	units := decimal.NewFromInt(5000)
	perUnit := Amount(t, navPerUnit)
	s := &models.NAVStatement{
		Base:          models.Base{ID: testID("NAV")},
		InvestorScope: models.InvestorScope{InvestorID: investorID},
		Period:        date,
		Date:          Date(t, date),
		NAVPerUnit:    perUnit,
		TotalUnits:    units,
		TotalNAV:      models.TotalNAVFor(perUnit, units),
	}
	create(t, db, s, "NAV statement")
	return s
}

// CreateTestNotice creates a drawdown notice in the given state.
func CreateTestNotice(t *testing.T, db *gorm.DB, investorID, amount string, state models.NoticeState) *models.DrawdownNotice {
	t.Helper()

	n := &models.DrawdownNotice{
		Base:          models.Base{ID: testID("DD")},
		InvestorScope: models.InvestorScope{InvestorID: investorID},
		IssueDate:     Date(t, "2023-02-15"),
		DueDate:       Date(t, "2023-02-28"),
		Amount:        Amount(t, amount),
		Percentage:    decimal.NewFromInt(10),
		Purpose:       "Investment in Native Milk",
	}
	n.SetState(state)
	create(t, db, n, "drawdown notice")
	return n
}

// CreateTestDocument creates a downloadable document.
func CreateTestDocument(t *testing.T, db *gorm.DB, investorID, category string, showToInvestor bool) *models.Document {
	t.Helper()

	d := &models.Document{
		Base:                  models.Base{ID: testID("DOC")},
		InvestorScope:         models.InvestorScope{InvestorID: investorID},
		Title:                 category + " document",
		Category:              category,
		Date:                  Date(t, "2021-05-20"),
		AttachmentName:        "document.pdf",
		Downloadable:          true,
		Copyable:              true,
		ShowToCurrentInvestor: showToInvestor,
	}
	create(t, db, d, "document")
	return d
}

// CreateTestFundInvestment creates an active portfolio company.
func CreateTestFundInvestment(t *testing.T, db *gorm.DB, initial, current string) *models.FundInvestment {
	t.Helper()

	f := &models.FundInvestment{
		Base:           models.Base{ID: testID("FI")},
		Name:           "Portfolio Co",
		Sector:         "Fintech",
		InvestmentDate: Date(t, "2021-07-01"),
		InitialAmount:  Amount(t, initial),
		CurrentValue:   Amount(t, current),
		Status:         models.FundInvestmentActive,
	}
	create(t, db, f, "fund investment")
	return f
}

// SeedSampleFund loads the sample fund and links it to a new investor login.
func SeedSampleFund(t *testing.T, db *gorm.DB) (*models.User, *models.Investor) {
	t.Helper()

	user := CreateTestUserWithEmail(t, db, fmt.Sprintf("sample%d@test.com", nextID()))
	investor, err := seed.Load(db, &user.ID)
	if err != nil {
		t.Fatalf("failed to load sample fund: %v", err)
	}
	return user, investor
}
