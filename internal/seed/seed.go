// Package seed provides the sample fund used for demos and tests: one
// Class A investor with two paid capital calls, one pending call, quarterly
// NAV statements and the fund's portfolio.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"fundportal/internal/models"
	"fundportal/internal/store"
)

// InvestorID is the identifier of the sample investor.
const InvestorID = "INV-20210515-001"

// InvestorEmail is the login of the sample investor.
const InvestorEmail = "gauri.khan@example.com"

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func scope() models.InvestorScope { return models.InvestorScope{InvestorID: InvestorID} }

// Investor returns the sample investor.
func Investor() models.Investor {
	return models.Investor{
		Base:          models.Base{ID: InvestorID},
		Name:          "Gauri Khan Family Trust",
		Email:         InvestorEmail,
		ContactPerson: "Gauri Khan",
		ContactPhone:  "+91 98765 43210",
		Address:       "123 Luxury Villa, Mumbai, Maharashtra, India",
		Status:        models.InvestorActive,
		Commitment: models.CapitalCommitment{
			Total:     amount(20_000_000),
			Currency:  "INR",
			UnitClass: "Class A",
			Units:     amount(5000),
			UnitPrice: amount(4000),
			StartDate: date("2021-05-20"),
		},
	}
}

// Contributions returns the two paid capital calls.
func Contributions() []models.CapitalContribution {
	return []models.CapitalContribution{
		{
			Base: models.Base{ID: "CC-2021-001"}, InvestorScope: scope(),
			Date: date("2021-06-25"), Amount: amount(5_000_000),
			Method: "Wire Transfer", Reference: "REF-20210625-001", DrawdownID: strPtr("DD-2021-001"),
		},
		{
			Base: models.Base{ID: "CC-2021-002"}, InvestorScope: scope(),
			Date: date("2021-09-28"), Amount: amount(2_300_000),
			Method: "Wire Transfer", Reference: "REF-20210928-001", DrawdownID: strPtr("DD-2021-002"),
		},
	}
}

// DrawdownNotices returns the fund's capital calls to the sample investor.
func DrawdownNotices() []models.DrawdownNotice {
	return []models.DrawdownNotice{
		{
			Base: models.Base{ID: "DD-2021-001"}, InvestorScope: scope(),
			IssueDate: date("2021-06-15"), DueDate: date("2021-06-30"),
			Amount: amount(5_000_000), Percentage: pct("25"),
			Purpose: "Initial investment in Incred Holdings",
			Status:  models.NoticePaid, PaymentDate: datePtr("2021-06-25"),
		},
		{
			Base: models.Base{ID: "DD-2021-002"}, InvestorScope: scope(),
			IssueDate: date("2021-09-15"), DueDate: date("2021-09-30"),
			Amount: amount(2_300_000), Percentage: pct("11.5"),
			Purpose: "Investment in Customer Capital",
			Status:  models.NoticePaid, PaymentDate: datePtr("2021-09-28"),
		},
		{
			Base: models.Base{ID: "DD-2023-001"}, InvestorScope: scope(),
			IssueDate: date("2023-02-15"), DueDate: date("2023-02-28"),
			Amount: amount(2_000_000), Percentage: pct("10"),
			Purpose: "Investment in Native Milk",
			Status:  models.NoticePending,
		},
	}
}

// Fees returns the setup fee and three quarterly management fees.
func Fees() []models.FeeCharge {
	fee := func(id, on, kind string, v int64, desc string) models.FeeCharge {
		return models.FeeCharge{
			Base: models.Base{ID: id}, InvestorScope: scope(),
			Date: date(on), Type: kind, Amount: amount(v), Status: models.FeePaid, Description: desc,
		}
	}
	return []models.FeeCharge{
		fee("FEE-2021-001", "2021-05-25", "Setup Fee", 100_000, "Initial setup and onboarding fee"),
		fee("FEE-2021-002", "2021-06-30", "Management Fee", 100_000, "Q2 2021 management fee (2% annual, prorated)"),
		fee("FEE-2021-003", "2021-09-30", "Management Fee", 125_000, "Q3 2021 management fee (2% annual)"),
		fee("FEE-2021-004", "2021-12-31", "Management Fee", 125_000, "Q4 2021 management fee (2% annual)"),
	}
}

// NAVStatements returns five quarters of NAV history.
func NAVStatements() []models.NAVStatement {
	nav := func(id, period, on string, perUnit int64, change string, attachment string) models.NAVStatement {
		units := amount(5000)
		return models.NAVStatement{
			Base: models.Base{ID: id}, InvestorScope: scope(),
			Period: period, Date: date(on),
			NAVPerUnit: amount(perUnit), TotalUnits: units, TotalNAV: models.TotalNAVFor(amount(perUnit), units),
			Change: pct(change), AttachmentName: attachment,
		}
	}
	return []models.NAVStatement{
		nav("NAV-2021-Q2", "Q2 2021", "2021-06-30", 4100, "2.5", "NAV_Statement_Q2_2021.pdf"),
		nav("NAV-2021-Q3", "Q3 2021", "2021-09-30", 4230, "3.17", "NAV_Statement_Q3_2021.pdf"),
		nav("NAV-2021-Q4", "Q4 2021", "2021-12-31", 4410, "4.25", "NAV_Statement_Q4_2021.pdf"),
		nav("NAV-2022-Q1", "Q1 2022", "2022-03-31", 4620, "4.76", "NAV_Statement_Q1_2022.pdf"),
		nav("NAV-2022-Q2", "Q2 2022", "2022-06-30", 4750, "2.81", "NAV_Statement_Q2_2022.pdf"),
	}
}

// Documents returns the investor's document room.
func Documents() []models.Document {
	doc := func(id, title, category, on, attachment, desc string) models.Document {
		return models.Document{
			Base: models.Base{ID: id}, InvestorScope: scope(),
			Title: title, Category: category, Date: date(on),
			AttachmentName: attachment, Description: desc,
			Downloadable: true, Copyable: true,
		}
	}

	ppm := doc("DOC-PPM", "Private Placement Memorandum", models.CategoryPPM, "2021-05-01", "PPM.pdf",
		"Detailed information about the investment opportunity")
	ppm.Downloadable = false
	ppm.Copyable = false

	ca := doc("DOC-CA", "Contribution Agreement", models.CategoryContributionAgreement, "2021-05-15",
		"Contribution_Agreement.pdf", "Contribution agreement outlining terms and conditions")
	ca.Confidential = true

	sl := doc("DOC-SL", "Side Letter", models.CategorySideLetter, "2021-05-20", "Side_Letter.pdf",
		"Additional terms specific to this investor")
	sl.Confidential = true
	sl.ShowToCurrentInvestor = true

	us := doc("DOC-US", "Unit Statement - Q2 2022", models.CategoryUnitStatement, "2022-06-30",
		"Unit_Statement_Q2_2022.pdf", "Statement of units held by the investor")
	us.Confidential = true

	return []models.Document{
		ppm, ca, sl, us,
		doc("DOC-CN-1", "Contribution Notice - Initial", models.CategoryContributionNotice, "2021-06-15",
			"Contribution_Notice_1.pdf", "Initial contribution notice"),
		doc("DOC-CN-2", "Contribution Notice - Second Call", models.CategoryContributionNotice, "2021-09-15",
			"Contribution_Notice_2.pdf", "Second contribution notice"),
	}
}

// FundInvestments returns the fund's portfolio companies. Current values are
// carried at cost.
func FundInvestments() []models.FundInvestment {
	inv := func(id, name string, v int64, color string) models.FundInvestment {
		return models.FundInvestment{
			Base: models.Base{ID: id}, Name: name,
			InitialAmount: amount(v), CurrentValue: amount(v), Performance: decimal.Zero,
			Status: models.FundInvestmentActive, Color: color,
		}
	}
	return []models.FundInvestment{
		inv("INV-INCRED", "Incred Holdings", 10_000_000, "#9b87f5"),
		inv("INV-CUSTOMER", "Customer Capital", 30_000_000, "#7E69AB"),
		inv("INV-NATIVE", "Native Milk", 13_700_000, "#D6BCFA"),
		inv("INV-JET", "JetSynthesys", 30_000_000, "#FEC6A1"),
		inv("INV-RARE", "Rare Planet", 17_500_000, "#D3E4FD"),
	}
}

// CoInvestments returns the direct deals offered to the sample investor.
func CoInvestments() []models.CoInvestment {
	return []models.CoInvestment{{
		Base: models.Base{ID: "CO-INV-001"}, InvestorScope: scope(),
		Name: "TechFront Solutions", Date: date("2022-04-10"), Amount: amount(5_000_000),
		Status: models.CoInvestmentActive,
		Documents: []models.CoInvestmentDocument{
			{Title: "Term Sheet", URL: "https://example.com/termsheet.pdf", Date: datePtr("2022-04-01")},
			{Title: "Investment Agreement", URL: "https://example.com/agreement.pdf", Date: datePtr("2022-04-05")},
		},
	}}
}

// Snapshot returns the complete sample dataset. Distributions are empty.
func Snapshot() store.Snapshot {
	return store.Snapshot{
		Investors:       []models.Investor{Investor()},
		Contributions:   Contributions(),
		Fees:            Fees(),
		Distributions:   []models.Distribution{},
		NAVStatements:   NAVStatements(),
		Documents:       Documents(),
		DrawdownNotices: DrawdownNotices(),
		FundInvestments: FundInvestments(),
		Updates:         []models.InvestorUpdate{},
		CoInvestments:   CoInvestments(),
	}
}

// Store returns the sample dataset loaded into a Store.
func Store() *store.Store {
	s, err := store.Restore(Snapshot())
	if err != nil {
		panic(err)
	}
	return s
}
