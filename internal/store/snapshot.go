package store

import "fundportal/internal/models"

// Snapshot is the serialisable content of a Store.
type Snapshot struct {
	Investors       []models.Investor            `json:"investors"`
	Contributions   []models.CapitalContribution `json:"contributions"`
	Fees            []models.FeeCharge           `json:"fees"`
	Distributions   []models.Distribution        `json:"distributions"`
	NAVStatements   []models.NAVStatement        `json:"nav_statements"`
	Documents       []models.Document            `json:"documents"`
	DrawdownNotices []models.DrawdownNotice      `json:"drawdown_notices"`
	FundInvestments []models.FundInvestment      `json:"fund_investments"`
	Updates         []models.InvestorUpdate      `json:"updates"`
	CoInvestments   []models.CoInvestment        `json:"co_investments"`
}

// Snapshot copies the store's records.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Investors:       s.Investors.All(),
		Contributions:   s.Contributions.All(),
		Fees:            s.Fees.All(),
		Distributions:   s.Distributions.All(),
		NAVStatements:   s.NAVStatements.All(),
		Documents:       s.Documents.All(),
		DrawdownNotices: s.DrawdownNotices.All(),
		FundInvestments: s.FundInvestments.All(),
		Updates:         s.Updates.All(),
		CoInvestments:   s.CoInvestments.All(),
	}
}

// Restore builds a store from a snapshot, validating every record.
func Restore(snap Snapshot) (*Store, error) {
	s := &Store{}
	var err error
	if s.Investors, err = NewCollection(snap.Investors...); err != nil {
		return nil, err
	}
	if s.Contributions, err = NewCollection(snap.Contributions...); err != nil {
		return nil, err
	}
	if s.Fees, err = NewCollection(snap.Fees...); err != nil {
		return nil, err
	}
	if s.Distributions, err = NewCollection(snap.Distributions...); err != nil {
		return nil, err
	}
	if s.NAVStatements, err = NewCollection(snap.NAVStatements...); err != nil {
		return nil, err
	}
	if s.Documents, err = NewCollection(snap.Documents...); err != nil {
		return nil, err
	}
	if s.DrawdownNotices, err = NewCollection(snap.DrawdownNotices...); err != nil {
		return nil, err
	}
	if s.FundInvestments, err = NewCollection(snap.FundInvestments...); err != nil {
		return nil, err
	}
	if s.Updates, err = NewCollection(snap.Updates...); err != nil {
		return nil, err
	}
	if s.CoInvestments, err = NewCollection(snap.CoInvestments...); err != nil {
		return nil, err
	}
	return s, nil
}
