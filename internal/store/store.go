package store

import (
	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
)

// Store holds one collection per record type.
type Store struct {
	Investors       *Collection[models.Investor]
	Contributions   *Collection[models.CapitalContribution]
	Fees            *Collection[models.FeeCharge]
	Distributions   *Collection[models.Distribution]
	NAVStatements   *Collection[models.NAVStatement]
	Documents       *Collection[models.Document]
	DrawdownNotices *Collection[models.DrawdownNotice]
	FundInvestments *Collection[models.FundInvestment]
	Updates         *Collection[models.InvestorUpdate]
	CoInvestments   *Collection[models.CoInvestment]
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Investors:       &Collection[models.Investor]{},
		Contributions:   &Collection[models.CapitalContribution]{},
		Fees:            &Collection[models.FeeCharge]{},
		Distributions:   &Collection[models.Distribution]{},
		NAVStatements:   &Collection[models.NAVStatement]{},
		Documents:       &Collection[models.Document]{},
		DrawdownNotices: &Collection[models.DrawdownNotice]{},
		FundInvestments: &Collection[models.FundInvestment]{},
		Updates:         &Collection[models.InvestorUpdate]{},
		CoInvestments:   &Collection[models.CoInvestment]{},
	}
}

func ownedBy[T models.ScopedRecord](investorID string) func(T) bool {
	return func(r T) bool { return r.GetInvestorID() == investorID }
}

// ScopeToInvestor returns the investor's own records from every collection,
// plus the fund-wide investments.
func (s *Store) ScopeToInvestor(investorID string) (*models.InvestorView, error) {
	investor, err := s.Investors.FindByID(investorID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvestorNotFound, err)
	}
	return &models.InvestorView{
		Investor:        investor,
		Contributions:   s.Contributions.Filter(ownedBy[models.CapitalContribution](investorID)),
		Fees:            s.Fees.Filter(ownedBy[models.FeeCharge](investorID)),
		Distributions:   s.Distributions.Filter(ownedBy[models.Distribution](investorID)),
		NAVStatements:   s.NAVStatements.Filter(ownedBy[models.NAVStatement](investorID)),
		Documents:       s.Documents.Filter(ownedBy[models.Document](investorID)),
		DrawdownNotices: s.DrawdownNotices.Filter(ownedBy[models.DrawdownNotice](investorID)),
		FundInvestments: s.FundInvestments.All(),
		Updates:         s.Updates.Filter(ownedBy[models.InvestorUpdate](investorID)),
		CoInvestments:   s.CoInvestments.Filter(ownedBy[models.CoInvestment](investorID)),
	}, nil
}

// DeleteInvestor removes the investor and every record scoped to them.
// Deleting an unknown investor is a no-op.
func (s *Store) DeleteInvestor(investorID string) {
	s.Investors.Remove(investorID)
	s.Contributions.RemoveWhere(ownedBy[models.CapitalContribution](investorID))
	s.Fees.RemoveWhere(ownedBy[models.FeeCharge](investorID))
	s.Distributions.RemoveWhere(ownedBy[models.Distribution](investorID))
	s.NAVStatements.RemoveWhere(ownedBy[models.NAVStatement](investorID))
	s.Documents.RemoveWhere(ownedBy[models.Document](investorID))
	s.DrawdownNotices.RemoveWhere(ownedBy[models.DrawdownNotice](investorID))
	s.Updates.RemoveWhere(ownedBy[models.InvestorUpdate](investorID))
	s.CoInvestments.RemoveWhere(ownedBy[models.CoInvestment](investorID))
}
