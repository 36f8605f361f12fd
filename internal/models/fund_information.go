package models

import (
	"time"

	apperrors "fundportal/internal/errors"
)

// FundInformation is the fund's closing timeline and term. It is fund-wide
// configuration rather than a stored record.
type FundInformation struct {
	FirstCloseDate         time.Time   `json:"first_close_date"`
	SubsequentClosingDates []time.Time `json:"subsequent_closing_dates"`
	// FinalCloseDate is nil until the fund has had its final close.
	FinalCloseDate        *time.Time `json:"final_close_date"`
	CommitmentPeriodYears int        `json:"commitment_period_years"`
	CommitmentPeriodEnd   time.Time  `json:"commitment_period_end"`
	FundLifeYears         int        `json:"fund_life_years"`
	FundLifeEnd           time.Time  `json:"fund_life_end"`
}

// NewFundInformation validates the timeline and derives the end of the
// commitment period and of the fund's life from the first close.
func NewFundInformation(firstClose time.Time, subsequent []time.Time, finalClose *time.Time, commitmentYears, lifeYears int) (FundInformation, error) {
	if firstClose.IsZero() {
		return FundInformation{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "first close date is required")
	}
	last := firstClose
	for _, d := range subsequent {
		if !d.After(last) {
			return FundInformation{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "closing dates must follow the first close in order")
		}
		last = d
	}
	if finalClose != nil && finalClose.Before(last) {
		return FundInformation{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "final close cannot precede an earlier closing")
	}
	if commitmentYears <= 0 || lifeYears < commitmentYears {
		return FundInformation{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "fund life must cover a positive commitment period")
	}

	if subsequent == nil {
		subsequent = []time.Time{}
	}
	return FundInformation{
		FirstCloseDate:         firstClose,
		SubsequentClosingDates: subsequent,
		FinalCloseDate:         finalClose,
		CommitmentPeriodYears:  commitmentYears,
		CommitmentPeriodEnd:    firstClose.AddDate(commitmentYears, 0, 0),
		FundLifeYears:          lifeYears,
		FundLifeEnd:            firstClose.AddDate(lifeYears, 0, 0),
	}, nil
}

// InCommitmentPeriod reports whether capital can still be called on day.
func (f FundInformation) InCommitmentPeriod(day time.Time) bool {
	return !day.Before(f.FirstCloseDate) && day.Before(f.CommitmentPeriodEnd)
}
