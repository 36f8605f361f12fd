package aggregate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "fundportal/internal/errors"
)

// FeeTier is the fee structure of one unit class. Rates are percentages.
type FeeTier struct {
	Class              string          `json:"class"`
	MinimumCommitment  decimal.Decimal `json:"minimum_commitment"`
	ManagementFeeRate  decimal.Decimal `json:"management_fee_rate"`
	PerformanceFeeRate decimal.Decimal `json:"performance_fee_rate"`
	HurdleRate         decimal.Decimal `json:"hurdle_rate"`
}

// ManagementFee describes the management fee, e.g. "2% per annum".
func (t FeeTier) ManagementFee() string {
	return t.ManagementFeeRate.String() + "% per annum"
}

// PerformanceFee describes the carried interest, e.g. "20% over 10% hurdle rate".
func (t FeeTier) PerformanceFee() string {
	return fmt.Sprintf("%s%% over %s%% hurdle rate", t.PerformanceFeeRate, t.HurdleRate)
}

// FeeSchedule holds the tiers ordered by MinimumCommitment, highest first.
// The last tier is the base tier.
type FeeSchedule struct {
	tiers []FeeTier
}

// NewFeeSchedule orders the tiers and checks that a larger commitment never
// pays a higher management or performance rate.
func NewFeeSchedule(tiers ...FeeTier) (FeeSchedule, error) {
	if len(tiers) == 0 {
		return FeeSchedule{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "fee schedule needs at least one tier")
	}
	sorted := make([]FeeTier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinimumCommitment.GreaterThan(sorted[j].MinimumCommitment)
	})

	for i := 1; i < len(sorted); i++ {
		hi, lo := sorted[i-1], sorted[i]
		if hi.MinimumCommitment.Equal(lo.MinimumCommitment) {
			return FeeSchedule{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
				"fee tiers "+hi.Class+" and "+lo.Class+" share a threshold")
		}
		if hi.ManagementFeeRate.GreaterThan(lo.ManagementFeeRate) || hi.PerformanceFeeRate.GreaterThan(lo.PerformanceFeeRate) {
			return FeeSchedule{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
				"fee tier "+hi.Class+" charges more than "+lo.Class)
		}
	}
	return FeeSchedule{tiers: sorted}, nil
}

// DefaultFeeSchedule is the fund's three-class structure. Class B and Class C
// start at the given thresholds; Class A is the base tier.
func DefaultFeeSchedule(classBMin, classCMin decimal.Decimal) (FeeSchedule, error) {
	hurdle := decimal.NewFromInt(10)
	return NewFeeSchedule(
		FeeTier{
			Class:              "Class A",
			MinimumCommitment:  decimal.NewFromInt(10_000_000),
			ManagementFeeRate:  decimal.NewFromInt(2),
			PerformanceFeeRate: decimal.NewFromInt(20),
			HurdleRate:         hurdle,
		},
		FeeTier{
			Class:              "Class B",
			MinimumCommitment:  classBMin,
			ManagementFeeRate:  decimal.RequireFromString("1.75"),
			PerformanceFeeRate: decimal.RequireFromString("17.5"),
			HurdleRate:         hurdle,
		},
		FeeTier{
			Class:              "Class C",
			MinimumCommitment:  classCMin,
			ManagementFeeRate:  decimal.RequireFromString("1.5"),
			PerformanceFeeRate: decimal.NewFromInt(15),
			HurdleRate:         hurdle,
		},
	)
}

// Tiers returns the tiers, highest threshold first.
func (s FeeSchedule) Tiers() []FeeTier {
	out := make([]FeeTier, len(s.tiers))
	copy(out, s.tiers)
	return out
}

// FeeTierFor picks the first tier, from the highest threshold down, whose
// threshold the commitment reaches. Thresholds are inclusive. A commitment
// below every threshold falls into the base tier.
func FeeTierFor(total decimal.Decimal, schedule FeeSchedule) FeeTier {
	if len(schedule.tiers) == 0 {
		return FeeTier{}
	}
	for _, tier := range schedule.tiers {
		if total.GreaterThanOrEqual(tier.MinimumCommitment) {
			return tier
		}
	}
	return schedule.tiers[len(schedule.tiers)-1]
}
