package server

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundportal/internal/aggregate"
	"fundportal/internal/config"
	"fundportal/internal/models"
	"fundportal/internal/services"
	"fundportal/internal/storage"
	"fundportal/internal/store"
)

// FeeSchedule builds the fund's fee tiers from the configured thresholds.
func FeeSchedule(cfg *config.Config) (aggregate.FeeSchedule, error) {
	classB, err := decimal.NewFromString(cfg.FeeTierBMin)
	if err != nil {
		return aggregate.FeeSchedule{}, fmt.Errorf("invalid FEE_TIER_B_MIN %q: %w", cfg.FeeTierBMin, err)
	}
	classC, err := decimal.NewFromString(cfg.FeeTierCMin)
	if err != nil {
		return aggregate.FeeSchedule{}, fmt.Errorf("invalid FEE_TIER_C_MIN %q: %w", cfg.FeeTierCMin, err)
	}
	return aggregate.DefaultFeeSchedule(classB, classC)
}

// FundInformation builds the fund's timeline from the configured dates.
func FundInformation(cfg *config.Config) (models.FundInformation, error) {
	parse := func(key, raw string) (time.Time, error) {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		return d, nil
	}

	first, err := parse("FUND_FIRST_CLOSE", cfg.FundFirstClose)
	if err != nil {
		return models.FundInformation{}, err
	}
	subsequent := make([]time.Time, 0, len(cfg.FundSubsequentClosings))
	for _, raw := range cfg.FundSubsequentClosings {
		d, err := parse("FUND_SUBSEQUENT_CLOSINGS", raw)
		if err != nil {
			return models.FundInformation{}, err
		}
		subsequent = append(subsequent, d)
	}
	var final *time.Time
	if cfg.FundFinalClose != "" {
		d, err := parse("FUND_FINAL_CLOSE", cfg.FundFinalClose)
		if err != nil {
			return models.FundInformation{}, err
		}
		final = &d
	}
	return models.NewFundInformation(first, subsequent, final, cfg.FundCommitmentYears, cfg.FundLifeYears)
}

// NewServices wires every service onto db. The dashboard service is shared so
// that writes through any service invalidate the mirrored view.
func NewServices(db *gorm.DB, mirror store.Mirror, files storage.Storage, schedule aggregate.FeeSchedule) Services {
	dashboard := services.NewDashboardService(db, mirror, schedule)
	return Services{
		Users:           services.NewUserService(db),
		Investors:       services.NewInvestorService(db, dashboard),
		Dashboard:       dashboard,
		Contributions:   services.NewContributionService(db, dashboard),
		Fees:            services.NewFeeService(db, dashboard),
		Distributions:   services.NewDistributionService(db, dashboard),
		NAVs:            services.NewNAVService(db, dashboard),
		CoInvestments:   services.NewCoInvestmentService(db, dashboard),
		Drawdowns:       services.NewDrawdownService(db, dashboard),
		Documents:       services.NewDocumentService(db, files, dashboard),
		FundInvestments: services.NewFundInvestmentService(db),
		Updates:         services.NewUpdateService(db, dashboard),
		Audit:           services.NewAuditService(db),
	}
}
