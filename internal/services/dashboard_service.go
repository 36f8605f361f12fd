package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fundportal/internal/aggregate"
	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
	"fundportal/internal/models"
	"fundportal/internal/store"
)

// dashboardService assembles investor views from the database and caches
// the investor-scoped part in the session mirror.
type dashboardService struct {
	db       *gorm.DB
	mirror   store.Mirror
	schedule aggregate.FeeSchedule
}

// NewDashboardService creates a new DashboardServicer. A nil mirror disables caching.
func NewDashboardService(db *gorm.DB, mirror store.Mirror, schedule aggregate.FeeSchedule) DashboardServicer {
	if mirror == nil {
		mirror = store.NopMirror{}
	}
	return &dashboardService{db: db, mirror: mirror, schedule: schedule}
}

// GetView returns everything the investor may see. Side letters that are
// not meant for the investor are filtered out.
func (s *dashboardService) GetView(ctx context.Context, investorID string) (*models.InvestorView, error) {
	st, err := s.load(ctx, investorID)
	if err != nil {
		return nil, err
	}
	return visibleView(st, investorID)
}

// GetSummary computes the dashboard figures for the investor.
func (s *dashboardService) GetSummary(ctx context.Context, investorID string) (*aggregate.DashboardSummary, error) {
	_, summary, err := s.GetReport(ctx, investorID)
	return summary, err
}

// GetReport returns the investor's view and the summary computed from that
// same view, so both reflect one load.
func (s *dashboardService) GetReport(ctx context.Context, investorID string) (*models.InvestorView, *aggregate.DashboardSummary, error) {
	st, err := s.load(ctx, investorID)
	if err != nil {
		return nil, nil, err
	}
	view, err := visibleView(st, investorID)
	if err != nil {
		return nil, nil, err
	}
	summary := aggregate.Summarize(*view, s.schedule)
	return view, &summary, nil
}

func visibleView(st *store.Store, investorID string) (*models.InvestorView, error) {
	view, err := st.ScopeToInvestor(investorID)
	if err != nil {
		return nil, err
	}
	view.Documents = aggregate.VisibleDocuments(view.Documents, investorID)
	view.NAVStatements = aggregate.Chronological(view.NAVStatements)
	return view, nil
}

// GetPendingNotices returns the investor's overdue capital calls.
func (s *dashboardService) GetPendingNotices(ctx context.Context, investorID string) ([]models.DrawdownNotice, error) {
	st, err := s.load(ctx, investorID)
	if err != nil {
		return nil, err
	}
	view, err := st.ScopeToInvestor(investorID)
	if err != nil {
		return nil, err
	}
	return aggregate.PendingDrawdownNotices(view.DrawdownNotices), nil
}

// FeeSchedule returns the tiers used for every summary.
func (s *dashboardService) FeeSchedule() aggregate.FeeSchedule {
	return s.schedule
}

// Invalidate drops the investor's cached records.
func (s *dashboardService) Invalidate(investorID string) {
	if err := s.mirror.Invalidate(context.Background(), investorID); err != nil {
		logger.Get().Warnw("Failed to invalidate cached view", "investor_id", investorID, "error", err)
	}
}

// load builds a store holding the investor's records and the fund-wide
// investments. Investor records come from the mirror when cached; fund
// investments are always read fresh since they are shared by every investor.
func (s *dashboardService) load(ctx context.Context, investorID string) (*store.Store, error) {
	snap, hit, err := s.mirror.Load(ctx, investorID)
	if err != nil {
		logger.Get().Warnw("Session mirror read failed", "investor_id", investorID, "error", err)
		hit = false
	}
	if !hit {
		snap, err = s.fetch(investorID)
		if err != nil {
			return nil, err
		}
		if err := s.mirror.Save(ctx, investorID, snap); err != nil {
			logger.Get().Warnw("Session mirror write failed", "investor_id", investorID, "error", err)
		}
	}

	if err := s.db.Order("investment_date").Find(&snap.FundInvestments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	st, err := store.Restore(snap)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return st, nil
}

// fetch reads the investor's records from the database.
func (s *dashboardService) fetch(investorID string) (store.Snapshot, error) {
	var investor models.Investor
	if err := s.db.Where("id = ?", investorID).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.Snapshot{}, apperrors.ErrInvestorNotFound
		}
		return store.Snapshot{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snap := store.Snapshot{Investors: []models.Investor{investor}}
	scoped := s.db.Where("investor_id = ?", investorID)
	for _, q := range []struct {
		dest  interface{}
		order string
	}{
		{&snap.Contributions, "date"},
		{&snap.Fees, "date"},
		{&snap.Distributions, "date"},
		{&snap.NAVStatements, "date"},
		{&snap.Documents, "date DESC"},
		{&snap.DrawdownNotices, "due_date"},
		{&snap.Updates, "created_at DESC"},
		{&snap.CoInvestments, "date"},
	} {
		if err := scoped.Session(&gorm.Session{}).Order(q.order).Find(q.dest).Error; err != nil {
			return store.Snapshot{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return snap, nil
}
