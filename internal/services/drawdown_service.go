package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
)

// drawdownService handles capital calls and the payments that settle them.
type drawdownService struct {
	db        *gorm.DB
	dashboard DashboardServicer
}

// NewDrawdownService creates a new DrawdownServicer. dashboard may be nil.
func NewDrawdownService(db *gorm.DB, dashboard DashboardServicer) DrawdownServicer {
	return &drawdownService{db: db, dashboard: dashboard}
}

func (s *drawdownService) invalidate(investorID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(investorID)
	}
}

func (s *drawdownService) investor(investorID string) (*models.Investor, error) {
	var investor models.Investor
	if err := s.db.Where("id = ?", investorID).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investor, nil
}

// apply copies the input onto the notice, deriving the percentage of the
// commitment when none is given.
func (in NoticeInput) apply(n *models.DrawdownNotice, commitment models.CapitalCommitment) {
	n.IssueDate = in.IssueDate
	n.DueDate = in.DueDate
	n.Amount = in.Amount
	n.Purpose = in.Purpose
	n.Percentage = in.Percentage
	if n.Percentage.IsZero() && commitment.Total.IsPositive() {
		n.Percentage = in.Amount.Div(commitment.Total).Mul(decimal.NewFromInt(100)).Round(4)
	}
}

// CreateNotice drafts a new capital call for the investor.
func (s *drawdownService) CreateNotice(investorID string, in NoticeInput) (*models.DrawdownNotice, error) {
	investor, err := s.investor(investorID)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "notice amount must be positive")
	}

	id, err := newRecordID(s.db, &models.DrawdownNotice{}, "DD")
	if err != nil {
		return nil, err
	}
	notice := &models.DrawdownNotice{Base: models.Base{ID: id}}
	notice.AssignInvestor(investorID)
	notice.SetState(models.Draft{})
	in.apply(notice, investor.Commitment)
	if err := notice.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.Create(notice).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return notice, nil
}

// GetNotices lists the investor's notices, most recent due date first.
func (s *drawdownService) GetNotices(investorID string, page pagination.PageRequest, filter NoticeFilter) (*pagination.PageResponse[models.DrawdownNotice], error) {
	page.Defaults()

	query := s.db.Model(&models.DrawdownNotice{}).Where("investor_id = ?", investorID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.IssuedOnly {
		query = query.Where("status <> ?", models.NoticeDraft)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notices []models.DrawdownNotice
	if err := query.Scopes(
		pagination.Order(page, []string{"issue_date", "due_date", "amount", "status"}, "due_date DESC"),
		pagination.Paginate(page),
	).Find(&notices).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(notices, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetNoticeByID retrieves one of the investor's notices.
func (s *drawdownService) GetNoticeByID(investorID, id string) (*models.DrawdownNotice, error) {
	return getNotice(s.db, investorID, id)
}

func getNotice(db *gorm.DB, investorID, id string) (*models.DrawdownNotice, error) {
	var notice models.DrawdownNotice
	if err := db.Where("id = ? AND investor_id = ?", id, investorID).First(&notice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &notice, nil
}

// UpdateNotice edits a notice that has not been sent yet.
func (s *drawdownService) UpdateNotice(investorID, id string, in NoticeInput) (*models.DrawdownNotice, error) {
	investor, err := s.investor(investorID)
	if err != nil {
		return nil, err
	}
	notice, err := s.GetNoticeByID(investorID, id)
	if err != nil {
		return nil, err
	}
	if notice.Status != models.NoticeDraft {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidNoticeTransition, "only draft notices can be edited")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "notice amount must be positive")
	}

	in.apply(notice, investor.Commitment)
	if err := notice.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(notice).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return notice, nil
}

// DeleteNotice removes a notice. Paid notices are kept with their contribution.
func (s *drawdownService) DeleteNotice(investorID, id string) error {
	notice, err := s.GetNoticeByID(investorID, id)
	if err != nil {
		return err
	}
	if notice.Status == models.NoticePaid {
		return apperrors.WithMessage(apperrors.ErrInvalidNoticeTransition, "paid notices cannot be deleted")
	}
	if err := s.db.Delete(notice).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return nil
}

// SendNotice delivers a draft notice to the investor.
func (s *drawdownService) SendNotice(investorID, id string) (*models.DrawdownNotice, error) {
	notice, err := s.GetNoticeByID(investorID, id)
	if err != nil {
		return nil, err
	}
	if err := notice.Transition(models.Sent{}); err != nil {
		return nil, err
	}
	if err := s.db.Model(notice).Updates(map[string]interface{}{"status": notice.Status}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return notice, nil
}

// RecordPayment settles a sent or pending notice and books the matching
// capital contribution in the same transaction.
func (s *drawdownService) RecordPayment(investorID, id string, in PaymentInput) (*models.DrawdownNotice, *models.CapitalContribution, error) {
	var notice *models.DrawdownNotice
	var contribution *models.CapitalContribution

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		notice, err = getNotice(tx, investorID, id)
		if err != nil {
			return err
		}

		paidOn := in.Date
		if paidOn.IsZero() {
			paidOn = time.Now().UTC().Truncate(24 * time.Hour)
		}
		if err := notice.Transition(models.Paid{On: paidOn}); err != nil {
			return err
		}

		amount := in.Amount
		if amount.IsZero() {
			amount = notice.Amount
		}
		contributionID, err := newRecordID(tx, &models.CapitalContribution{}, "CC")
		if err != nil {
			return err
		}
		noticeID := notice.ID
		contribution = &models.CapitalContribution{
			Base:       models.Base{ID: contributionID},
			Date:       paidOn,
			Amount:     amount,
			Method:     in.Method,
			Reference:  in.Reference,
			DrawdownID: &noticeID,
		}
		contribution.AssignInvestor(investorID)
		if err := contribution.Validate(); err != nil {
			return err
		}

		if err := tx.Create(contribution).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(notice).Updates(map[string]interface{}{
			"status":       notice.Status,
			"payment_date": notice.PaymentDate,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if !contribution.Amount.Equal(notice.Amount) {
		logger.Get().Infow("Drawdown settled with a different amount",
			"notice_id", notice.ID, "notice_amount", notice.Amount.String(), "paid", contribution.Amount.String())
	}
	s.invalidate(investorID)
	return notice, contribution, nil
}

// MarkOverdue moves every sent notice whose due date is before asOf to
// Pending, and returns the notices it moved.
func (s *drawdownService) MarkOverdue(asOf time.Time) ([]models.DrawdownNotice, error) {
	var candidates []models.DrawdownNotice
	if err := s.db.Where("status = ? AND due_date < ?", models.NoticeSent, asOf).Find(&candidates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	moved := make([]models.DrawdownNotice, 0, len(candidates))
	for i := range candidates {
		notice := &candidates[i]
		if !notice.IsOverdue(asOf) {
			continue
		}
		if err := notice.Transition(models.Pending{}); err != nil {
			return nil, err
		}
		if err := s.db.Model(notice).Updates(map[string]interface{}{"status": notice.Status}).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		moved = append(moved, *notice)
		s.invalidate(notice.InvestorID)
	}

	if len(moved) > 0 {
		logger.Get().Infow("Marked drawdown notices overdue", "count", len(moved), "as_of", asOf.Format("2006-01-02"))
	}
	return moved, nil
}
