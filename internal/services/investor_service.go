package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
)

// investorService handles investor administration.
type investorService struct {
	db        *gorm.DB
	dashboard DashboardServicer
}

// NewInvestorService creates a new InvestorServicer. dashboard may be nil;
// when set, its cached views are invalidated on every change.
func NewInvestorService(db *gorm.DB, dashboard DashboardServicer) InvestorServicer {
	return &investorService{db: db, dashboard: dashboard}
}

func (s *investorService) invalidate(investorID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(investorID)
	}
}

func (in InvestorInput) apply(inv *models.Investor) {
	inv.Name = strings.TrimSpace(in.Name)
	inv.Email = strings.ToLower(strings.TrimSpace(in.Email))
	inv.ContactPerson = in.ContactPerson
	inv.ContactPhone = in.ContactPhone
	inv.Address = in.Address
	inv.Status = in.Status
	if inv.Status == "" {
		inv.Status = models.InvestorActive
	}
	inv.Commitment = in.Commitment
	if inv.Commitment.Currency == "" {
		inv.Commitment.Currency = "INR"
	}
}

// CreateInvestor creates an investor and, when login is given, the portal
// login linked to it, in one transaction.
func (s *investorService) CreateInvestor(in InvestorInput, login *LoginInput) (*models.Investor, error) {
	id, err := newRecordID(s.db, &models.Investor{}, "INV")
	if err != nil {
		return nil, err
	}
	investor := &models.Investor{Base: models.Base{ID: id}}
	in.apply(investor)
	if err := investor.Validate(); err != nil {
		return nil, err
	}
	if !investor.Commitment.IsBalanced() {
		logger.Get().Infow("Commitment total does not equal units times unit price",
			"investor_id", id, "total", investor.Commitment.Total.String())
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if login != nil {
			user, err := createUser(tx, login.Email, login.Password, models.RoleInvestor)
			if err != nil {
				return err
			}
			investor.UserID = &user.ID
		}
		if err := tx.Create(investor).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return investor, nil
}

// GetInvestors lists investors by name, optionally filtered by status.
func (s *investorService) GetInvestors(page pagination.PageRequest, status *models.InvestorStatus) (*pagination.PageResponse[models.Investor], error) {
	page.Defaults()

	query := s.db.Model(&models.Investor{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investors []models.Investor
	if err := query.Scopes(
		pagination.Order(page, []string{"name", "created_at", "status"}, "name"),
		pagination.Paginate(page),
	).Find(&investors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(investors, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetInvestorByID retrieves an investor.
func (s *investorService) GetInvestorByID(id string) (*models.Investor, error) {
	var investor models.Investor
	if err := s.db.Where("id = ?", id).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investor, nil
}

// GetInvestorByUserID resolves the investor linked to a login.
func (s *investorService) GetInvestorByUserID(userID string) (*models.Investor, error) {
	var investor models.Investor
	if err := s.db.Where("user_id = ?", userID).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoLinkedInvestor
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investor, nil
}

// UpdateInvestor replaces the editable fields of an investor.
func (s *investorService) UpdateInvestor(id string, in InvestorInput) (*models.Investor, error) {
	investor, err := s.GetInvestorByID(id)
	if err != nil {
		return nil, err
	}
	in.apply(investor)
	if err := investor.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(investor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(id)
	return investor, nil
}

// DeleteInvestor soft-deletes the investor and every record scoped to them,
// and deactivates their login.
func (s *investorService) DeleteInvestor(id string) error {
	investor, err := s.GetInvestorByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, scoped := range []interface{}{
			&models.CapitalContribution{},
			&models.FeeCharge{},
			&models.Distribution{},
			&models.NAVStatement{},
			&models.Document{},
			&models.DrawdownNotice{},
			&models.InvestorUpdate{},
			&models.CoInvestment{},
		} {
			if err := tx.Where("investor_id = ?", id).Delete(scoped).Error; err != nil {
				return err
			}
		}
		if investor.UserID != nil {
			if err := tx.Model(&models.User{}).Where("id = ?", *investor.UserID).
				Updates(map[string]interface{}{"is_active": false, "refresh_token_hash": ""}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(investor).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(id)
	return nil
}
