package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fundportal/internal/aggregate"
	apperrors "fundportal/internal/errors"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
)

// fundInvestmentService handles the fund's portfolio companies.
type fundInvestmentService struct {
	db *gorm.DB
}

// NewFundInvestmentService creates a new FundInvestmentServicer.
func NewFundInvestmentService(db *gorm.DB) FundInvestmentServicer {
	return &fundInvestmentService{db: db}
}

func (in FundInvestmentInput) apply(f *models.FundInvestment) error {
	f.Name = strings.TrimSpace(in.Name)
	if f.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "investment name is required")
	}
	f.Sector = in.Sector
	f.Type = in.Type
	f.InvestmentDate = in.InvestmentDate
	f.InitialAmount = in.InitialAmount
	f.CurrentValue = in.CurrentValue
	f.Description = in.Description
	f.Color = in.Color

	f.Status = in.Status
	if f.Status == "" {
		f.Status = models.FundInvestmentActive
	}

	if in.Performance != nil {
		f.Performance = *in.Performance
	} else if pct, ok := f.ExpectedPerformance(); ok {
		f.Performance = pct.Round(2)
	} else {
		f.Performance = decimal.Zero
	}
	return nil
}

// CreateFundInvestment adds a portfolio company.
func (s *fundInvestmentService) CreateFundInvestment(in FundInvestmentInput) (*models.FundInvestment, error) {
	id, err := newRecordID(s.db, &models.FundInvestment{}, "FI")
	if err != nil {
		return nil, err
	}
	investment := &models.FundInvestment{Base: models.Base{ID: id}}
	if err := in.apply(investment); err != nil {
		return nil, err
	}
	if err := investment.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// GetFundInvestments lists portfolio companies by investment date.
func (s *fundInvestmentService) GetFundInvestments(page pagination.PageRequest, status *string) (*pagination.PageResponse[models.FundInvestment], error) {
	page.Defaults()

	query := s.db.Model(&models.FundInvestment{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.FundInvestment
	if err := query.Scopes(
		pagination.Order(page, []string{"name", "investment_date", "current_value", "performance"}, "investment_date"),
		pagination.Paginate(page),
	).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(investments, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetFundInvestmentByID retrieves one portfolio company.
func (s *fundInvestmentService) GetFundInvestmentByID(id string) (*models.FundInvestment, error) {
	var investment models.FundInvestment
	if err := s.db.Where("id = ?", id).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFundInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// UpdateFundInvestment replaces the editable fields of a portfolio company.
func (s *fundInvestmentService) UpdateFundInvestment(id string, in FundInvestmentInput) (*models.FundInvestment, error) {
	investment, err := s.GetFundInvestmentByID(id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(investment); err != nil {
		return nil, err
	}
	if err := investment.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// DeleteFundInvestment removes a portfolio company.
func (s *fundInvestmentService) DeleteFundInvestment(id string) error {
	investment, err := s.GetFundInvestmentByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(investment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSummary aggregates the active portfolio.
func (s *fundInvestmentService) GetSummary() (*aggregate.InvestmentSummary, error) {
	var investments []models.FundInvestment
	if err := s.db.Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary := aggregate.ActiveInvestmentSummary(investments)
	return &summary, nil
}
