package services

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"

	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
)

// updateService handles the investor updates feed.
type updateService struct {
	db        *gorm.DB
	markdown  goldmark.Markdown
	dashboard DashboardServicer
}

// NewUpdateService creates a new UpdateServicer. dashboard may be nil.
// Raw HTML in messages is not rendered.
func NewUpdateService(db *gorm.DB, dashboard DashboardServicer) UpdateServicer {
	return &updateService{
		db:        db,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		dashboard: dashboard,
	}
}

func (s *updateService) render(u models.InvestorUpdate) RenderedUpdate {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(u.Message), &buf); err != nil {
		logger.Get().Warnw("Failed to render update", "update_id", u.ID, "error", err)
		return RenderedUpdate{InvestorUpdate: u}
	}
	return RenderedUpdate{InvestorUpdate: u, HTML: buf.String()}
}

// PostUpdate adds a message to the investor's feed.
func (s *updateService) PostUpdate(investorID, authorID, message string) (*RenderedUpdate, error) {
	var count int64
	if err := s.db.Model(&models.Investor{}).Where("id = ?", investorID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrInvestorNotFound
	}

	id, err := newRecordID(s.db, &models.InvestorUpdate{}, "UPD")
	if err != nil {
		return nil, err
	}
	update := models.InvestorUpdate{
		Base:     models.Base{ID: id},
		AuthorID: authorID,
		Message:  strings.TrimSpace(message),
	}
	update.AssignInvestor(investorID)
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.Create(&update).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	rendered := s.render(update)
	return &rendered, nil
}

// GetUpdates lists the feed newest first.
func (s *updateService) GetUpdates(investorID string, page pagination.PageRequest) (*pagination.PageResponse[RenderedUpdate], error) {
	page.Defaults()

	query := s.db.Model(&models.InvestorUpdate{}).Where("investor_id = ?", investorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var updates []models.InvestorUpdate
	if err := query.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rendered := make([]RenderedUpdate, len(updates))
	for i, u := range updates {
		rendered[i] = s.render(u)
	}
	resp := pagination.NewPageResponse(rendered, page.Page, page.PageSize, total)
	return &resp, nil
}

// DeleteUpdate removes a message from the feed.
func (s *updateService) DeleteUpdate(investorID, id string) error {
	var update models.InvestorUpdate
	if err := s.db.Where("id = ? AND investor_id = ?", id, investorID).First(&update).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecordNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&update).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return nil
}

func (s *updateService) invalidate(investorID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(investorID)
	}
}
