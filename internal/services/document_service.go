package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"fundportal/internal/aggregate"
	apperrors "fundportal/internal/errors"
	"fundportal/internal/logger"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
	"fundportal/internal/storage"
)

// documentService handles the document room and its attachments.
type documentService struct {
	db        *gorm.DB
	files     storage.Storage
	dashboard DashboardServicer
}

// NewDocumentService creates a new DocumentServicer. dashboard may be nil.
func NewDocumentService(db *gorm.DB, files storage.Storage, dashboard DashboardServicer) DocumentServicer {
	return &documentService{db: db, files: files, dashboard: dashboard}
}

func (s *documentService) invalidate(investorID string) {
	if s.dashboard != nil {
		s.dashboard.Invalidate(investorID)
	}
}

func (in DocumentInput) apply(d *models.Document) {
	d.Title = strings.TrimSpace(in.Title)
	d.Category = strings.TrimSpace(in.Category)
	d.Description = in.Description
	d.Date = in.Date
	d.Downloadable = in.Downloadable
	d.Copyable = in.Copyable
	d.Confidential = in.Confidential
	d.ShowToCurrentInvestor = in.ShowToCurrentInvestor
}

// UploadDocument stores the attachment, when one is given, and records the
// document. The stored file is removed again if the record cannot be saved.
func (s *documentService) UploadDocument(ctx context.Context, investorID string, in DocumentInput, file FileUpload) (*models.Document, error) {
	var count int64
	if err := s.db.Model(&models.Investor{}).Where("id = ?", investorID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrInvestorNotFound
	}

	id, err := newRecordID(s.db, &models.Document{}, "DOC")
	if err != nil {
		return nil, err
	}
	doc := &models.Document{Base: models.Base{ID: id}}
	doc.AssignInvestor(investorID)
	in.apply(doc)
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if file.Content != nil {
		url, err := s.files.Upload(ctx, investorID, file.Filename, file.Size, file.Content)
		if err != nil {
			return nil, err
		}
		doc.AttachmentName = filepath.Base(file.Filename)
		doc.AttachmentURL = url
	}

	if err := s.db.Create(doc).Error; err != nil {
		if doc.AttachmentURL != "" {
			if delErr := s.files.Delete(ctx, doc.AttachmentURL); delErr != nil {
				logger.Get().Warnw("Failed to remove orphaned attachment", "url", doc.AttachmentURL, "error", delErr)
			}
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return doc, nil
}

// GetDocuments lists every document of the investor, side letters included.
func (s *documentService) GetDocuments(investorID string, page pagination.PageRequest, category *string) (*pagination.PageResponse[models.Document], error) {
	page.Defaults()

	query := s.db.Model(&models.Document{}).Where("investor_id = ?", investorID)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var docs []models.Document
	if err := query.Scopes(
		pagination.Order(page, []string{"date", "title", "category"}, "date DESC"),
		pagination.Paginate(page),
	).Find(&docs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(docs, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetVisibleDocuments returns the documents the investor may see.
func (s *documentService) GetVisibleDocuments(investorID string) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.Where("investor_id = ?", investorID).Order("date DESC").Find(&docs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return aggregate.VisibleDocuments(docs, investorID), nil
}

// GetDocumentByID retrieves one of the investor's documents.
func (s *documentService) GetDocumentByID(investorID, id string) (*models.Document, error) {
	var doc models.Document
	if err := s.db.Where("id = ? AND investor_id = ?", id, investorID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &doc, nil
}

// OpenDocument returns a visible document and its attachment. Hidden side
// letters read as missing. A download of a view-only document is refused.
func (s *documentService) OpenDocument(ctx context.Context, investorID, id string, download bool) (*models.Document, io.ReadCloser, error) {
	doc, err := s.GetDocumentByID(investorID, id)
	if err != nil {
		return nil, nil, err
	}
	if len(aggregate.VisibleDocuments([]models.Document{*doc}, investorID)) == 0 {
		return nil, nil, apperrors.ErrDocumentNotFound
	}
	if download && !doc.Downloadable {
		return nil, nil, apperrors.ErrDocumentNotDownloadable
	}
	if doc.AttachmentURL == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrDocumentNotFound, "document has no attachment")
	}

	rc, err := s.files.Open(ctx, doc.AttachmentURL)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}

// UpdateDocument replaces the metadata of a document. The attachment is kept.
func (s *documentService) UpdateDocument(investorID, id string, in DocumentInput) (*models.Document, error) {
	doc, err := s.GetDocumentByID(investorID, id)
	if err != nil {
		return nil, err
	}
	in.apply(doc)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(doc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidate(investorID)
	return doc, nil
}

// DeleteDocument removes the document and its attachment.
func (s *documentService) DeleteDocument(ctx context.Context, investorID, id string) error {
	doc, err := s.GetDocumentByID(investorID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(doc).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if doc.AttachmentURL != "" {
		if err := s.files.Delete(ctx, doc.AttachmentURL); err != nil {
			logger.Get().Warnw("Failed to remove attachment", "document_id", id, "error", err)
		}
	}
	s.invalidate(investorID)
	return nil
}
