package models

import (
	"strings"
	"time"

	apperrors "fundportal/internal/errors"
)

// Well-known document categories. Any other non-empty category is accepted
// as free text.
const (
	CategoryPPM                   = "PPM"
	CategoryContributionAgreement = "Contribution Agreement"
	CategorySideLetter            = "Side Letter"
	CategoryUnitStatement         = "Unit Statement"
	CategoryContributionNotice    = "Contribution Notice"
)

// Document is a fund document attached to an investor's portal.
type Document struct {
	Base
	InvestorScope
	Title                 string    `gorm:"not null" json:"title"`
	Category              string    `gorm:"not null;index" json:"category"`
	Date                  time.Time `json:"date"`
	Description           string    `json:"description,omitempty"`
	AttachmentName        string    `json:"attachment_name"`
	AttachmentURL         string    `json:"attachment_url,omitempty"`
	Downloadable          bool      `gorm:"not null" json:"downloadable"`
	Copyable              bool      `gorm:"not null" json:"copyable"`
	Confidential          bool      `gorm:"not null;default:false" json:"confidential"`
	ShowToCurrentInvestor bool      `gorm:"not null;default:false" json:"show_to_current_investor"`
}

// IsSideLetter reports whether the document carries investor-specific terms.
func (d Document) IsSideLetter() bool { return d.Category == CategorySideLetter }

func (d Document) Validate() error {
	if err := requireID(d.ID); err != nil {
		return err
	}
	if strings.TrimSpace(d.Title) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "document title is required")
	}
	if strings.TrimSpace(d.Category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "document category is required")
	}
	return nil
}

// InvestorUpdate is an administrator message posted to an investor's feed.
// Message is Markdown.
type InvestorUpdate struct {
	Base
	InvestorScope
	AuthorID string `gorm:"type:varchar(64)" json:"author_id"`
	Message  string `gorm:"type:text;not null" json:"message"`
}

func (u InvestorUpdate) Validate() error {
	if err := requireID(u.ID); err != nil {
		return err
	}
	if strings.TrimSpace(u.Message) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "update message is required")
	}
	return nil
}
