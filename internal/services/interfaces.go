package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"fundportal/internal/aggregate"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
)

// UserServicer defines the contract for portal logins.
type UserServicer interface {
	CreateUser(email, password string, role models.Role) (*models.User, error)
	EnsureAdmin(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	RevokeRefreshToken(userID string) error
}

// InvestorInput carries the editable fields of an investor.
type InvestorInput struct {
	Name          string
	Email         string
	ContactPerson string
	ContactPhone  string
	Address       string
	Status        models.InvestorStatus
	Commitment    models.CapitalCommitment
}

// LoginInput creates a portal login alongside a new investor.
type LoginInput struct {
	Email    string
	Password string
}

// InvestorServicer defines the contract for investor administration.
type InvestorServicer interface {
	CreateInvestor(in InvestorInput, login *LoginInput) (*models.Investor, error)
	GetInvestors(page pagination.PageRequest, status *models.InvestorStatus) (*pagination.PageResponse[models.Investor], error)
	GetInvestorByID(id string) (*models.Investor, error)
	GetInvestorByUserID(userID string) (*models.Investor, error)
	UpdateInvestor(id string, in InvestorInput) (*models.Investor, error)
	DeleteInvestor(id string) error
}

// RecordServicer is the persisted record source for one investor-scoped
// record type.
type RecordServicer[T any] interface {
	Create(investorID string, record *T) (*T, error)
	List(investorID string, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	ListAll(investorID string) ([]T, error)
	Get(investorID, id string) (*T, error)
	Update(investorID, id string, record *T) (*T, error)
	Delete(investorID, id string) error
}

// NoticeInput carries the editable fields of a drawdown notice. A zero
// Percentage is derived from the investor's commitment.
type NoticeInput struct {
	IssueDate  time.Time
	DueDate    time.Time
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Purpose    string
}

// PaymentInput records an investor's payment against a notice. A zero Amount
// means the notice amount.
type PaymentInput struct {
	Date      time.Time
	Amount    decimal.Decimal
	Method    string
	Reference string
}

// NoticeFilter narrows a notice listing. IssuedOnly hides drafts.
type NoticeFilter struct {
	Status     *models.NoticeStatus
	IssuedOnly bool
}

// DrawdownServicer defines the contract for capital calls.
type DrawdownServicer interface {
	CreateNotice(investorID string, in NoticeInput) (*models.DrawdownNotice, error)
	GetNotices(investorID string, page pagination.PageRequest, filter NoticeFilter) (*pagination.PageResponse[models.DrawdownNotice], error)
	GetNoticeByID(investorID, id string) (*models.DrawdownNotice, error)
	UpdateNotice(investorID, id string, in NoticeInput) (*models.DrawdownNotice, error)
	DeleteNotice(investorID, id string) error
	SendNotice(investorID, id string) (*models.DrawdownNotice, error)
	RecordPayment(investorID, id string, in PaymentInput) (*models.DrawdownNotice, *models.CapitalContribution, error)
	MarkOverdue(asOf time.Time) ([]models.DrawdownNotice, error)
}

// FundInvestmentInput carries the editable fields of a portfolio company.
// A nil Performance is derived from the amounts.
type FundInvestmentInput struct {
	Name           string
	Sector         string
	Type           string
	InvestmentDate time.Time
	InitialAmount  decimal.Decimal
	CurrentValue   decimal.Decimal
	Performance    *decimal.Decimal
	Status         string
	Description    string
	Color          string
}

// FundInvestmentServicer defines the contract for the fund's portfolio.
type FundInvestmentServicer interface {
	CreateFundInvestment(in FundInvestmentInput) (*models.FundInvestment, error)
	GetFundInvestments(page pagination.PageRequest, status *string) (*pagination.PageResponse[models.FundInvestment], error)
	GetFundInvestmentByID(id string) (*models.FundInvestment, error)
	UpdateFundInvestment(id string, in FundInvestmentInput) (*models.FundInvestment, error)
	DeleteFundInvestment(id string) error
	GetSummary() (*aggregate.InvestmentSummary, error)
}

// DocumentInput carries the metadata of a document.
type DocumentInput struct {
	Title                 string
	Category              string
	Description           string
	Date                  time.Time
	Downloadable          bool
	Copyable              bool
	Confidential          bool
	ShowToCurrentInvestor bool
}

// FileUpload is an attachment received from a client.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// DocumentServicer defines the contract for the document room.
type DocumentServicer interface {
	UploadDocument(ctx context.Context, investorID string, in DocumentInput, file FileUpload) (*models.Document, error)
	GetDocuments(investorID string, page pagination.PageRequest, category *string) (*pagination.PageResponse[models.Document], error)
	GetVisibleDocuments(investorID string) ([]models.Document, error)
	GetDocumentByID(investorID, id string) (*models.Document, error)
	OpenDocument(ctx context.Context, investorID, id string, download bool) (*models.Document, io.ReadCloser, error)
	UpdateDocument(investorID, id string, in DocumentInput) (*models.Document, error)
	DeleteDocument(ctx context.Context, investorID, id string) error
}

// RenderedUpdate is an investor update with its Markdown rendered to HTML.
type RenderedUpdate struct {
	models.InvestorUpdate
	HTML string `json:"html"`
}

// UpdateServicer defines the contract for the investor updates feed.
type UpdateServicer interface {
	PostUpdate(investorID, authorID, message string) (*RenderedUpdate, error)
	GetUpdates(investorID string, page pagination.PageRequest) (*pagination.PageResponse[RenderedUpdate], error)
	DeleteUpdate(investorID, id string) error
}

// DashboardServicer builds investor views and their aggregates.
type DashboardServicer interface {
	GetView(ctx context.Context, investorID string) (*models.InvestorView, error)
	GetSummary(ctx context.Context, investorID string) (*aggregate.DashboardSummary, error)
	GetReport(ctx context.Context, investorID string) (*models.InvestorView, *aggregate.DashboardSummary, error)
	GetPendingNotices(ctx context.Context, investorID string) ([]models.DrawdownNotice, error)
	FeeSchedule() aggregate.FeeSchedule
	Invalidate(investorID string)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID string, action, resourceType string, resourceID string, ipAddress string, changes map[string]interface{})
}
