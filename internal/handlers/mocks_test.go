package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fundportal/internal/aggregate"
	apperrors "fundportal/internal/errors"
	"fundportal/internal/middleware"
	"fundportal/internal/models"
	"fundportal/internal/pagination"
	"fundportal/internal/services"
	"fundportal/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn            func(email, password string, role models.Role) (*models.User, error)
	getUserByIDFn           func(id string) (*models.User, error)
	attemptLoginFn          func(email, password string) (*models.User, error)
	storeRefreshTokenHashFn func(userID string, tokenHash string) error
	getRefreshTokenHashFn   func(userID string) (string, error)
	revokeRefreshTokenFn    func(userID string) error
}

func (m *mockUserService) CreateUser(email, password string, role models.Role) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, password, role)
	}
	return &models.User{Email: email, Role: role, IsActive: true}, nil
}

func (m *mockUserService) EnsureAdmin(email, _ string) (*models.User, error) {
	return &models.User{Email: email, Role: models.RoleAdmin, IsActive: true}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	return &models.User{Email: email, IsActive: true}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}, IsActive: true}, nil
}

func (m *mockUserService) VerifyPassword(_ *models.User, _ string) bool { return true }

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{Email: email, IsActive: true}, nil
}

func (m *mockUserService) StoreRefreshTokenHash(userID string, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(userID, tokenHash)
	}
	return nil
}

func (m *mockUserService) GetRefreshTokenHash(userID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(userID)
	}
	return "", nil
}

func (m *mockUserService) RevokeRefreshToken(userID string) error {
	if m.revokeRefreshTokenFn != nil {
		return m.revokeRefreshTokenFn(userID)
	}
	return nil
}

type mockInvestorService struct {
	createInvestorFn      func(in services.InvestorInput, login *services.LoginInput) (*models.Investor, error)
	getInvestorsFn        func(page pagination.PageRequest, status *models.InvestorStatus) (*pagination.PageResponse[models.Investor], error)
	getInvestorByIDFn     func(id string) (*models.Investor, error)
	getInvestorByUserIDFn func(userID string) (*models.Investor, error)
	updateInvestorFn      func(id string, in services.InvestorInput) (*models.Investor, error)
	deleteInvestorFn      func(id string) error
}

func (m *mockInvestorService) CreateInvestor(in services.InvestorInput, login *services.LoginInput) (*models.Investor, error) {
	if m.createInvestorFn != nil {
		return m.createInvestorFn(in, login)
	}
	return &models.Investor{Base: models.Base{ID: "INV-1"}, Name: in.Name}, nil
}

func (m *mockInvestorService) GetInvestors(page pagination.PageRequest, status *models.InvestorStatus) (*pagination.PageResponse[models.Investor], error) {
	if m.getInvestorsFn != nil {
		return m.getInvestorsFn(page, status)
	}
	resp := pagination.NewPageResponse([]models.Investor{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockInvestorService) GetInvestorByID(id string) (*models.Investor, error) {
	if m.getInvestorByIDFn != nil {
		return m.getInvestorByIDFn(id)
	}
	return &models.Investor{Base: models.Base{ID: id}}, nil
}

func (m *mockInvestorService) GetInvestorByUserID(userID string) (*models.Investor, error) {
	if m.getInvestorByUserIDFn != nil {
		return m.getInvestorByUserIDFn(userID)
	}
	return &models.Investor{Base: models.Base{ID: "INV-" + userID}}, nil
}

func (m *mockInvestorService) UpdateInvestor(id string, in services.InvestorInput) (*models.Investor, error) {
	if m.updateInvestorFn != nil {
		return m.updateInvestorFn(id, in)
	}
	return &models.Investor{Base: models.Base{ID: id}, Name: in.Name}, nil
}

func (m *mockInvestorService) DeleteInvestor(id string) error {
	if m.deleteInvestorFn != nil {
		return m.deleteInvestorFn(id)
	}
	return nil
}

type mockDashboardService struct {
	getViewFn           func(ctx context.Context, investorID string) (*models.InvestorView, error)
	getSummaryFn        func(ctx context.Context, investorID string) (*aggregate.DashboardSummary, error)
	getPendingNoticesFn func(ctx context.Context, investorID string) ([]models.DrawdownNotice, error)
}

func (m *mockDashboardService) GetView(ctx context.Context, investorID string) (*models.InvestorView, error) {
	if m.getViewFn != nil {
		return m.getViewFn(ctx, investorID)
	}
	inv := models.Investor{Base: models.Base{ID: investorID}}
	return &models.InvestorView{Investor: inv}, nil
}

func (m *mockDashboardService) GetSummary(ctx context.Context, investorID string) (*aggregate.DashboardSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx, investorID)
	}
	return &aggregate.DashboardSummary{InvestorID: investorID, Currency: "INR"}, nil
}

func (m *mockDashboardService) GetReport(ctx context.Context, investorID string) (*models.InvestorView, *aggregate.DashboardSummary, error) {
	view, err := m.GetView(ctx, investorID)
	if err != nil {
		return nil, nil, err
	}
	summary, err := m.GetSummary(ctx, investorID)
	if err != nil {
		return nil, nil, err
	}
	return view, summary, nil
}

func (m *mockDashboardService) GetPendingNotices(ctx context.Context, investorID string) ([]models.DrawdownNotice, error) {
	if m.getPendingNoticesFn != nil {
		return m.getPendingNoticesFn(ctx, investorID)
	}
	return []models.DrawdownNotice{}, nil
}

func (m *mockDashboardService) FeeSchedule() aggregate.FeeSchedule { return aggregate.FeeSchedule{} }

func (m *mockDashboardService) Invalidate(string) {}

type mockRecordService[T any] struct {
	createFn func(investorID string, record *T) (*T, error)
	listFn   func(investorID string, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	getFn    func(investorID, id string) (*T, error)
	updateFn func(investorID, id string, record *T) (*T, error)
	deleteFn func(investorID, id string) error
}

func (m *mockRecordService[T]) Create(investorID string, record *T) (*T, error) {
	if m.createFn != nil {
		return m.createFn(investorID, record)
	}
	return record, nil
}

func (m *mockRecordService[T]) List(investorID string, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	if m.listFn != nil {
		return m.listFn(investorID, page)
	}
	resp := pagination.NewPageResponse([]T{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockRecordService[T]) ListAll(string) ([]T, error) { return []T{}, nil }

func (m *mockRecordService[T]) Get(investorID, id string) (*T, error) {
	if m.getFn != nil {
		return m.getFn(investorID, id)
	}
	return new(T), nil
}

func (m *mockRecordService[T]) Update(investorID, id string, record *T) (*T, error) {
	if m.updateFn != nil {
		return m.updateFn(investorID, id, record)
	}
	return record, nil
}

func (m *mockRecordService[T]) Delete(investorID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(investorID, id)
	}
	return nil
}

type mockDrawdownService struct {
	createNoticeFn  func(investorID string, in services.NoticeInput) (*models.DrawdownNotice, error)
	getNoticesFn    func(investorID string, page pagination.PageRequest, filter services.NoticeFilter) (*pagination.PageResponse[models.DrawdownNotice], error)
	getNoticeByIDFn func(investorID, id string) (*models.DrawdownNotice, error)
	updateNoticeFn  func(investorID, id string, in services.NoticeInput) (*models.DrawdownNotice, error)
	deleteNoticeFn  func(investorID, id string) error
	sendNoticeFn    func(investorID, id string) (*models.DrawdownNotice, error)
	recordPaymentFn func(investorID, id string, in services.PaymentInput) (*models.DrawdownNotice, *models.CapitalContribution, error)
	markOverdueFn   func(asOf time.Time) ([]models.DrawdownNotice, error)
}

func (m *mockDrawdownService) CreateNotice(investorID string, in services.NoticeInput) (*models.DrawdownNotice, error) {
	if m.createNoticeFn != nil {
		return m.createNoticeFn(investorID, in)
	}
	n := &models.DrawdownNotice{Base: models.Base{ID: "DD-1"}, Amount: in.Amount, Status: models.NoticeDraft}
	n.AssignInvestor(investorID)
	return n, nil
}

func (m *mockDrawdownService) GetNotices(investorID string, page pagination.PageRequest, filter services.NoticeFilter) (*pagination.PageResponse[models.DrawdownNotice], error) {
	if m.getNoticesFn != nil {
		return m.getNoticesFn(investorID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.DrawdownNotice{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockDrawdownService) GetNoticeByID(investorID, id string) (*models.DrawdownNotice, error) {
	if m.getNoticeByIDFn != nil {
		return m.getNoticeByIDFn(investorID, id)
	}
	return &models.DrawdownNotice{Base: models.Base{ID: id}}, nil
}

func (m *mockDrawdownService) UpdateNotice(investorID, id string, in services.NoticeInput) (*models.DrawdownNotice, error) {
	if m.updateNoticeFn != nil {
		return m.updateNoticeFn(investorID, id, in)
	}
	return &models.DrawdownNotice{Base: models.Base{ID: id}, Amount: in.Amount}, nil
}

func (m *mockDrawdownService) DeleteNotice(investorID, id string) error {
	if m.deleteNoticeFn != nil {
		return m.deleteNoticeFn(investorID, id)
	}
	return nil
}

func (m *mockDrawdownService) SendNotice(investorID, id string) (*models.DrawdownNotice, error) {
	if m.sendNoticeFn != nil {
		return m.sendNoticeFn(investorID, id)
	}
	return &models.DrawdownNotice{Base: models.Base{ID: id}, Status: models.NoticeSent}, nil
}

func (m *mockDrawdownService) RecordPayment(investorID, id string, in services.PaymentInput) (*models.DrawdownNotice, *models.CapitalContribution, error) {
	if m.recordPaymentFn != nil {
		return m.recordPaymentFn(investorID, id, in)
	}
	return &models.DrawdownNotice{Base: models.Base{ID: id}, Status: models.NoticePaid},
		&models.CapitalContribution{Base: models.Base{ID: "CC-1"}, Amount: in.Amount}, nil
}

func (m *mockDrawdownService) MarkOverdue(asOf time.Time) ([]models.DrawdownNotice, error) {
	if m.markOverdueFn != nil {
		return m.markOverdueFn(asOf)
	}
	return []models.DrawdownNotice{}, nil
}

type mockDocumentService struct {
	uploadDocumentFn      func(ctx context.Context, investorID string, in services.DocumentInput, file services.FileUpload) (*models.Document, error)
	getDocumentsFn        func(investorID string, page pagination.PageRequest, category *string) (*pagination.PageResponse[models.Document], error)
	getVisibleDocumentsFn func(investorID string) ([]models.Document, error)
	openDocumentFn        func(ctx context.Context, investorID, id string, download bool) (*models.Document, io.ReadCloser, error)
	updateDocumentFn      func(investorID, id string, in services.DocumentInput) (*models.Document, error)
	deleteDocumentFn      func(ctx context.Context, investorID, id string) error
}

func (m *mockDocumentService) UploadDocument(ctx context.Context, investorID string, in services.DocumentInput, file services.FileUpload) (*models.Document, error) {
	if m.uploadDocumentFn != nil {
		return m.uploadDocumentFn(ctx, investorID, in, file)
	}
	return &models.Document{Base: models.Base{ID: "DOC-1"}, Title: in.Title}, nil
}

func (m *mockDocumentService) GetDocuments(investorID string, page pagination.PageRequest, category *string) (*pagination.PageResponse[models.Document], error) {
	if m.getDocumentsFn != nil {
		return m.getDocumentsFn(investorID, page, category)
	}
	resp := pagination.NewPageResponse([]models.Document{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockDocumentService) GetVisibleDocuments(investorID string) ([]models.Document, error) {
	if m.getVisibleDocumentsFn != nil {
		return m.getVisibleDocumentsFn(investorID)
	}
	return []models.Document{}, nil
}

func (m *mockDocumentService) GetDocumentByID(_, id string) (*models.Document, error) {
	return &models.Document{Base: models.Base{ID: id}}, nil
}

func (m *mockDocumentService) OpenDocument(ctx context.Context, investorID, id string, download bool) (*models.Document, io.ReadCloser, error) {
	if m.openDocumentFn != nil {
		return m.openDocumentFn(ctx, investorID, id, download)
	}
	return nil, nil, apperrors.ErrDocumentNotFound
}

func (m *mockDocumentService) UpdateDocument(investorID, id string, in services.DocumentInput) (*models.Document, error) {
	if m.updateDocumentFn != nil {
		return m.updateDocumentFn(investorID, id, in)
	}
	return &models.Document{Base: models.Base{ID: id}, Title: in.Title}, nil
}

func (m *mockDocumentService) DeleteDocument(ctx context.Context, investorID, id string) error {
	if m.deleteDocumentFn != nil {
		return m.deleteDocumentFn(ctx, investorID, id)
	}
	return nil
}

type mockFundInvestmentService struct {
	createFn  func(in services.FundInvestmentInput) (*models.FundInvestment, error)
	listFn    func(page pagination.PageRequest, status *string) (*pagination.PageResponse[models.FundInvestment], error)
	getFn     func(id string) (*models.FundInvestment, error)
	updateFn  func(id string, in services.FundInvestmentInput) (*models.FundInvestment, error)
	deleteFn  func(id string) error
	summaryFn func() (*aggregate.InvestmentSummary, error)
}

func (m *mockFundInvestmentService) CreateFundInvestment(in services.FundInvestmentInput) (*models.FundInvestment, error) {
	if m.createFn != nil {
		return m.createFn(in)
	}
	return &models.FundInvestment{Base: models.Base{ID: "FI-1"}, Name: in.Name}, nil
}

func (m *mockFundInvestmentService) GetFundInvestments(page pagination.PageRequest, status *string) (*pagination.PageResponse[models.FundInvestment], error) {
	if m.listFn != nil {
		return m.listFn(page, status)
	}
	resp := pagination.NewPageResponse([]models.FundInvestment{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockFundInvestmentService) GetFundInvestmentByID(id string) (*models.FundInvestment, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.FundInvestment{Base: models.Base{ID: id}}, nil
}

func (m *mockFundInvestmentService) UpdateFundInvestment(id string, in services.FundInvestmentInput) (*models.FundInvestment, error) {
	if m.updateFn != nil {
		return m.updateFn(id, in)
	}
	return &models.FundInvestment{Base: models.Base{ID: id}, Name: in.Name}, nil
}

func (m *mockFundInvestmentService) DeleteFundInvestment(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockFundInvestmentService) GetSummary() (*aggregate.InvestmentSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn()
	}
	return &aggregate.InvestmentSummary{}, nil
}

type mockUpdateService struct {
	postUpdateFn   func(investorID, authorID, message string) (*services.RenderedUpdate, error)
	getUpdatesFn   func(investorID string, page pagination.PageRequest) (*pagination.PageResponse[services.RenderedUpdate], error)
	deleteUpdateFn func(investorID, id string) error
}

func (m *mockUpdateService) PostUpdate(investorID, authorID, message string) (*services.RenderedUpdate, error) {
	if m.postUpdateFn != nil {
		return m.postUpdateFn(investorID, authorID, message)
	}
	u := services.RenderedUpdate{}
	u.ID = "UPD-1"
	u.InvestorID = investorID
	u.AuthorID = authorID
	u.Message = message
	return &u, nil
}

func (m *mockUpdateService) GetUpdates(investorID string, page pagination.PageRequest) (*pagination.PageResponse[services.RenderedUpdate], error) {
	if m.getUpdatesFn != nil {
		return m.getUpdatesFn(investorID, page)
	}
	resp := pagination.NewPageResponse([]services.RenderedUpdate{}, page.Page, page.PageSize, 0)
	return &resp, nil
}

func (m *mockUpdateService) DeleteUpdate(investorID, id string) error {
	if m.deleteUpdateFn != nil {
		return m.deleteUpdateFn(investorID, id)
	}
	return nil
}

// mockAuditService remembers the actions it was asked to log.
type mockAuditService struct {
	actions []string
}

func (m *mockAuditService) Log(_ string, action, _ string, _ string, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

func (m *mockAuditService) logged(action string) bool {
	for _, a := range m.actions {
		if a == action {
			return true
		}
	}
	return false
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectIdentity(userID string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetIdentity(c, userID, role)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
