package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/core/services"
	"github.com/awqafio/waqf_ledger/internal/dto"
	"github.com/awqafio/waqf_ledger/internal/handlers"
	"github.com/awqafio/waqf_ledger/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) AutoPost(ctx context.Context, req dto.AutoPostRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PrepareManualEntry(ctx context.Context) (*domain.EntryBuilder, *domain.FiscalYear, error) {
	args := m.Called(ctx)
	var builder *domain.EntryBuilder
	if args.Get(0) != nil {
		builder = args.Get(0).(*domain.EntryBuilder)
	}
	var fy *domain.FiscalYear
	if args.Get(1) != nil {
		fy = args.Get(1).(*domain.FiscalYear)
	}
	return builder, fy, args.Error(2)
}

func (m *MockPostingService) SubmitManualEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockPostingService) RegisterCommitListener(listener portssvc.CommitListener) {
	m.Called(listener)
}

// --- Test Suite Setup ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockPostingSvc *MockPostingService
	actorID        string
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockPostingSvc = new(MockPostingService)
	suite.actorID = uuid.NewString()

	cfg := &config.Config{RateLimit: "1000-M"}
	container := &portssvc.ServiceContainer{Posting: suite.mockPostingSvc}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *EntryHandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", suite.actorID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EntryHandlerTestSuite) validSubmitBody() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryNumber: "JE-2026-000123",
		EntryDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Description: "August rent receipt",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: "acct-cash", Debit: decimal.NewFromInt(500)},
			{AccountID: "acct-income", Credit: decimal.NewFromInt(500)},
		},
	}
}

func (suite *EntryHandlerTestSuite) TestSubmitEntry_Success() {
	committed := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		EntryNumber: "JE-2026-000123",
		Status:      domain.Draft,
	}
	suite.mockPostingSvc.On("SubmitManualEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest"), suite.actorID).
		Return(committed, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/entries", suite.validSubmitBody())

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(committed.EntryID, resp.EntryID)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestSubmitEntry_SingleLineRejectedByBinding() {
	body := suite.validSubmitBody()
	body.Lines = body.Lines[:1]

	w := suite.performJSON(http.MethodPost, "/api/v1/entries", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "SubmitManualEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestSubmitEntry_ValidationFailureMaps400() {
	suite.mockPostingSvc.On("SubmitManualEntry", mock.Anything, mock.Anything, suite.actorID).
		Return(nil, fmt.Errorf("%w: entry lines do not balance", apperrors.ErrValidation)).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/entries", suite.validSubmitBody())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "do not balance")
}

func (suite *EntryHandlerTestSuite) TestSubmitEntry_InFlightMaps409() {
	suite.mockPostingSvc.On("SubmitManualEntry", mock.Anything, mock.Anything, suite.actorID).
		Return(nil, services.ErrSubmitInFlight).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/entries", suite.validSubmitBody())

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EntryHandlerTestSuite) TestAutoPost_Success() {
	committed := &domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Draft}
	suite.mockPostingSvc.On("AutoPost", mock.Anything, mock.AnythingOfType("dto.AutoPostRequest"), suite.actorID).
		Return(committed, nil).Once()

	body := dto.AutoPostRequest{
		TriggerEvent: string(domain.TriggerRentalPaymentReceived),
		ReferenceID:  "rental-agreement-42",
		Amount:       decimal.NewFromInt(1000),
		EntryDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	w := suite.performJSON(http.MethodPost, "/api/v1/entries/auto-post", body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

// Triggers outside the built-in set still reach the engine; whether they fire
// is decided by the template table, not the request binding.
func (suite *EntryHandlerTestSuite) TestAutoPost_UnknownTriggerResolvedByTemplates() {
	suite.mockPostingSvc.On("AutoPost", mock.Anything, mock.MatchedBy(func(req dto.AutoPostRequest) bool {
		return req.TriggerEvent == "zakat_collected"
	}), suite.actorID).
		Return(nil, services.ErrNoTemplateForTrigger).Once()

	body := dto.AutoPostRequest{
		TriggerEvent: "zakat_collected",
		ReferenceID:  "ref-1",
		Amount:       decimal.NewFromInt(100),
		EntryDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	w := suite.performJSON(http.MethodPost, "/api/v1/entries/auto-post", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "no active auto-posting template")
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestAutoPost_NonPositiveAmountRejectedByBinding() {
	body := dto.AutoPostRequest{
		TriggerEvent: string(domain.TriggerRentalPaymentReceived),
		ReferenceID:  "ref-2",
		Amount:       decimal.NewFromInt(-50),
		EntryDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	w := suite.performJSON(http.MethodPost, "/api/v1/entries/auto-post", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostingSvc.AssertNotCalled(suite.T(), "AutoPost", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestAutoPost_NoTemplateMaps422() {
	suite.mockPostingSvc.On("AutoPost", mock.Anything, mock.Anything, suite.actorID).
		Return(nil, services.ErrNoTemplateForTrigger).Once()

	body := dto.AutoPostRequest{
		TriggerEvent: string(domain.TriggerLoanDisbursed),
		ReferenceID:  "loan-17",
		Amount:       decimal.NewFromInt(5000),
		EntryDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	w := suite.performJSON(http.MethodPost, "/api/v1/entries/auto-post", body)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFoundMaps404() {
	entryID := uuid.NewString()
	suite.mockPostingSvc.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/entries/"+entryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestPrepareEntry_ReturnsSeededBuilder() {
	builder := domain.NewEntryBuilder("JE-2026-000456")
	fy := &domain.FiscalYear{FiscalYearID: "fy-2026"}
	suite.mockPostingSvc.On("PrepareManualEntry", mock.Anything).Return(builder, fy, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/entries/new", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PreparedEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-2026-000456", resp.EntryNumber)
	suite.Equal("fy-2026", resp.FiscalYearID)
	suite.Len(resp.Lines, 2)
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesQueryParams() {
	token := "next-token-abc"
	suite.mockPostingSvc.On("ListEntries", mock.Anything, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 5 && p.NextToken != nil && *p.NextToken == token
	})).Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/entries?limit=5&nextToken="+token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPostingSvc.AssertExpectations(suite.T())
}

func TestEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
