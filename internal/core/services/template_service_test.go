package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/core/services"
	"github.com/awqafio/waqf_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TemplateRepository ---
type MockTemplateRepository struct {
	mock.Mock
}

var _ portsrepo.TemplateRepositoryFacade = (*MockTemplateRepository)(nil)

func (m *MockTemplateRepository) FindActiveByTrigger(ctx context.Context, trigger domain.TriggerEvent) ([]domain.AutoPostingTemplate, error) {
	args := m.Called(ctx, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoPostingTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.AutoPostingTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutoPostingTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListTemplates(ctx context.Context) ([]domain.AutoPostingTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutoPostingTemplate), args.Error(1)
}

func (m *MockTemplateRepository) SaveTemplate(ctx context.Context, template domain.AutoPostingTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) SetTemplateActive(ctx context.Context, templateID string, active bool, userID string, now time.Time) error {
	args := m.Called(ctx, templateID, active, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TemplateServiceTestSuite struct {
	suite.Suite
	mockTemplateRepo *MockTemplateRepository
	service          portssvc.TemplateSvcFacade
	userID           string
}

func (suite *TemplateServiceTestSuite) SetupTest() {
	suite.mockTemplateRepo = new(MockTemplateRepository)
	suite.service = services.NewTemplateService(suite.mockTemplateRepo)
	suite.userID = uuid.NewString()
}

func pctReq(code string, pct int64) dto.TemplateSplitRequest {
	d := decimal.NewFromInt(pct)
	return dto.TemplateSplitRequest{AccountCode: code, Percentage: &d}
}

func (suite *TemplateServiceTestSuite) validCreateRequest() dto.CreateTemplateRequest {
	return dto.CreateTemplateRequest{
		TriggerEvent: string(domain.TriggerRentalPaymentReceived),
		TemplateName: "Rental income distribution",
		DebitAccounts: []dto.TemplateSplitRequest{
			pctReq("1010", 100),
		},
		CreditAccounts: []dto.TemplateSplitRequest{
			pctReq("4100", 70),
			pctReq("3000", 30),
		},
		Priority: 5,
	}
}

// --- CreateTemplate ---

func (suite *TemplateServiceTestSuite) TestCreateTemplate_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.AnythingOfType("domain.AutoPostingTemplate")).Return(nil).Once()

	template, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(template)
	suite.NotEmpty(template.TemplateID)
	suite.Equal(domain.TriggerRentalPaymentReceived, template.TriggerEvent)
	suite.True(template.IsActive, "Templates default to active")
	suite.Equal(5, template.Priority)
	suite.Equal(suite.userID, template.CreatedBy)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_InactiveOnRequest() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	inactive := false
	req.IsActive = &inactive

	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.MatchedBy(func(t domain.AutoPostingTemplate) bool {
		return !t.IsActive
	})).Return(nil).Once()

	template, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(template.IsActive)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_PercentagesMustSum() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.CreditAccounts = []dto.TemplateSplitRequest{pctReq("4100", 60)}

	_, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, domain.ErrTemplatePercentageSum)
	suite.mockTemplateRepo.AssertNotCalled(suite.T(), "SaveTemplate", mock.Anything, mock.Anything)
}

func (suite *TemplateServiceTestSuite) TestCreateTemplate_UnknownTriggerAllowed() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.TriggerEvent = "charity_gala_income"

	suite.mockTemplateRepo.On("SaveTemplate", ctx, mock.Anything).Return(nil).Once()

	template, err := suite.service.CreateTemplate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TriggerEvent("charity_gala_income"), template.TriggerEvent)
}

// --- ResolveForTrigger ---

func (suite *TemplateServiceTestSuite) TestResolveForTrigger_FirstRowWins() {
	ctx := context.Background()
	// The repository returns templates already ordered by priority descending
	// then template ID ascending.
	high := domain.AutoPostingTemplate{TemplateID: "a-template", Priority: 10, IsActive: true}
	low := domain.AutoPostingTemplate{TemplateID: "b-template", Priority: 1, IsActive: true}

	suite.mockTemplateRepo.On("FindActiveByTrigger", ctx, domain.TriggerRentalPaymentReceived).
		Return([]domain.AutoPostingTemplate{high, low}, nil).Once()

	template, err := suite.service.ResolveForTrigger(ctx, domain.TriggerRentalPaymentReceived)

	suite.Require().NoError(err)
	suite.Equal("a-template", template.TemplateID)
}

func (suite *TemplateServiceTestSuite) TestResolveForTrigger_NoMatch() {
	ctx := context.Background()

	suite.mockTemplateRepo.On("FindActiveByTrigger", ctx, domain.TriggerLoanDisbursed).
		Return([]domain.AutoPostingTemplate{}, nil).Once()

	_, err := suite.service.ResolveForTrigger(ctx, domain.TriggerLoanDisbursed)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoTemplateForTrigger)
}

// --- SetTemplateActive ---

func (suite *TemplateServiceTestSuite) TestSetTemplateActive() {
	ctx := context.Background()
	templateID := uuid.NewString()

	suite.mockTemplateRepo.On("SetTemplateActive", ctx, templateID, false, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.SetTemplateActive(ctx, templateID, false, suite.userID)

	suite.Require().NoError(err)
	suite.mockTemplateRepo.AssertExpectations(suite.T())
}

func (suite *TemplateServiceTestSuite) TestSetTemplateActive_NotFound() {
	ctx := context.Background()
	templateID := uuid.NewString()

	suite.mockTemplateRepo.On("SetTemplateActive", ctx, templateID, true, suite.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.SetTemplateActive(ctx, templateID, true, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestTemplateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateServiceTestSuite))
}
