package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/core/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.LedgerSvcFacade
	storeID        string
	userID         string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, nil)
	suite.storeID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func zeroAggregate() *domain.AggregateLedger {
	return &domain.AggregateLedger{
		LedgerID:     domain.AggregateLedgerID,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		CashBalance:  decimal.Zero,
		BankBalance:  decimal.Zero,
	}
}

func (suite *LedgerServiceTestSuite) TestPostEntriesTx_AppliesAllPostingsToAggregate() {
	ctx := context.Background()
	now := time.Now()
	orderID := uuid.NewString()
	postings := []portssvc.LedgerPosting{
		{Amount: decimal.NewFromInt(100), PaymentMethod: domain.Cash},
		{Amount: decimal.NewFromInt(50), PaymentMethod: domain.Bank},
	}

	suite.mockLedgerRepo.On("SaveEntry", ctx, nil, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Status == domain.EntryCompleted && e.Type == domain.EntryThu && e.OrderID != nil && *e.OrderID == orderID
	})).Return(nil).Twice()
	suite.mockLedgerRepo.On("GetAggregateForUpdate", ctx, nil).Return(zeroAggregate(), nil).Once()
	suite.mockLedgerRepo.On("UpdateAggregate", ctx, nil, mock.MatchedBy(func(a domain.AggregateLedger) bool {
		return a.TotalIncome.Equal(decimal.NewFromInt(150)) &&
			a.CashBalance.Equal(decimal.NewFromInt(100)) &&
			a.BankBalance.Equal(decimal.NewFromInt(50)) &&
			a.TotalExpense.IsZero()
	})).Return(nil).Once()

	entries, err := suite.service.PostEntriesTx(ctx, nil, &orderID, suite.storeID, suite.userID, postings, domain.EntryThu, "customer x", now)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntriesTx_ChiDecreasesBalance() {
	ctx := context.Background()
	postings := []portssvc.LedgerPosting{
		{Amount: decimal.NewFromInt(70), PaymentMethod: domain.Cash, Note: "rent"},
	}

	suite.mockLedgerRepo.On("SaveEntry", ctx, nil, mock.AnythingOfType("domain.LedgerEntry")).Return(nil).Once()
	suite.mockLedgerRepo.On("GetAggregateForUpdate", ctx, nil).Return(zeroAggregate(), nil).Once()
	suite.mockLedgerRepo.On("UpdateAggregate", ctx, nil, mock.MatchedBy(func(a domain.AggregateLedger) bool {
		return a.TotalExpense.Equal(decimal.NewFromInt(70)) &&
			a.CashBalance.Equal(decimal.NewFromInt(-70)) &&
			a.TotalIncome.IsZero()
	})).Return(nil).Once()

	_, err := suite.service.PostEntriesTx(ctx, nil, nil, suite.storeID, suite.userID, postings, domain.EntryChi, "landlord", time.Now())

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntriesTx_EmptyPostingsSkipAggregate() {
	ctx := context.Background()

	entries, err := suite.service.PostEntriesTx(ctx, nil, nil, suite.storeID, suite.userID, nil, domain.EntryThu, "", time.Now())

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "GetAggregateForUpdate", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntriesTx_RejectsInvalidPosting() {
	ctx := context.Background()

	_, err := suite.service.PostEntriesTx(ctx, nil, nil, suite.storeID, suite.userID,
		[]portssvc.LedgerPosting{{Amount: decimal.NewFromInt(-5), PaymentMethod: domain.Cash}},
		domain.EntryThu, "", time.Now())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntryTx_RevertsAggregateExactlyOnce() {
	ctx := context.Background()
	now := time.Now()
	entryID := uuid.NewString()
	entry := &domain.LedgerEntry{
		EntryID:       entryID,
		StoreID:       suite.storeID,
		TotalAmount:   decimal.NewFromInt(100),
		PaymentMethod: domain.Cash,
		Type:          domain.EntryThu,
		Status:        domain.EntryCompleted,
	}
	aggregate := zeroAggregate()
	aggregate.TotalIncome = decimal.NewFromInt(100)
	aggregate.CashBalance = decimal.NewFromInt(100)

	suite.mockLedgerRepo.On("FindEntryByIDForUpdate", ctx, nil, entryID).Return(entry, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntryStatus", ctx, nil, entryID, domain.EntryCancelled, suite.userID, now).Return(nil).Once()
	suite.mockLedgerRepo.On("GetAggregateForUpdate", ctx, nil).Return(aggregate, nil).Once()
	suite.mockLedgerRepo.On("UpdateAggregate", ctx, nil, mock.MatchedBy(func(a domain.AggregateLedger) bool {
		return a.TotalIncome.IsZero() && a.CashBalance.IsZero()
	})).Return(nil).Once()

	err := suite.service.ReverseEntryTx(ctx, nil, entryID, suite.userID, now)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntryTx_CancelledEntryIsNoop() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.LedgerEntry{
		EntryID:       entryID,
		TotalAmount:   decimal.NewFromInt(100),
		PaymentMethod: domain.Cash,
		Type:          domain.EntryThu,
		Status:        domain.EntryCancelled,
	}

	suite.mockLedgerRepo.On("FindEntryByIDForUpdate", ctx, nil, entryID).Return(entry, nil).Once()

	err := suite.service.ReverseEntryTx(ctx, nil, entryID, suite.userID, time.Now())

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "UpdateEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "UpdateAggregate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseOrderEntriesTx_SkipsCancelledEntries() {
	ctx := context.Background()
	now := time.Now()
	orderID := uuid.NewString()
	completed := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		OrderID:       &orderID,
		TotalAmount:   decimal.NewFromInt(40),
		PaymentMethod: domain.Bank,
		Type:          domain.EntryThu,
		Status:        domain.EntryCompleted,
	}
	cancelled := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		OrderID:       &orderID,
		TotalAmount:   decimal.NewFromInt(60),
		PaymentMethod: domain.Cash,
		Type:          domain.EntryThu,
		Status:        domain.EntryCancelled,
	}
	aggregate := zeroAggregate()
	aggregate.TotalIncome = decimal.NewFromInt(40)
	aggregate.BankBalance = decimal.NewFromInt(40)

	suite.mockLedgerRepo.On("FindEntriesByOrderIDForUpdate", ctx, nil, orderID).
		Return([]domain.LedgerEntry{completed, cancelled}, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntryStatus", ctx, nil, completed.EntryID, domain.EntryCancelled, suite.userID, now).Return(nil).Once()
	suite.mockLedgerRepo.On("GetAggregateForUpdate", ctx, nil).Return(aggregate, nil).Once()
	suite.mockLedgerRepo.On("UpdateAggregate", ctx, nil, mock.MatchedBy(func(a domain.AggregateLedger) bool {
		return a.TotalIncome.IsZero() && a.BankBalance.IsZero()
	})).Return(nil).Once()

	err := suite.service.ReverseOrderEntriesTx(ctx, nil, orderID, suite.userID, now)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_PostsAdHocNote() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{
		StoreID:       suite.storeID,
		TotalAmount:   decimal.NewFromInt(25),
		PaymentMethod: domain.Bank,
		Type:          domain.EntryChi,
		Note:          "electricity",
		Counterparty:  "utility co",
	}

	suite.mockLedgerRepo.On("SaveEntry", mock.Anything, nil, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.OrderID == nil && e.Type == domain.EntryChi && e.Note == "electricity" && e.Counterparty == "utility co"
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("GetAggregateForUpdate", mock.Anything, nil).Return(zeroAggregate(), nil).Once()
	suite.mockLedgerRepo.On("UpdateAggregate", mock.Anything, nil, mock.AnythingOfType("domain.AggregateLedger")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.EntryCompleted, entry.Status)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetAggregate_FallsBackToRepository() {
	ctx := context.Background()
	aggregate := zeroAggregate()
	aggregate.TotalIncome = decimal.NewFromInt(500)

	suite.mockLedgerRepo.On("GetAggregate", ctx).Return(aggregate, nil).Once()

	got, err := suite.service.GetAggregate(ctx)

	suite.Require().NoError(err)
	suite.True(got.TotalIncome.Equal(decimal.NewFromInt(500)))
}

func (suite *LedgerServiceTestSuite) TestListEntries_DefaultsLimit() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("ListEntriesByStore", ctx, suite.storeID, 20, (*string)(nil)).
		Return([]domain.LedgerEntry{}, nil, nil).Once()

	page, err := suite.service.ListEntries(ctx, suite.storeID, dto.ListLedgerEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(page.Entries)
	suite.Nil(page.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
