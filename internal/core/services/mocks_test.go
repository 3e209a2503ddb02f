package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
)

// --- Mock OrderRepository ---

type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryWithTx = (*MockOrderRepository)(nil)

// WithTransaction runs the callback directly with a nil tx; unit tests
// exercise the transactional logic without a live database.
func (m *MockOrderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, tx pgx.Tx, order domain.Order, lines []domain.OrderLine, payments []domain.PaymentRecord) error {
	args := m.Called(ctx, tx, order, lines, payments)
	return args.Error(0)
}

func (m *MockOrderRepository) SavePayment(ctx context.Context, tx pgx.Tx, payment domain.PaymentRecord) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderLine), args.Error(1)
}

func (m *MockOrderRepository) FindPaymentsByOrderID(ctx context.Context, orderID string) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRecord), args.Error(1)
}

// --- Mock InventoryRepository ---

type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) ReserveStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, storeID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) ReleaseStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, storeID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) ProvisionStock(ctx context.Context, tx pgx.Tx, storeID, productID string, quantity int64, userID string, now time.Time) error {
	args := m.Called(ctx, tx, storeID, productID, quantity, userID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindInventory(ctx context.Context, storeID, productID string) (*domain.InventoryRecord, error) {
	args := m.Called(ctx, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryRecord), args.Error(1)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntryStatus(ctx context.Context, tx pgx.Tx, entryID string, status domain.EntryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, entryID, status, userID, now)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) GetAggregateForUpdate(ctx context.Context, tx pgx.Tx) (*domain.AggregateLedger, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateLedger), args.Error(1)
}

func (m *MockLedgerRepository) UpdateAggregate(ctx context.Context, tx pgx.Tx, aggregate domain.AggregateLedger) error {
	args := m.Called(ctx, tx, aggregate)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetAggregate(ctx context.Context) (*domain.AggregateLedger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateLedger), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByStore(ctx context.Context, storeID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, storeID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

// --- Mock MovementRepository ---

type MockMovementRepository struct {
	mock.Mock
}

var _ portsrepo.MovementRepositoryWithTx = (*MockMovementRepository)(nil)

func (m *MockMovementRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return fn(ctx, nil)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, tx pgx.Tx, movement domain.StockMovement, lines []domain.StockMovementLine) error {
	args := m.Called(ctx, tx, movement, lines)
	return args.Error(0)
}

func (m *MockMovementRepository) FindMovementByIDForUpdate(ctx context.Context, tx pgx.Tx, movementID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, tx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementByOrderIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) UpdateMovementStatus(ctx context.Context, tx pgx.Tx, movementID string, status domain.MovementStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, movementID, status, userID, now)
	return args.Error(0)
}

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.StockMovement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementLines(ctx context.Context, movementID string) ([]domain.StockMovementLine, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovementLine), args.Error(1)
}

// --- Mock CatalogRepository ---

type MockCatalogRepository struct {
	mock.Mock
}

var _ portsrepo.CatalogRepositoryFacade = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockCatalogRepository) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockCatalogRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

// --- Mock LedgerService (as used by the order coordinator) ---

type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) PostEntriesTx(ctx context.Context, tx pgx.Tx, orderID *string, storeID, createrID string, postings []portssvc.LedgerPosting, entryType domain.EntryType, counterparty string, now time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, orderID, storeID, createrID, postings, entryType, counterparty, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ReverseEntryTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockLedgerService) ReverseOrderEntriesTx(ctx context.Context, tx pgx.Tx, orderID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, orderID, userID, now)
	return args.Error(0)
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, createrID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, createrID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, entryID string, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

func (m *MockLedgerService) InvalidateSnapshot(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockLedgerService) GetAggregate(ctx context.Context) (*domain.AggregateLedger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateLedger), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, storeID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	args := m.Called(ctx, storeID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLedgerEntriesResponse), args.Error(1)
}
