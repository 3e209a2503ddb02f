package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	"github.com/sellora/retail_backoffice_app/internal/core/domain"
	portsrepo "github.com/sellora/retail_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
	"github.com/sellora/retail_backoffice_app/internal/middleware"
)

// orderService coordinates the order-fulfilment transaction: inventory
// reservation, totals computation, order and line persistence, ledger posting
// and the order-scoped export movement, committed as one unit.
type orderService struct {
	orderRepo     portsrepo.OrderRepositoryWithTx
	inventoryRepo portsrepo.InventoryRepositoryFacade
	movementRepo  portsrepo.MovementRepositoryFacade
	catalogRepo   portsrepo.CatalogRepositoryFacade
	ledgerSvc     portssvc.LedgerSvcFacade
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryWithTx,
	inventoryRepo portsrepo.InventoryRepositoryFacade,
	movementRepo portsrepo.MovementRepositoryFacade,
	catalogRepo portsrepo.CatalogRepositoryFacade,
	ledgerSvc portssvc.LedgerSvcFacade,
) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		catalogRepo:   catalogRepo,
		ledgerSvc:     ledgerSvc,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// CreateOrder validates the request, then runs the full fulfilment
// transaction. Any failure after the first reservation rolls the whole
// transaction back, so no partial state is ever visible.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, createrID string) (*dto.OrderDetailResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Validation happens before any mutation.
	totals, err := ComputeOrderTotals(req.Items, req.Discount, req.Payments)
	if err != nil {
		return nil, err
	}

	if _, err := s.catalogRepo.FindStoreByID(ctx, req.StoreID); err != nil {
		return nil, fmt.Errorf("store %s: %w", req.StoreID, err)
	}
	if req.CustomerID != nil {
		if _, err := s.catalogRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer %s: %w", *req.CustomerID, err)
		}
	}

	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.catalogRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, apperrors.ErrNotFound)
		}
	}

	now := time.Now()
	orderID := uuid.NewString()

	order := domain.Order{
		OrderID:        orderID,
		StoreID:        req.StoreID,
		CreaterID:      createrID,
		CustomerID:     req.CustomerID,
		Quantity:       totals.TotalQuantity,
		TotalAmount:    totals.NetAmount,
		Discount:       totals.Discount,
		PayedAmount:    totals.PaidAmount,
		RemainAmount:   totals.RemainAmount,
		OrderStatus:    totals.OrderStatus,
		PaymentStatus:  totals.PaymentStatus,
		ShippingStatus: domain.ShippingProcessing,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createrID,
			LastUpdatedAt: now,
			LastUpdatedBy: createrID,
		},
	}

	lines := make([]domain.OrderLine, 0, len(req.Items))
	movementLines := make([]domain.StockMovementLine, 0, len(req.Items))
	movementID := uuid.NewString()
	for _, item := range req.Items {
		lines = append(lines, domain.OrderLine{
			OrderLineID: uuid.NewString(),
			OrderID:     orderID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
		})
		movementLines = append(movementLines, domain.StockMovementLine{
			LineID:     uuid.NewString(),
			MovementID: movementID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		})
	}

	payments := make([]domain.PaymentRecord, 0, len(req.Payments))
	postings := make([]portssvc.LedgerPosting, 0, len(req.Payments))
	for _, payment := range req.Payments {
		payments = append(payments, domain.PaymentRecord{
			PaymentID:     uuid.NewString(),
			OrderID:       orderID,
			Amount:        payment.Amount,
			PaymentMethod: payment.PaymentMethod,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createrID,
				LastUpdatedAt: now,
				LastUpdatedBy: createrID,
			},
		})
		postings = append(postings, portssvc.LedgerPosting{
			Amount:        payment.Amount,
			PaymentMethod: payment.PaymentMethod,
			Note:          req.Note,
		})
	}

	var ledgerEntries []domain.LedgerEntry
	err = s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Reserve in sorted product order so concurrent orders on
		// overlapping products acquire row locks in the same sequence.
		for _, item := range sortedItems(req.Items) {
			if err := s.inventoryRepo.ReserveStock(ctx, tx, req.StoreID, item.ProductID, item.Quantity, createrID, now); err != nil {
				return fmt.Errorf("product %s: %w", item.ProductID, err)
			}
		}

		if err := s.orderRepo.SaveOrder(ctx, tx, order, lines, payments); err != nil {
			return err
		}

		entries, err := s.ledgerSvc.PostEntriesTx(ctx, tx, &orderID, req.StoreID, createrID, postings, domain.EntryThu, customerLabel(req.CustomerID), now)
		if err != nil {
			return err
		}
		ledgerEntries = entries

		movement := domain.StockMovement{
			MovementID:    movementID,
			OrderID:       &orderID,
			FromStoreID:   req.StoreID,
			CreaterID:     createrID,
			TotalQuantity: totals.TotalQuantity,
			Status:        domain.MovementCompleted,
			Type:          domain.MovementExport,
			Note:          req.Note,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createrID,
				LastUpdatedAt: now,
				LastUpdatedBy: createrID,
			},
		}
		return s.movementRepo.SaveMovement(ctx, tx, movement, movementLines)
	})
	if err != nil {
		return nil, err
	}

	s.ledgerSvc.InvalidateSnapshot(ctx)
	logger.Info("Order created", "orderID", orderID, "storeID", req.StoreID, "netAmount", totals.NetAmount.String())

	return &dto.OrderDetailResponse{
		Order:         dto.ToOrderResponse(&order),
		Lines:         dto.ToOrderLineResponses(lines),
		Payments:      dto.ToPaymentResponses(payments),
		LedgerEntries: dto.ToLedgerEntryResponses(ledgerEntries),
	}, nil
}

// CancelOrder is the exact inverse of CreateOrder: stock goes back to the
// originating store, ledger entries are reversed and the export movement is
// cancelled. The order row lock makes a second cancellation fail with
// ErrConflict instead of double-releasing stock.
func (s *orderService) CancelOrder(ctx context.Context, orderID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.OrderStatus == domain.OrderCancelled || order.IsDeleted {
			return fmt.Errorf("%w: order %s is already cancelled", apperrors.ErrConflict, orderID)
		}

		lines, err := s.orderRepo.FindOrderLines(ctx, orderID)
		if err != nil {
			return err
		}
		sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
		for _, line := range lines {
			if err := s.inventoryRepo.ReleaseStock(ctx, tx, order.StoreID, line.ProductID, line.Quantity, userID, now); err != nil {
				return err
			}
		}

		// The export note is cancelled before the ledger reversal so the
		// aggregate row stays the last lock taken.
		movement, err := s.movementRepo.FindMovementByOrderIDForUpdate(ctx, tx, orderID)
		if err == nil && movement.Status != domain.MovementCancelled {
			if err := s.movementRepo.UpdateMovementStatus(ctx, tx, movement.MovementID, domain.MovementCancelled, userID, now); err != nil {
				return err
			}
		} else if err != nil && !isNotFound(err) {
			return err
		}

		if err := s.ledgerSvc.ReverseOrderEntriesTx(ctx, tx, orderID, userID, now); err != nil {
			return err
		}

		order.OrderStatus = domain.OrderCancelled
		order.PaymentStatus = domain.PaymentCancelled
		order.ShippingStatus = domain.ShippingCancelled
		order.IsDeleted = true
		order.LastUpdatedAt = now
		order.LastUpdatedBy = userID
		return s.orderRepo.UpdateOrder(ctx, tx, *order)
	})
	if err != nil {
		return err
	}

	s.ledgerSvc.InvalidateSnapshot(ctx)
	logger.Info("Order cancelled", "orderID", orderID)
	return nil
}

// AddPayment appends a payment instrument to an open order and posts the
// matching THU entry in the same transaction.
func (s *orderService) AddPayment(ctx context.Context, orderID string, req dto.AddPaymentRequest, userID string) (*domain.Order, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}

	now := time.Now()
	var updated *domain.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.OrderStatus == domain.OrderCancelled || order.IsDeleted {
			return fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, orderID)
		}
		if req.Amount.GreaterThan(order.RemainAmount) {
			return fmt.Errorf("%w: paid %s against %s due", apperrors.ErrOverpayment, req.Amount.String(), order.RemainAmount.String())
		}

		payment := domain.PaymentRecord{
			PaymentID:     uuid.NewString(),
			OrderID:       orderID,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.orderRepo.SavePayment(ctx, tx, payment); err != nil {
			return err
		}

		if _, err := s.ledgerSvc.PostEntriesTx(ctx, tx, &orderID, order.StoreID, userID,
			[]portssvc.LedgerPosting{{Amount: req.Amount, PaymentMethod: req.PaymentMethod}},
			domain.EntryThu, customerLabel(order.CustomerID), now); err != nil {
			return err
		}

		order.PayedAmount = order.PayedAmount.Add(req.Amount)
		order.RemainAmount = order.RemainAmount.Sub(req.Amount)
		if order.RemainAmount.IsZero() {
			order.OrderStatus = domain.OrderCompleted
			order.PaymentStatus = domain.PaymentPaid
		}
		order.LastUpdatedAt = now
		order.LastUpdatedBy = userID
		if err := s.orderRepo.UpdateOrder(ctx, tx, *order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.ledgerSvc.InvalidateSnapshot(ctx)
	return updated, nil
}

// UpdateOrderStatus performs a guarded status transition. Transitions out of
// cancelled are rejected, and cancellation itself must go through CancelOrder
// so stock and ledger state are compensated.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest, userID string) (*domain.Order, error) {
	if req.OrderStatus == domain.OrderCancelled {
		return nil, fmt.Errorf("%w: use the cancel operation to cancel an order", apperrors.ErrValidation)
	}

	now := time.Now()
	var updated *domain.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.OrderStatus == domain.OrderCancelled || order.IsDeleted {
			return fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, orderID)
		}

		order.OrderStatus = req.OrderStatus
		if req.PaymentStatus != nil {
			order.PaymentStatus = *req.PaymentStatus
		}
		order.LastUpdatedAt = now
		order.LastUpdatedBy = userID
		if err := s.orderRepo.UpdateOrder(ctx, tx, *order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateShippingStatus moves the independently tracked shipping status.
func (s *orderService) UpdateShippingStatus(ctx context.Context, orderID string, req dto.UpdateShippingStatusRequest, userID string) (*domain.Order, error) {
	now := time.Now()
	var updated *domain.Order
	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.OrderStatus == domain.OrderCancelled || order.IsDeleted || order.ShippingStatus == domain.ShippingCancelled {
			return fmt.Errorf("%w: order %s is cancelled", apperrors.ErrConflict, orderID)
		}

		order.ShippingStatus = req.ShippingStatus
		order.LastUpdatedAt = now
		order.LastUpdatedBy = userID
		if err := s.orderRepo.UpdateOrder(ctx, tx, *order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetOrder reads a committed order with its lines and payments.
func (s *orderService) GetOrder(ctx context.Context, orderID string) (*dto.OrderDetailResponse, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	lines, err := s.orderRepo.FindOrderLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.orderRepo.FindPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &dto.OrderDetailResponse{
		Order:    dto.ToOrderResponse(order),
		Lines:    dto.ToOrderLineResponses(lines),
		Payments: dto.ToPaymentResponses(payments),
	}, nil
}

// sortedItems returns a copy of the items ordered by product id, the lock
// acquisition order shared by every inventory-mutating operation.
func sortedItems(items []dto.OrderItemRequest) []dto.OrderItemRequest {
	sorted := make([]dto.OrderItemRequest, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })
	return sorted
}

func customerLabel(customerID *string) string {
	if customerID == nil {
		return "walk-in customer"
	}
	return "customer " + *customerID
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
