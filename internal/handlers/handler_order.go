package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sellora/retail_backoffice_app/internal/apperrors"
	portssvc "github.com/sellora/retail_backoffice_app/internal/core/ports/services"
	"github.com/sellora/retail_backoffice_app/internal/dto"
	"github.com/sellora/retail_backoffice_app/internal/middleware"
)

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(orderService portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: orderService}
}

func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for CreateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	createrID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", createrID), slog.String("store_id", req.StoreID))

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, createrID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Order created successfully", slog.String("order_id", order.Order.OrderID))
	c.JSON(http.StatusCreated, order)
}

func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Order not found", slog.String("order_id", orderID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		logger.Error("Failed to get order from service", slog.String("error", err.Error()), slog.String("order_id", orderID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *orderHandler) cancelOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("order_id", orderID), slog.String("user_id", userID))

	if err := h.orderService.CancelOrder(c.Request.Context(), orderID, userID); err != nil {
		respondWithServiceError(c, logger, err, "Failed to cancel order")
		return
	}

	logger.Info("Order cancelled successfully")
	c.JSON(http.StatusOK, gin.H{"orderID": orderID, "status": "cancelled"})
}

func (h *orderHandler) addPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for AddPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("order_id", orderID), slog.String("user_id", userID))

	order, err := h.orderService.AddPayment(c.Request.Context(), orderID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to add payment")
		return
	}

	logger.Info("Payment added successfully", slog.String("payment_status", string(order.PaymentStatus)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateOrderStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("order_id", orderID), slog.String("user_id", userID))

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to update order status")
		return
	}

	logger.Info("Order status updated", slog.String("order_status", string(order.OrderStatus)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

func (h *orderHandler) updateShippingStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.UpdateShippingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for UpdateShippingStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("order_id", orderID), slog.String("user_id", userID))

	order, err := h.orderService.UpdateShippingStatus(c.Request.Context(), orderID, req, userID)
	if err != nil {
		respondWithServiceError(c, logger, err, "Failed to update shipping status")
		return
	}

	logger.Info("Shipping status updated", slog.String("shipping_status", string(order.ShippingStatus)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// registerOrderRoutes registers order specific routes
func registerOrderRoutes(group *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	orderHandler := newOrderHandler(orderService)

	orders := group.Group("/orders")
	{
		orders.POST("", orderHandler.createOrder)
		orders.GET("/:orderID", orderHandler.getOrder)
		orders.POST("/:orderID/cancel", orderHandler.cancelOrder)
		orders.POST("/:orderID/payments", orderHandler.addPayment)
		orders.PUT("/:orderID/status", orderHandler.updateOrderStatus)
		orders.PUT("/:orderID/shipping-status", orderHandler.updateShippingStatus)
	}
}
