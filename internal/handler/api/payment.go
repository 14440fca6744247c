package api

import (
	"errors"
	"net/http"

	reqdto "restaurant-backend/internal/handler/dto/request"
	resdto "restaurant-backend/internal/handler/dto/response"
	"restaurant-backend/internal/usecase/commands"
	"restaurant-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	refundCommands  commands.RefundCommands
	orderQueries    queries.OrderQueries
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, refundCommands commands.RefundCommands, orderQueries queries.OrderQueries) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		refundCommands:  refundCommands,
		orderQueries:    orderQueries,
	}
}

// @Summary Create a payment intent for an order
// @Description Returns the client secret the storefront passes to the card form. Safe to retry.
// @Tags payments
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.PaymentIntentResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /orders/{id}/payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	result, err := h.paymentCommands.CreatePaymentIntent(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, commands.ErrNotCardOrder):
			c.JSON(http.StatusConflict, gin.H{"error": "Order is not payable by card"})
		case errors.Is(err, commands.ErrOrderNotPayable):
			c.JSON(http.StatusConflict, gin.H{"error": "Order is not payable"})
		case errors.Is(err, commands.ErrPaymentExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Payment window expired"})
		case errors.Is(err, commands.ErrGatewayFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.PaymentIntentResponse{
		PaymentIntentID: result.PaymentIntentID,
		ClientSecret:    result.ClientSecret,
		AmountCents:     result.AmountCents,
	})
}

// @Summary Get an order's payment status
// @Description Polled by the storefront after checkout; the status flips when the webhook lands.
// @Tags payments
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.PaymentStatusResponse
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/payment [get]
func (h *PaymentHandler) GetStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.PaymentStatusResponse{
		OrderID:       view.ID,
		PaymentStatus: view.PaymentStatus,
	})
}

// @Summary Refund a paid order
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.RefundRequest false "Refund amount, omit for full refund"
// @Success 200 {object} resdto.RefundResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/orders/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req reqdto.RefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	result, err := h.refundCommands.RefundOrder(c.Request.Context(), orderID, req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, commands.ErrOrderAlreadyRefunded):
			c.JSON(http.StatusConflict, gin.H{"error": "Order already refunded"})
		case errors.Is(err, commands.ErrOrderNotRefundable):
			c.JSON(http.StatusConflict, gin.H{"error": "Order is not refundable"})
		case errors.Is(err, commands.ErrInvalidRefundAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid refund amount"})
		case errors.Is(err, commands.ErrGatewayFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.RefundResponse{
		RefundID: result.RefundID,
		Status:   result.Status,
	})
}
