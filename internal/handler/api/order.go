package api

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant-backend/internal/domain/user"
	reqdto "restaurant-backend/internal/handler/dto/request"
	resdto "restaurant-backend/internal/handler/dto/response"
	"restaurant-backend/internal/handler/middleware"
	"restaurant-backend/internal/usecase/commands"
	"restaurant-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
}

func NewOrderHandler(orderCommands commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
	}
}

// @Summary Create an order
// @Description Guest checkout works without a token; with a token the order is attached to the account.
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOrderRequest true "Order"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	input := commands.CreateOrderInput{
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		input.UserID = &userID
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, commands.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	view, err := h.orderCommands.CreateOrder(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown product in order"})
		case errors.Is(err, commands.ErrProductUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not available"})
		case errors.Is(err, commands.ErrOrderValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order data"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromOrderView(view))
}

// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !canAccessOrder(c, view) {
		// Hide existence from other accounts
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary List own orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.OrderListResponse
// @Router /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, offset := pageParams(c)
	items, err := h.orderQueries.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, toOrderList(items))
}

// @Summary List all orders
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by order status"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.OrderListResponse
// @Router /admin/orders [get]
func (h *OrderHandler) ListAll(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	limit, offset := pageParams(c)
	items, err := h.orderQueries.ListAll(c.Request.Context(), status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, toOrderList(items))
}

// @Summary Update order status
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req reqdto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderCommands.UpdateOrderStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, commands.ErrInvalidOrderStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List an order's notification jobs
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} resdto.NotificationJobResponse
// @Router /admin/orders/{id}/notifications [get]
func (h *OrderHandler) ListNotifications(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	views, err := h.orderQueries.NotificationsByOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	result := make([]*resdto.NotificationJobResponse, 0, len(views))
	for _, view := range views {
		result = append(result, resdto.FromNotificationJobView(view))
	}
	c.JSON(http.StatusOK, result)
}

// canAccessOrder allows admins, the owning account, and anyone holding
// the id of a guest order.
func canAccessOrder(c *gin.Context, view *queries.OrderView) bool {
	if view.UserID == nil {
		return true
	}
	if role, ok := middleware.GetUserRole(c); ok && role == user.RoleAdmin {
		return true
	}
	userID, ok := middleware.GetUserID(c)
	return ok && userID == *view.UserID
}

func toOrderList(items []*queries.OrderListItem) []*resdto.OrderListResponse {
	result := make([]*resdto.OrderListResponse, 0, len(items))
	for _, item := range items {
		result = append(result, resdto.FromOrderListItem(item))
	}
	return result
}

func pageParams(c *gin.Context) (int32, int32) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 32)
	offset, _ := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 32)
	return int32(limit), int32(offset)
}
