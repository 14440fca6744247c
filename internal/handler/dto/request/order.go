package request

import (
	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	CustomerName  string             `json:"customerName" binding:"required"`
	Phone         string             `json:"phone" binding:"required"`
	Address       string             `json:"address" binding:"required"`
	PaymentMethod string             `json:"paymentMethod" binding:"required,oneof=stripe cash"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress done canceled"`
}

type RefundRequest struct {
	// Omit for a full refund.
	AmountCents *int64 `json:"amountCents" binding:"omitempty,min=1"`
}
