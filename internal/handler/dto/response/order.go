package response

import (
	"time"

	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	ProductName    string    `json:"productName"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int32     `json:"quantity"`
}

type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	UserID            *uuid.UUID          `json:"userId,omitempty"`
	CustomerName      string              `json:"customerName"`
	Phone             string              `json:"phone"`
	Address           string              `json:"address"`
	Items             []OrderItemResponse `json:"items"`
	TotalPriceCents   int64               `json:"totalPriceCents"`
	PaymentMethod     string              `json:"paymentMethod"`
	PaymentStatus     string              `json:"paymentStatus"`
	OrderStatus       string              `json:"orderStatus"`
	CreatedAt         time.Time           `json:"createdAt"`
	PaidAt            *time.Time          `json:"paidAt,omitempty"`
	RefundRequestedAt *time.Time          `json:"refundRequestedAt,omitempty"`
	RefundedAt        *time.Time          `json:"refundedAt,omitempty"`
}

type OrderListResponse struct {
	ID              uuid.UUID `json:"id"`
	CustomerName    string    `json:"customerName"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	PaymentStatus   string    `json:"paymentStatus"`
	OrderStatus     string    `json:"orderStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromOrderView(rm *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(rm.Items))
	for _, item := range rm.Items {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}

	return &OrderResponse{
		ID:                rm.ID,
		UserID:            rm.UserID,
		CustomerName:      rm.CustomerName,
		Phone:             rm.Phone,
		Address:           rm.Address,
		Items:             items,
		TotalPriceCents:   rm.TotalPriceCents,
		PaymentMethod:     rm.PaymentMethod,
		PaymentStatus:     rm.PaymentStatus,
		OrderStatus:       rm.OrderStatus,
		CreatedAt:         rm.CreatedAt,
		PaidAt:            rm.PaidAt,
		RefundRequestedAt: rm.RefundRequestedAt,
		RefundedAt:        rm.RefundedAt,
	}
}

func FromOrderListItem(rm *queries.OrderListItem) *OrderListResponse {
	return &OrderListResponse{
		ID:              rm.ID,
		CustomerName:    rm.CustomerName,
		TotalPriceCents: rm.TotalPriceCents,
		PaymentStatus:   rm.PaymentStatus,
		OrderStatus:     rm.OrderStatus,
		CreatedAt:       rm.CreatedAt,
	}
}
