package response

import (
	"time"

	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	AmountCents     int64  `json:"amountCents"`
}

type PaymentStatusResponse struct {
	OrderID       uuid.UUID `json:"orderId"`
	PaymentStatus string    `json:"paymentStatus"`
}

type RefundResponse struct {
	RefundID string `json:"refundId"`
	Status   string `json:"status"`
}

type NotificationJobResponse struct {
	ID            uuid.UUID  `json:"id"`
	Type          string     `json:"type"`
	Channel       string     `json:"channel"`
	Recipient     string     `json:"recipient"`
	Status        string     `json:"status"`
	Attempts      int32      `json:"attempts"`
	NextAttemptAt *time.Time `json:"nextAttemptAt,omitempty"`
	LastError     *string    `json:"lastError,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
}

func FromNotificationJobView(rm *queries.NotificationJobView) *NotificationJobResponse {
	return &NotificationJobResponse{
		ID:            rm.ID,
		Type:          rm.Type,
		Channel:       rm.Channel,
		Recipient:     rm.Recipient,
		Status:        rm.Status,
		Attempts:      rm.Attempts,
		NextAttemptAt: rm.NextAttemptAt,
		LastError:     rm.LastError,
		CreatedAt:     rm.CreatedAt,
		SentAt:        rm.SentAt,
	}
}
