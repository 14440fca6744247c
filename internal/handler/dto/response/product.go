package response

import (
	"time"

	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Category    string    `json:"category"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromProductView(rm *queries.ProductView) *ProductResponse {
	return &ProductResponse{
		ID:          rm.ID,
		Name:        rm.Name,
		Description: rm.Description,
		PriceCents:  rm.PriceCents,
		Category:    rm.Category,
		Available:   rm.Available,
		CreatedAt:   rm.CreatedAt,
		UpdatedAt:   rm.UpdatedAt,
	}
}
