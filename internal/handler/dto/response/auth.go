package response

import (
	"time"

	"restaurant-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type RegisterResponse struct {
	UserID uuid.UUID `json:"userId"`
}

type LoginResponse struct {
	UserID uuid.UUID `json:"userId"`
	Token  string    `json:"token"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func FromAuthorizedUser(rm *queries.AuthorizedUser) *UserResponse {
	return &UserResponse{
		ID:          rm.ID,
		Email:       rm.Email,
		Name:        rm.Name,
		Role:        rm.Role,
		LastLoginAt: rm.LastLoginAt,
		CreatedAt:   rm.CreatedAt,
	}
}
