package request

type ProductRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents" binding:"required,min=0"`
	Category    string `json:"category" binding:"required,oneof=starter main dessert drink"`
	Available   bool   `json:"available"`
}
