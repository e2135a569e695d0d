package transport

import (
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProductRequest accepts quantity and mrp as JSON numbers or numeric strings,
// the way the storefront's HTML forms submit them.
type ProductRequest struct {
	Name     string    `json:"name"`
	Quantity FlexInt   `json:"quantity"`
	MRP      FlexFloat `json:"mrp"`
	PhotoURL *string   `json:"photo_url"`
}

func (r ProductRequest) Product() models.Product {
	return models.Product{
		Name:     r.Name,
		Quantity: int(r.Quantity),
		MRP:      float64(r.MRP),
		PhotoURL: r.PhotoURL,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type UserProfile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserLoginResponse struct {
	Token string      `json:"token"`
	Role  tokens.Role `json:"role"`
	User  UserProfile `json:"user"`
}

type AdminLoginResponse struct {
	Token string      `json:"token"`
	Role  tokens.Role `json:"role"`
}

type SearchResponse struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}
