package dto

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required" example:"active"`
}

type DivisionCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}
