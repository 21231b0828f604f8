package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=80"`
	LastName  string `json:"lastname" validate:"required,min=2,max=80"`
	NIT       string `json:"nit" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Cellphone string `json:"cellphone" validate:"omitempty,max=30"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Response DTOs

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastname"`
	NIT       string    `json:"nit"`
	Email     string    `json:"email"`
	Cellphone string    `json:"cellphone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
