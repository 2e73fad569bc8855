package dto

import (
	"time"

	"github.com/devconnector/api/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required" msg:"Name is required"`
	Email    string `json:"email" form:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" form:"password" validate:"min=6" msg:"Please enter a password with 6 or more characters"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" form:"password" validate:"required" msg:"Password is required"`
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	Token string `json:"token"`
}

// MessageResponse is the body of every single-message reply.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is a user without credentials.
type UserResponse struct {
	ID     string    `json:"_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// NewUserResponse strips the password hash from a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
		Date:   user.CreatedAt,
	}
}
