package auth

import (
	"time"

	"go-hrgql/internal/user"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// Role is optional and defaults to employee.
	Role string `json:"role"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	EmployeeID *string   `json:"employeeId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type AuthPayload struct {
	Token     string       `json:"token"`
	ExpiresIn string       `json:"expiresIn"`
	User      UserResponse `json:"user"`
}

func mapUserResponse(u user.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.EmployeeID != nil {
		id := u.EmployeeID.String()
		resp.EmployeeID = &id
	}
	return resp
}
