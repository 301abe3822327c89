package handler

import "github.com/payflex/banking-system/internal/core/domain"

type requestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=4"`
}

type registerRequest struct {
	FirstName   string         `json:"first_name" validate:"required"`
	LastName    string         `json:"last_name" validate:"required"`
	Email       string         `json:"email" validate:"required,email"`
	PhoneNumber string         `json:"phone_number" validate:"required"`
	Password    string         `json:"password" validate:"required,min=8"`
	Gender      string         `json:"gender" validate:"omitempty,oneof=male female"`
	DateOfBirth string         `json:"date_of_birth" validate:"required"`
	Address     domain.Address `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// userView is the client-facing identity shape; never includes credentials.
type userView struct {
	ID          string         `json:"id"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Role        string         `json:"role"`
	Gender      string         `json:"gender,omitempty"`
	Address     domain.Address `json:"address,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Gender:      u.Gender,
		Address:     u.Address,
		CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type loginResponse struct {
	User        userView `json:"user"`
	AccessToken string   `json:"access_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}
