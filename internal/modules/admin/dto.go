package admin

import "cricketleague/internal/domain"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	Admin *domain.AdminUser `json:"admin"`
}

type ListQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

type RegistrationListResponse struct {
	Items []domain.Registration `json:"items"`
	Total int64                 `json:"total"`
}

type RegistrationDetail struct {
	Registration *domain.Registration    `json:"registration"`
	Attempts     []domain.PaymentAttempt `json:"attempts"`
}
