package admin

import (
	"context"

	"cricketleague/internal/domain"
)

type adminUserRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

type registrationLister interface {
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Registration, int64, error)
}

type attemptLister interface {
	ListByRegistration(ctx context.Context, registrationID int64) ([]domain.PaymentAttempt, error)
}

type jwtService interface {
	GenerateToken(adminID int64, email string) (string, error)
}
