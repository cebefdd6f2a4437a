package admin

import (
	"context"
	"errors"

	"cricketleague/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service struct {
	admins        adminUserRepo
	registrations registrationLister
	attempts      attemptLister
	jwt           jwtService
}

func NewService(admins adminUserRepo, registrations registrationLister, attempts attemptLister, jwt jwtService) *Service {
	return &Service{
		admins:        admins,
		registrations: registrations,
		attempts:      attempts,
		jwt:           jwt,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, Admin: u}, nil
}

func (s *Service) ListRegistrations(ctx context.Context, q ListQuery) (*RegistrationListResponse, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.registrations.List(ctx, q.Status, limit, offset)
	if err != nil {
		return nil, err
	}
	return &RegistrationListResponse{Items: items, Total: total}, nil
}

func (s *Service) GetRegistration(ctx context.Context, id int64) (*RegistrationDetail, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationMissing
		}
		return nil, err
	}

	attempts, err := s.attempts.ListByRegistration(ctx, id)
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []domain.PaymentAttempt{}
	}
	return &RegistrationDetail{Registration: reg, Attempts: attempts}, nil
}
