package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cricketleague/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// countryCallingCode is prepended to the 10-digit number the player typed.
const countryCallingCode = "+91"

type Service struct {
	registrations RegistrationRepository
	events        EventSink
}

func NewService(registrations RegistrationRepository, events EventSink) *Service {
	return &Service{registrations: registrations, events: events}
}

// Create validates the submitted fields and persists a new Registration in
// the only state a Registration is ever created in: pending/pending.
func (s *Service) Create(ctx context.Context, req CreateRegistrationRequest) (*domain.Registration, error) {
	if err := Validate(req.fields()); err != nil {
		return nil, err
	}

	reg := &domain.Registration{
		FullName:        strings.TrimSpace(req.FullName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:           countryCallingCode + strings.TrimSpace(req.Phone),
		DateOfBirth:     strings.TrimSpace(req.DateOfBirth),
		State:           strings.TrimSpace(req.State),
		City:            strings.TrimSpace(req.City),
		Pincode:         strings.TrimSpace(req.Pincode),
		Position:        normalizePosition(req.Position),
		PreferredTrials: strings.TrimSpace(req.PreferredTrials),
		Status:          domain.RegistrationPending,
		PaymentStatus:   domain.PaymentStatePending,
	}

	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, categorizePersistenceError(err)
	}

	if s.events != nil {
		s.events.Publish("registration_created", map[string]interface{}{
			"registration_id": reg.ID,
			"city":            reg.City,
			"state":           reg.State,
		})
	}

	return reg, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, categorizePersistenceError(err)
	}
	return reg, nil
}

func normalizePosition(raw string) domain.PlayerPosition {
	switch domain.PlayerPosition(strings.TrimSpace(raw)) {
	case domain.PositionBowling:
		return domain.PositionBowling
	case domain.PositionAllRounder:
		return domain.PositionAllRounder
	case domain.PositionWicketKeeper:
		return domain.PositionWicketKeeper
	default:
		return domain.PositionBatting
	}
}

// categorizePersistenceError maps store failures to the user-facing buckets.
// Postgres reports structured codes; the sqlite fallback only gives message
// text, hence the substring checks.
func categorizePersistenceError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicateEmail
		case "42501":
			return ErrPermissionDenied
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "permission denied"):
		return ErrPermissionDenied
	case strings.Contains(msg, "connection"):
		return ErrConnection
	}
	return fmt.Errorf("registration store: %w", err)
}
