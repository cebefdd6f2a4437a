package registration

import (
	"context"

	"cricketleague/internal/domain"
)

// RegistrationRepository is the narrow persistence surface the flow consumes.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	Update(ctx context.Context, id int64, patch map[string]interface{}) error
}

// EventSink receives lifecycle events for live monitoring. Optional.
type EventSink interface {
	Publish(event string, data map[string]interface{})
}
