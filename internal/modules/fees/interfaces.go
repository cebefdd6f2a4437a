package fees

import (
	"context"

	"cricketleague/internal/domain"
)

type configReader interface {
	GetByKey(ctx context.Context, key string) (*domain.FeeConfiguration, error)
}
