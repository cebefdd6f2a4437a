package payment

import (
	"context"
	"time"

	"cricketleague/internal/domain"
	"cricketleague/internal/modules/fees"
)

// Order is the remote payment order the hosted checkout is opened against.
type Order struct {
	ID       string
	Amount   int64 // minor units
	Currency string
	Receipt  string
}

// GatewayPayment is the gateway's own record of a captured payment, fetched
// server-side to cross-check what the client-side callback claimed.
type GatewayPayment struct {
	ID      string
	OrderID string
	Amount  int64 // minor units
	Status  string
}

// Gateway is the narrow surface of the payment provider the orchestrator
// consumes. Checkout itself is hosted by the provider; only order creation
// and payment lookup happen from here.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
}

type attemptRepo interface {
	Create(ctx context.Context, a *domain.PaymentAttempt) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentAttempt, error)
	MarkOutcomeIdempotent(ctx context.Context, orderID string, outcome domain.AttemptOutcome, paymentID, reason string, paidAt *time.Time) (bool, error)
}

type registrationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
}

type registrationWriter interface {
	Update(ctx context.Context, id int64, patch map[string]interface{}) error
}

type feeResolver interface {
	Resolve(ctx context.Context) (fees.Breakdown, error)
}

type eventSink interface {
	Publish(event string, data map[string]interface{})
}
