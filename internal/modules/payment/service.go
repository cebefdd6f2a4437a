package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cricketleague/internal/domain"

	"github.com/google/uuid"
)

// Service owns the registration-payment reconciliation flow: it creates
// gateway orders, tracks the one outstanding attempt per registration, and
// resolves checkout outcomes back onto the Registration record. A success
// reported by the hosted checkout is never trusted on its own; only the
// server-side signature and amount checks authorize marking a registration
// completed.
type Service struct {
	attempts      attemptRepo
	registrations registrationReader
	regWriter     registrationWriter
	fees          feeResolver
	gateway       Gateway
	events        eventSink
	loggerf       func(format string, args ...interface{})

	keyID     string
	keySecret string
	currency  string

	updateRetries int
	retryBackoff  time.Duration
	updateTimeout time.Duration

	mu       sync.Mutex
	inflight map[int64]struct{}
	tracked  map[int64]string
}

func NewService(
	attempts attemptRepo,
	registrations registrationReader,
	regWriter registrationWriter,
	fees feeResolver,
	gateway Gateway,
	events eventSink,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		attempts:      attempts,
		registrations: registrations,
		regWriter:     regWriter,
		fees:          fees,
		gateway:       gateway,
		events:        events,
		loggerf:       loggerf,
		keyID:         os.Getenv("RAZORPAY_KEY_ID"),
		keySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		currency:      envOrDefault("PAYMENT_CURRENCY", "INR"),
		updateRetries: 4,
		retryBackoff:  250 * time.Millisecond,
		updateTimeout: 10 * time.Second,
		inflight:      make(map[int64]struct{}),
		tracked:       make(map[int64]string),
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// StartAttempt opens a new payment attempt for a pending registration. While
// an order creation is outstanding for the same registration a second call is
// ignored, not queued. Each attempt gets a brand-new order id; any previous
// unresolved attempt is superseded so its callbacks can no longer land.
func (s *Service) StartAttempt(ctx context.Context, registrationID int64) (*StartAttemptResponse, error) {
	s.mu.Lock()
	if _, busy := s.inflight[registrationID]; busy {
		s.mu.Unlock()
		return nil, ErrAttemptInFlight
	}
	s.inflight[registrationID] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, registrationID)
		s.mu.Unlock()
	}()

	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Status == domain.RegistrationCompleted {
		return nil, ErrAlreadyCompleted
	}

	breakdown, err := s.fees.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve fees: %w", err)
	}

	receipt := "reg-" + strconv.FormatInt(registrationID, 10) + "-" + uuid.New().String()[:8]
	order, err := s.gateway.CreateOrder(ctx, breakdown.Total*100, s.currency, receipt, map[string]string{
		"registration_id": strconv.FormatInt(registrationID, 10),
	})
	if err != nil {
		s.loggerf("level=error msg=gateway order creation failed registration_id=%d err=%v", registrationID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	attempt := &domain.PaymentAttempt{
		RegistrationID: registrationID,
		OrderID:        order.ID,
		Receipt:        receipt,
		Amount:         breakdown.Total,
		Currency:       order.Currency,
		Outcome:        domain.AttemptPending,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("save payment attempt: %w", err)
	}

	s.mu.Lock()
	prev := s.tracked[registrationID]
	s.tracked[registrationID] = order.ID
	s.mu.Unlock()

	if prev != "" && prev != order.ID {
		if _, err := s.attempts.MarkOutcomeIdempotent(ctx, prev, domain.AttemptCancelled, "", "superseded by a new attempt", nil); err != nil {
			s.loggerf("level=warn msg=failed to resolve superseded attempt order_id=%s err=%v", prev, err)
		}
	}

	s.publish("payment_attempt_started", map[string]interface{}{
		"registration_id": registrationID,
		"order_id":        order.ID,
		"amount":          breakdown.Total,
	})

	return &StartAttemptResponse{
		OrderID:       order.ID,
		KeyID:         s.keyID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		CustomerName:  reg.FullName,
		CustomerEmail: reg.Email,
		CustomerPhone: reg.Phone,
	}, nil
}

// HandleSuccess reconciles a checkout success callback. The callback is
// verified server-side before anything is written to the Registration:
// signature first, then the gateway's own payment record for amount and
// order id. A failed verification leaves the registration pending.
func (s *Service) HandleSuccess(ctx context.Context, req VerifyRequest) (*domain.Registration, error) {
	attempt, err := s.attempts.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, ErrAttemptNotFound
	}

	if stale := s.staleFor(attempt, req.OrderID); stale {
		s.loggerf("level=warn msg=stale success callback ignored order_id=%s registration_id=%d", req.OrderID, attempt.RegistrationID)
		return nil, ErrStaleOrder
	}

	if !s.signatureValid(req.OrderID, req.PaymentID, req.Signature) {
		_, _ = s.attempts.MarkOutcomeIdempotent(ctx, req.OrderID, domain.AttemptFailed, req.PaymentID, "invalid signature", nil)
		s.loggerf("level=error msg=payment signature verification failed order_id=%s payment_id=%s", req.OrderID, req.PaymentID)
		return nil, ErrInvalidSignature
	}

	p, err := s.gateway.FetchPayment(ctx, req.PaymentID)
	if err != nil {
		s.loggerf("level=error msg=payment lookup failed during verification payment_id=%s err=%v", req.PaymentID, err)
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if p.OrderID != req.OrderID || p.Amount != attempt.Amount*100 {
		reason := fmt.Sprintf("gateway reports order=%s amount=%d, expected order=%s amount=%d",
			p.OrderID, p.Amount, req.OrderID, attempt.Amount*100)
		_, _ = s.attempts.MarkOutcomeIdempotent(ctx, req.OrderID, domain.AttemptFailed, req.PaymentID, reason, nil)
		s.loggerf("level=error msg=payment cross-check failed order_id=%s payment_id=%s reason=%q", req.OrderID, req.PaymentID, reason)
		return nil, ErrAmountMismatch
	}

	paidAt := time.Now().UTC()
	changed, err := s.attempts.MarkOutcomeIdempotent(ctx, req.OrderID, domain.AttemptSucceeded, req.PaymentID, "", &paidAt)
	if err != nil {
		return nil, fmt.Errorf("resolve attempt: %w", err)
	}
	if !changed {
		s.loggerf("level=info msg=idempotent success callback order_id=%s", req.OrderID)
	}

	patch := map[string]interface{}{
		"status":             string(domain.RegistrationCompleted),
		"payment_status":     string(domain.PaymentStateCompleted),
		"payment_amount":     attempt.Amount,
		"gateway_payment_id": req.PaymentID,
		"gateway_order_id":   req.OrderID,
	}
	if err := s.updateWithRetry(ctx, attempt.RegistrationID, patch); err != nil {
		s.loggerf("level=error msg=registration update delayed after verified payment registration_id=%d payment_id=%s err=%v",
			attempt.RegistrationID, req.PaymentID, err)
		return nil, ErrRecordingDelayed
	}

	s.clearTracked(attempt.RegistrationID, req.OrderID)
	s.publish("payment_completed", map[string]interface{}{
		"registration_id": attempt.RegistrationID,
		"order_id":        req.OrderID,
		"payment_id":      req.PaymentID,
		"amount":          attempt.Amount,
	})

	reg, err := s.registrations.GetByID(ctx, attempt.RegistrationID)
	if err != nil {
		s.loggerf("level=warn msg=could not reload registration after completion registration_id=%d err=%v", attempt.RegistrationID, err)
		return &domain.Registration{
			ID:               attempt.RegistrationID,
			Status:           domain.RegistrationCompleted,
			PaymentStatus:    domain.PaymentStateCompleted,
			PaymentAmount:    attempt.Amount,
			GatewayPaymentID: req.PaymentID,
			GatewayOrderID:   req.OrderID,
		}, nil
	}
	return reg, nil
}

// HandleFailure records a gateway-reported failure. The attempt resolves to
// failed and the registration's paymentStatus becomes failed while its
// status stays pending, so the player can retry with a fresh attempt.
func (s *Service) HandleFailure(ctx context.Context, req FailureRequest) error {
	attempt, err := s.attempts.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return ErrAttemptNotFound
	}
	if s.staleFor(attempt, req.OrderID) {
		s.loggerf("level=warn msg=stale failure callback ignored order_id=%s", req.OrderID)
		return ErrStaleOrder
	}

	reason := strings.TrimSpace(req.Code + " " + req.Description)
	if reason == "" {
		reason = "payment failed at gateway"
	}
	if _, err := s.attempts.MarkOutcomeIdempotent(ctx, req.OrderID, domain.AttemptFailed, "", reason, nil); err != nil {
		return fmt.Errorf("resolve attempt: %w", err)
	}

	patch := map[string]interface{}{
		"payment_status": string(domain.PaymentStateFailed),
	}
	if err := s.updateWithRetry(ctx, attempt.RegistrationID, patch); err != nil {
		s.loggerf("level=error msg=failed to record payment failure registration_id=%d err=%v", attempt.RegistrationID, err)
		return fmt.Errorf("record failure: %w", err)
	}

	s.clearTracked(attempt.RegistrationID, req.OrderID)
	s.publish("payment_failed", map[string]interface{}{
		"registration_id": attempt.RegistrationID,
		"order_id":        req.OrderID,
		"reason":          reason,
	})
	return nil
}

// HandleDismiss records a checkout dismissal. Cancellation is not failure:
// the attempt resolves to cancelled and the Registration is left exactly as
// it was, paymentStatus included.
func (s *Service) HandleDismiss(ctx context.Context, req CancelRequest) error {
	attempt, err := s.attempts.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return ErrAttemptNotFound
	}
	if s.staleFor(attempt, req.OrderID) {
		s.loggerf("level=warn msg=stale dismiss callback ignored order_id=%s", req.OrderID)
		return ErrStaleOrder
	}

	if _, err := s.attempts.MarkOutcomeIdempotent(ctx, req.OrderID, domain.AttemptCancelled, "", "checkout dismissed", nil); err != nil {
		return fmt.Errorf("resolve attempt: %w", err)
	}

	s.clearTracked(attempt.RegistrationID, req.OrderID)
	s.publish("payment_cancelled", map[string]interface{}{
		"registration_id": attempt.RegistrationID,
		"order_id":        req.OrderID,
	})
	return nil
}

// staleFor reports whether a callback references an order other than the
// currently tracked one for its registration. With no tracked entry (e.g.
// after a restart) the attempt's own unresolved state decides, since it is
// the only attempt that can still be outstanding.
func (s *Service) staleFor(attempt *domain.PaymentAttempt, orderID string) bool {
	s.mu.Lock()
	current := s.tracked[attempt.RegistrationID]
	s.mu.Unlock()

	if current != "" {
		return current != orderID
	}
	return attempt.Outcome != domain.AttemptPending
}

func (s *Service) clearTracked(registrationID int64, orderID string) {
	s.mu.Lock()
	if s.tracked[registrationID] == orderID {
		delete(s.tracked, registrationID)
	}
	s.mu.Unlock()
}

func (s *Service) signatureValid(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(strings.ToLower(strings.TrimSpace(signature))), []byte(expected))
}

// updateWithRetry retries registration writes on the failure-handling paths a
// bounded number of times with backoff, within a hard deadline, so a known
// outcome is not lost to a transiently unavailable store.
func (s *Service) updateWithRetry(ctx context.Context, id int64, patch map[string]interface{}) error {
	deadline := time.Now().Add(s.updateTimeout)
	backoff := s.retryBackoff

	var err error
	for i := 0; i < s.updateRetries; i++ {
		if err = s.regWriter.Update(ctx, id, patch); err == nil {
			return nil
		}
		if ctx.Err() != nil || time.Now().Add(backoff).After(deadline) {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}

func (s *Service) publish(event string, data map[string]interface{}) {
	if s.events != nil {
		s.events.Publish(event, data)
	}
}
