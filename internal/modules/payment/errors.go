package payment

import "errors"

var (
	ErrAttemptNotFound  = errors.New("payment attempt not found")
	ErrAttemptInFlight  = errors.New("a payment attempt is already in progress")
	ErrAlreadyCompleted = errors.New("registration is already completed")
	ErrStaleOrder       = errors.New("callback references a superseded order")
	ErrGateway          = errors.New("payment gateway unavailable")

	// Verification failures. Money may have moved at the gateway without a
	// confirmed reconciliation, so these are never swallowed: the player is
	// directed to support with the payment id.
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrAmountMismatch   = errors.New("payment amount mismatch")
	ErrVerification     = errors.New("payment verification failed")

	// ErrRecordingDelayed means the payment IS verified but the registration
	// row could not be updated within the bounded window. The flow reports
	// this instead of hanging the player on a spinner after they have paid.
	ErrRecordingDelayed = errors.New("payment verified but recording is delayed")
)
