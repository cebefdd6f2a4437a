package payment

type StartAttemptResponse struct {
	OrderID  string `json:"order_id"`
	KeyID    string `json:"key_id"`
	Amount   int64  `json:"amount"` // minor units, as the checkout expects
	Currency string `json:"currency"`

	// Prefill for the hosted checkout widget.
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

type FailureRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type CancelRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}
