package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway talks to the Razorpay Orders and Payments APIs. The hosted
// checkout widget on the client side opens against the orders created here.
type RazorpayGateway struct {
	client  *razorpay.Client
	loggerf func(format string, args ...interface{})
}

func NewRazorpayGateway(keyID, keySecret string, loggerf func(format string, args ...interface{})) *RazorpayGateway {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &RazorpayGateway{
		client:  razorpay.NewClient(keyID, keySecret),
		loggerf: loggerf,
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		n := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			n[k] = v
		}
		data["notes"] = n
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}
	g.loggerf("level=info msg=razorpay order created order_id=%s amount=%d", id, amount)

	return &Order{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (g *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	body, err := g.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay payment fetch: %w", err)
	}

	p := &GatewayPayment{ID: paymentID}
	if v, ok := body["order_id"].(string); ok {
		p.OrderID = v
	}
	if v, ok := body["status"].(string); ok {
		p.Status = v
	}
	if v, ok := body["amount"].(float64); ok {
		p.Amount = int64(v)
	}
	return p, nil
}
