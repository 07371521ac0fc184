package payment

import (
	"encoding/json"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/errs"
)

var webhookSecret string

func Init(secretKey, whSecret string) {
	stripe.Key = secretKey
	webhookSecret = whSecret
}

// CreateIntent asks Stripe for a client-confirmable payment handle for an
// amount in minor currency units. orderID, when known, rides along as
// metadata so the webhook can find the order independently of the client.
func CreateIntent(amount int64, orderID string) (string, error) {
	if amount <= 0 {
		return "", errs.Validation("amount must be greater than zero")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if orderID != "" {
		params.AddMetadata("orderId", orderID)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", WrapErr(err)
	}
	return pi.ClientSecret, nil
}

// WrapErr converts a Stripe failure into a PaymentGatewayError carrying the
// provider's diagnostic code and message, so callers can tell a card
// decline from a transient provider failure.
func WrapErr(err error) error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		code := string(stripeErr.Code)
		if code == "" {
			code = string(stripeErr.Type)
		}
		return errs.PaymentGateway(code, stripeErr.Msg, err)
	}
	return errs.PaymentGateway("", "payment gateway unavailable", err)
}

// ParseWebhook verifies the event signature and, for a succeeded payment
// intent, returns the intent. Other event types return (nil, nil).
func ParseWebhook(payload []byte, sigHeader string) (*stripe.PaymentIntent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, webhookSecret)
	if err != nil {
		return nil, errs.Validation("invalid webhook signature")
	}

	if event.Type != "payment_intent.succeeded" {
		return nil, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, errs.Validation("malformed webhook payload")
	}
	return &pi, nil
}
