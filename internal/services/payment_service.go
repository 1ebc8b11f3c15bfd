// internal/services/payment_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	rzputils "github.com/razorpay/razorpay-go/utils"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/shopwave/ecommerce-backend/internal/config"
)

// ErrSignatureMismatch is returned when a payment callback cannot be authenticated.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// PaymentHandshake is what the storefront needs to open the provider's checkout.
type PaymentHandshake struct {
	Provider       string `json:"provider"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"keyId,omitempty"`
	ClientSecret   string `json:"clientSecret,omitempty"`
}

// PaymentGateway creates payment intents with an online provider and
// authenticates the provider's payment callbacks.
type PaymentGateway interface {
	Name() string
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*PaymentHandshake, error)
	VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, signature string) error
}

// NewPaymentGateway builds the gateway selected by PAYMENT_PROVIDER.
func NewPaymentGateway(cfg config.PaymentConfig) (PaymentGateway, error) {
	switch cfg.Provider {
	case "razorpay":
		return NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret), nil
	case "stripe":
		return NewStripeGateway(cfg.StripeSecretKey, cfg.StripePublishableKey), nil
	}
	return nil, fmt.Errorf("unsupported payment provider %q", cfg.Provider)
}

type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
	secret string
}

func NewRazorpayGateway(keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*PaymentHandshake, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("razorpay create order: response carried no order id")
	}

	return &PaymentHandshake{
		Provider:       g.Name(),
		GatewayOrderID: id,
		Amount:         amountMinor,
		Currency:       currency,
		KeyID:          g.keyID,
	}, nil
}

func (g *RazorpayGateway) VerifyPayment(_ context.Context, gatewayOrderID, paymentID, signature string) error {
	attributes := map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": paymentID,
	}
	if !rzputils.VerifyPaymentSignature(attributes, signature, g.secret) {
		return ErrSignatureMismatch
	}
	return nil
}

// StripeGateway maps the same contract onto PaymentIntents. The intent id
// plays the gateway order id; the callback carries no signature.
type StripeGateway struct {
	publishableKey string
}

func NewStripeGateway(secretKey, publishableKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{publishableKey: publishableKey}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*PaymentHandshake, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata("order_id", receipt)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}

	return &PaymentHandshake{
		Provider:       g.Name(),
		GatewayOrderID: pi.ID,
		Amount:         amountMinor,
		Currency:       currency,
		KeyID:          g.publishableKey,
		ClientSecret:   pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) VerifyPayment(ctx context.Context, gatewayOrderID, paymentID, _ string) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(gatewayOrderID, params)
	if err != nil {
		return fmt.Errorf("stripe get payment intent: %w", err)
	}
	if paymentID != "" && paymentID != pi.ID {
		return ErrSignatureMismatch
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("payment intent %s is %s", pi.ID, pi.Status)
	}
	return nil
}
