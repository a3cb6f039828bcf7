package domain

import "errors"

var (
	MessageSuccessCheckout = "checkout created successfully"
	MessageSuccessWebhook  = "webhook processed"
	MessageFailedCheckout  = "failed to create checkout"
	MessageFailedWebhook   = "failed to process webhook"

	ErrCheckoutFailed        = errors.New("payment gateway checkout failed")
	ErrWebhookSignature      = errors.New("invalid webhook signature")
	ErrWebhookUserUnresolved = errors.New("webhook payload does not identify a user")
)

type (
	CheckoutRequest struct {
		Plan  string `json:"plan" validate:"required,oneof=STARTER PRO ENTERPRISE"`
		Email string `json:"email" validate:"required,email"`
	}

	CheckoutResponse struct {
		OrderID    string `json:"order_id"`
		InvoiceURL string `json:"invoice_url"`
	}
)
