package payments

import (
	"context"
	"errors"
)

// ErrProvider wraps failures reported by the payment provider.
var ErrProvider = errors.New("payment provider error")

// Metadata keys embedded into checkout sessions.
const (
	MetaClubID        = "clubId"
	MetaClubName      = "clubName"
	MetaManagerEmail  = "managerEmail"
	MetaCustomerEmail = "customerEmail"
)

// PaymentStatusPaid is the provider status of a settled session.
const PaymentStatusPaid = "paid"

// CheckoutRequest describes a one-off membership charge.
type CheckoutRequest struct {
	ProductName   string
	Description   string
	UnitAmount    int64 // minor units
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is the provider-neutral view of a hosted checkout.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	PaymentIntentID string
	CustomerEmail   string
	Currency        string
	AmountTotal     int64 // minor units
	Metadata        map[string]string
}

// Provider creates and reads hosted checkout sessions.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}
