// Package gateway isolates the core from the payment provider's wire format.
// The orchestrator talks to the Gateway interface only; one adapter per
// provider lives alongside it.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// IntentRequest mirrors the provider's create-intent contract.
type IntentRequest struct {
	Amount      decimal.Decimal
	Currency    string
	Email       string
	FirstName   string
	TxRef       string
	CallbackURL string
	ReturnURL   string
}

type IntentResponse struct {
	CheckoutURL string
	TxRef       string
	Raw         json.RawMessage
}

// VerifyResponse carries the provider's free-text status plus its raw body;
// mapping onto the internal enum happens in the payment orchestrator.
type VerifyResponse struct {
	Status string
	Raw    json.RawMessage
}

type Gateway interface {
	Name() string
	CreateIntent(ctx context.Context, req IntentRequest) (*IntentResponse, error)
	Verify(ctx context.Context, txRef string) (*VerifyResponse, error)
}
