package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultChapaBaseURL = "https://api.chapa.co"

// Chapa implements Gateway against the Chapa transaction API.
type Chapa struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewChapa(baseURL, secretKey string) *Chapa {
	if baseURL == "" {
		baseURL = defaultChapaBaseURL
	}
	return &Chapa{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Chapa) Name() string { return "chapa" }

type chapaInitReq struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url"`
	ReturnURL   string `json:"return_url"`
}

type chapaEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Chapa) CreateIntent(ctx context.Context, req IntentRequest) (*IntentResponse, error) {
	body, err := json.Marshal(chapaInitReq{
		Amount:      req.Amount.StringFixed(2),
		Currency:    req.Currency,
		Email:       req.Email,
		FirstName:   req.FirstName,
		TxRef:       req.TxRef,
		CallbackURL: req.CallbackURL,
		ReturnURL:   req.ReturnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var data struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode initialize data: %w", err)
	}

	return &IntentResponse{
		CheckoutURL: data.CheckoutURL,
		TxRef:       req.TxRef,
		Raw:         raw,
	}, nil
}

func (c *Chapa) Verify(ctx context.Context, txRef string) (*VerifyResponse, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v1/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode verify data: %w", err)
	}

	return &VerifyResponse{Status: data.Status, Raw: raw}, nil
}

// do performs one API call and unwraps Chapa's {status, message, data}
// envelope, returning the data portion.
func (c *Chapa) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var env chapaEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("gateway rejected request: %s", env.Message)
	}
	return env.Data, nil
}
