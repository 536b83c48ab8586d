package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapaCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "142.50", body["amount"])
		assert.Equal(t, "ETB", body["currency"])
		assert.Equal(t, "tx-abc", body["tx_ref"])

		w.Write([]byte(`{"status":"success","message":"ok","data":{"checkout_url":"https://checkout.test/abc"}}`))
	}))
	defer srv.Close()

	c := NewChapa(srv.URL, "sk-test")
	res, err := c.CreateIntent(context.Background(), IntentRequest{
		Amount:      decimal.RequireFromString("142.5"),
		Currency:    "ETB",
		Email:       "guest@mealhub.test",
		FirstName:   "Guest",
		TxRef:       "tx-abc",
		CallbackURL: "https://api.test/payments/webhook",
		ReturnURL:   "https://app.test/orders/1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.test/abc", res.CheckoutURL)
	assert.Equal(t, "tx-abc", res.TxRef)
	assert.NotEmpty(t, res.Raw)
}

func TestChapaCreateIntentRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failed","message":"invalid currency"}`))
	}))
	defer srv.Close()

	c := NewChapa(srv.URL, "sk-test")
	_, err := c.CreateIntent(context.Background(), IntentRequest{
		Amount: decimal.NewFromInt(10), Currency: "XXX", TxRef: "tx-bad",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid currency")
}

func TestChapaCreateIntentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewChapa(srv.URL, "sk-test")
	_, err := c.CreateIntent(context.Background(), IntentRequest{
		Amount: decimal.NewFromInt(10), Currency: "ETB", TxRef: "tx-500",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestChapaVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/transaction/verify/tx-abc", r.URL.Path)
		w.Write([]byte(`{"status":"success","message":"ok","data":{"status":"success","amount":142.5}}`))
	}))
	defer srv.Close()

	c := NewChapa(srv.URL, "sk-test")
	res, err := c.Verify(context.Background(), "tx-abc")
	require.NoError(t, err)
	assert.Equal(t, "success", res.Status)
	assert.Contains(t, string(res.Raw), `"amount":142.5`)
}

func TestChapaVerifyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewChapa(srv.URL, "sk-test")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Verify(ctx, "tx-slow")
	require.Error(t, err)
}
