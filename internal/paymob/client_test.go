package paymob_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mctasu/vending-machine-service/internal/config"
	"github.com/mctasu/vending-machine-service/internal/entities"
	"github.com/mctasu/vending-machine-service/internal/paymob"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) config.Paymob {
	return config.Paymob{
		BaseURL:       baseURL,
		SecretKey:     "sk_test",
		PublicKey:     "pk_test",
		IntegrationID: 42,
		Currency:      "EGP",
		CallbackURL:   "http://localhost:8080/api/payments/finish-payment",
		Expiration:    time.Hour,
		Timeout:       5 * time.Second,
	}
}

func testItems() []entities.LineItem {
	return []entities.LineItem{
		{Name: "chips", Price: decimal.NewFromFloat(10.50), Quantity: 1},
		{Name: "soda", Price: decimal.NewFromInt(5), Quantity: 3},
	}
}

func TestClient_CreateIntention(t *testing.T) {
	t.Run("sends minor unit amounts and returns the client secret", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/intention/", r.URL.Path)
			assert.Equal(t, "Token sk_test", r.Header.Get("Authorization"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(map[string]string{"client_secret": "secret-123"})
		}))
		defer srv.Close()

		client := paymob.NewClient(testConfig(srv.URL))

		secret, err := client.CreateIntention(context.Background(), "order-1", testItems(), decimal.NewFromFloat(25.50))
		require.NoError(t, err)
		assert.Equal(t, "secret-123", secret)

		assert.Equal(t, float64(2550), got["amount"])
		assert.Equal(t, "EGP", got["currency"])
		assert.Equal(t, []any{float64(42)}, got["payment_methods"])
		assert.Equal(t, "http://localhost:8080/api/payments/finish-payment/order-1", got["redirection_url"])
		assert.Equal(t, float64(3600), got["expiration"])

		items := got["items"].([]any)
		require.Len(t, items, 2)
		first := items[0].(map[string]any)
		assert.Equal(t, "chips", first["name"])
		assert.Equal(t, float64(1050), first["amount"])
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := paymob.NewClient(testConfig(srv.URL))

		_, err := client.CreateIntention(context.Background(), "order-1", testItems(), decimal.NewFromInt(25))
		assert.ErrorIs(t, err, entities.ErrPaymentGateway)
	})

	t.Run("response without client secret", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer srv.Close()

		client := paymob.NewClient(testConfig(srv.URL))

		_, err := client.CreateIntention(context.Background(), "order-1", testItems(), decimal.NewFromInt(25))
		assert.ErrorIs(t, err, entities.ErrPaymentGateway)
	})

	t.Run("unreachable gateway", func(t *testing.T) {
		client := paymob.NewClient(testConfig("http://127.0.0.1:1"))

		_, err := client.CreateIntention(context.Background(), "order-1", testItems(), decimal.NewFromInt(25))
		assert.ErrorIs(t, err, entities.ErrPaymentGateway)
	})
}

func TestClient_CheckoutURL(t *testing.T) {
	client := paymob.NewClient(testConfig("https://accept.paymob.com"))

	got := client.CheckoutURL("secret-123")
	assert.Equal(t, "https://accept.paymob.com/unifiedcheckout/?clientSecret=secret-123&publicKey=pk_test", got)
}

func TestClient_QRURL(t *testing.T) {
	client := paymob.NewClient(testConfig("https://accept.paymob.com"))

	got := client.QRURL("https://accept.paymob.com/unifiedcheckout/?clientSecret=secret-123")
	assert.Contains(t, got, "https://api.qrserver.com/v1/create-qr-code/?")
	assert.Contains(t, got, "size=200x200")
	assert.Contains(t, got, "data=https%3A%2F%2Faccept.paymob.com%2Funifiedcheckout%2F")
}
