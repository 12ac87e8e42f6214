package paymob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mctasu/vending-machine-service/internal/config"
	"github.com/mctasu/vending-machine-service/internal/entities"

	"github.com/shopspring/decimal"
)

const qrServerURL = "https://api.qrserver.com/v1/create-qr-code/"

// Client creates payment intentions against the Paymob Accept API.
// One best-effort call per invocation, no retries.
type Client struct {
	httpClient *http.Client
	cfg        config.Paymob
}

func NewClient(cfg config.Paymob) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}
}

type Item struct {
	Name        string `json:"name"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// BillingData is required by the gateway but unused by the vending
// flow; the machine has no customer identity at payment time.
type BillingData struct {
	Apartment   string `json:"apartment"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Street      string `json:"street"`
	Building    string `json:"building"`
	PhoneNumber string `json:"phone_number"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Email       string `json:"email"`
	Floor       string `json:"floor"`
	State       string `json:"state"`
}

type intentionRequest struct {
	Amount           int64       `json:"amount"`
	Currency         string      `json:"currency"`
	PaymentMethods   []int       `json:"payment_methods"`
	Items            []Item      `json:"items"`
	BillingData      BillingData `json:"billing_data"`
	SpecialReference int64       `json:"special_reference"`
	Expiration       int         `json:"expiration"`
	RedirectionURL   string      `json:"redirection_url"`
}

type intentionResponse struct {
	ClientSecret string `json:"client_secret"`
}

// CreateIntention submits a payment intention for the given order and
// returns the gateway client secret. Amounts are converted to minor
// units; the redirection URL embeds the order id so the gateway's
// redirect drives the finish-payment transition.
func (c *Client) CreateIntention(ctx context.Context, orderID string, items []entities.LineItem, total decimal.Decimal) (string, error) {
	body := intentionRequest{
		Amount:           minorUnits(total),
		Currency:         c.cfg.Currency,
		PaymentMethods:   []int{c.cfg.IntegrationID},
		Items:            make([]Item, 0, len(items)),
		BillingData:      placeholderBilling(),
		SpecialReference: time.Now().UnixMilli(),
		Expiration:       int(c.cfg.Expiration.Seconds()),
		RedirectionURL:   fmt.Sprintf("%s/%s", c.cfg.CallbackURL, orderID),
	}
	for _, it := range items {
		body.Items = append(body.Items, Item{
			Name:        it.Name,
			Amount:      minorUnits(it.Price),
			Description: "Item description",
			Quantity:    it.Quantity,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal intention: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/intention/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build intention request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrPaymentGateway, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %s", entities.ErrPaymentGateway, res.Status)
	}

	var out intentionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", entities.ErrPaymentGateway, err)
	}
	if out.ClientSecret == "" {
		return "", fmt.Errorf("%w: response has no client secret", entities.ErrPaymentGateway)
	}

	return out.ClientSecret, nil
}

// CheckoutURL builds the hosted checkout link for a client secret.
func (c *Client) CheckoutURL(clientSecret string) string {
	q := url.Values{}
	q.Set("publicKey", c.cfg.PublicKey)
	q.Set("clientSecret", clientSecret)
	return c.cfg.BaseURL + "/unifiedcheckout/?" + q.Encode()
}

// QRURL wraps a checkout link into a scannable QR image URL for the
// machine display.
func (c *Client) QRURL(payURL string) string {
	q := url.Values{}
	q.Set("data", payURL)
	q.Set("size", "200x200")
	return qrServerURL + "?" + q.Encode()
}

func minorUnits(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

func placeholderBilling() BillingData {
	return BillingData{
		Apartment:   "NA",
		FirstName:   "Vending",
		LastName:    "Machine",
		Street:      "NA",
		Building:    "NA",
		PhoneNumber: "+200000000000",
		City:        "NA",
		Country:     "NA",
		Email:       "payments@mctasu.local",
		Floor:       "NA",
		State:       "NA",
	}
}
