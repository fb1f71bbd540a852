package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Renal37/dress-settlement/internal/models"
	"github.com/pkg/errors"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	BaseURL   string
	SecretKey string
	Currency  string
	Timeout   time.Duration
}

// Client talks to a payment-intents style HTTP API.
type Client struct {
	baseURL    string
	secretKey  string
	currency   string
	httpClient *http.Client
}

type paymentIntentResponse struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Metadata     map[string]string `json:"metadata"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	currency := config.Currency
	if currency == "" {
		currency = "usd"
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		secretKey:  config.SecretKey,
		currency:   currency,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateAuthorization(ctx context.Context, amount int64, metadata map[string]string) (models.AuthorizationHandle, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", c.currency)
	for key, value := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return models.AuthorizationHandle{}, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	intent, err := c.do(req)
	if err != nil {
		return models.AuthorizationHandle{}, errors.Wrap(err, "failed to create payment intent")
	}

	if intent.ID == "" {
		return models.AuthorizationHandle{}, errors.New("gateway returned a payment intent without id")
	}

	return models.AuthorizationHandle{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (c *Client) RetrieveAuthorization(ctx context.Context, authorizationID string) (models.Authorization, error) {
	if authorizationID == "" {
		return models.Authorization{}, errors.New("authorization id is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payment_intents/"+url.PathEscape(authorizationID), nil)
	if err != nil {
		return models.Authorization{}, errors.Wrap(err, "failed to create request")
	}

	intent, err := c.do(req)
	if err != nil {
		return models.Authorization{}, errors.Wrapf(err, "failed to retrieve payment intent %s", authorizationID)
	}

	return models.Authorization{
		ID:       intent.ID,
		Status:   authorizationStatus(intent.Status),
		Amount:   intent.Amount,
		Metadata: intent.Metadata,
	}, nil
}

func (c *Client) do(req *http.Request) (*paymentIntentResponse, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to send request by using %s method", req.Method)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read from response body")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var parsedError errorResponse
		if json.Unmarshal(body, &parsedError) == nil && parsedError.Error.Message != "" {
			return nil, errors.Errorf("gateway responded with %d: %s", res.StatusCode, parsedError.Error.Message)
		}
		return nil, errors.Errorf("gateway responded with %d", res.StatusCode)
	}

	var intent paymentIntentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal data")
	}

	return &intent, nil
}

// authorizationStatus folds the intermediate intent states into pending.
func authorizationStatus(status string) models.AuthorizationStatus {
	switch {
	case status == "succeeded":
		return models.AuthorizationSucceeded
	case status == "canceled":
		return models.AuthorizationCanceled
	case status == "failed":
		return models.AuthorizationFailed
	case status == "processing", strings.HasPrefix(status, "requires_"):
		return models.AuthorizationPending
	}
	return models.AuthorizationStatus(status)
}
