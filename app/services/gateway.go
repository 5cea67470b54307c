package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/uncle-tee/socialite.io/app/config"
)

// GatewayVerification is the gateway's answer for a transaction reference.
type GatewayVerification struct {
	TransactionReference string
	MerchantReference    string
	AmountInMinorUnit    int64
	Successful           bool
	PaidAt               time.Time
}

// TransactionVerifier checks a payment reference against the gateway.
type TransactionVerifier interface {
	Verify(ctx context.Context, transactionReference string) (*GatewayVerification, error)
}

// FlutterwaveClient verifies transactions against a Flutterwave style
// verify-by-reference endpoint. All calls carry a bounded timeout; a timeout
// is returned as an error so the caller can leave the transaction PENDING.
type FlutterwaveClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewFlutterwaveClient(cfg config.GatewayConfig) *FlutterwaveClient {
	return &FlutterwaveClient{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

type flutterwaveVerifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		TxRef         string  `json:"tx_ref"`
		FlwRef        string  `json:"flw_ref"`
		Amount        float64 `json:"amount"`
		Currency      string  `json:"currency"`
		Status        string  `json:"status"`
		CreatedAtDate string  `json:"created_at"`
	} `json:"data"`
}

// Verify calls the gateway's verify_by_reference endpoint.
func (f *FlutterwaveClient) Verify(ctx context.Context, transactionReference string) (*GatewayVerification, error) {
	url := fmt.Sprintf("%s/transactions/verify_by_reference?tx_ref=%s", f.baseURL, transactionReference)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+f.secretKey)
	request.Header.Set("Accept", "application/json")

	response, err := f.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway verification failed with status %d", response.StatusCode)
	}

	var payload flutterwaveVerifyResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, err
	}

	paidAt, err := time.Parse(time.RFC3339, payload.Data.CreatedAtDate)
	if err != nil {
		paidAt = time.Now()
	}

	return &GatewayVerification{
		TransactionReference: payload.Data.TxRef,
		MerchantReference:    payload.Data.FlwRef,
		// gateway amounts arrive in major units; 1.13 is not exactly
		// representable, so round instead of truncating
		AmountInMinorUnit: int64(math.Round(payload.Data.Amount * 100)),
		Successful:        payload.Status == "success" && payload.Data.Status == "successful",
		PaidAt:            paidAt,
	}, nil
}
