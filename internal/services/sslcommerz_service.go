package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GatewayError carries the reason a gateway session could not be opened.
// Handlers map it to a 502 so upstream failures are not mistaken for bad
// requests.
type GatewayError struct {
	Reason string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s", e.Reason)
}

type SSLCommerzConfig struct {
	StoreID       string
	StorePassword string

	// Session endpoint base.
	// Example: https://sandbox.sslcommerz.com
	BaseURL string

	// Where the gateway redirects the customer after checkout.
	SuccessURL string
	FailURL    string
	CancelURL  string

	Client *http.Client
	Logger *slog.Logger
}

type SSLCommerzService struct {
	storeID       string
	storePassword string
	baseURL       *url.URL

	successURL string
	failURL    string
	cancelURL  string

	httpClient *http.Client
	logger     *slog.Logger
}

func NewSSLCommerzService(cfg SSLCommerzConfig) (*SSLCommerzService, error) {
	if strings.TrimSpace(cfg.StoreID) == "" ||
		strings.TrimSpace(cfg.StorePassword) == "" ||
		strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("sslcommerz: store_id/store_passwd/base_url are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}

	s := &SSLCommerzService{
		storeID:       cfg.StoreID,
		storePassword: cfg.StorePassword,
		baseURL:       u,
		successURL:    cfg.SuccessURL,
		failURL:       cfg.FailURL,
		cancelURL:     cfg.CancelURL,
		httpClient:    client,
		logger:        logger,
	}
	logger.Info("SSLCommerz initialized",
		"baseURL", u.Redacted(),
		"successURL_set", s.successURL != "",
		"failURL_set", s.failURL != "",
		"cancelURL_set", s.cancelURL != "",
	)
	return s, nil
}

type GatewaySessionRequest struct {
	TranID      string
	Amount      float64
	Currency    string
	ProductName string
	CusName     string
	CusEmail    string
	CusPhone    string
}

type GatewaySessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// CreateSession opens a checkout session at the gateway and returns the
// redirect URL the customer must be sent to. The request body is form
// encoded; credentials travel in the body, not in headers.
func (s *SSLCommerzService) CreateSession(ctx context.Context, req GatewaySessionRequest) (GatewaySessionResponse, error) {
	form := url.Values{}
	form.Set("store_id", s.storeID)
	form.Set("store_passwd", s.storePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TranID)
	form.Set("success_url", s.successURL)
	form.Set("fail_url", s.failURL)
	form.Set("cancel_url", s.cancelURL)
	form.Set("product_name", req.ProductName)
	form.Set("product_category", "vehicle-listing")
	form.Set("product_profile", "non-physical-goods")
	form.Set("shipping_method", "NO")
	form.Set("cus_name", req.CusName)
	form.Set("cus_email", req.CusEmail)
	form.Set("cus_phone", req.CusPhone)

	endpoint := *s.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + "/gwprocess/v4/api.php"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return GatewaySessionResponse{}, fmt.Errorf("build session request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.Error("gateway session request failed", "tran_id", req.TranID, "error", err)
		return GatewaySessionResponse{}, &GatewayError{Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return GatewaySessionResponse{}, &GatewayError{Reason: fmt.Sprintf("read response: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Error("gateway session rejected", "tran_id", req.TranID, "status", resp.StatusCode)
		return GatewaySessionResponse{}, &GatewayError{Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var session GatewaySessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return GatewaySessionResponse{}, &GatewayError{Reason: fmt.Sprintf("decode response: %v", err)}
	}
	if !strings.EqualFold(session.Status, "SUCCESS") || session.GatewayPageURL == "" {
		reason := session.FailedReason
		if reason == "" {
			reason = "session rejected without reason"
		}
		s.logger.Error("gateway refused session", "tran_id", req.TranID, "reason", reason)
		return GatewaySessionResponse{}, &GatewayError{Reason: reason}
	}

	s.logger.Info("gateway session created", "tran_id", req.TranID, "sessionkey", session.SessionKey)
	return session, nil
}
