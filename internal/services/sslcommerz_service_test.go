package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) (*SSLCommerzService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewSSLCommerzService(SSLCommerzConfig{
		StoreID:       "teststore",
		StorePassword: "testpass",
		BaseURL:       srv.URL,
		SuccessURL:    "https://example.com/payment/success",
		FailURL:       "https://example.com/payment/fail",
		CancelURL:     "https://example.com/payment/cancel",
		Client:        srv.Client(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc, srv
}

func TestCreateSession_Success(t *testing.T) {
	var gotForm map[string]string
	svc, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotForm = map[string]string{
			"store_id":     r.PostFormValue("store_id"),
			"tran_id":      r.PostFormValue("tran_id"),
			"total_amount": r.PostFormValue("total_amount"),
			"currency":     r.PostFormValue("currency"),
			"success_url":  r.PostFormValue("success_url"),
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":         "SUCCESS",
			"sessionkey":     "sess-abc",
			"GatewayPageURL": "https://pay.example/checkout/abc",
		})
	})

	resp, err := svc.CreateSession(context.Background(), GatewaySessionRequest{
		TranID:   "42TXN_1700000000000",
		Amount:   500,
		Currency: "BDT",
		CusName:  "Test Customer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.GatewayPageURL != "https://pay.example/checkout/abc" {
		t.Errorf("gateway page url mismatch: %q", resp.GatewayPageURL)
	}
	if resp.SessionKey != "sess-abc" {
		t.Errorf("session key mismatch: %q", resp.SessionKey)
	}

	if gotForm["store_id"] != "teststore" {
		t.Errorf("store_id not forwarded: %q", gotForm["store_id"])
	}
	if gotForm["tran_id"] != "42TXN_1700000000000" {
		t.Errorf("tran_id not forwarded: %q", gotForm["tran_id"])
	}
	if gotForm["total_amount"] != "500.00" {
		t.Errorf("amount must be sent with two decimals: %q", gotForm["total_amount"])
	}
	if gotForm["success_url"] != "https://example.com/payment/success" {
		t.Errorf("success_url not forwarded: %q", gotForm["success_url"])
	}
}

func TestCreateSession_GatewayRefusal(t *testing.T) {
	svc, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"status":       "FAILED",
			"failedreason": "store credential mismatch",
		})
	})

	_, err := svc.CreateSession(context.Background(), GatewaySessionRequest{
		TranID: "42TXN_1700000000000", Amount: 500, Currency: "BDT",
	})
	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("want *GatewayError, got %v", err)
	}
	if gatewayErr.Reason != "store credential mismatch" {
		t.Errorf("reason mismatch: %q", gatewayErr.Reason)
	}
}

func TestCreateSession_HTTPError(t *testing.T) {
	svc, _ := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusBadGateway)
	})

	_, err := svc.CreateSession(context.Background(), GatewaySessionRequest{
		TranID: "7TXN_1700000000000", Amount: 100, Currency: "BDT",
	})
	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("want *GatewayError, got %v", err)
	}
}

func TestNewSSLCommerzService_MissingCredentials(t *testing.T) {
	_, err := NewSSLCommerzService(SSLCommerzConfig{BaseURL: "https://sandbox.sslcommerz.com"})
	if err == nil {
		t.Fatal("expected error for missing credentials")
	}
}
