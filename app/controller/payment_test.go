package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/upistack/upi-gateway/app/qr"
	"github.com/upistack/upi-gateway/app/repository"
	"github.com/upistack/upi-gateway/app/service"
	"github.com/upistack/upi-gateway/app/types"
	"github.com/upistack/upi-gateway/config"
)

func newPaymentControllerForTest(t *testing.T) *PaymentController {
	t.Helper()

	store, err := repository.NewPaymentFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	svc := service.NewPaymentService(
		store,
		qr.NewPNGGenerator(0),
		config.UPIConfig{
			PayeeAddress: "merchant@upi",
			MerchantName: "UPI Store",
			BusinessName: "UPI Gateway",
			OrderPrefix:  "PAY",
		},
		config.PaymentsConfig{ExpiryWindow: 10 * time.Minute, MaxAmount: 100000, ListLimit: 100},
		config.SweeperConfig{MinPendingAge: 2 * time.Minute, VerifyProbability: 0.4},
		nil,
	)

	return NewPaymentController(svc, config.AppConfig{ServiceName: "upi-gateway", Version: "1.0.0"}, config.UPIConfig{
		PayeeAddress: "merchant@upi",
		MerchantName: "UPI Store",
		BusinessName: "UPI Gateway",
	})
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
}

func TestHealthReportsStoreState(t *testing.T) {
	c := newPaymentControllerForTest(t)

	rec := doJSON(t, c.Health, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp types.HealthResponse
	decodeBody(t, rec, &resp)
	if resp.Status != "OK" || resp.Service != "upi-gateway" {
		t.Fatalf("unexpected health response: %+v", resp)
	}
	if resp.Config == nil || resp.Config.PaymentsFileExists {
		t.Fatal("payments file must not exist before the first order")
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	c := newPaymentControllerForTest(t)

	rec := doJSON(t, c.CreateOrder, http.MethodPost, "/api/create-order", `{"amount":500,"customerName":"Asha"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp types.CreateOrderResponse
	decodeBody(t, rec, &resp)
	if !resp.Success || !strings.HasPrefix(resp.OrderID, "PAY_") {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Amount != 500 {
		t.Fatalf("unexpected amount: %v", resp.Amount)
	}
	if !strings.HasPrefix(resp.UPILink, "upi://pay?") || !strings.Contains(resp.UPILink, "merchant%40upi") {
		t.Fatalf("unexpected UPI link: %s", resp.UPILink)
	}
	if resp.QRCode == nil || !strings.HasPrefix(*resp.QRCode, "data:image/png;base64,") {
		t.Fatal("expected an inline QR code")
	}
}

func TestCreateOrderEndpointRejectsBadAmounts(t *testing.T) {
	c := newPaymentControllerForTest(t)

	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`, `{"amount":"abc"}`, `{}`, `{"amount":100000.01}`} {
		rec := doJSON(t, c.CreateOrder, http.MethodPost, "/api/create-order", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
		var resp types.ErrorResponse
		decodeBody(t, rec, &resp)
		if resp.Success || resp.Error == "" {
			t.Fatalf("body %s: unexpected error payload: %+v", body, resp)
		}
	}
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	c := newPaymentControllerForTest(t)

	rec := doJSON(t, c.CreateOrder, http.MethodPost, "/api/create-order", `{"amount":500}`)
	var created types.CreateOrderResponse
	decodeBody(t, rec, &created)

	rec = doJSON(t, c.VerifyPayment, http.MethodPost, "/api/verify-payment",
		`{"orderId":"`+created.OrderID+`","utr":"ABC123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var resp types.VerifyPaymentResponse
	decodeBody(t, rec, &resp)
	if !resp.Success || resp.Status != "paid" || resp.Amount != 500 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Message != "Payment verified successfully" {
		t.Fatalf("unexpected message: %s", resp.Message)
	}

	// Second submission for the same order is a no-op.
	rec = doJSON(t, c.VerifyPayment, http.MethodPost, "/api/verify-payment",
		`{"orderId":"`+created.OrderID+`","utr":"XYZ999"}`)
	decodeBody(t, rec, &resp)
	if rec.Code != http.StatusOK || resp.Message != "Payment already verified" {
		t.Fatalf("expected idempotent verify, got %d %+v", rec.Code, resp)
	}
}

func TestVerifyPaymentEndpointErrors(t *testing.T) {
	c := newPaymentControllerForTest(t)

	rec := doJSON(t, c.VerifyPayment, http.MethodPost, "/api/verify-payment", `{"orderId":"PAY_404_1","utr":"ABC123"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, c.VerifyPayment, http.MethodPost, "/api/verify-payment", `{"orderId":"PAY_1_1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing utr, got %d", rec.Code)
	}
}

func TestPaymentStatusEndpoint(t *testing.T) {
	c := newPaymentControllerForTest(t)

	rec := doJSON(t, c.CreateOrder, http.MethodPost, "/api/create-order", `{"amount":250.5}`)
	var created types.CreateOrderResponse
	decodeBody(t, rec, &created)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payment-status/"+created.OrderID, nil)
	statusRec := httptest.NewRecorder()
	ctx := e.NewContext(req, statusRec)
	ctx.SetParamNames("orderId")
	ctx.SetParamValues(created.OrderID)
	if err := c.PaymentStatus(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if statusRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", statusRec.Code)
	}

	var resp types.PaymentStatusResponse
	decodeBody(t, statusRec, &resp)
	if resp.Payment == nil || resp.Payment.Status != "pending" || resp.Payment.Amount != 250.5 {
		t.Fatalf("unexpected status payload: %+v", resp.Payment)
	}
	if resp.Payment.UPILink != "" || resp.Payment.CustomerEmail != "" {
		t.Fatal("status view must not leak internal fields")
	}
}

func TestPaymentStatusEndpointNotFound(t *testing.T) {
	c := newPaymentControllerForTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payment-status/PAY_404_1", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("orderId")
	ctx.SetParamValues("PAY_404_1")
	if err := c.PaymentStatus(ctx); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSuccessPageEscapesOrderParam(t *testing.T) {
	c := newPaymentControllerForTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/success?order=%3Cscript%3E", nil)
	rec := httptest.NewRecorder()
	if err := c.SuccessPage(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>") {
		t.Fatal("order parameter must be escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") || !strings.Contains(body, "UPI Gateway") {
		t.Fatal("unexpected page body")
	}
}
