package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/boutiq/storefront/internal/domain/errors"
	"github.com/boutiq/storefront/internal/domain/model"
	"github.com/boutiq/storefront/internal/server/http/dto"
	testhelpers "github.com/boutiq/storefront/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body.Error
}

func orderBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.CreateOrderRequest{
		CustomerEmail: "buyer@example.com",
		CustomerName:  "Jean Martin",
		Items:         []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}

func TestOrderHandlerCreate(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{CreateOrderFn: func(_ context.Context, req model.NewOrder) (*model.Order, error) {
		if req.CustomerEmail != "buyer@example.com" || len(req.Items) != 1 {
			t.Fatalf("unexpected request passed to facade: %+v", req)
		}
		return testhelpers.SampleOrder(), nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, orderBody(t), nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	var body dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.OrderNumber != "ORD-20260830-001" || body.ItemsCount != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name    string
		facade  testhelpers.OrderFacadeStub
		body    []byte
		status  int
		message string
	}{
		{name: "bad json", body: []byte("not json"), status: http.StatusBadRequest, message: "Invalid request body"},
		{name: "empty cart", body: []byte(`{"customer_email":"a@b.fr","customer_name":"A","items":[]}`), facade: testhelpers.OrderFacadeStub{CreateOrderFn: func(context.Context, model.NewOrder) (*model.Order, error) {
			return nil, domainErrors.NewValidation("Empty cart")
		}}, status: http.StatusBadRequest, message: "Empty cart"},
		{name: "unknown product", body: []byte(`{}`), facade: testhelpers.OrderFacadeStub{CreateOrderFn: func(context.Context, model.NewOrder) (*model.Order, error) {
			return nil, &domainErrors.ProductNotFoundError{ProductID: 7}
		}}, status: http.StatusNotFound, message: "Product 7 not found"},
		{name: "insufficient stock", body: []byte(`{}`), facade: testhelpers.OrderFacadeStub{CreateOrderFn: func(context.Context, model.NewOrder) (*model.Order, error) {
			return nil, &domainErrors.InsufficientStockError{ProductName: "Ceramic Lamp"}
		}}, status: http.StatusConflict, message: "Insufficient stock for Ceramic Lamp"},
		{name: "internal", body: []byte(`{}`), facade: testhelpers.OrderFacadeStub{CreateOrderFn: func(context.Context, model.NewOrder) (*model.Order, error) {
			return nil, errors.New("boom")
		}}, status: http.StatusInternalServerError, message: "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(tc.facade, discardLogger())
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, tc.body, nil)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
			if got := decodeError(t, resp); got != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, got)
			}
		})
	}
}

func TestOrderHandlerGetByID(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{}, discardLogger())

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/11", handler.GetByID, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/abc", handler.GetByID, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for non-numeric id, got %d", resp.Code)
	}

	missing := NewOrderHandler(testhelpers.OrderFacadeStub{OrderByIDFn: func(context.Context, int64) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}, discardLogger())
	resp = performRequest(t, http.MethodGet, "/orders/:id", "/orders/99", missing.GetByID, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerLookupByNumber(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrderByNumberFn: func(_ context.Context, number string) (*model.Order, error) {
		if number != "ORD-20260830-001" {
			t.Fatalf("unexpected number %q", number)
		}
		return testhelpers.SampleOrder(), nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodGet, "/orders/:id/:value", "/orders/number/ORD-20260830-001", handler.Lookup, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestOrderHandlerLookupByEmail(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrdersByEmailFn: func(_ context.Context, email string) ([]model.Order, error) {
		if email != "buyer@example.com" {
			t.Fatalf("unexpected email %q", email)
		}
		return []model.Order{*testhelpers.SampleOrder()}, nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodGet, "/orders/:id/:value", "/orders/email/buyer@example.com", handler.Lookup, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body) != 1 {
		t.Fatalf("expected one order, got %d", len(body))
	}
}

func TestOrderHandlerLookupUnknownSegment(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{}, discardLogger())

	resp := performRequest(t, http.MethodGet, "/orders/:id/:value", "/orders/slug/whatever", handler.Lookup, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{ChangeOrderStatusFn: func(_ context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
		if id != 11 || status != model.OrderStatusProcessing {
			t.Fatalf("unexpected arguments: %d %s", id, status)
		}
		order := testhelpers.SampleOrder()
		order.OrderStatus = status
		return order, nil
	}}, discardLogger())

	body, _ := json.Marshal(dto.UpdateStatusRequest{Status: "processing"})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/11/status", handler.UpdateStatus, body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatusIllegalTransition(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{ChangeOrderStatusFn: func(context.Context, int64, model.OrderStatus) (*model.Order, error) {
		return nil, fmt.Errorf("%w: delivered to shipped", domainErrors.ErrInvalidTransition)
	}}, discardLogger())

	body, _ := json.Marshal(dto.UpdateStatusRequest{Status: "shipped"})
	resp := performRequest(t, http.MethodPatch, "/orders/:id/status", "/orders/11/status", handler.UpdateStatus, body, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestPaymentHandlerCheckout(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{}, discardLogger())

	resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", handler.Checkout, orderBody(t), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body dto.CheckoutResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.SessionID != "cs_test_1" || body.URL == "" || body.OrderNumber != "ORD-20260830-001" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPaymentHandlerCheckoutGatewayDown(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{CheckoutFn: func(context.Context, model.NewOrder) (*model.Order, *model.PaymentSession, error) {
		return nil, nil, fmt.Errorf("create checkout session: %w", domainErrors.ErrGateway)
	}}, discardLogger())

	resp := performRequest(t, http.MethodPost, "/checkout", "/checkout", handler.Checkout, orderBody(t), nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", resp.Code)
	}
	if got := decodeError(t, resp); got != "Payment service unavailable" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestPaymentHandlerVerify(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{}, discardLogger())

	resp := performRequest(t, http.MethodGet, "/payments/verify/:sessionId", "/payments/verify/cs_test_1", handler.Verify, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body dto.VerifyResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body.Success || body.Order == nil || body.Order.PaymentStatus != "paid" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPaymentHandlerVerifyNotPaid(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{VerifyPaymentFn: func(context.Context, string) (*model.Order, bool, error) {
		return nil, false, nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodGet, "/payments/verify/:sessionId", "/payments/verify/cs_test_1", handler.Verify, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body dto.VerifyResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Success || body.Message != "Payment not confirmed" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestPaymentHandlerWebhookAck(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{HandleWebhookFn: func(_ context.Context, payload []byte, signature string) error {
		if string(payload) != `{"type":"checkout.session.completed"}` || signature != "t=1,v1=abc" {
			t.Fatalf("unexpected webhook input: %s %s", payload, signature)
		}
		return nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodPost, "/payment/webhook", "/payment/webhook", handler.Webhook,
		[]byte(`{"type":"checkout.session.completed"}`), map[string]string{"Stripe-Signature": "t=1,v1=abc"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body dto.WebhookResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body.Received {
		t.Fatal("expected received acknowledgement")
	}
}

func TestPaymentHandlerWebhookBadSignature(t *testing.T) {
	handler := NewPaymentHandler(testhelpers.PaymentFacadeStub{HandleWebhookFn: func(context.Context, []byte, string) error {
		return errors.New("signature mismatch")
	}}, discardLogger())

	resp := performRequest(t, http.MethodPost, "/payment/webhook", "/payment/webhook", handler.Webhook, []byte("{}"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if got := decodeError(t, resp); got != "Webhook Error: signature mismatch" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestProductHandlerList(t *testing.T) {
	handler := NewProductHandler(testhelpers.CatalogFacadeStub{}, discardLogger())

	resp := performRequest(t, http.MethodGet, "/products", "/products", handler.List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body) != 1 || body[0].Slug != "ceramic-lamp" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestProductHandlerSetStock(t *testing.T) {
	handler := NewProductHandler(testhelpers.CatalogFacadeStub{SetProductStockFn: func(_ context.Context, id int64, quantity int) (*model.Product, error) {
		if id != 1 || quantity != 12 {
			t.Fatalf("unexpected arguments: %d %d", id, quantity)
		}
		product := testhelpers.SampleProduct()
		product.StockQuantity = quantity
		return product, nil
	}}, discardLogger())

	resp := performRequest(t, http.MethodPatch, "/products/:id/stock", "/products/1/stock", handler.SetStock, []byte(`{"stock_quantity":12}`), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPatch, "/products/:id/stock", "/products/1/stock", handler.SetStock, []byte(`{}`), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing quantity, got %d", resp.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{LoginFn: func(_ context.Context, email, password string) (string, error) {
		if email != "admin@example.com" || password != "secret" {
			t.Fatalf("unexpected credentials: %q %q", email, password)
		}
		return "session-token", nil
	}}, discardLogger())

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "secret"})
	resp := performRequest(t, http.MethodPost, "/auth/login", "/auth/login", handler.Login, body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", resp.Header().Get("Authorization"))
	}

	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "storefront_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named storefront_token")
	}
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{LoginFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}}, discardLogger())

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	resp := performRequest(t, http.MethodPost, "/auth/login", "/auth/login", handler.Login, body, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(testhelpers.HealthCheckerStub{}, discardLogger())
	resp := performRequest(t, http.MethodGet, "/health", "/health", handler.Check, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	handler = NewHealthHandler(testhelpers.HealthCheckerStub{Err: errors.New("db down")}, discardLogger())
	resp = performRequest(t, http.MethodGet, "/health", "/health", handler.Check, nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}
