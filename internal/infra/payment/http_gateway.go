package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travel-booking/internal/pkg/config"
	"travel-booking/internal/pkg/errs"
	"travel-booking/internal/pkg/metrics"
	"travel-booking/internal/pkg/tracing"
	"travel-booking/internal/usecase/commands"

	"go.opentelemetry.io/otel/attribute"
)

var ErrUpstream = errs.New("payment provider returned an error")

// HTTPGateway talks to an orders/payments REST API with basic auth (Razorpay-style).
type HTTPGateway struct {
	client    *http.Client
	baseURL   string
	keyID     string
	keySecret string
	currency  string
}

func NewHTTPGateway(cfg config.PaymentConfig) *HTTPGateway {
	return &HTTPGateway{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		currency:  cfg.Currency,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type paymentResponse struct {
	ID     string `json:"id"`
	Method string `json:"method"`
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, amount int64, receipt string) (order *commands.PaymentOrder, err error) {
	ctx, span := tracing.StartSpan(ctx, "payment.CreateOrder", attribute.String("payment.receipt", receipt))
	start := time.Now()
	defer func() {
		observe("create_order", start, err)
		tracing.End(span, err)
	}()

	body, err := json.Marshal(createOrderRequest{Amount: amount, Currency: g.currency, Receipt: receipt})
	if err != nil {
		return nil, err
	}

	var resp orderResponse
	if err = g.do(ctx, http.MethodPost, "/v1/orders", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &commands.PaymentOrder{
		OrderID:  resp.ID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
		Receipt:  resp.Receipt,
	}, nil
}

func (g *HTTPGateway) PaymentMethod(ctx context.Context, paymentID string) (method string, err error) {
	ctx, span := tracing.StartSpan(ctx, "payment.PaymentMethod")
	start := time.Now()
	defer func() {
		observe("payment_method", start, err)
		tracing.End(span, err)
	}()

	var resp paymentResponse
	if err = g.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), nil, &resp); err != nil {
		return "", err
	}
	return resp.Method, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return errs.Wrap(err, "build payment request")
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := g.client.Do(req)
	if err != nil {
		return errs.Wrapf(err, "payment %s %s", method, path)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return errs.Wrap(err, "read payment response")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errs.Mark(fmt.Errorf("%s %s: status %d: %s", method, path, res.StatusCode, truncate(raw, 256)), ErrUpstream)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Wrap(err, "decode payment response")
	}
	return nil
}

func observe(operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.PaymentGatewayLatency.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
