package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"plantstore-bff/internal/logger"

	"go.uber.org/zap"
)

// Gateway is the remote commerce API that owns orders. This service
// composes and submits drafts; the upstream prices, stores, and tracks
// them.
type Gateway interface {
	CalculateOrderValue(ctx context.Context, items []Item) (*OrderValue, error)
	CreateOrder(ctx context.Context, draft *Draft) (*CreateResult, error)
	UploadPaymentSlip(ctx context.Context, orderID, filename string, file io.Reader) error
	GetOrderStatus(ctx context.Context, orderID, phoneNumber string) (*Order, error)
}

type httpGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewGateway(baseURL string) Gateway {
	if baseURL == "" {
		logger.L().Warn("commerce API base URL is empty")
	}

	return &httpGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the upstream response wrapper shared by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Status  int             `json:"status,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// postJSON sends a JSON body and decodes the envelope, surfacing the
// upstream message on failure when one is available.
func (g *httpGateway) postJSON(ctx context.Context, method, path string, body any) (*envelope, error) {
	log := logger.FromCtx(ctx).With(zap.String("path", path))

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("commerce request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read commerce response: %w", err)
	}

	var env envelope
	decoded := json.Unmarshal(bodyBytes, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error("commerce returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		if decoded && env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUpstream, env.Message)
		}
		return nil, ErrUpstream
	}

	if !decoded {
		log.Error("failed decoding commerce response", zap.ByteString("response", bodyBytes))
		return nil, fmt.Errorf("failed to decode commerce response")
	}

	if !env.Success {
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUpstream, env.Message)
		}
		return nil, ErrUpstream
	}

	return &env, nil
}

func (g *httpGateway) CalculateOrderValue(ctx context.Context, items []Item) (*OrderValue, error) {
	log := logger.FromCtx(ctx).With(zap.Int("items", len(items)))

	body := map[string]any{
		"orderItemsArray": items,
	}

	env, err := g.postJSON(ctx, "POST", "/order/calculate-order-value", body)
	if err != nil {
		return nil, err
	}

	var value OrderValue
	if err := json.Unmarshal(env.Data, &value); err != nil {
		log.Error("failed decoding order value", zap.Error(err))
		return nil, err
	}

	log.Debug("order value calculated", zap.Float64("total", value.TotalValue))

	return &value, nil
}

func (g *httpGateway) CreateOrder(ctx context.Context, draft *Draft) (*CreateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("payment_method", string(draft.MetaData.PaymentMethod)),
		zap.Int("items", len(draft.Items)),
	)

	log.Info("submitting order")

	env, err := g.postJSON(ctx, "POST", "/order/create-order", draft)
	if err != nil {
		return nil, err
	}

	var result CreateResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		log.Error("failed decoding create-order response", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", result.OrderID),
		zap.String("payment_id", result.PaymentID),
	)

	return &result, nil
}

func (g *httpGateway) UploadPaymentSlip(ctx context.Context, orderID, filename string, file io.Reader) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", orderID),
		zap.String("filename", filename),
	)

	// Cap the slip before any bytes go upstream. Reading one byte past the
	// limit distinguishes "exactly 5MB" from "too big".
	data, err := io.ReadAll(io.LimitReader(file, MaxSlipSize+1))
	if err != nil {
		return fmt.Errorf("failed to read payment slip: %w", err)
	}
	if len(data) > MaxSlipSize {
		return ErrSlipTooLarge
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("payment-slip", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", g.baseURL+"/order/upload-payment-slip/"+orderID, &buf)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}
	req.Header.Add("Content-Type", writer.FormDataContentType())

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("slip upload failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.Error("slip upload returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)

		var env envelope
		if json.Unmarshal(bodyBytes, &env) == nil && env.Message != "" {
			return fmt.Errorf("%w: %s", ErrUpstream, env.Message)
		}
		return ErrUpstream
	}

	log.Info("payment slip uploaded", zap.Int("bytes", len(data)))
	return nil
}

func (g *httpGateway) GetOrderStatus(ctx context.Context, orderID, phoneNumber string) (*Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID))

	query := url.Values{}
	query.Set("orderId", orderID)
	query.Set("phoneNumber", phoneNumber)

	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"/store/order-status?"+query.Encode(), nil)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("order status request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read commerce response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrOrderNotFound
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("order status returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		var env envelope
		if json.Unmarshal(bodyBytes, &env) == nil && env.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUpstream, env.Message)
		}
		return nil, ErrUpstream
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		log.Error("failed decoding order status", zap.Error(err))
		return nil, err
	}

	if !env.Success {
		return nil, ErrOrderNotFound
	}

	var o Order
	if err := json.Unmarshal(env.Data, &o); err != nil {
		log.Error("failed decoding order", zap.Error(err))
		return nil, err
	}

	return &o, nil
}
