package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"plantstore-bff/internal/logger"

	"go.uber.org/zap"
)

// Gateway is the remote product catalog. The upstream owns the data; this
// service only reads it, both for display and for the stock gate.
type Gateway interface {
	List(ctx context.Context, query Query) ([]Product, PageMeta, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

type httpGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewGateway(baseURL string) Gateway {
	if baseURL == "" {
		logger.L().Warn("product API base URL is empty")
	}

	return &httpGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *httpGateway) List(ctx context.Context, query Query) ([]Product, PageMeta, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("page_no", query.Paging.PageNo),
		zap.Int("page_size", query.Paging.PageSize),
	)

	jsonBody, err := json.Marshal(query)
	if err != nil {
		return nil, PageMeta{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/product/get-all-products", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, PageMeta{}, err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("product list request failed", zap.Error(err))
		return nil, PageMeta{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, PageMeta{}, fmt.Errorf("failed to read product response: %w", err)
	}

	var res struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Entities []Product `json:"entities"`
			Paging   PageMeta  `json:"paging"`
		} `json:"data"`
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("product list returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		if json.Unmarshal(bodyBytes, &res) == nil && res.Message != "" {
			return nil, PageMeta{}, fmt.Errorf("%w: %s", ErrUpstream, res.Message)
		}
		return nil, PageMeta{}, ErrUpstream
	}

	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding product list", zap.Error(err))
		return nil, PageMeta{}, err
	}

	if !res.Success {
		return nil, PageMeta{}, fmt.Errorf("%w: %s", ErrUpstream, res.Message)
	}

	log.Debug("product list fetched", zap.Int("entities", len(res.Data.Entities)))

	return res.Data.Entities, res.Data.Paging, nil
}

func (g *httpGateway) GetByID(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("product_id", id))

	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+"/product/get-product-by-id/"+id, nil)
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("product fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read product response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("product fetch returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, ErrUpstream
	}

	var res struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Data    Product `json:"data"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding product", zap.Error(err))
		return nil, err
	}

	if !res.Success {
		return nil, ErrProductNotFound
	}

	return &res.Data, nil
}
