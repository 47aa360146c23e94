package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestGateway_List(t *testing.T) {
	gw := NewGateway("https://products.example.com/api").(*httpGateway)

	query := Query{
		Paging:  Paging{PageNo: 1, PageSize: 20},
		Filters: []Filter{{QueryAttribute: "category", Query: "indoor"}},
		Sorting: &Sorting{ColumnName: "price", Order: "asc"},
	}

	t.Run("Success", func(t *testing.T) {
		respBody := `{
			"success": true,
			"message": "ok",
			"data": {
				"entities": [
					{"id": "p1", "name": "Rose Bush", "price": 12.5, "stock": 4, "category": "outdoor"},
					{"id": "p2", "name": "Fern", "price": 8, "stock": 10, "category": "indoor"}
				],
				"paging": {"pageNo": 1, "pageSize": 20, "length": 2}
			}
		}`

		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "https://products.example.com/api/product/get-all-products", req.URL.String())

			var sent Query
			body, _ := io.ReadAll(req.Body)
			require.NoError(t, json.Unmarshal(body, &sent))
			assert.Equal(t, 1, sent.Paging.PageNo)
			assert.Equal(t, "category", sent.Filters[0].QueryAttribute)

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     make(http.Header),
			}
		})

		products, paging, err := gw.List(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Rose Bush", products[0].Name)
		assert.Equal(t, 2, paging.Length)
	})

	t.Run("UpstreamErrorWithMessage", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       io.NopCloser(bytes.NewBufferString(`{"success": false, "message": "catalog offline"}`)),
				Header:     make(http.Header),
			}
		})

		_, _, err := gw.List(context.Background(), query)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUpstream)
		assert.Contains(t, err.Error(), "catalog offline")
	})

	t.Run("TransportError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, _, err := gw.List(context.Background(), query)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("SuccessFalse", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"success": false, "message": "bad filter"}`)),
				Header:     make(http.Header),
			}
		})

		_, _, err := gw.List(context.Background(), query)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad filter")
	})
}

func TestGateway_GetByID(t *testing.T) {
	gw := NewGateway("https://products.example.com/api").(*httpGateway)

	t.Run("Success", func(t *testing.T) {
		respBody := `{
			"success": true,
			"message": "ok",
			"data": {"id": "p1", "name": "Rose Bush", "price": 12.5, "stock": 4}
		}`

		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, "https://products.example.com/api/product/get-product-by-id/p1", req.URL.String())

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(respBody)),
				Header:     make(http.Header),
			}
		})

		p, err := gw.GetByID(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "Rose Bush", p.Name)
		assert.Equal(t, 4, p.Stock)
	})

	t.Run("NotFound", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(bytes.NewBufferString(`{"success": false, "message": "not found"}`)),
				Header:     make(http.Header),
			}
		})

		_, err := gw.GetByID(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("SuccessFalseIsNotFound", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"success": false, "message": "deleted"}`)),
				Header:     make(http.Header),
			}
		})

		_, err := gw.GetByID(context.Background(), "p1")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("ServerError", func(t *testing.T) {
		gw.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusBadGateway,
				Body:       io.NopCloser(bytes.NewBufferString(``)),
				Header:     make(http.Header),
			}
		})

		_, err := gw.GetByID(context.Background(), "p1")
		assert.ErrorIs(t, err, ErrUpstream)
	})
}
