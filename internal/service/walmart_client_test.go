package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandongraves08/packstack/config"
	"github.com/brandongraves08/packstack/internal/core/domain"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWalmartTestClient(t *testing.T, handler http.HandlerFunc) *WalmartClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rc := NewRetryClient(srv.Client(), zerolog.Nop())
	rc.baseDelay = time.Millisecond
	cfg := config.WalmartConfig{ClientID: "client-id", ClientSecret: "client-secret", BaseURL: srv.URL}
	return NewWalmartClient(cfg, rc, zerolog.Nop())
}

const walmartSearchFixture = `{
  "items": [
    {
      "itemId": 44975086,
      "name": "Camping Tent Blue Color",
      "productUrl": "https://www.walmart.com/ip/44975086",
      "largeImage": "https://img.test/tent.jpg",
      "salePrice": 24.99,
      "customerRating": "4.3",
      "numReviews": 812,
      "categoryPath": "Sports & Outdoors/Camping",
      "brandName": "Ozark Trail",
      "pickupToday": true
    },
    {
      "itemId": 99120034,
      "name": "Trekking Poles"
    }
  ]
}`

func TestWalmartClient_SearchProducts(t *testing.T) {
	var gotQuery map[string][]string
	var gotHeaders http.Header
	client := newWalmartTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotHeaders = r.Header.Clone()
		w.Write([]byte(walmartSearchFixture))
	})

	products, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "tent", Category: "4125", Limit: 5})
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, "44975086", p.ID)
	assert.Equal(t, "Camping Tent Blue Color", p.Title)
	assert.Equal(t, "Ozark Trail", p.Brand)
	require.NotNil(t, p.Price)
	assert.True(t, p.Price.Amount.Equal(decimal.RequireFromString("24.99")))
	assert.Equal(t, "$24.99", p.Price.Formatted)
	assert.Equal(t, 4.3, p.Rating, "quoted customerRating must parse")
	assert.Equal(t, 812, p.TotalReviews)
	assert.True(t, p.PrimeOrPickup)
	assert.Equal(t, []string{"https://img.test/tent.jpg"}, p.Images)
	assert.Equal(t, "walmart", string(p.Source))

	// Missing salePrice still yields a usable zero price.
	require.NotNil(t, products[1].Price)
	assert.True(t, products[1].Price.Amount.IsZero())

	assert.Equal(t, []string{"tent"}, gotQuery["query"])
	assert.Equal(t, []string{"5"}, gotQuery["numItems"])
	assert.Equal(t, []string{"4125"}, gotQuery["categoryId"])
	assert.Equal(t, "client-id", gotHeaders.Get("WM_CONSUMER.ID"))
	assert.Equal(t, "1", gotHeaders.Get("WM_SEC.KEY_VERSION"))
	assert.NotEmpty(t, gotHeaders.Get("WM_SEC.AUTH_SIGNATURE"))
	assert.NotEmpty(t, gotHeaders.Get("WM_CONSUMER.INTIMESTAMP"))
}

func TestWalmartClient_SearchProducts_NoItemsKey(t *testing.T) {
	client := newWalmartTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":"asdf","totalResults":0}`))
	})

	products, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "asdf"})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestWalmartClient_NotConfigured(t *testing.T) {
	calls := 0
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, nil
	})
	rc := NewRetryClient(&http.Client{Transport: transport}, zerolog.Nop())
	client := NewWalmartClient(config.WalmartConfig{}, rc, zerolog.Nop())

	_, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "tent"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CFG_001", appErr.Code)

	_, err = client.GetProductDetails(context.Background(), "44975086")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CFG_001", appErr.Code)

	_, err = client.CheckStoreAvailability(context.Background(), "44975086", "80301")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CFG_001", appErr.Code)

	assert.Zero(t, calls, "no network call may be attempted without credentials")
}

const walmartItemFixture = `{
  "item": {
    "itemId": 44975086,
    "name": "Camping Tent Blue Color",
    "productUrl": "https://www.walmart.com/ip/44975086",
    "largeImage": "https://img.test/tent.jpg",
    "salePrice": 24.99,
    "customerRating": 4.3,
    "numReviews": 812,
    "brandName": "Ozark Trail",
    "longDescription": "A four person dome tent.",
    "stock": "Available",
    "attributes": [
      {"name": "Capacity", "value": "4 Person"},
      {"name": "Season", "value": "3-Season"}
    ]
  }
}`

func TestWalmartClient_GetProductDetails(t *testing.T) {
	client := newWalmartTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/affil/product/v2/items/44975086", r.URL.Path)
		w.Write([]byte(walmartItemFixture))
	})

	p, err := client.GetProductDetails(context.Background(), "44975086")
	require.NoError(t, err)

	assert.Equal(t, "44975086", p.ID)
	assert.Equal(t, "A four person dome tent.", p.Description)
	assert.Equal(t, "In Stock", p.Availability)
	assert.Equal(t, 4.3, p.Rating, "unquoted customerRating must parse too")
	assert.Equal(t, []domain.Specification{
		{Name: "Capacity", Value: "4 Person"},
		{Name: "Season", Value: "3-Season"},
	}, p.Specifications)
}

func TestWalmartClient_GetProductDetails_StockMapping(t *testing.T) {
	tests := []struct {
		stock string
		want  string
	}{
		{"Available", "In Stock"},
		{"Not available", "Out of Stock"},
		{"", "Out of Stock"},
	}
	for _, tt := range tests {
		t.Run("stock="+tt.stock, func(t *testing.T) {
			client := newWalmartTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				resp := map[string]interface{}{
					"item": map[string]interface{}{"itemId": 1, "name": "x", "stock": tt.stock},
				}
				json.NewEncoder(w).Encode(resp)
			})

			p, err := client.GetProductDetails(context.Background(), "1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Availability)
		})
	}
}

func TestWalmartClient_GetProductDetails_NotFound(t *testing.T) {
	client := newWalmartTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.GetProductDetails(context.Background(), "00000000")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRV_003", appErr.Code)
}

func TestWalmartClient_VendorError(t *testing.T) {
	client := newWalmartTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"signature mismatch"}`))
	})

	_, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "tent"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRV_002", appErr.Code)
	assert.Contains(t, appErr.Message, "403")
}

func TestWalmartClient_CheckStoreAvailability(t *testing.T) {
	const storesBody = `[{"no":2092,"name":"Boulder Supercenter","stockStatus":"In stock"}]`
	client := newWalmartTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/affil/product/v2/items/44975086/stores", r.URL.Path)
		assert.Equal(t, "80301", r.URL.Query().Get("zipCode"))
		w.Write([]byte(storesBody))
	})

	raw, err := client.CheckStoreAvailability(context.Background(), "44975086", "80301")
	require.NoError(t, err)
	assert.JSONEq(t, storesBody, string(raw))
}
