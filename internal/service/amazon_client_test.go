package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandongraves08/packstack/config"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amazonTestConfig(baseURL string) config.AmazonConfig {
	return config.AmazonConfig{
		AccessKey:    "AKIDEXAMPLE",
		SecretKey:    "secret",
		AssociateTag: "packstack-20",
		Region:       "us-east-1",
		BaseURL:      baseURL,
	}
}

func newAmazonTestClient(t *testing.T, handler http.HandlerFunc) *AmazonClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rc := NewRetryClient(srv.Client(), zerolog.Nop())
	rc.baseDelay = time.Millisecond
	return NewAmazonClient(amazonTestConfig(srv.URL), rc, zerolog.Nop())
}

const amazonSearchFixture = `{
  "SearchResult": {
    "Items": [
      {
        "ASIN": "B01HGANGVW",
        "DetailPageURL": "https://www.amazon.com/dp/B01HGANGVW",
        "ItemInfo": {
          "Title": {"DisplayValue": "Blue Tent"},
          "ByLineInfo": {"Brand": {"DisplayValue": "Coleman"}}
        },
        "Images": {"Primary": {"Medium": {"URL": "https://img.test/medium.jpg"}}},
        "Offers": {
          "Listings": [
            {
              "Price": {"Amount": 29.99, "Currency": "USD", "DisplayAmount": "$29.99"},
              "DeliveryInfo": {"IsPrimeEligible": true}
            }
          ]
        }
      },
      {
        "ASIN": "B000BARE",
        "DetailPageURL": "https://www.amazon.com/dp/B000BARE"
      }
    ]
  }
}`

func TestAmazonClient_SearchProducts(t *testing.T) {
	var gotBody map[string]interface{}
	var gotHeaders http.Header
	client := newAmazonTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(amazonSearchFixture))
	})

	products, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "tent"})
	require.NoError(t, err)
	require.Len(t, products, 2)

	p := products[0]
	assert.Equal(t, "B01HGANGVW", p.ID)
	assert.Equal(t, "Blue Tent", p.Title)
	assert.Equal(t, "Coleman", p.Brand)
	assert.Equal(t, "https://www.amazon.com/dp/B01HGANGVW", p.URL)
	assert.Equal(t, []string{"https://img.test/medium.jpg"}, p.Images)
	require.NotNil(t, p.Price)
	assert.True(t, p.Price.Amount.Equal(decimal.RequireFromString("29.99")))
	assert.Equal(t, "$29.99", p.Price.Formatted)
	assert.True(t, p.PrimeOrPickup)
	assert.Equal(t, "amazon", string(p.Source))

	// An item with nothing but an ASIN still normalizes with defaults.
	bare := products[1]
	assert.Equal(t, "B000BARE", bare.ID)
	assert.Empty(t, bare.Title)
	assert.Nil(t, bare.Price)
	assert.False(t, bare.PrimeOrPickup)
	assert.Empty(t, bare.Images)

	// Request shape: defaults, partner tag, signed headers.
	assert.Equal(t, "tent", gotBody["Keywords"])
	assert.Equal(t, "Outdoors", gotBody["SearchIndex"])
	assert.Equal(t, float64(10), gotBody["ItemCount"])
	assert.Equal(t, "packstack-20", gotBody["PartnerTag"])
	assert.Equal(t, "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems", gotHeaders.Get("X-Amz-Target"))
	assert.Contains(t, gotHeaders.Get("Authorization"), "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/")
	assert.NotEmpty(t, gotHeaders.Get("X-Amz-Date"))
}

func TestAmazonClient_SearchProducts_EmptyResult(t *testing.T) {
	client := newAmazonTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	products, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, products, "missing SearchResult is an empty result, not an error")
}

func TestAmazonClient_SearchProducts_NotConfigured(t *testing.T) {
	calls := 0
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, nil
	})
	rc := NewRetryClient(&http.Client{Transport: transport}, zerolog.Nop())
	client := NewAmazonClient(config.AmazonConfig{Region: "us-east-1"}, rc, zerolog.Nop())

	_, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "tent"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CFG_001", appErr.Code)
	assert.Zero(t, calls, "no network call may be attempted without credentials")
}

func TestAmazonClient_SearchProducts_VendorError(t *testing.T) {
	client := newAmazonTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"Errors":[{"Code":"TooManyRequests"}]}`))
	})

	_, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "tent"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRV_002", appErr.Code)
	assert.Contains(t, appErr.Message, "429")
	assert.Contains(t, appErr.Message, "TooManyRequests")
}

const amazonDetailFixture = `{
  "ItemsResult": {
    "Items": [
      {
        "ASIN": "B01HGANGVW",
        "DetailPageURL": "https://www.amazon.com/dp/B01HGANGVW",
        "ItemInfo": {
          "Title": {"DisplayValue": "Blue Tent"},
          "ByLineInfo": {"Brand": {"DisplayValue": "Coleman"}},
          "Features": {"DisplayValues": ["WeatherTec system", "Sets up in 10 minutes"]},
          "ProductInfo": {
            "ItemDimensions": {
              "Weight": {"DisplayValue": 9.8, "Unit": "Pounds"}
            }
          }
        },
        "Images": {
          "Primary": {"Large": {"URL": "https://img.test/large.jpg"}},
          "Variants": [
            {"Large": {"URL": "https://img.test/variant1.jpg"}},
            {"Large": {"URL": "https://img.test/variant2.jpg"}}
          ]
        },
        "Offers": {
          "Listings": [
            {
              "Price": {"Amount": 89.5, "Currency": "USD", "DisplayAmount": "$89.50"},
              "DeliveryInfo": {"IsPrimeEligible": true}
            }
          ]
        }
      }
    ]
  }
}`

func TestAmazonClient_GetProductDetails(t *testing.T) {
	client := newAmazonTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/paapi5/getitems", r.URL.Path)
		w.Write([]byte(amazonDetailFixture))
	})

	p, err := client.GetProductDetails(context.Background(), "B01HGANGVW")
	require.NoError(t, err)

	assert.Equal(t, "B01HGANGVW", p.ID)
	assert.Equal(t, []string{"WeatherTec system", "Sets up in 10 minutes"}, p.Features)
	assert.Equal(t, "9.8", p.Weight)
	assert.Equal(t, "Pounds", p.WeightUnit)
	assert.Equal(t, []string{
		"https://img.test/large.jpg",
		"https://img.test/variant1.jpg",
		"https://img.test/variant2.jpg",
	}, p.Images)
	require.NotNil(t, p.Price)
	assert.Equal(t, "$89.50", p.Price.Formatted)
	assert.True(t, p.PrimeOrPickup)
}

func TestAmazonClient_GetProductDetails_MissingOffers(t *testing.T) {
	client := newAmazonTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
		  "ItemsResult": {
		    "Items": [
		      {
		        "ASIN": "B0NOPRICE",
		        "ItemInfo": {"Title": {"DisplayValue": "Mystery Gadget"}}
		      }
		    ]
		  }
		}`))
	})

	p, err := client.GetProductDetails(context.Background(), "B0NOPRICE")
	require.NoError(t, err)
	assert.Nil(t, p.Price, "absent Offers means no price, not an error")
	assert.False(t, p.PrimeOrPickup)
}

func TestAmazonClient_GetProductDetails_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no ItemsResult", `{}`},
		{"different ASIN returned", `{"ItemsResult":{"Items":[{"ASIN":"B0OTHER"}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newAmazonTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.GetProductDetails(context.Background(), "B0MISSING")

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "PRV_003", appErr.Code)
		})
	}
}

func TestAmazonClient_MalformedResponse(t *testing.T) {
	client := newAmazonTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SearchResult": "not an object"`))
	})

	_, err := client.SearchProducts(context.Background(), ports.SearchParams{Query: "tent"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRV_004", appErr.Code)
}
