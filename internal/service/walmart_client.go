package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/brandongraves08/packstack/config"
	"github.com/brandongraves08/packstack/internal/core/domain"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	walmartSearchPath   = "/affil/product/v2/search"
	walmartItemPath     = "/affil/product/v2/items/"
	walmartDefaultLimit = 10

	walmartStockAvailable = "Available"
)

// WalmartClient talks to the Walmart affiliate API: signed GET requests
// through the retry client, mapped into the shared Product schema.
type WalmartClient struct {
	cfg    config.WalmartConfig
	signer *WalmartSigner
	http   *RetryClient
	log    zerolog.Logger
}

// NewWalmartClient creates a provider-B catalog client. The credential set is
// fixed for the client's lifetime; rotation means constructing a new client.
func NewWalmartClient(cfg config.WalmartConfig, rc *RetryClient, log zerolog.Logger) *WalmartClient {
	return &WalmartClient{
		cfg:    cfg,
		signer: NewWalmartSigner(cfg.ClientID, cfg.ClientSecret),
		http:   rc,
		log:    log.With().Str("provider", "walmart").Logger(),
	}
}

var _ ports.WalmartCatalog = (*WalmartClient)(nil)

// SearchProducts searches the catalog by query, optionally scoped to a
// category ID.
func (c *WalmartClient) SearchProducts(ctx context.Context, params ports.SearchParams) ([]domain.Product, error) {
	if !c.cfg.Configured() {
		return nil, apperror.ErrProviderNotConfigured("Walmart")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = walmartDefaultLimit
	}

	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("numItems", strconv.Itoa(limit))
	if params.Category != "" {
		query.Set("categoryId", params.Category)
	}

	var result walmartSearchResponse
	if err := c.get(ctx, walmartSearchPath, query, &result); err != nil {
		return nil, err
	}

	// A response without an items key is an empty result set, not an error.
	products := make([]domain.Product, 0, len(result.Items))
	for _, item := range result.Items {
		products = append(products, item.toProduct(false))
	}
	return products, nil
}

// GetProductDetails fetches one item by its numeric item ID.
func (c *WalmartClient) GetProductDetails(ctx context.Context, itemID string) (*domain.Product, error) {
	if !c.cfg.Configured() {
		return nil, apperror.ErrProviderNotConfigured("Walmart")
	}

	var result walmartItemResponse
	if err := c.get(ctx, walmartItemPath+url.PathEscape(itemID), nil, &result); err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, apperror.ErrProductNotFound()
	}

	product := result.Item.toProduct(true)
	return &product, nil
}

// CheckStoreAvailability returns the vendor's raw store-availability payload
// for an item near a zip code. No normalization contract exists for this
// shape, so it is passed through untouched.
func (c *WalmartClient) CheckStoreAvailability(ctx context.Context, itemID, zipCode string) (json.RawMessage, error) {
	if !c.cfg.Configured() {
		return nil, apperror.ErrProviderNotConfigured("Walmart")
	}

	query := url.Values{}
	query.Set("zipCode", zipCode)

	var raw json.RawMessage
	if err := c.get(ctx, walmartItemPath+url.PathEscape(itemID)+"/stores", query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// get signs and sends one affiliate API request, decoding a 200 response.
func (c *WalmartClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperror.InternalError(err)
	}
	for name, value := range c.signer.Headers() {
		req.Header.Set(name, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return apperror.ErrVendor("Walmart", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.ErrProviderResponse("Walmart", err)
	}
	return nil
}

// --- Raw affiliate API payload shapes.

type walmartSearchResponse struct {
	Items []walmartItem `json:"items"`
}

type walmartItemResponse struct {
	Item *walmartItem `json:"item"`
}

// flexFloat decodes a JSON number or a quoted number; the vendor emits
// customerRating as a string. Unparseable values default to zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type walmartItem struct {
	ItemID          json.Number      `json:"itemId"`
	Name            string           `json:"name"`
	ProductURL      string           `json:"productUrl"`
	LargeImage      string           `json:"largeImage"`
	SalePrice       *decimal.Decimal `json:"salePrice"`
	CustomerRating  flexFloat        `json:"customerRating"`
	NumReviews      int              `json:"numReviews"`
	CategoryPath    string           `json:"categoryPath"`
	BrandName       string           `json:"brandName"`
	LongDescription string           `json:"longDescription"`
	Stock           string           `json:"stock"`
	PickupToday     bool             `json:"pickupToday"`
	Attributes      []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"attributes"`
}

// toProduct maps a raw item into the shared schema. A missing sale price maps
// to a zero amount rather than a nil price so comparison arithmetic is total.
func (item walmartItem) toProduct(detail bool) domain.Product {
	amount := decimal.Zero
	if item.SalePrice != nil {
		amount = *item.SalePrice
	}

	p := domain.Product{
		ID:            item.ItemID.String(),
		Title:         item.Name,
		Brand:         item.BrandName,
		URL:           item.ProductURL,
		Price:         &domain.Price{Amount: amount, Currency: "USD", Formatted: "$" + amount.String()},
		PrimeOrPickup: item.PickupToday,
		Category:      item.CategoryPath,
		TotalReviews:  item.NumReviews,
		Source:        domain.SourceWalmart,
	}
	p.Rating = float64(item.CustomerRating)
	if item.LargeImage != "" {
		p.Images = []string{item.LargeImage}
	}

	if detail {
		p.Description = item.LongDescription
		if item.Stock == walmartStockAvailable {
			p.Availability = "In Stock"
		} else {
			p.Availability = "Out of Stock"
		}
		p.Specifications = make([]domain.Specification, 0, len(item.Attributes))
		for _, attr := range item.Attributes {
			p.Specifications = append(p.Specifications, domain.Specification{
				Name:  attr.Name,
				Value: attr.Value,
			})
		}
	}

	return p
}
