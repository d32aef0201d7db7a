package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brandongraves08/packstack/config"
	"github.com/brandongraves08/packstack/internal/core/domain"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	paapiService      = "ProductAdvertisingAPI"
	paapiSearchPath   = "/paapi5/searchitems"
	paapiGetItemsPath = "/paapi5/getitems"
	paapiTargetPrefix = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1."

	amazonDefaultCategory = "Outdoors"
	amazonDefaultLimit    = 10
)

// AmazonClient talks to the Product Advertising API: SigV4-signed JSON POST
// requests through the retry client, decoded tolerantly into Products.
type AmazonClient struct {
	cfg    config.AmazonConfig
	signer *SigV4Signer
	http   *RetryClient
	log    zerolog.Logger
	now    func() time.Time
}

// NewAmazonClient creates a provider-A catalog client. The credential set is
// fixed for the client's lifetime; rotation means constructing a new client.
func NewAmazonClient(cfg config.AmazonConfig, rc *RetryClient, log zerolog.Logger) *AmazonClient {
	return &AmazonClient{
		cfg:    cfg,
		signer: NewSigV4Signer(cfg.AccessKey, cfg.SecretKey, cfg.Region, paapiService, cfg.Host()),
		http:   rc,
		log:    log.With().Str("provider", "amazon").Logger(),
		now:    time.Now,
	}
}

var _ ports.AmazonCatalog = (*AmazonClient)(nil)

// SearchProducts searches the catalog by keyword. Category and limit fall
// back to the Outdoors index and 10 items.
func (c *AmazonClient) SearchProducts(ctx context.Context, params ports.SearchParams) ([]domain.Product, error) {
	if !c.cfg.Configured() {
		return nil, apperror.ErrProviderNotConfigured("Amazon")
	}

	category := params.Category
	if category == "" {
		category = amazonDefaultCategory
	}
	limit := params.Limit
	if limit <= 0 {
		limit = amazonDefaultLimit
	}

	payload := map[string]interface{}{
		"Keywords": params.Query,
		"Resources": []string{
			"ItemInfo.Title",
			"ItemInfo.Features",
			"ItemInfo.ProductInfo",
			"ItemInfo.ByLineInfo",
			"Images.Primary.Medium",
			"Offers.Listings.Price",
			"Offers.Listings.DeliveryInfo.IsPrimeEligible",
		},
		"PartnerTag":  c.cfg.AssociateTag,
		"PartnerType": "Associates",
		"Marketplace": "www.amazon.com",
		"SearchIndex": category,
		"ItemCount":   limit,
	}

	var result amazonSearchResponse
	if err := c.post(ctx, paapiSearchPath, "SearchItems", payload, &result); err != nil {
		return nil, err
	}

	// An absent SearchResult means no matches, not a malformed response.
	if result.SearchResult == nil {
		return []domain.Product{}, nil
	}

	products := make([]domain.Product, 0, len(result.SearchResult.Items))
	for _, item := range result.SearchResult.Items {
		products = append(products, item.toProduct(false))
	}
	return products, nil
}

// GetProductDetails fetches one item by ASIN with the extended resource set.
func (c *AmazonClient) GetProductDetails(ctx context.Context, asin string) (*domain.Product, error) {
	if !c.cfg.Configured() {
		return nil, apperror.ErrProviderNotConfigured("Amazon")
	}

	payload := map[string]interface{}{
		"ItemIds": []string{asin},
		"Resources": []string{
			"ItemInfo.Title",
			"ItemInfo.Features",
			"ItemInfo.ProductInfo",
			"ItemInfo.ByLineInfo",
			"ItemInfo.TechnicalInfo",
			"ItemInfo.ContentInfo",
			"ItemInfo.ManufactureInfo",
			"Images.Primary.Large",
			"Images.Variants.Large",
			"Offers.Listings.Price",
			"Offers.Listings.DeliveryInfo.IsPrimeEligible",
			"Offers.Summaries.LowestPrice",
		},
		"PartnerTag":  c.cfg.AssociateTag,
		"PartnerType": "Associates",
		"Marketplace": "www.amazon.com",
	}

	var result amazonGetItemsResponse
	if err := c.post(ctx, paapiGetItemsPath, "GetItems", payload, &result); err != nil {
		return nil, err
	}

	if result.ItemsResult == nil {
		return nil, apperror.ErrProductNotFound()
	}
	for _, item := range result.ItemsResult.Items {
		if item.ASIN == asin {
			product := item.toProduct(true)
			return &product, nil
		}
	}
	return nil, apperror.ErrProductNotFound()
}

// post signs and sends one PA-API operation, decoding a 200 response into out.
func (c *AmazonClient) post(ctx context.Context, path, operation string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperror.InternalError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint()+path, bytes.NewReader(body))
	if err != nil {
		return apperror.InternalError(err)
	}

	timestamp := AmzTimestamp(c.now())
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-Amz-Date", timestamp)
	req.Header.Set("X-Amz-Target", paapiTargetPrefix+operation)
	req.Header.Set("Authorization", c.signer.Sign(http.MethodPost, path, timestamp))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return apperror.ErrVendor("Amazon", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.ErrProviderResponse("Amazon", err)
	}
	return nil
}

// --- Raw PA-API payload shapes. Every nested level is a pointer so missing
// fields decode to nil and map to defaults instead of failing.

type amazonSearchResponse struct {
	SearchResult *struct {
		Items []amazonItem `json:"Items"`
	} `json:"SearchResult"`
}

type amazonGetItemsResponse struct {
	ItemsResult *struct {
		Items []amazonItem `json:"Items"`
	} `json:"ItemsResult"`
}

type amazonDisplayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

type amazonImage struct {
	URL string `json:"URL"`
}

type amazonItem struct {
	ASIN          string `json:"ASIN"`
	DetailPageURL string `json:"DetailPageURL"`
	ItemInfo      *struct {
		Title      *amazonDisplayValue `json:"Title"`
		ByLineInfo *struct {
			Brand *amazonDisplayValue `json:"Brand"`
		} `json:"ByLineInfo"`
		Features *struct {
			DisplayValues []string `json:"DisplayValues"`
		} `json:"Features"`
		ProductInfo *struct {
			ItemDimensions *struct {
				Weight *struct {
					DisplayValue json.Number `json:"DisplayValue"`
					Unit         string      `json:"Unit"`
				} `json:"Weight"`
			} `json:"ItemDimensions"`
		} `json:"ProductInfo"`
	} `json:"ItemInfo"`
	Images *struct {
		Primary *struct {
			Medium *amazonImage `json:"Medium"`
			Large  *amazonImage `json:"Large"`
		} `json:"Primary"`
		Variants []struct {
			Large *amazonImage `json:"Large"`
		} `json:"Variants"`
	} `json:"Images"`
	Offers *struct {
		Listings []struct {
			Price *struct {
				Amount        json.Number `json:"Amount"`
				Currency      string      `json:"Currency"`
				DisplayAmount string      `json:"DisplayAmount"`
			} `json:"Price"`
			DeliveryInfo *struct {
				IsPrimeEligible bool `json:"IsPrimeEligible"`
			} `json:"DeliveryInfo"`
		} `json:"Listings"`
	} `json:"Offers"`
}

// toProduct maps a raw item into the shared schema. Each optional path is
// checked independently; nothing is assumed present.
func (item amazonItem) toProduct(detail bool) domain.Product {
	p := domain.Product{
		ID:     item.ASIN,
		URL:    item.DetailPageURL,
		Source: domain.SourceAmazon,
	}

	if info := item.ItemInfo; info != nil {
		if info.Title != nil {
			p.Title = info.Title.DisplayValue
		}
		if info.ByLineInfo != nil && info.ByLineInfo.Brand != nil {
			p.Brand = info.ByLineInfo.Brand.DisplayValue
		}
		if info.Features != nil {
			p.Features = info.Features.DisplayValues
		}
		if info.ProductInfo != nil && info.ProductInfo.ItemDimensions != nil {
			if w := info.ProductInfo.ItemDimensions.Weight; w != nil {
				p.Weight = w.DisplayValue.String()
				p.WeightUnit = w.Unit
			}
		}
	}

	if imgs := item.Images; imgs != nil {
		if imgs.Primary != nil {
			if detail {
				if imgs.Primary.Large != nil && imgs.Primary.Large.URL != "" {
					p.Images = append(p.Images, imgs.Primary.Large.URL)
				}
			} else if imgs.Primary.Medium != nil && imgs.Primary.Medium.URL != "" {
				p.Images = append(p.Images, imgs.Primary.Medium.URL)
			}
		}
		if detail {
			for _, v := range imgs.Variants {
				if v.Large != nil && v.Large.URL != "" {
					p.Images = append(p.Images, v.Large.URL)
				}
			}
		}
	}

	if item.Offers != nil && len(item.Offers.Listings) > 0 {
		listing := item.Offers.Listings[0]
		if listing.Price != nil {
			amount := decimal.Zero
			if listing.Price.Amount != "" {
				if parsed, err := decimal.NewFromString(listing.Price.Amount.String()); err == nil {
					amount = parsed
				}
			}
			currency := listing.Price.Currency
			if currency == "" {
				currency = "USD"
			}
			formatted := listing.Price.DisplayAmount
			if formatted == "" {
				formatted = fmt.Sprintf("$%s", amount.StringFixed(2))
			}
			p.Price = &domain.Price{Amount: amount, Currency: currency, Formatted: formatted}
		}
		if listing.DeliveryInfo != nil {
			p.PrimeOrPickup = listing.DeliveryInfo.IsPrimeEligible
		}
	}

	return p
}
