package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/brandongraves08/packstack/internal/adapter/http/dto"
	"github.com/brandongraves08/packstack/internal/core/domain"
	"github.com/brandongraves08/packstack/internal/core/ports"
	"github.com/brandongraves08/packstack/internal/service"
	"github.com/brandongraves08/packstack/pkg/apperror"
	"github.com/brandongraves08/packstack/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CatalogHandler handles the per-retailer search and detail endpoints.
type CatalogHandler struct {
	providers *service.ProviderSet
	cache     ports.SearchCache // nil = caching disabled
	cacheTTL  time.Duration
	log       zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler. cache may be nil.
func NewCatalogHandler(providers *service.ProviderSet, cache ports.SearchCache, cacheTTL time.Duration, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{providers: providers, cache: cache, cacheTTL: cacheTTL, log: log}
}

// SearchAmazon handles GET /api/v1/amazon/search.
func (h *CatalogHandler) SearchAmazon(c *gin.Context) {
	params, ok := h.searchParams(c)
	if !ok {
		return
	}
	h.search(c, "amazon", params, func() ([]domain.Product, error) {
		return h.providers.Amazon().SearchProducts(c.Request.Context(), params)
	})
}

// SearchWalmart handles GET /api/v1/walmart/search.
func (h *CatalogHandler) SearchWalmart(c *gin.Context) {
	params, ok := h.searchParams(c)
	if !ok {
		return
	}
	h.search(c, "walmart", params, func() ([]domain.Product, error) {
		return h.providers.Walmart().SearchProducts(c.Request.Context(), params)
	})
}

// GetAmazonProduct handles GET /api/v1/amazon/products/:asin.
func (h *CatalogHandler) GetAmazonProduct(c *gin.Context) {
	asin := c.Param("asin")
	if !dto.ValidID(asin) {
		response.Error(c, apperror.Validation("invalid product identifier"))
		return
	}

	product, err := h.providers.Amazon().GetProductDetails(c.Request.Context(), asin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// GetWalmartProduct handles GET /api/v1/walmart/products/:id.
func (h *CatalogHandler) GetWalmartProduct(c *gin.Context) {
	itemID := c.Param("id")
	if !dto.ValidID(itemID) {
		response.Error(c, apperror.Validation("invalid product identifier"))
		return
	}

	product, err := h.providers.Walmart().GetProductDetails(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, product)
}

// GetWalmartStores handles GET /api/v1/walmart/products/:id/stores.
func (h *CatalogHandler) GetWalmartStores(c *gin.Context) {
	itemID := c.Param("id")
	if !dto.ValidID(itemID) {
		response.Error(c, apperror.Validation("invalid product identifier"))
		return
	}
	zip := c.Query("zip")
	if !dto.ValidZipCode(zip) {
		response.Error(c, apperror.Validation("zip must be a five-digit code"))
		return
	}

	stores, err := h.providers.Walmart().CheckStoreAvailability(c.Request.Context(), itemID, zip)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stores)
}

// searchParams reads the shared search query parameters. A missing q is a
// validation error; a bad limit falls back to the provider default.
func (h *CatalogHandler) searchParams(c *gin.Context) (ports.SearchParams, bool) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, apperror.Validation("q query parameter is required"))
		return ports.SearchParams{}, false
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return ports.SearchParams{
		Query:    query,
		Category: c.Query("category"),
		Limit:    limit,
	}, true
}

// search serves a search either from the cache or from the provider.
func (h *CatalogHandler) search(c *gin.Context, provider string, params ports.SearchParams, fetch func() ([]domain.Product, error)) {
	key := provider + ":" + params.Query + ":" + params.Category + ":" + strconv.Itoa(params.Limit)

	if h.cache != nil {
		if raw, err := h.cache.Get(c.Request.Context(), key); err == nil && raw != nil {
			var cached []domain.Product
			if json.Unmarshal(raw, &cached) == nil {
				response.OK(c, cached)
				return
			}
		}
	}

	products, err := fetch()
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.cache != nil {
		if raw, err := json.Marshal(products); err == nil {
			if err := h.cache.Set(c.Request.Context(), key, raw, h.cacheTTL); err != nil {
				h.log.Warn().Err(err).Str("provider", provider).Msg("search cache write failed")
			}
		}
	}
	response.OK(c, products)
}
