package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/brandongraves08/packstack/internal/core/domain"
	"github.com/brandongraves08/packstack/internal/core/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// PriceComparisonService searches both retailers for the same keywords and
// pairs up results whose titles look alike.
type PriceComparisonService struct {
	providers *ProviderSet
	cache     ports.SearchCache // nil = caching disabled
	cacheTTL  time.Duration
	log       zerolog.Logger
}

// NewPriceComparisonService creates the comparison engine. cache may be nil.
func NewPriceComparisonService(providers *ProviderSet, cache ports.SearchCache, cacheTTL time.Duration, log zerolog.Logger) *PriceComparisonService {
	return &PriceComparisonService{
		providers: providers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

var _ ports.ComparisonService = (*PriceComparisonService)(nil)

// Compare queries both providers for the keywords and builds the match list.
// The providers are independent: one failing contributes an empty slice and
// the comparison still succeeds with partial results.
func (s *PriceComparisonService) Compare(ctx context.Context, keywords string) (*domain.ComparisonResult, error) {
	cacheKey := "comparison:" + strings.ToLower(keywords)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var cached domain.ComparisonResult
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	result := &domain.ComparisonResult{
		Amazon:     []domain.Product{},
		Walmart:    []domain.Product{},
		Comparison: []domain.ComparisonEntry{},
	}

	// The two searches are order-insensitive for the merged result, so they
	// run concurrently. Errors are logged and swallowed per provider.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.providers.Amazon().SearchProducts(gctx, ports.SearchParams{Query: keywords})
		if err != nil {
			s.log.Warn().Err(err).Str("provider", "amazon").Msg("comparison search failed")
			return nil
		}
		result.Amazon = items
		return nil
	})
	g.Go(func() error {
		items, err := s.providers.Walmart().SearchProducts(gctx, ports.SearchParams{Query: keywords})
		if err != nil {
			s.log.Warn().Err(err).Str("provider", "walmart").Msg("comparison search failed")
			return nil
		}
		result.Walmart = items
		return nil
	})
	_ = g.Wait()

	for _, a := range result.Amazon {
		for _, w := range result.Walmart {
			if !titlesMatch(a.Title, w.Title) {
				continue
			}
			aPrice := a.PriceAmount()
			wPrice := w.PriceAmount()
			result.Comparison = append(result.Comparison, domain.ComparisonEntry{
				Title:           a.Title,
				AmazonPrice:     aPrice,
				AmazonURL:       a.URL,
				WalmartPrice:    wPrice,
				WalmartURL:      w.URL,
				PriceDifference: aPrice.Sub(wPrice).Abs(),
			})
		}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
				s.log.Warn().Err(err).Msg("comparison cache write failed")
			}
		}
	}

	return result, nil
}

// titlesMatch applies the cheap cross-retailer matching heuristic: any
// whitespace-split lowercase token of titleA appearing as a substring of the
// lowercased titleB counts as a match. It is deliberately not a product
// matching model: common words produce false positives and an item can match
// many counterparts. Callers rely on this exact behavior.
func titlesMatch(titleA, titleB string) bool {
	b := strings.ToLower(titleB)
	for _, token := range strings.Fields(strings.ToLower(titleA)) {
		if strings.Contains(b, token) {
			return true
		}
	}
	return false
}
