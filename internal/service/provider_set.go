package service

import (
	"sync/atomic"

	"github.com/brandongraves08/packstack/internal/core/ports"
)

// ProviderSet holds the live catalog clients behind atomically swappable
// references. Credential rotation constructs a fresh client and swaps the
// pointer, so an in-flight request signs with one consistent credential set,
// never a mix of old and new keys.
type ProviderSet struct {
	amazon  atomic.Pointer[ports.AmazonCatalog]
	walmart atomic.Pointer[ports.WalmartCatalog]
}

// NewProviderSet creates a provider set with the initial clients.
func NewProviderSet(amazon ports.AmazonCatalog, walmart ports.WalmartCatalog) *ProviderSet {
	s := &ProviderSet{}
	s.amazon.Store(&amazon)
	s.walmart.Store(&walmart)
	return s
}

// Amazon returns the current provider-A client.
func (s *ProviderSet) Amazon() ports.AmazonCatalog {
	return *s.amazon.Load()
}

// Walmart returns the current provider-B client.
func (s *ProviderSet) Walmart() ports.WalmartCatalog {
	return *s.walmart.Load()
}

// SwapAmazon replaces the provider-A client after a credential rotation.
// Requests already in flight keep the client they started with.
func (s *ProviderSet) SwapAmazon(c ports.AmazonCatalog) {
	s.amazon.Store(&c)
}

// SwapWalmart replaces the provider-B client.
func (s *ProviderSet) SwapWalmart(c ports.WalmartCatalog) {
	s.walmart.Store(&c)
}
