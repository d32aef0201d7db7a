package domain

import "github.com/shopspring/decimal"

// Source identifies which retailer a product record came from.
type Source string

const (
	SourceAmazon  Source = "amazon"
	SourceWalmart Source = "walmart"
)

// Price is a normalized product price. Amount defaults to zero when a vendor
// reports no price so comparison arithmetic stays total.
type Price struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Formatted string          `json:"formatted"`
}

// Specification is a single name/value attribute from a vendor detail page.
type Specification struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is the provider-agnostic item representation. ID and Title are
// always set (empty string when the vendor omits them); Images never contains
// empty entries. IDs are unique only within a provider's namespace.
type Product struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Brand          string          `json:"brand,omitempty"`
	URL            string          `json:"url"`
	Images         []string        `json:"images,omitempty"`
	Price          *Price          `json:"price,omitempty"`
	PrimeOrPickup  bool            `json:"prime_or_pickup_eligible"`
	Features       []string        `json:"features,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	Weight         string          `json:"weight,omitempty"`
	WeightUnit     string          `json:"weight_unit,omitempty"`
	Description    string          `json:"description,omitempty"`
	Category       string          `json:"category,omitempty"`
	Rating         float64         `json:"rating,omitempty"`
	TotalReviews   int             `json:"total_reviews,omitempty"`
	Availability   string          `json:"availability,omitempty"`
	Source         Source          `json:"source"`
}

// PriceAmount returns the numeric price, or zero when no price was reported.
func (p Product) PriceAmount() decimal.Decimal {
	if p.Price == nil {
		return decimal.Zero
	}
	return p.Price.Amount
}

// ComparisonEntry pairs a provider-A item with a provider-B item that the
// title heuristic considers the same product. Request-scoped, never persisted.
type ComparisonEntry struct {
	Title           string          `json:"title"`
	AmazonPrice     decimal.Decimal `json:"amazon_price"`
	AmazonURL       string          `json:"amazon_url"`
	WalmartPrice    decimal.Decimal `json:"walmart_price"`
	WalmartURL      string          `json:"walmart_url"`
	PriceDifference decimal.Decimal `json:"price_difference"`
}

// ComparisonResult holds both providers' search results plus the matched
// pairs. A provider that failed contributes an empty slice, not an error.
type ComparisonResult struct {
	Amazon     []Product         `json:"amazon"`
	Walmart    []Product         `json:"walmart"`
	Comparison []ComparisonEntry `json:"comparison"`
}
