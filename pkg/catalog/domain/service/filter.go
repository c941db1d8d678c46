package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront/pkg/catalog/domain/model"
)

// Filter selects a subset of the catalog. An empty Categories slice places no
// restriction on category, and an invalid MaxPrice leaves the range unbounded above.
type Filter struct {
	Query      string
	Categories []string
	MinPrice   decimal.Decimal
	MaxPrice   decimal.NullDecimal
}

type EmptyReason string

const (
	NotEmpty       EmptyReason = ""
	EmptyByQuery   EmptyReason = "query"
	EmptyByFilters EmptyReason = "filters"
	EmptyCatalog   EmptyReason = "catalog"
)

type SearchResult struct {
	Products    []model.Product
	EmptyReason EmptyReason
}

// ApplyFilters keeps the products matching the query, category set and price range,
// in their original order.
func ApplyFilters(products []model.Product, filter Filter) []model.Product {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	categories := make(map[string]struct{}, len(filter.Categories))
	for _, c := range filter.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories[strings.ToLower(c)] = struct{}{}
		}
	}

	result := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !matchesQuery(p, query) {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[strings.ToLower(p.Category)]; !ok {
				continue
			}
		}
		if !inPriceRange(p.EffectivePrice(), filter.MinPrice, filter.MaxPrice) {
			continue
		}
		result = append(result, p)
	}
	return result
}

func matchesQuery(p model.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

func inPriceRange(price, min decimal.Decimal, max decimal.NullDecimal) bool {
	if price.LessThan(min) {
		return false
	}
	return !max.Valid || price.LessThanOrEqual(max.Decimal)
}
