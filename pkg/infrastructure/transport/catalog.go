package transport

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	catalogservice "storefront/pkg/catalog/domain/service"
)

func (h *handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := h.Catalog.Search(filter)
	writeJSON(w, http.StatusOK, searchResponse{
		Products:    toProductResponses(result.Products),
		Count:       len(result.Products),
		EmptyReason: string(result.EmptyReason),
	})
}

func parseFilter(r *http.Request) (catalogservice.Filter, error) {
	query := r.URL.Query()
	filter := catalogservice.Filter{
		Query:      query.Get("q"),
		Categories: query["category"],
	}
	if raw := query.Get("minPrice"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, badRequest(errors.Wrap(err, "minPrice"))
		}
		filter.MinPrice = minPrice
	}
	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, badRequest(errors.Wrap(err, "maxPrice"))
		}
		filter.MaxPrice = decimal.NewNullDecimal(maxPrice)
	}
	if filter.MaxPrice.Valid && filter.MaxPrice.Decimal.LessThan(filter.MinPrice) {
		return filter, badRequest(errors.New("maxPrice must not be below minPrice"))
	}
	return filter, nil
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, badRequest(errors.Wrap(err, "product id")))
		return
	}

	product, err := h.Catalog.Product(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	related, err := h.Catalog.RelatedProducts(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productDetailResponse{
		Product: toProductResponse(product),
		Related: toProductResponses(related),
	})
}

func (h *handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toCategoryResponses(h.Catalog.Categories()))
}

func (h *handler) getCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.Catalog.CategoryByName(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := h.Catalog.Search(catalogservice.Filter{Categories: []string{category.Name}})
	writeJSON(w, http.StatusOK, categoryDetailResponse{
		Category: categoryResponse{Name: category.Name, Image: category.Image},
		Products: toProductResponses(result.Products),
	})
}

func (h *handler) home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, homeResponse{
		Featured:    toProductResponses(h.Catalog.Featured()),
		BestSellers: toProductResponses(h.Catalog.BestSellers()),
		Categories:  toCategoryResponses(h.Catalog.Categories()),
	})
}
