package service

import (
	"strings"

	"storefront/pkg/catalog/domain/model"
)

const (
	relatedLimit   = 4
	showcaseLength = 4
)

type CatalogService interface {
	Search(filter Filter) SearchResult
	Product(id int) (model.Product, error)
	RelatedProducts(id int) ([]model.Product, error)
	Categories() []model.Category
	CategoryByName(name string) (model.Category, error)
	Featured() []model.Product
	BestSellers() []model.Product
}

func NewCatalogService(catalog *model.Catalog) CatalogService {
	return &catalogService{catalog: catalog}
}

type catalogService struct {
	catalog *model.Catalog
}

func (s *catalogService) Search(filter Filter) SearchResult {
	products := ApplyFilters(s.catalog.Products(), filter)
	if len(products) > 0 {
		return SearchResult{Products: products, EmptyReason: NotEmpty}
	}

	reason := EmptyByFilters
	switch {
	case s.catalog.Len() == 0:
		reason = EmptyCatalog
	case strings.TrimSpace(filter.Query) != "":
		reason = EmptyByQuery
	}
	return SearchResult{Products: products, EmptyReason: reason}
}

func (s *catalogService) Product(id int) (model.Product, error) {
	return s.catalog.Find(id)
}

func (s *catalogService) RelatedProducts(id int) ([]model.Product, error) {
	product, err := s.catalog.Find(id)
	if err != nil {
		return nil, err
	}

	related := make([]model.Product, 0, relatedLimit)
	for _, p := range s.catalog.Products() {
		if len(related) == relatedLimit {
			break
		}
		if p.ID != product.ID && p.Category == product.Category {
			related = append(related, p)
		}
	}
	return related, nil
}

func (s *catalogService) Categories() []model.Category {
	return s.catalog.Categories()
}

func (s *catalogService) CategoryByName(name string) (model.Category, error) {
	return s.catalog.CategoryByName(name)
}

func (s *catalogService) Featured() []model.Product {
	return window(s.catalog.Products(), 0, showcaseLength)
}

func (s *catalogService) BestSellers() []model.Product {
	return window(s.catalog.Products(), showcaseLength, 2*showcaseLength)
}

func window(products []model.Product, from, to int) []model.Product {
	if from > len(products) {
		from = len(products)
	}
	if to > len(products) {
		to = len(products)
	}
	return products[from:to]
}
