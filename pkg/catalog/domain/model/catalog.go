package model

import (
	"fmt"
	"strings"
)

// Catalog is the immutable product and category set loaded at startup.
type Catalog struct {
	products   []Product
	categories []Category
	byID       map[int]int
}

func NewCatalog(products []Product, categories []Category) (*Catalog, error) {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		key := strings.ToLower(c.Name)
		if _, ok := known[key]; ok {
			return nil, fmt.Errorf("duplicate category %q", c.Name)
		}
		known[key] = struct{}{}
	}

	byID := make(map[int]int, len(products))
	for i, p := range products {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, ok := byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		if _, ok := known[strings.ToLower(p.Category)]; !ok {
			return nil, fmt.Errorf("%w: product %d references unknown category %q", ErrInvalidProduct, p.ID, p.Category)
		}
		byID[p.ID] = i
	}

	return &Catalog{
		products:   append([]Product(nil), products...),
		categories: append([]Category(nil), categories...),
		byID:       byID,
	}, nil
}

// Products returns a copy of the catalog in load order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) Find(id int) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

func (c *Catalog) CategoryByName(name string) (Category, error) {
	for _, category := range c.categories {
		if strings.EqualFold(category.Name, strings.TrimSpace(name)) {
			return category, nil
		}
	}
	return Category{}, ErrCategoryNotFound
}

func (c *Catalog) Len() int {
	return len(c.products)
}
