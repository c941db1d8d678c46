package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

const maxRating = 5

type Category struct {
	Name  string
	Image string
}

type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	SalePrice   decimal.NullDecimal
	Category    string
	Image       string
	Rating      float64
	ReviewCount int
	OnSale      bool
}

// EffectivePrice is the sale price while the product is on sale and the base price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.OnSale && p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}

func (p Product) validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: id %d must be positive", ErrInvalidProduct, p.ID)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: product %d has no name", ErrInvalidProduct, p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: product %d has a negative price", ErrInvalidProduct, p.ID)
	case p.Rating < 0 || p.Rating > maxRating:
		return fmt.Errorf("%w: product %d rating %.1f out of range", ErrInvalidProduct, p.ID, p.Rating)
	case p.ReviewCount < 0:
		return fmt.Errorf("%w: product %d has a negative review count", ErrInvalidProduct, p.ID)
	case p.OnSale != p.SalePrice.Valid:
		return fmt.Errorf("%w: product %d sale price must be set iff on sale", ErrInvalidProduct, p.ID)
	case p.OnSale && !p.SalePrice.Decimal.LessThan(p.Price):
		return fmt.Errorf("%w: product %d sale price must be below base price", ErrInvalidProduct, p.ID)
	}
	return nil
}
