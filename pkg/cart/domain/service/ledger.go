package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront/pkg/cart/domain/model"
)

const centsPlaces = 2

var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShippingFee       = decimal.RequireFromString("5.99")
)

// PromoTable maps upper-case promo codes to discount rates.
type PromoTable map[string]decimal.Decimal

func DefaultPromoTable() PromoTable {
	return PromoTable{"WELCOME10": decimal.RequireFromString("0.10")}
}

func (t PromoTable) Lookup(code string) (model.Promo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.Promo{}, model.ErrPromoCodeMissing
	}
	rate, ok := t[code]
	if !ok {
		return model.Promo{}, model.ErrPromoCodeInvalid
	}
	return model.Promo{Code: code, Rate: rate}, nil
}

// ComputeTotals prices the line items. Shipping is decided on the subtotal before
// discount, and the total never drops below zero.
func ComputeTotals(items []model.LineItem, promo *model.Promo) model.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	if promo != nil {
		discount = subtotal.Mul(promo.Rate).Round(centsPlaces)
	}

	shipping := FlatShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) || len(items) == 0 {
		shipping = decimal.Zero
	}

	total := subtotal.Sub(discount).Add(shipping)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return model.Totals{
		Subtotal: subtotal.Round(centsPlaces),
		Discount: discount,
		Shipping: shipping,
		Total:    total.Round(centsPlaces),
	}
}
