package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogmodel "storefront/pkg/catalog/domain/model"
)

var (
	ErrCartNotFound        = errors.New("cart not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity     = errors.New("quantity must be between 1 and 99")
	ErrPromoCodeMissing    = errors.New("no promo code entered")
	ErrPromoCodeInvalid    = errors.New("promo code is invalid or expired")
	ErrPromoAlreadyApplied = errors.New("a promo code is already applied to this cart")
	ErrOptimisticLock      = errors.New("cart has been modified concurrently")
)

// MaxQuantity caps a single line item.
const MaxQuantity = 99

type LineItem struct {
	Product  catalogmodel.Product
	Quantity int
}

type Promo struct {
	Code string
	Rate decimal.Decimal
}

type Cart struct {
	ID        uuid.UUID
	Items     []LineItem
	Promo     *Promo
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemIndex returns the position of the line item for productID or -1.
func (c *Cart) ItemIndex(productID int) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

type CartRepository interface {
	NextID() (uuid.UUID, error)
	Create(cart *Cart) error
	Update(cart *Cart) error
	Find(id uuid.UUID) (*Cart, error)
}
