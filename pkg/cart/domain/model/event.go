package model

import "github.com/google/uuid"

type CartCreated struct {
	CartID uuid.UUID
}

func (e CartCreated) Type() string { return "CartCreated" }

type ItemAddedToCart struct {
	CartID    uuid.UUID
	ProductID int
	Quantity  int
}

func (e ItemAddedToCart) Type() string { return "ItemAddedToCart" }

type CartItemQuantityChanged struct {
	CartID      uuid.UUID
	ProductID   int
	OldQuantity int
	NewQuantity int
}

func (e CartItemQuantityChanged) Type() string { return "CartItemQuantityChanged" }

type ItemRemovedFromCart struct {
	CartID    uuid.UUID
	ProductID int
}

func (e ItemRemovedFromCart) Type() string { return "ItemRemovedFromCart" }

type PromoCodeApplied struct {
	CartID uuid.UUID
	Code   string
}

func (e PromoCodeApplied) Type() string { return "PromoCodeApplied" }

type CartReset struct {
	CartID uuid.UUID
}

func (e CartReset) Type() string { return "CartReset" }
