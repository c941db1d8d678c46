package memory

import (
	"sync"

	"github.com/google/uuid"

	"storefront/pkg/cart/domain/model"
)

// CartRepository keeps carts for the lifetime of the process.
type CartRepository struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*model.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[uuid.UUID]*model.Cart)}
}

func (r *CartRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *CartRepository) Create(cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.ID] = clone(cart)
	return nil
}

func (r *CartRepository) Update(cart *model.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.carts[cart.ID]
	if !ok {
		return model.ErrCartNotFound
	}
	if existing.Version != cart.Version-1 {
		return model.ErrOptimisticLock
	}
	r.carts[cart.ID] = clone(cart)
	return nil
}

func (r *CartRepository) Find(id uuid.UUID) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, model.ErrCartNotFound
	}
	return clone(cart), nil
}

func clone(cart *model.Cart) *model.Cart {
	c := *cart
	c.Items = append([]model.LineItem(nil), cart.Items...)
	if cart.Promo != nil {
		promo := *cart.Promo
		c.Promo = &promo
	}
	return &c
}
