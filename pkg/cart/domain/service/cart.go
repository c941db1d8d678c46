package service

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/cart/domain/model"
	catalogmodel "storefront/pkg/catalog/domain/model"
	"storefront/pkg/common/domain"
)

type ProductFinder interface {
	Find(id int) (catalogmodel.Product, error)
}

type CartService interface {
	CreateCart() (*model.Cart, error)
	Cart(cartID uuid.UUID) (*model.Cart, error)
	AddItem(cartID uuid.UUID, productID, quantity int) error
	UpdateQuantity(cartID uuid.UUID, productID, quantity int) error
	RemoveItem(cartID uuid.UUID, productID int) error
	ApplyPromo(cartID uuid.UUID, code string) (model.Promo, error)
	Reset(cartID uuid.UUID) error
	Totals(cartID uuid.UUID) (model.Totals, error)
}

func NewCartService(repo model.CartRepository, products ProductFinder, promos PromoTable, dispatcher domain.EventDispatcher) CartService {
	return &cartService{repo: repo, products: products, promos: promos, dispatcher: dispatcher}
}

type cartService struct {
	repo       model.CartRepository
	products   ProductFinder
	promos     PromoTable
	dispatcher domain.EventDispatcher
}

func (s *cartService) CreateCart() (*model.Cart, error) {
	cartID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cart := &model.Cart{
		ID:        cartID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(cart); err != nil {
		return nil, err
	}

	s.dispatch(model.CartCreated{CartID: cartID})
	return cart, nil
}

func (s *cartService) Cart(cartID uuid.UUID) (*model.Cart, error) {
	return s.repo.Find(cartID)
}

func (s *cartService) AddItem(cartID uuid.UUID, productID, quantity int) error {
	if quantity < 1 || quantity > model.MaxQuantity {
		return model.ErrInvalidQuantity
	}
	product, err := s.products.Find(productID)
	if err != nil {
		return err
	}

	cart, err := s.repo.Find(cartID)
	if err != nil {
		return err
	}

	if i := cart.ItemIndex(productID); i >= 0 {
		if quantity > model.MaxQuantity-cart.Items[i].Quantity {
			return model.ErrInvalidQuantity
		}
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, model.LineItem{Product: product, Quantity: quantity})
	}

	if err := s.updateCart(cart); err != nil {
		return err
	}

	s.dispatch(model.ItemAddedToCart{CartID: cartID, ProductID: productID, Quantity: quantity})
	return nil
}

// UpdateQuantity ignores requests that would take an item below one; removal is RemoveItem.
// Quantities above MaxQuantity are rejected.
func (s *cartService) UpdateQuantity(cartID uuid.UUID, productID, quantity int) error {
	cart, err := s.repo.Find(cartID)
	if err != nil {
		return err
	}

	i := cart.ItemIndex(productID)
	if i < 0 {
		return model.ErrCartItemNotFound
	}
	if quantity > model.MaxQuantity {
		return model.ErrInvalidQuantity
	}
	oldQuantity := cart.Items[i].Quantity
	if quantity < 1 || quantity == oldQuantity {
		return nil
	}

	cart.Items[i].Quantity = quantity
	if err := s.updateCart(cart); err != nil {
		return err
	}

	s.dispatch(model.CartItemQuantityChanged{
		CartID:      cartID,
		ProductID:   productID,
		OldQuantity: oldQuantity,
		NewQuantity: quantity,
	})
	return nil
}

func (s *cartService) RemoveItem(cartID uuid.UUID, productID int) error {
	cart, err := s.repo.Find(cartID)
	if err != nil {
		return err
	}

	i := cart.ItemIndex(productID)
	if i < 0 {
		return model.ErrCartItemNotFound
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.updateCart(cart); err != nil {
		return err
	}

	s.dispatch(model.ItemRemovedFromCart{CartID: cartID, ProductID: productID})
	return nil
}

func (s *cartService) ApplyPromo(cartID uuid.UUID, code string) (model.Promo, error) {
	cart, err := s.repo.Find(cartID)
	if err != nil {
		return model.Promo{}, err
	}
	if cart.Promo != nil {
		return *cart.Promo, model.ErrPromoAlreadyApplied
	}

	promo, err := s.promos.Lookup(code)
	if err != nil {
		return model.Promo{}, err
	}

	cart.Promo = &promo
	if err := s.updateCart(cart); err != nil {
		return model.Promo{}, err
	}

	s.dispatch(model.PromoCodeApplied{CartID: cartID, Code: promo.Code})
	return promo, nil
}

func (s *cartService) Reset(cartID uuid.UUID) error {
	cart, err := s.repo.Find(cartID)
	if err != nil {
		return err
	}

	cart.Items = nil
	cart.Promo = nil
	if err := s.updateCart(cart); err != nil {
		return err
	}

	s.dispatch(model.CartReset{CartID: cartID})
	return nil
}

func (s *cartService) Totals(cartID uuid.UUID) (model.Totals, error) {
	cart, err := s.repo.Find(cartID)
	if err != nil {
		return model.Totals{}, err
	}
	return ComputeTotals(cart.Items, cart.Promo), nil
}

func (s *cartService) updateCart(cart *model.Cart) error {
	cart.Version++
	cart.UpdatedAt = time.Now().UTC()
	return s.repo.Update(cart)
}

func (s *cartService) dispatch(event domain.Event) {
	if err := s.dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
