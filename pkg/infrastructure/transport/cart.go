package transport

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

func (h *handler) createCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.CreateCart()
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusCreated, cart.ID)
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cartID)
}

func (h *handler) resetCart(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDVar(r)
	if err == nil {
		err = h.Carts.Reset(cartID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cartID)
}

func (h *handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.Carts.AddItem(cartID, req.ProductID, req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cartID)
}

func (h *handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, productID, err := cartItemVars(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Carts.UpdateQuantity(cartID, productID, req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cartID)
}

func (h *handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, productID, err := cartItemVars(r)
	if err == nil {
		err = h.Carts.RemoveItem(cartID, productID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cartID)
}

func (h *handler) applyPromo(w http.ResponseWriter, r *http.Request) {
	cartID, err := cartIDVar(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req promoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.Carts.ApplyPromo(cartID, req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeCart(w, r, http.StatusOK, cartID)
}

func (h *handler) writeCart(w http.ResponseWriter, r *http.Request, status int, cartID uuid.UUID) {
	cart, err := h.Carts.Cart(cartID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	totals, err := h.Carts.Totals(cartID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, status, toCartResponse(cart, totals))
}

func cartIDVar(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["cartID"])
	if err != nil {
		return uuid.Nil, badRequest(errors.Wrap(err, "cart id"))
	}
	return id, nil
}

func cartItemVars(r *http.Request) (uuid.UUID, int, error) {
	cartID, err := cartIDVar(r)
	if err != nil {
		return uuid.Nil, 0, err
	}
	productID, err := strconv.Atoi(mux.Vars(r)["productID"])
	if err != nil {
		return uuid.Nil, 0, badRequest(errors.Wrap(err, "product id"))
	}
	return cartID, productID, nil
}
