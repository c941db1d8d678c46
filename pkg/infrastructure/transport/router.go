package transport

import (
	"net/http"
	"net/netip"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	accountservice "storefront/pkg/account/domain/service"
	analysisservice "storefront/pkg/analysis/domain/service"
	cartservice "storefront/pkg/cart/domain/service"
	catalogservice "storefront/pkg/catalog/domain/service"
	trackingservice "storefront/pkg/tracking/domain/service"
)

const (
	defaultMaxUploadSize = 5 << 20
	maxJSONBodySize      = 1 << 20
	multipartOverhead    = 1 << 20
)

type Services struct {
	Catalog  catalogservice.CatalogService
	Carts    cartservice.CartService
	Auth     accountservice.AuthService
	Profiles accountservice.ProfileService
	Address  accountservice.AddressService
	Orders   accountservice.OrderService
	Tracker  trackingservice.Tracker
	Analyzer analysisservice.Analyzer
	// Media serves uploaded objects under /media; nil disables the route.
	Media http.Handler
}

type Options struct {
	AuthRateLimit rate.Limit
	AuthBurst     int
	MaxUploadSize int64
	// TrustedProxies may set X-Forwarded-For; other peers are keyed by their own address.
	TrustedProxies []netip.Prefix
}

type handler struct {
	Services
	maxUploadSize int64
}

func Router(services Services, options Options) http.Handler {
	h := &handler{Services: services, maxUploadSize: options.MaxUploadSize}
	if h.maxUploadSize <= 0 {
		h.maxUploadSize = defaultMaxUploadSize
	}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()
	s.Use(traceMiddleware)

	s.HandleFunc("/products", h.searchProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/{id:[0-9]+}", h.getProduct).Methods(http.MethodGet)
	s.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	s.HandleFunc("/categories/{name}", h.getCategory).Methods(http.MethodGet)
	s.HandleFunc("/home", h.home).Methods(http.MethodGet)

	s.HandleFunc("/carts", h.createCart).Methods(http.MethodPost)
	s.HandleFunc("/carts/{cartID}", h.getCart).Methods(http.MethodGet)
	s.HandleFunc("/carts/{cartID}", h.resetCart).Methods(http.MethodDelete)
	s.HandleFunc("/carts/{cartID}/items", h.addCartItem).Methods(http.MethodPost)
	s.HandleFunc("/carts/{cartID}/items/{productID:[0-9]+}", h.updateCartItem).Methods(http.MethodPut)
	s.HandleFunc("/carts/{cartID}/items/{productID:[0-9]+}", h.removeCartItem).Methods(http.MethodDelete)
	s.HandleFunc("/carts/{cartID}/promo", h.applyPromo).Methods(http.MethodPost)

	limiter := newIPRateLimiter(options.AuthRateLimit, options.AuthBurst, options.TrustedProxies)
	a := s.PathPrefix("/auth").Subrouter()
	a.Use(limiter.middleware)
	a.HandleFunc("/sign-up", h.signUp).Methods(http.MethodPost)
	a.HandleFunc("/sign-in", h.signIn).Methods(http.MethodPost)
	a.HandleFunc("/sign-out", h.authenticated(h.signOut)).Methods(http.MethodPost)
	a.HandleFunc("/session", h.authenticated(h.currentSession)).Methods(http.MethodGet)
	a.HandleFunc("/password-reset", h.requestPasswordReset).Methods(http.MethodPost)

	s.HandleFunc("/account/profile", h.authenticated(h.getProfile)).Methods(http.MethodGet)
	s.HandleFunc("/account/profile", h.authenticated(h.updateProfile)).Methods(http.MethodPut)
	s.HandleFunc("/account/email", h.authenticated(h.changeEmail)).Methods(http.MethodPut)
	s.HandleFunc("/account/password", h.authenticated(h.changePassword)).Methods(http.MethodPut)
	s.HandleFunc("/account/notifications", h.authenticated(h.updateNotifications)).Methods(http.MethodPut)
	s.HandleFunc("/account/avatar", h.authenticated(h.uploadAvatar)).Methods(http.MethodPost)
	s.HandleFunc("/account/avatar", h.authenticated(h.removeAvatar)).Methods(http.MethodDelete)

	s.HandleFunc("/account/addresses", h.authenticated(h.listAddresses)).Methods(http.MethodGet)
	s.HandleFunc("/account/addresses", h.authenticated(h.addAddress)).Methods(http.MethodPost)
	s.HandleFunc("/account/addresses/{id}", h.authenticated(h.updateAddress)).Methods(http.MethodPut)
	s.HandleFunc("/account/addresses/{id}", h.authenticated(h.removeAddress)).Methods(http.MethodDelete)
	s.HandleFunc("/account/addresses/{id}/default", h.authenticated(h.setDefaultAddress)).Methods(http.MethodPost)

	s.HandleFunc("/account/orders", h.authenticated(h.listOrders)).Methods(http.MethodGet)
	s.HandleFunc("/account/orders/{id}", h.authenticated(h.getOrder)).Methods(http.MethodGet)

	s.HandleFunc("/tracking/{orderNumber}", h.trackOrder).Methods(http.MethodGet)
	s.HandleFunc("/analysis", h.submitAnalysis).Methods(http.MethodPost)

	if services.Media != nil {
		r.PathPrefix("/media/").Handler(http.StripPrefix("/media", services.Media)).Methods(http.MethodGet, http.MethodHead)
	}

	return logMiddleware(r)
}
