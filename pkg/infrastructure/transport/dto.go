package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountmodel "storefront/pkg/account/domain/model"
	analysismodel "storefront/pkg/analysis/domain/model"
	cartmodel "storefront/pkg/cart/domain/model"
	catalogmodel "storefront/pkg/catalog/domain/model"
	trackingmodel "storefront/pkg/tracking/domain/model"
	"storefront/pkg/validation"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type categoryResponse struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func toCategoryResponses(categories []catalogmodel.Category) []categoryResponse {
	result := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, categoryResponse{Name: c.Name, Image: c.Image})
	}
	return result
}

type productResponse struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Price          string  `json:"price"`
	SalePrice      *string `json:"salePrice,omitempty"`
	EffectivePrice string  `json:"effectivePrice"`
	Category       string  `json:"category"`
	Image          string  `json:"image"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"reviewCount"`
	OnSale         bool    `json:"onSale"`
}

func toProductResponse(p catalogmodel.Product) productResponse {
	resp := productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          money(p.Price),
		EffectivePrice: money(p.EffectivePrice()),
		Category:       p.Category,
		Image:          p.Image,
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		OnSale:         p.OnSale,
	}
	if p.SalePrice.Valid {
		sale := money(p.SalePrice.Decimal)
		resp.SalePrice = &sale
	}
	return resp
}

func toProductResponses(products []catalogmodel.Product) []productResponse {
	result := make([]productResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result
}

type searchResponse struct {
	Products    []productResponse `json:"products"`
	Count       int               `json:"count"`
	EmptyReason string            `json:"emptyReason,omitempty"`
}

type productDetailResponse struct {
	Product productResponse   `json:"product"`
	Related []productResponse `json:"related"`
}

type categoryDetailResponse struct {
	Category categoryResponse  `json:"category"`
	Products []productResponse `json:"products"`
}

type homeResponse struct {
	Featured    []productResponse  `json:"featured"`
	BestSellers []productResponse  `json:"bestSellers"`
	Categories  []categoryResponse `json:"categories"`
}

type lineItemResponse struct {
	Product   productResponse `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"lineTotal"`
}

type promoResponse struct {
	Code string `json:"code"`
	Rate string `json:"rate"`
}

type totalsResponse struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

type cartResponse struct {
	ID        uuid.UUID          `json:"id"`
	Items     []lineItemResponse `json:"items"`
	ItemCount int                `json:"itemCount"`
	Promo     *promoResponse     `json:"promo,omitempty"`
	Totals    totalsResponse     `json:"totals"`
}

func toCartResponse(cart *cartmodel.Cart, totals cartmodel.Totals) cartResponse {
	resp := cartResponse{
		ID:    cart.ID,
		Items: make([]lineItemResponse, 0, len(cart.Items)),
		Totals: totalsResponse{
			Subtotal: money(totals.Subtotal),
			Discount: money(totals.Discount),
			Shipping: money(totals.Shipping),
			Total:    money(totals.Total),
		},
	}
	for _, item := range cart.Items {
		resp.ItemCount += item.Quantity
		resp.Items = append(resp.Items, lineItemResponse{
			Product:   toProductResponse(item.Product),
			Quantity:  item.Quantity,
			LineTotal: money(item.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}
	if cart.Promo != nil {
		resp.Promo = &promoResponse{Code: cart.Promo.Code, Rate: cart.Promo.Rate.String()}
	}
	return resp
}

type addItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type promoRequest struct {
	Code string `json:"code"`
}

type signUpRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AgreeTerms      bool   `json:"agreeTerms"`
}

func (r signUpRequest) toForm() validation.RegisterForm {
	return validation.RegisterForm{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		AgreeTerms:      r.AgreeTerms,
	}
}

type signInRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (r signInRequest) toForm() validation.LoginForm {
	return validation.LoginForm{Email: r.Email, Password: r.Password, RememberMe: r.RememberMe}
}

type emailRequest struct {
	Email string `json:"email"`
}

type sessionResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func toSessionResponse(s accountmodel.Session) sessionResponse {
	return sessionResponse{UserID: s.UserID, Email: s.Email, ExpiresAt: s.ExpiresAt}
}

type authResponse struct {
	Token   string          `json:"token"`
	Session sessionResponse `json:"session"`
}

type messageResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

type profileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (r profileRequest) toForm() validation.ProfileForm {
	return validation.ProfileForm{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone}
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r passwordRequest) toForm() validation.PasswordForm {
	return validation.PasswordForm{
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
		ConfirmPassword: r.ConfirmPassword,
	}
}

type notificationsRequest struct {
	OrderUpdates *bool `json:"orderUpdates"`
	Promotions   *bool `json:"promotions"`
	ProductNews  *bool `json:"productNews"`
	BlogPosts    *bool `json:"blogPosts"`
}

func (r notificationsRequest) toForm() validation.NotificationForm {
	return validation.NotificationForm{
		OrderUpdates: r.OrderUpdates,
		Promotions:   r.Promotions,
		ProductNews:  r.ProductNews,
		BlogPosts:    r.BlogPosts,
	}
}

type notificationsResponse struct {
	OrderUpdates bool `json:"orderUpdates"`
	Promotions   bool `json:"promotions"`
	ProductNews  bool `json:"productNews"`
	BlogPosts    bool `json:"blogPosts"`
}

type profileResponse struct {
	ID            uuid.UUID             `json:"id"`
	FirstName     string                `json:"firstName"`
	LastName      string                `json:"lastName"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	AvatarURL     string                `json:"avatarUrl"`
	Notifications notificationsResponse `json:"notifications"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func toProfileResponse(p *accountmodel.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
		Notifications: notificationsResponse{
			OrderUpdates: p.Notifications.OrderUpdates,
			Promotions:   p.Notifications.Promotions,
			ProductNews:  p.Notifications.ProductNews,
			BlogPosts:    p.Notifications.BlogPosts,
		},
		UpdatedAt: p.UpdatedAt,
	}
}

type avatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}

type addressRequest struct {
	RecipientName string `json:"recipientName"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	IsDefault     bool   `json:"isDefault"`
}

func (r addressRequest) toForm() validation.AddressForm {
	return validation.AddressForm{
		RecipientName: r.RecipientName,
		Line1:         r.Line1,
		Line2:         r.Line2,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		Phone:         r.Phone,
		IsDefault:     r.IsDefault,
	}
}

type addressResponse struct {
	ID            uuid.UUID `json:"id"`
	RecipientName string    `json:"recipientName"`
	Line1         string    `json:"line1"`
	Line2         string    `json:"line2"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postalCode"`
	Country       string    `json:"country"`
	Phone         string    `json:"phone"`
	IsDefault     bool      `json:"isDefault"`
}

func toAddressResponse(a accountmodel.Address) addressResponse {
	return addressResponse{
		ID:            a.ID,
		RecipientName: a.RecipientName,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		Phone:         a.Phone,
		IsDefault:     a.IsDefault,
	}
}

type orderItemResponse struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type orderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Status    string              `json:"status"`
	Total     string              `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []orderItemResponse `json:"items"`
}

func toOrderResponse(o accountmodel.Order) orderResponse {
	resp := orderResponse{
		ID:        o.ID,
		Status:    o.Status.String(),
		Total:     money(o.Total),
		CreatedAt: o.CreatedAt,
		Items:     make([]orderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     money(item.UnitPrice),
		})
	}
	return resp
}

type stageResponse struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

type trackingResponse struct {
	OrderNumber string          `json:"orderNumber"`
	Status      string          `json:"status"`
	Stages      []stageResponse `json:"stages"`
}

func toTrackingResponse(t trackingmodel.Tracking) trackingResponse {
	resp := trackingResponse{
		OrderNumber: t.OrderNumber,
		Status:      t.Status,
		Stages:      make([]stageResponse, 0, len(t.Stages)),
	}
	for _, stage := range t.Stages {
		resp.Stages = append(resp.Stages, stageResponse{Status: stage.Status, Description: stage.Description})
	}
	return resp
}

type findingResponse struct {
	Condition  string  `json:"condition"`
	Confidence float64 `json:"confidence"`
}

type analysisResponse struct {
	TicketID        uuid.UUID         `json:"ticketId"`
	Status          string            `json:"status"`
	Findings        []findingResponse `json:"findings"`
	Recommendations []int             `json:"recommendations"`
}

func toAnalysisResponse(r analysismodel.Result) analysisResponse {
	resp := analysisResponse{
		TicketID:        r.TicketID,
		Status:          r.Status.String(),
		Findings:        make([]findingResponse, 0, len(r.Findings)),
		Recommendations: append([]int{}, r.Recommendations...),
	}
	for _, f := range r.Findings {
		resp.Findings = append(resp.Findings, findingResponse{Condition: f.Condition, Confidence: f.Confidence})
	}
	return resp
}
