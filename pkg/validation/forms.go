package validation

const (
	minPasswordLength     = 8
	minRegisterNameLength = 2
)

const (
	msgEmail            = "Please enter a valid email address"
	msgPasswordLength   = "Password must be at least 8 characters"
	msgPasswordsDiffer  = "Passwords don't match"
	msgFirstNameLength  = "First name must be at least 2 characters"
	msgLastNameLength   = "Last name must be at least 2 characters"
	msgFirstNameMissing = "First name is required"
	msgLastNameMissing  = "Last name is required"
	msgAgreeTerms       = "You must agree to the terms and conditions"
)

var (
	emailField = Field{Name: "email", Rules: []Rule{{Kind: Email, Message: msgEmail}}}
	phoneField = Field{Name: "phone", Optional: true}
)

var LoginSchema = Schema{
	Name: "login",
	Fields: []Field{
		emailField,
		{Name: "password", Rules: []Rule{{Kind: MinLength, Min: minPasswordLength, Message: msgPasswordLength}}},
		{Name: "rememberMe", Optional: true},
	},
}

var RegisterSchema = Schema{
	Name: "register",
	Fields: []Field{
		{Name: "firstName", Rules: []Rule{{Kind: MinLength, Min: minRegisterNameLength, Message: msgFirstNameLength}}},
		{Name: "lastName", Rules: []Rule{{Kind: MinLength, Min: minRegisterNameLength, Message: msgLastNameLength}}},
		emailField,
		{Name: "password", Rules: []Rule{{Kind: MinLength, Min: minPasswordLength, Message: msgPasswordLength}}},
		{Name: "confirmPassword", Rules: []Rule{{Kind: MatchesField, Field: "password", Message: msgPasswordsDiffer}}},
		{Name: "agreeTerms", Rules: []Rule{{Kind: MustBeTrue, Message: msgAgreeTerms}}},
	},
}

var ResetPasswordSchema = Schema{
	Name:   "resetPassword",
	Fields: []Field{emailField},
}

var ProfileSchema = Schema{
	Name: "profile",
	Fields: []Field{
		{Name: "firstName", Rules: []Rule{{Kind: Required, Message: msgFirstNameMissing}}},
		{Name: "lastName", Rules: []Rule{{Kind: Required, Message: msgLastNameMissing}}},
		emailField,
		phoneField,
	},
}

var EmailSchema = Schema{
	Name:   "email",
	Fields: []Field{emailField},
}

var PasswordSchema = Schema{
	Name: "password",
	Fields: []Field{
		{Name: "currentPassword", Rules: []Rule{{Kind: MinLength, Min: minPasswordLength, Message: msgPasswordLength}}},
		{Name: "newPassword", Rules: []Rule{{Kind: MinLength, Min: minPasswordLength, Message: msgPasswordLength}}},
		{Name: "confirmPassword", Rules: []Rule{{Kind: MatchesField, Field: "newPassword", Message: msgPasswordsDiffer}}},
	},
}

var AddressSchema = Schema{
	Name: "address",
	Fields: []Field{
		{Name: "recipientName", Optional: true},
		{Name: "line1", Rules: []Rule{{Kind: Required, Message: "Address line 1 is required"}}},
		{Name: "line2", Optional: true},
		{Name: "city", Rules: []Rule{{Kind: Required, Message: "City is required"}}},
		{Name: "state", Rules: []Rule{{Kind: Required, Message: "State is required"}}},
		{Name: "postalCode", Rules: []Rule{{Kind: Required, Message: "Postal code is required"}}},
		{Name: "country", Rules: []Rule{{Kind: Required, Message: "Country is required"}}},
		phoneField,
	},
}

// NotificationSchema has no constraints; its toggles are independent.
var NotificationSchema = Schema{
	Name: "notifications",
	Fields: []Field{
		{Name: "orderUpdates", Optional: true},
		{Name: "promotions", Optional: true},
		{Name: "productNews", Optional: true},
		{Name: "blogPosts", Optional: true},
	},
}

type LoginForm struct {
	Email      string
	Password   string
	RememberMe bool
}

func (f LoginForm) Values() Values {
	return Values{"email": f.Email, "password": f.Password, "rememberMe": f.RememberMe}
}

type RegisterForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	AgreeTerms      bool
}

func (f RegisterForm) Values() Values {
	return Values{
		"firstName":       f.FirstName,
		"lastName":        f.LastName,
		"email":           f.Email,
		"password":        f.Password,
		"confirmPassword": f.ConfirmPassword,
		"agreeTerms":      f.AgreeTerms,
	}
}

type ResetPasswordForm struct {
	Email string
}

func (f ResetPasswordForm) Values() Values {
	return Values{"email": f.Email}
}

type ProfileForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (f ProfileForm) Values() Values {
	return Values{"firstName": f.FirstName, "lastName": f.LastName, "email": f.Email, "phone": f.Phone}
}

type EmailForm struct {
	Email string
}

func (f EmailForm) Values() Values {
	return Values{"email": f.Email}
}

type PasswordForm struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func (f PasswordForm) Values() Values {
	return Values{
		"currentPassword": f.CurrentPassword,
		"newPassword":     f.NewPassword,
		"confirmPassword": f.ConfirmPassword,
	}
}

type AddressForm struct {
	RecipientName string
	Line1         string
	Line2         string
	City          string
	State         string
	PostalCode    string
	Country       string
	Phone         string
	IsDefault     bool
}

func (f AddressForm) Values() Values {
	return Values{
		"recipientName": f.RecipientName,
		"line1":         f.Line1,
		"line2":         f.Line2,
		"city":          f.City,
		"state":         f.State,
		"postalCode":    f.PostalCode,
		"country":       f.Country,
		"phone":         f.Phone,
	}
}

// NotificationForm leaves toggles the client did not send as nil.
type NotificationForm struct {
	OrderUpdates *bool
	Promotions   *bool
	ProductNews  *bool
	BlogPosts    *bool
}

type NotificationToggles struct {
	OrderUpdates bool
	Promotions   bool
	ProductNews  bool
	BlogPosts    bool
}

func DefaultNotificationToggles() NotificationToggles {
	return NotificationToggles{OrderUpdates: true, Promotions: true}
}

func (f NotificationForm) Values() Values {
	t := f.WithDefaults()
	return Values{
		"orderUpdates": t.OrderUpdates,
		"promotions":   t.Promotions,
		"productNews":  t.ProductNews,
		"blogPosts":    t.BlogPosts,
	}
}

// WithDefaults fills unset toggles from DefaultNotificationToggles.
func (f NotificationForm) WithDefaults() NotificationToggles {
	t := DefaultNotificationToggles()
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.OrderUpdates, f.OrderUpdates)
	set(&t.Promotions, f.Promotions)
	set(&t.ProductNews, f.ProductNews)
	set(&t.BlogPosts, f.BlogPosts)
	return t
}
