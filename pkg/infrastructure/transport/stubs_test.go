package transport

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/pkg/account/domain/model"
	"storefront/pkg/validation"
)

const validToken = "valid-token"

var testSession = model.Session{
	UserID:    uuid.MustParse("7f1f3c4e-8a2b-4c39-9a51-0d6f2e0b9d11"),
	Email:     "jane@example.com",
	TokenID:   "jti-1",
	ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
}

type stubAuth struct {
	signedOut []string
	resets    []string
}

func (s *stubAuth) SignUp(form validation.RegisterForm) (string, model.Session, error) {
	if err := validation.RegisterSchema.Validate(form); err != nil {
		return "", model.Session{}, err
	}
	if form.Email == "taken@example.com" {
		return "", model.Session{}, model.ErrEmailTaken
	}
	return validToken, testSession, nil
}

func (s *stubAuth) SignIn(form validation.LoginForm) (string, model.Session, error) {
	if err := validation.LoginSchema.Validate(form); err != nil {
		return "", model.Session{}, err
	}
	if form.Email != testSession.Email || form.Password != "password123" {
		return "", model.Session{}, model.ErrInvalidCredentials
	}
	return validToken, testSession, nil
}

func (s *stubAuth) SignOut(session model.Session) error {
	s.signedOut = append(s.signedOut, session.TokenID)
	return nil
}

func (s *stubAuth) Authenticate(token string) (model.Session, error) {
	if token != validToken {
		return model.Session{}, model.ErrUnauthenticated
	}
	return testSession, nil
}

func (s *stubAuth) RequestPasswordReset(form validation.ResetPasswordForm) error {
	if err := validation.ResetPasswordSchema.Validate(form); err != nil {
		return err
	}
	s.resets = append(s.resets, form.Email)
	return nil
}

type stubProfiles struct {
	profile model.Profile
	avatar  []byte
}

func newStubProfiles() *stubProfiles {
	return &stubProfiles{profile: model.Profile{
		ID:            testSession.UserID,
		Email:         testSession.Email,
		Notifications: model.NotificationPreferences{OrderUpdates: true, Promotions: true},
	}}
}

func (s *stubProfiles) Profile(model.Session) (*model.Profile, error) {
	p := s.profile
	return &p, nil
}

func (s *stubProfiles) UpdateProfile(_ model.Session, form validation.ProfileForm) (*model.Profile, error) {
	if err := validation.ProfileSchema.Validate(form); err != nil {
		return nil, err
	}
	s.profile.FirstName, s.profile.LastName, s.profile.Phone = form.FirstName, form.LastName, form.Phone
	return s.Profile(model.Session{})
}

func (s *stubProfiles) ChangeEmail(_ model.Session, form validation.EmailForm) error {
	if err := validation.EmailSchema.Validate(form); err != nil {
		return err
	}
	s.profile.Email = form.Email
	return nil
}

func (s *stubProfiles) ChangePassword(_ model.Session, form validation.PasswordForm) error {
	if err := validation.PasswordSchema.Validate(form); err != nil {
		return err
	}
	if form.CurrentPassword != "password123" {
		return &validation.Error{Schema: "password", Fields: validation.FieldErrors{"currentPassword": {"Current password is incorrect"}}}
	}
	return nil
}

func (s *stubProfiles) UpdateNotifications(_ model.Session, form validation.NotificationForm) (*model.Profile, error) {
	t := form.WithDefaults()
	s.profile.Notifications = model.NotificationPreferences{
		OrderUpdates: t.OrderUpdates,
		Promotions:   t.Promotions,
		ProductNews:  t.ProductNews,
		BlogPosts:    t.BlogPosts,
	}
	return s.Profile(model.Session{})
}

func (s *stubProfiles) UploadAvatar(_ context.Context, session model.Session, upload model.Upload) (string, error) {
	if !strings.HasSuffix(strings.ToLower(upload.FileName), ".png") {
		return "", model.ErrUnsupportedFileType
	}
	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return "", err
	}
	s.avatar = data
	s.profile.AvatarURL = "https://cdn.example.com/avatars/" + session.UserID.String() + ".png"
	return s.profile.AvatarURL, nil
}

func (s *stubProfiles) RemoveAvatar(model.Session) error {
	s.profile.AvatarURL = ""
	return nil
}

type stubAddresses struct {
	addresses []model.Address
}

func (s *stubAddresses) Addresses(model.Session) ([]model.Address, error) {
	return append([]model.Address(nil), s.addresses...), nil
}

func (s *stubAddresses) AddAddress(session model.Session, form validation.AddressForm) (*model.Address, error) {
	if err := validation.AddressSchema.Validate(form); err != nil {
		return nil, err
	}
	address := model.Address{
		ID:         uuid.New(),
		UserID:     session.UserID,
		Line1:      form.Line1,
		City:       form.City,
		State:      form.State,
		PostalCode: form.PostalCode,
		Country:    form.Country,
		IsDefault:  form.IsDefault,
	}
	s.addresses = append(s.addresses, address)
	return &address, nil
}

func (s *stubAddresses) UpdateAddress(_ model.Session, addressID uuid.UUID, form validation.AddressForm) (*model.Address, error) {
	for i := range s.addresses {
		if s.addresses[i].ID == addressID {
			s.addresses[i].Line1 = form.Line1
			a := s.addresses[i]
			return &a, nil
		}
	}
	return nil, model.ErrAddressNotFound
}

func (s *stubAddresses) RemoveAddress(_ model.Session, addressID uuid.UUID) error {
	for i := range s.addresses {
		if s.addresses[i].ID == addressID {
			s.addresses = append(s.addresses[:i], s.addresses[i+1:]...)
			return nil
		}
	}
	return model.ErrAddressNotFound
}

func (s *stubAddresses) SetDefaultAddress(_ model.Session, addressID uuid.UUID) error {
	found := false
	for i := range s.addresses {
		s.addresses[i].IsDefault = s.addresses[i].ID == addressID
		found = found || s.addresses[i].IsDefault
	}
	if !found {
		return model.ErrAddressNotFound
	}
	return nil
}

type stubOrders struct {
	orders  []model.Order
	queries []string
}

func (s *stubOrders) History(_ model.Session, query string) ([]model.Order, error) {
	s.queries = append(s.queries, query)
	return s.orders, nil
}

func (s *stubOrders) Order(_ model.Session, orderID uuid.UUID) (*model.Order, error) {
	for _, o := range s.orders {
		if o.ID == orderID {
			return &o, nil
		}
	}
	return nil, model.ErrOrderNotFound
}
