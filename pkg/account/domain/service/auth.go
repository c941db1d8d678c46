package service

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/account/domain/model"
	"storefront/pkg/common/domain"
	"storefront/pkg/validation"
)

type AuthService interface {
	SignUp(form validation.RegisterForm) (string, model.Session, error)
	SignIn(form validation.LoginForm) (string, model.Session, error)
	SignOut(session model.Session) error
	Authenticate(token string) (model.Session, error)
	RequestPasswordReset(form validation.ResetPasswordForm) error
}

func NewAuthService(
	users model.UserRepository,
	profiles model.ProfileRepository,
	passManager model.PasswordManager,
	tokens model.TokenIssuer,
	revoked model.RevocationList,
	dispatcher domain.EventDispatcher,
) AuthService {
	return &authService{
		users:       users,
		profiles:    profiles,
		passManager: passManager,
		tokens:      tokens,
		revoked:     revoked,
		dispatcher:  dispatcher,
	}
}

type authService struct {
	users       model.UserRepository
	profiles    model.ProfileRepository
	passManager model.PasswordManager
	tokens      model.TokenIssuer
	revoked     model.RevocationList
	dispatcher  domain.EventDispatcher
}

func (s *authService) SignUp(form validation.RegisterForm) (string, model.Session, error) {
	if err := validation.RegisterSchema.Validate(form); err != nil {
		return "", model.Session{}, err
	}

	email := normalizeEmail(form.Email)
	if _, err := s.users.FindByEmail(email); err == nil {
		return "", model.Session{}, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return "", model.Session{}, err
	}

	hashedPassword, err := s.passManager.Hash(form.Password)
	if err != nil {
		return "", model.Session{}, errors.Wrap(err, "hash password")
	}

	userID, err := s.users.NextID()
	if err != nil {
		return "", model.Session{}, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             userID,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Create(user); err != nil {
		return "", model.Session{}, err
	}

	profile := newProfile(user.ID, email, now)
	profile.FirstName = strings.TrimSpace(form.FirstName)
	profile.LastName = strings.TrimSpace(form.LastName)
	if err := s.profiles.Create(profile); err != nil {
		// the profile is created lazily on first access instead
		log.WithError(err).WithField("userID", userID).Warn("failed to create profile on sign-up")
	}

	token, session, err := s.tokens.Issue(user)
	if err != nil {
		return "", model.Session{}, errors.Wrap(err, "issue token")
	}

	dispatch(s.dispatcher, model.UserRegistered{UserID: userID, Email: email, FirstName: profile.FirstName})
	return token, session, nil
}

func (s *authService) SignIn(form validation.LoginForm) (string, model.Session, error) {
	if err := validation.LoginSchema.Validate(form); err != nil {
		return "", model.Session{}, err
	}

	user, err := s.users.FindByEmail(normalizeEmail(form.Email))
	if errors.Is(err, model.ErrUserNotFound) {
		return "", model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return "", model.Session{}, err
	}

	ok, err := s.passManager.Check(user.HashedPassword, form.Password)
	if err != nil {
		return "", model.Session{}, errors.Wrap(err, "check password")
	}
	if !ok {
		return "", model.Session{}, model.ErrInvalidCredentials
	}

	token, session, err := s.tokens.Issue(user)
	if err != nil {
		return "", model.Session{}, errors.Wrap(err, "issue token")
	}

	dispatch(s.dispatcher, model.UserSignedIn{UserID: user.ID})
	return token, session, nil
}

func (s *authService) SignOut(session model.Session) error {
	s.revoked.Revoke(session.TokenID, session.ExpiresAt)
	dispatch(s.dispatcher, model.UserSignedOut{UserID: session.UserID})
	return nil
}

func (s *authService) Authenticate(token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, model.ErrUnauthenticated
	}
	session, err := s.tokens.Parse(token)
	if err != nil {
		return model.Session{}, errors.Wrap(model.ErrUnauthenticated, err.Error())
	}
	if s.revoked.IsRevoked(session.TokenID) {
		return model.Session{}, model.ErrUnauthenticated
	}
	return session, nil
}

// RequestPasswordReset does not reveal whether the address belongs to an account.
func (s *authService) RequestPasswordReset(form validation.ResetPasswordForm) error {
	if err := validation.ResetPasswordSchema.Validate(form); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(normalizeEmail(form.Email))
	if errors.Is(err, model.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	dispatch(s.dispatcher, model.PasswordResetRequested{UserID: user.ID, Email: user.Email})
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func dispatch(dispatcher domain.EventDispatcher, event domain.Event) {
	if err := dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
