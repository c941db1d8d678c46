package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"storefront/pkg/account/domain/model"
	"storefront/pkg/common/domain"
	"storefront/pkg/validation"
)

const (
	avatarBucket  = "avatars"
	maxAvatarSize = 5 * 1024 * 1024
)

var avatarExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

type ProfileService interface {
	Profile(session model.Session) (*model.Profile, error)
	UpdateProfile(session model.Session, form validation.ProfileForm) (*model.Profile, error)
	ChangeEmail(session model.Session, form validation.EmailForm) error
	ChangePassword(session model.Session, form validation.PasswordForm) error
	UpdateNotifications(session model.Session, form validation.NotificationForm) (*model.Profile, error)
	UploadAvatar(ctx context.Context, session model.Session, upload model.Upload) (string, error)
	RemoveAvatar(session model.Session) error
}

func NewProfileService(
	profiles model.ProfileRepository,
	users model.UserRepository,
	passManager model.PasswordManager,
	storage model.ObjectStorage,
	dispatcher domain.EventDispatcher,
) ProfileService {
	return &profileService{
		profiles:    profiles,
		users:       users,
		passManager: passManager,
		storage:     storage,
		dispatcher:  dispatcher,
	}
}

type profileService struct {
	profiles    model.ProfileRepository
	users       model.UserRepository
	passManager model.PasswordManager
	storage     model.ObjectStorage
	dispatcher  domain.EventDispatcher
}

// Profile returns the caller's profile, creating it on first access.
func (s *profileService) Profile(session model.Session) (*model.Profile, error) {
	profile, err := s.profiles.Find(session.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}

	profile = newProfile(session.UserID, session.Email, time.Now().UTC())
	if err := s.profiles.Create(profile); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.ProfileCreated{UserID: session.UserID})
	return profile, nil
}

// UpdateProfile changes names and phone; the email is changed through ChangeEmail.
func (s *profileService) UpdateProfile(session model.Session, form validation.ProfileForm) (*model.Profile, error) {
	if err := validation.ProfileSchema.Validate(form); err != nil {
		return nil, err
	}

	profile, err := s.Profile(session)
	if err != nil {
		return nil, err
	}

	profile.FirstName = strings.TrimSpace(form.FirstName)
	profile.LastName = strings.TrimSpace(form.LastName)
	profile.Phone = strings.TrimSpace(form.Phone)
	if err := s.updateProfile(profile); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.ProfileUpdated{UserID: session.UserID})
	return profile, nil
}

func (s *profileService) ChangeEmail(session model.Session, form validation.EmailForm) error {
	if err := validation.EmailSchema.Validate(form); err != nil {
		return err
	}

	user, err := s.users.Find(session.UserID)
	if err != nil {
		return err
	}
	newEmail := normalizeEmail(form.Email)
	if newEmail == user.Email {
		return nil
	}

	if other, err := s.users.FindByEmail(newEmail); err == nil && other.ID != user.ID {
		return model.ErrEmailTaken
	} else if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	oldEmail := user.SetEmail(newEmail, time.Now().UTC())
	if err := s.users.Update(user); err != nil {
		return err
	}

	profile, err := s.Profile(session)
	if err != nil {
		return err
	}
	profile.Email = newEmail
	if err := s.updateProfile(profile); err != nil {
		return err
	}

	dispatch(s.dispatcher, model.EmailChanged{UserID: user.ID, OldEmail: oldEmail, NewEmail: newEmail})
	return nil
}

func (s *profileService) ChangePassword(session model.Session, form validation.PasswordForm) error {
	if err := validation.PasswordSchema.Validate(form); err != nil {
		return err
	}

	user, err := s.users.Find(session.UserID)
	if err != nil {
		return err
	}

	ok, err := s.passManager.Check(user.HashedPassword, form.CurrentPassword)
	if err != nil {
		return errors.Wrap(err, "check password")
	}
	if !ok {
		return &validation.Error{
			Schema: validation.PasswordSchema.Name,
			Fields: validation.FieldErrors{"currentPassword": {"Current password is incorrect"}},
		}
	}

	hashed, err := s.passManager.Hash(form.NewPassword)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	user.SetPassword(hashed, time.Now().UTC())
	if err := s.users.Update(user); err != nil {
		return err
	}

	dispatch(s.dispatcher, model.PasswordChanged{UserID: user.ID})
	return nil
}

func (s *profileService) UpdateNotifications(session model.Session, form validation.NotificationForm) (*model.Profile, error) {
	if err := validation.NotificationSchema.Validate(form); err != nil {
		return nil, err
	}

	profile, err := s.Profile(session)
	if err != nil {
		return nil, err
	}

	toggles := form.WithDefaults()
	profile.Notifications = model.NotificationPreferences{
		OrderUpdates: toggles.OrderUpdates,
		Promotions:   toggles.Promotions,
		ProductNews:  toggles.ProductNews,
		BlogPosts:    toggles.BlogPosts,
	}
	if err := s.updateProfile(profile); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.ProfileUpdated{UserID: session.UserID})
	return profile, nil
}

// UploadAvatar stores the image first and only then points the profile at it, so a
// failed upload never leaves the profile referencing a missing object.
func (s *profileService) UploadAvatar(ctx context.Context, session model.Session, upload model.Upload) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(upload.FileName), "."))
	contentType, ok := avatarExtensions[ext]
	if !ok {
		return "", model.ErrUnsupportedFileType
	}
	if upload.Size > maxAvatarSize {
		return "", model.ErrFileTooLarge
	}

	bucket, err := s.avatarBucket(ctx)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s_%d.%s", session.UserID, time.Now().UnixMilli(), ext)
	if bucket != avatarBucket {
		key = avatarBucket + "/" + key
	}

	stored, err := s.storage.Upload(ctx, bucket, key, contentType, upload.Body, true)
	if err != nil {
		return "", errors.Wrap(err, "upload avatar")
	}
	publicURL := s.storage.PublicURL(bucket, stored)

	if err := s.setAvatar(session, publicURL); err != nil {
		return "", err
	}
	return publicURL, nil
}

func (s *profileService) RemoveAvatar(session model.Session) error {
	return s.setAvatar(session, "")
}

func (s *profileService) setAvatar(session model.Session, avatarURL string) error {
	profile, err := s.Profile(session)
	if err != nil {
		return err
	}
	profile.AvatarURL = avatarURL
	if err := s.updateProfile(profile); err != nil {
		return err
	}

	dispatch(s.dispatcher, model.AvatarChanged{UserID: session.UserID, AvatarURL: avatarURL})
	return nil
}

func (s *profileService) avatarBucket(ctx context.Context) (string, error) {
	buckets, err := s.storage.Buckets(ctx)
	if err != nil {
		return "", errors.Wrap(err, "list buckets")
	}
	if len(buckets) == 0 {
		return "", model.ErrNoStorageBuckets
	}
	for _, b := range buckets {
		if b == avatarBucket {
			return b, nil
		}
	}
	return buckets[0], nil
}

func (s *profileService) updateProfile(profile *model.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	return s.profiles.Update(profile)
}

func newProfile(userID uuid.UUID, email string, now time.Time) *model.Profile {
	defaults := validation.DefaultNotificationToggles()
	return &model.Profile{
		ID:    userID,
		Email: email,
		Notifications: model.NotificationPreferences{
			OrderUpdates: defaults.OrderUpdates,
			Promotions:   defaults.Promotions,
			ProductNews:  defaults.ProductNews,
			BlogPosts:    defaults.BlogPosts,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
