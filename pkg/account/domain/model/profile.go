package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

type NotificationPreferences struct {
	OrderUpdates bool
	Promotions   bool
	ProductNews  bool
	BlogPosts    bool
}

type Profile struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	AvatarURL     string
	Notifications NotificationPreferences
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ProfileRepository interface {
	Create(profile *Profile) error
	Update(profile *Profile) error
	Find(id uuid.UUID) (*Profile, error)
}
