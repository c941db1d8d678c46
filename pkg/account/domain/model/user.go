package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User holds sign-in credentials. Everything shown to the customer lives on Profile.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) SetPassword(hashedPassword string, at time.Time) {
	u.HashedPassword = hashedPassword
	u.UpdatedAt = at
}

func (u *User) SetEmail(email string, at time.Time) (previous string) {
	previous, u.Email = u.Email, email
	u.UpdatedAt = at
	return previous
}

type UserRepository interface {
	NextID() (uuid.UUID, error)
	Create(user *User) error
	Update(user *User) error
	Find(id uuid.UUID) (*User, error)
	FindByEmail(email string) (*User, error)
}
