package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrUnauthenticated = errors.New("authentication required")

// Session identifies the signed-in user behind a request. Services receive it
// explicitly rather than reading ambient state.
type Session struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// PasswordManager hashes credentials; Check reports a mismatch as false without an error.
type PasswordManager interface {
	Hash(plainTextPassword string) (string, error)
	Check(hashedPassword, plainTextPassword string) (bool, error)
}

type TokenIssuer interface {
	Issue(user *User) (token string, session Session, err error)
	Parse(token string) (Session, error)
}

type RevocationList interface {
	Revoke(tokenID string, until time.Time)
	IsRevoked(tokenID string) bool
}
