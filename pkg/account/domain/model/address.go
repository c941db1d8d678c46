package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAddressNotFound = errors.New("address not found")

type Address struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	RecipientName string
	Line1         string
	Line2         string
	City          string
	State         string
	PostalCode    string
	Country       string
	Phone         string
	IsDefault     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddressRepository keeps at most one default address per owner: Create, Update and
// SetDefault clear the previous default in the same transaction.
type AddressRepository interface {
	NextID() (uuid.UUID, error)
	Create(address *Address) error
	Update(address *Address) error
	Delete(ownerID, id uuid.UUID) error
	Find(ownerID, id uuid.UUID) (*Address, error)
	ListByOwner(ownerID uuid.UUID) ([]Address, error)
	SetDefault(ownerID, id uuid.UUID) error
}
