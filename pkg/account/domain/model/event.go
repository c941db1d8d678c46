package model

import "github.com/google/uuid"

type UserRegistered struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type UserSignedIn struct {
	UserID uuid.UUID
}

func (e UserSignedIn) Type() string { return "UserSignedIn" }

type UserSignedOut struct {
	UserID uuid.UUID
}

func (e UserSignedOut) Type() string { return "UserSignedOut" }

type PasswordResetRequested struct {
	UserID uuid.UUID
	Email  string
}

func (e PasswordResetRequested) Type() string { return "PasswordResetRequested" }

type PasswordChanged struct {
	UserID uuid.UUID
}

func (e PasswordChanged) Type() string { return "PasswordChanged" }

type EmailChanged struct {
	UserID   uuid.UUID
	OldEmail string
	NewEmail string
}

func (e EmailChanged) Type() string { return "EmailChanged" }

type ProfileCreated struct {
	UserID uuid.UUID
}

func (e ProfileCreated) Type() string { return "ProfileCreated" }

type ProfileUpdated struct {
	UserID uuid.UUID
}

func (e ProfileUpdated) Type() string { return "ProfileUpdated" }

type AvatarChanged struct {
	UserID    uuid.UUID
	AvatarURL string
}

func (e AvatarChanged) Type() string { return "AvatarChanged" }

type AddressAdded struct {
	UserID    uuid.UUID
	AddressID uuid.UUID
}

func (e AddressAdded) Type() string { return "AddressAdded" }

type AddressUpdated struct {
	UserID    uuid.UUID
	AddressID uuid.UUID
}

func (e AddressUpdated) Type() string { return "AddressUpdated" }

type AddressRemoved struct {
	UserID    uuid.UUID
	AddressID uuid.UUID
}

func (e AddressRemoved) Type() string { return "AddressRemoved" }

type DefaultAddressChanged struct {
	UserID    uuid.UUID
	AddressID uuid.UUID
}

func (e DefaultAddressChanged) Type() string { return "DefaultAddressChanged" }
