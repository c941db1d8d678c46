package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/pkg/account/domain/model"
	"storefront/pkg/common/domain"
	"storefront/pkg/validation"
)

type AddressService interface {
	Addresses(session model.Session) ([]model.Address, error)
	AddAddress(session model.Session, form validation.AddressForm) (*model.Address, error)
	UpdateAddress(session model.Session, addressID uuid.UUID, form validation.AddressForm) (*model.Address, error)
	RemoveAddress(session model.Session, addressID uuid.UUID) error
	SetDefaultAddress(session model.Session, addressID uuid.UUID) error
}

func NewAddressService(repo model.AddressRepository, dispatcher domain.EventDispatcher) AddressService {
	return &addressService{repo: repo, dispatcher: dispatcher}
}

type addressService struct {
	repo       model.AddressRepository
	dispatcher domain.EventDispatcher
}

func (s *addressService) Addresses(session model.Session) ([]model.Address, error) {
	return s.repo.ListByOwner(session.UserID)
}

func (s *addressService) AddAddress(session model.Session, form validation.AddressForm) (*model.Address, error) {
	if err := validation.AddressSchema.Validate(form); err != nil {
		return nil, err
	}

	addressID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	address := &model.Address{
		ID:        addressID,
		UserID:    session.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyAddressForm(address, form)

	if err := s.repo.Create(address); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.AddressAdded{UserID: session.UserID, AddressID: addressID})
	if address.IsDefault {
		dispatch(s.dispatcher, model.DefaultAddressChanged{UserID: session.UserID, AddressID: addressID})
	}
	return address, nil
}

func (s *addressService) UpdateAddress(session model.Session, addressID uuid.UUID, form validation.AddressForm) (*model.Address, error) {
	if err := validation.AddressSchema.Validate(form); err != nil {
		return nil, err
	}

	address, err := s.repo.Find(session.UserID, addressID)
	if err != nil {
		return nil, err
	}

	wasDefault := address.IsDefault
	applyAddressForm(address, form)
	address.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(address); err != nil {
		return nil, err
	}

	dispatch(s.dispatcher, model.AddressUpdated{UserID: session.UserID, AddressID: addressID})
	if address.IsDefault && !wasDefault {
		dispatch(s.dispatcher, model.DefaultAddressChanged{UserID: session.UserID, AddressID: addressID})
	}
	return address, nil
}

func (s *addressService) RemoveAddress(session model.Session, addressID uuid.UUID) error {
	if err := s.repo.Delete(session.UserID, addressID); err != nil {
		return err
	}

	dispatch(s.dispatcher, model.AddressRemoved{UserID: session.UserID, AddressID: addressID})
	return nil
}

func (s *addressService) SetDefaultAddress(session model.Session, addressID uuid.UUID) error {
	if err := s.repo.SetDefault(session.UserID, addressID); err != nil {
		return err
	}

	dispatch(s.dispatcher, model.DefaultAddressChanged{UserID: session.UserID, AddressID: addressID})
	return nil
}

func applyAddressForm(address *model.Address, form validation.AddressForm) {
	address.RecipientName = strings.TrimSpace(form.RecipientName)
	address.Line1 = strings.TrimSpace(form.Line1)
	address.Line2 = strings.TrimSpace(form.Line2)
	address.City = strings.TrimSpace(form.City)
	address.State = strings.TrimSpace(form.State)
	address.PostalCode = strings.TrimSpace(form.PostalCode)
	address.Country = strings.TrimSpace(form.Country)
	address.Phone = strings.TrimSpace(form.Phone)
	address.IsDefault = form.IsDefault
}
