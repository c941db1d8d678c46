package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/account/domain/model"
	"storefront/pkg/account/domain/service"
	"storefront/pkg/validation"
)

func addressForm(line1 string, isDefault bool) validation.AddressForm {
	return validation.AddressForm{
		RecipientName: "John Doe",
		Line1:         line1,
		City:          "Portland",
		State:         "OR",
		PostalCode:    "97201",
		Country:       "US",
		IsDefault:     isDefault,
	}
}

func countDefaults(addresses []model.Address) int {
	count := 0
	for _, a := range addresses {
		if a.IsDefault {
			count++
		}
	}
	return count
}

func TestAddressBook(t *testing.T) {
	_, f := setup(t)
	addressService := service.NewAddressService(f.addresses, f.dispatcher)
	session := model.Session{UserID: uuid.New()}

	a, err := addressService.AddAddress(session, addressForm("1 First St", true))
	require.NoError(t, err)
	b, err := addressService.AddAddress(session, addressForm("2 Second St", false))
	require.NoError(t, err)

	t.Run("Setting a new default clears the old one", func(t *testing.T) {
		require.NoError(t, addressService.SetDefaultAddress(session, b.ID))

		addresses, err := addressService.Addresses(session)
		require.NoError(t, err)
		assert.Equal(t, 1, countDefaults(addresses))
		saved, _ := f.addresses.Find(session.UserID, b.ID)
		assert.True(t, saved.IsDefault)
		old, _ := f.addresses.Find(session.UserID, a.ID)
		assert.False(t, old.IsDefault)
	})

	t.Run("Adding a default address keeps exclusivity", func(t *testing.T) {
		c, err := addressService.AddAddress(session, addressForm("3 Third St", true))
		require.NoError(t, err)

		addresses, _ := addressService.Addresses(session)
		assert.Equal(t, 1, countDefaults(addresses))
		saved, _ := f.addresses.Find(session.UserID, c.ID)
		assert.True(t, saved.IsDefault)
	})

	t.Run("Update through form", func(t *testing.T) {
		f.dispatcher.Reset()
		updated, err := addressService.UpdateAddress(session, a.ID, addressForm("10 First St", true))
		require.NoError(t, err)
		assert.Equal(t, "10 First St", updated.Line1)

		addresses, _ := addressService.Addresses(session)
		assert.Equal(t, 1, countDefaults(addresses))
		require.Len(t, f.dispatcher.events, 2)
		_, ok := f.dispatcher.events[1].(model.DefaultAddressChanged)
		assert.True(t, ok)
	})

	t.Run("Invalid form is rejected", func(t *testing.T) {
		_, err := addressService.AddAddress(session, validation.AddressForm{Line1: "nowhere"})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "city")
	})

	t.Run("Other owners cannot touch the address", func(t *testing.T) {
		stranger := model.Session{UserID: uuid.New()}
		assert.ErrorIs(t, addressService.SetDefaultAddress(stranger, a.ID), model.ErrAddressNotFound)
		assert.ErrorIs(t, addressService.RemoveAddress(stranger, a.ID), model.ErrAddressNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, addressService.RemoveAddress(session, b.ID))
		addresses, _ := addressService.Addresses(session)
		assert.Len(t, addresses, 2)
	})
}
