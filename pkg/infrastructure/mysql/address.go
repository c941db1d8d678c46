package mysql

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/account/domain/model"
)

const addressColumns = `id, user_id, recipient_name, address_line1, address_line2, city, state,
	postal_code, country, phone, is_default, created_at, updated_at`

type addressRow struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	RecipientName string    `db:"recipient_name"`
	Line1         string    `db:"address_line1"`
	Line2         string    `db:"address_line2"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	PostalCode    string    `db:"postal_code"`
	Country       string    `db:"country"`
	Phone         string    `db:"phone"`
	IsDefault     bool      `db:"is_default"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func newAddressRow(a *model.Address) addressRow {
	return addressRow{
		ID:            a.ID,
		UserID:        a.UserID,
		RecipientName: a.RecipientName,
		Line1:         a.Line1,
		Line2:         a.Line2,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		Phone:         a.Phone,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (r addressRow) toModel() model.Address {
	return model.Address{
		ID:            r.ID,
		UserID:        r.UserID,
		RecipientName: r.RecipientName,
		Line1:         r.Line1,
		Line2:         r.Line2,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		Phone:         r.Phone,
		IsDefault:     r.IsDefault,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type AddressRepository struct {
	db *sqlx.DB
}

func NewAddressRepository(db *sqlx.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *AddressRepository) Create(address *model.Address) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if address.IsDefault {
			if err := clearDefault(tx, address.UserID, address.ID); err != nil {
				return err
			}
		}
		_, err := tx.NamedExec(`INSERT INTO addresses (`+addressColumns+`) VALUES (
			:id, :user_id, :recipient_name, :address_line1, :address_line2, :city, :state,
			:postal_code, :country, :phone, :is_default, :created_at, :updated_at
		)`, newAddressRow(address))
		return errors.Wrap(err, "insert address")
	})
}

func (r *AddressRepository) Update(address *model.Address) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if address.IsDefault {
			if err := clearDefault(tx, address.UserID, address.ID); err != nil {
				return err
			}
		}
		result, err := tx.NamedExec(`UPDATE addresses SET
			recipient_name = :recipient_name,
			address_line1 = :address_line1,
			address_line2 = :address_line2,
			city = :city,
			state = :state,
			postal_code = :postal_code,
			country = :country,
			phone = :phone,
			is_default = :is_default,
			updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`, newAddressRow(address))
		if err != nil {
			return errors.Wrap(err, "update address")
		}
		return expectAffected(result, model.ErrAddressNotFound)
	})
}

func (r *AddressRepository) Delete(ownerID, id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM addresses WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return errors.Wrap(err, "delete address")
	}
	return expectAffected(result, model.ErrAddressNotFound)
}

func (r *AddressRepository) Find(ownerID, id uuid.UUID) (*model.Address, error) {
	var row addressRow
	err := r.db.Get(&row, `SELECT `+addressColumns+` FROM addresses WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		if isNoRows(err) {
			return nil, model.ErrAddressNotFound
		}
		return nil, errors.Wrap(err, "select address")
	}
	address := row.toModel()
	return &address, nil
}

// ListByOwner returns the default address first, then the rest oldest first.
func (r *AddressRepository) ListByOwner(ownerID uuid.UUID) ([]model.Address, error) {
	var rows []addressRow
	err := r.db.Select(&rows, `SELECT `+addressColumns+` FROM addresses
		WHERE user_id = ? ORDER BY is_default DESC, created_at ASC`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "select addresses")
	}
	addresses := make([]model.Address, 0, len(rows))
	for _, row := range rows {
		addresses = append(addresses, row.toModel())
	}
	return addresses, nil
}

func (r *AddressRepository) SetDefault(ownerID, id uuid.UUID) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		if err := clearDefault(tx, ownerID, id); err != nil {
			return err
		}
		result, err := tx.Exec(
			`UPDATE addresses SET is_default = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
			true, time.Now().UTC(), id, ownerID,
		)
		if err != nil {
			return errors.Wrap(err, "set default address")
		}
		return expectAffected(result, model.ErrAddressNotFound)
	})
}

func clearDefault(tx *sqlx.Tx, ownerID, keepID uuid.UUID) error {
	_, err := tx.Exec(
		`UPDATE addresses SET is_default = ? WHERE user_id = ? AND id <> ? AND is_default = ?`,
		false, ownerID, keepID, true,
	)
	return errors.Wrap(err, "clear default address")
}
