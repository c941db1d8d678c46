package mysql

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/account/domain/model"
)

type userRow struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:             r.ID,
		Email:          r.Email,
		HashedPassword: r.HashedPassword,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *UserRepository) Create(user *model.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, email, hashed_password, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.HashedPassword, user.CreatedAt, user.UpdatedAt,
	)
	if isDuplicateEntry(err) {
		return model.ErrEmailTaken
	}
	return errors.Wrap(err, "insert user")
}

func (r *UserRepository) Update(user *model.User) error {
	result, err := r.db.Exec(
		`UPDATE users SET email = ?, hashed_password = ?, updated_at = ? WHERE id = ?`,
		user.Email, user.HashedPassword, user.UpdatedAt, user.ID,
	)
	if isDuplicateEntry(err) {
		return model.ErrEmailTaken
	}
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	return expectAffected(result, model.ErrUserNotFound)
}

func (r *UserRepository) Find(id uuid.UUID) (*model.User, error) {
	return r.findOne(`SELECT id, email, hashed_password, created_at, updated_at FROM users WHERE id = ?`, id)
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(`SELECT id, email, hashed_password, created_at, updated_at FROM users WHERE email = ?`, email)
}

func (r *UserRepository) findOne(query string, arg interface{}) (*model.User, error) {
	var row userRow
	if err := r.db.Get(&row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, model.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "select user")
	}
	return row.toModel(), nil
}
