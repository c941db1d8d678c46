package mysql

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/account/domain/model"
)

type profileRow struct {
	ID                 uuid.UUID `db:"id"`
	FirstName          string    `db:"first_name"`
	LastName           string    `db:"last_name"`
	Email              string    `db:"email"`
	Phone              string    `db:"phone"`
	AvatarURL          string    `db:"avatar_url"`
	NotifyOrderUpdates bool      `db:"notify_order_updates"`
	NotifyPromotions   bool      `db:"notify_promotions"`
	NotifyProductNews  bool      `db:"notify_product_news"`
	NotifyBlogPosts    bool      `db:"notify_blog_posts"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func newProfileRow(p *model.Profile) profileRow {
	return profileRow{
		ID:                 p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Email:              p.Email,
		Phone:              p.Phone,
		AvatarURL:          p.AvatarURL,
		NotifyOrderUpdates: p.Notifications.OrderUpdates,
		NotifyPromotions:   p.Notifications.Promotions,
		NotifyProductNews:  p.Notifications.ProductNews,
		NotifyBlogPosts:    p.Notifications.BlogPosts,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (r profileRow) toModel() *model.Profile {
	return &model.Profile{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		AvatarURL: r.AvatarURL,
		Notifications: model.NotificationPreferences{
			OrderUpdates: r.NotifyOrderUpdates,
			Promotions:   r.NotifyPromotions,
			ProductNews:  r.NotifyProductNews,
			BlogPosts:    r.NotifyBlogPosts,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(profile *model.Profile) error {
	_, err := r.db.NamedExec(`INSERT INTO profiles (
		id, first_name, last_name, email, phone, avatar_url,
		notify_order_updates, notify_promotions, notify_product_news, notify_blog_posts,
		created_at, updated_at
	) VALUES (
		:id, :first_name, :last_name, :email, :phone, :avatar_url,
		:notify_order_updates, :notify_promotions, :notify_product_news, :notify_blog_posts,
		:created_at, :updated_at
	)`, newProfileRow(profile))
	return errors.Wrap(err, "insert profile")
}

func (r *ProfileRepository) Update(profile *model.Profile) error {
	result, err := r.db.NamedExec(`UPDATE profiles SET
		first_name = :first_name,
		last_name = :last_name,
		email = :email,
		phone = :phone,
		avatar_url = :avatar_url,
		notify_order_updates = :notify_order_updates,
		notify_promotions = :notify_promotions,
		notify_product_news = :notify_product_news,
		notify_blog_posts = :notify_blog_posts,
		updated_at = :updated_at
	WHERE id = :id`, newProfileRow(profile))
	if err != nil {
		return errors.Wrap(err, "update profile")
	}
	return expectAffected(result, model.ErrProfileNotFound)
}

func (r *ProfileRepository) Find(id uuid.UUID) (*model.Profile, error) {
	var row profileRow
	err := r.db.Get(&row, `SELECT
		id, first_name, last_name, email, phone, avatar_url,
		notify_order_updates, notify_promotions, notify_product_news, notify_blog_posts,
		created_at, updated_at
	FROM profiles WHERE id = ?`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, model.ErrProfileNotFound
		}
		return nil, errors.Wrap(err, "select profile")
	}
	return row.toModel(), nil
}
