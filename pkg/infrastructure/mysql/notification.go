package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"storefront/pkg/notification/domain/model"
)

type notificationRow struct {
	ID            uuid.UUID    `db:"id"`
	UserID        uuid.UUID    `db:"user_id"`
	Kind          string       `db:"kind"`
	Recipient     string       `db:"recipient"`
	Subject       string       `db:"subject"`
	Body          string       `db:"body"`
	Status        int          `db:"status"`
	FailureReason string       `db:"failure_reason"`
	CreatedAt     time.Time    `db:"created_at"`
	SentAt        sql.NullTime `db:"sent_at"`
}

func newNotificationRow(n *model.Notification) notificationRow {
	row := notificationRow{
		ID:            n.ID,
		UserID:        n.UserID,
		Kind:          n.Kind.String(),
		Recipient:     n.Recipient,
		Subject:       n.Subject,
		Body:          n.Body,
		Status:        int(n.Status),
		FailureReason: n.FailureReason,
		CreatedAt:     n.CreatedAt,
	}
	if n.SentAt != nil {
		row.SentAt = sql.NullTime{Time: *n.SentAt, Valid: true}
	}
	return row
}

func (r notificationRow) toModel() (*model.Notification, error) {
	kind, err := model.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	n := &model.Notification{
		ID:            r.ID,
		UserID:        r.UserID,
		Kind:          kind,
		Recipient:     r.Recipient,
		Subject:       r.Subject,
		Body:          r.Body,
		Status:        model.Status(r.Status),
		FailureReason: r.FailureReason,
		CreatedAt:     r.CreatedAt,
	}
	if r.SentAt.Valid {
		sentAt := r.SentAt.Time
		n.SentAt = &sentAt
	}
	return n, nil
}

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	_, err := r.db.NamedExec(`INSERT INTO notifications (
		id, user_id, kind, recipient, subject, body, status, failure_reason, created_at, sent_at
	) VALUES (
		:id, :user_id, :kind, :recipient, :subject, :body, :status, :failure_reason, :created_at, :sent_at
	)`, newNotificationRow(notification))
	return errors.Wrap(err, "insert notification")
}

// Update persists the delivery outcome; content columns are immutable.
func (r *NotificationRepository) Update(notification *model.Notification) error {
	result, err := r.db.NamedExec(`UPDATE notifications SET
		status = :status,
		failure_reason = :failure_reason,
		sent_at = :sent_at
	WHERE id = :id`, newNotificationRow(notification))
	if err != nil {
		return errors.Wrap(err, "update notification")
	}
	return expectAffected(result, model.ErrNotificationNotFound)
}

func (r *NotificationRepository) Find(id uuid.UUID) (*model.Notification, error) {
	var row notificationRow
	err := r.db.Get(&row, `SELECT
		id, user_id, kind, recipient, subject, body, status, failure_reason, created_at, sent_at
	FROM notifications WHERE id = ?`, id)
	if err != nil {
		if isNoRows(err) {
			return nil, model.ErrNotificationNotFound
		}
		return nil, errors.Wrap(err, "select notification")
	}
	return row.toModel()
}
