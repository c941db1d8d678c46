package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoSender             = errors.New("no message sender configured")
	ErrAlreadyDelivered     = errors.New("notification has already been delivered")
)

// Kind is the customer message a notification carries. All kinds are
// transactional and go out regardless of marketing preferences.
type Kind int

const (
	Welcome Kind = iota
	PasswordReset
	EmailChanged
)

var kindNames = map[Kind]string{
	Welcome:       "welcome",
	PasswordReset: "password_reset",
	EmailChanged:  "email_changed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for kind, name := range kindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown notification kind %q", s)
}

type Status int

const (
	Pending Status = iota
	Sent
	Failed
)

type Notification struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Kind          Kind
	Recipient     string
	Subject       string
	Body          string
	Status        Status
	FailureReason string
	CreatedAt     time.Time
	SentAt        *time.Time
}

func (n *Notification) MarkSent(at time.Time) error {
	if n.Status != Pending {
		return ErrAlreadyDelivered
	}
	n.Status = Sent
	n.SentAt = &at
	return nil
}

func (n *Notification) MarkFailed(reason string) error {
	if n.Status != Pending {
		return ErrAlreadyDelivered
	}
	n.Status = Failed
	n.FailureReason = reason
	return nil
}

type NotificationRepository interface {
	NextID() (uuid.UUID, error)
	Create(notification *Notification) error
	Update(notification *Notification) error
}

// Sender delivers a rendered message to one recipient.
type Sender interface {
	Send(recipient, subject, body string) error
}
