package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationSent struct {
	NotificationID uuid.UUID
	UserID         uuid.UUID
	Kind           string
	SentAt         time.Time
}

func (e NotificationSent) Type() string { return "NotificationSent" }

// NotificationFailed carries the sender's error text; the message is not retried.
type NotificationFailed struct {
	NotificationID uuid.UUID
	UserID         uuid.UUID
	Kind           string
	Reason         string
}

func (e NotificationFailed) Type() string { return "NotificationFailed" }
