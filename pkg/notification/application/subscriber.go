package application

import (
	accountmodel "storefront/pkg/account/domain/model"
	"storefront/pkg/common/domain"
	"storefront/pkg/notification/domain/service"
)

// AccountSubscriber turns account events into customer notifications.
type AccountSubscriber struct {
	notifications service.NotificationService
}

func NewAccountSubscriber(notifications service.NotificationService) *AccountSubscriber {
	return &AccountSubscriber{notifications: notifications}
}

func (s *AccountSubscriber) Handle(event domain.Event) error {
	switch e := event.(type) {
	case accountmodel.UserRegistered:
		return s.notifications.SendWelcomeEmail(e.UserID, e.Email, e.FirstName)
	case accountmodel.PasswordResetRequested:
		return s.notifications.SendPasswordResetLink(e.UserID, e.Email)
	case accountmodel.EmailChanged:
		return s.notifications.NotifyEmailChanged(e.UserID, e.OldEmail, e.NewEmail)
	default:
		return nil
	}
}
