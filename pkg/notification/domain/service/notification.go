package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
	"storefront/pkg/notification/domain/model"
)

type NotificationService interface {
	SendWelcomeEmail(userID uuid.UUID, email, firstName string) error
	SendPasswordResetLink(userID uuid.UUID, email string) error
	// NotifyEmailChanged warns the previous address so a hijacked account is noticed.
	NotifyEmailChanged(userID uuid.UUID, oldEmail, newEmail string) error
}

func NewNotificationService(repo model.NotificationRepository, sender model.Sender, resetURL string, dispatcher domain.EventDispatcher) NotificationService {
	return &notificationService{repo: repo, sender: sender, resetURL: resetURL, dispatcher: dispatcher}
}

type notificationService struct {
	repo       model.NotificationRepository
	sender     model.Sender
	resetURL   string
	dispatcher domain.EventDispatcher
}

func (s *notificationService) SendWelcomeEmail(userID uuid.UUID, email, firstName string) error {
	subject := "Welcome to Root Revive!"
	body := fmt.Sprintf("Hi %s, thanks for joining us! Please check your email to confirm your account.", firstName)

	return s.deliver(userID, model.Welcome, email, subject, body)
}

func (s *notificationService) SendPasswordResetLink(userID uuid.UUID, email string) error {
	subject := "Reset your password"
	body := fmt.Sprintf("Follow this link to reset your password: %s", s.resetURL)

	return s.deliver(userID, model.PasswordReset, email, subject, body)
}

func (s *notificationService) NotifyEmailChanged(userID uuid.UUID, oldEmail, newEmail string) error {
	subject := "Your email address was changed"
	body := fmt.Sprintf("The email on your account is now %s. If this wasn't you, contact support.", newEmail)

	return s.deliver(userID, model.EmailChanged, oldEmail, subject, body)
}

// deliver records the message, hands it to the sender and stores the outcome.
// A sender failure is recorded on the notification rather than returned.
func (s *notificationService) deliver(userID uuid.UUID, kind model.Kind, recipient, subject, body string) error {
	if s.sender == nil {
		return model.ErrNoSender
	}

	id, err := s.repo.NextID()
	if err != nil {
		return err
	}
	notification := &model.Notification{
		ID:        id,
		UserID:    userID,
		Kind:      kind,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Status:    model.Pending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(notification); err != nil {
		return err
	}

	var event domain.Event
	if sendErr := s.sender.Send(recipient, subject, body); sendErr != nil {
		err = notification.MarkFailed(sendErr.Error())
		event = model.NotificationFailed{NotificationID: id, UserID: userID, Kind: kind.String(), Reason: sendErr.Error()}
	} else {
		sentAt := time.Now().UTC()
		err = notification.MarkSent(sentAt)
		event = model.NotificationSent{NotificationID: id, UserID: userID, Kind: kind.String(), SentAt: sentAt}
	}
	if err != nil {
		return err
	}

	if err := s.repo.Update(notification); err != nil {
		return err
	}
	if err := s.dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
	return nil
}
