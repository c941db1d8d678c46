package sender

import (
	log "github.com/sirupsen/logrus"
)

// LogSender writes outgoing messages to the service log instead of a mail relay.
type LogSender struct {
	logger log.FieldLogger
}

func NewLogSender(logger log.FieldLogger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(recipient, subject, body string) error {
	s.logger.WithFields(log.Fields{
		"recipient": recipient,
		"subject":   subject,
		"length":    len(body),
	}).Info("notification sent")
	return nil
}
