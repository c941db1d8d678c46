package event

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
)

type Handler interface {
	Handle(event domain.Event) error
}

type HandlerFunc func(event domain.Event) error

func (f HandlerFunc) Handle(event domain.Event) error {
	return f(event)
}

// Dispatcher hands every event to all handlers in registration order. A failing
// handler does not stop the rest; the first failure is returned.
type Dispatcher struct {
	handlers []Handler
	logger   log.FieldLogger
}

func NewDispatcher(logger log.FieldLogger, handlers ...Handler) *Dispatcher {
	return &Dispatcher{handlers: handlers, logger: logger}
}

func (d *Dispatcher) Dispatch(event domain.Event) error {
	entry := d.logger.WithField("event", event.Type())
	entry.Debug("dispatching event")

	var first error
	for _, handler := range d.handlers {
		if err := handler.Handle(event); err != nil {
			entry.WithError(err).Error("event handler failed")
			if first == nil {
				first = errors.Wrapf(err, "handle %s", event.Type())
			}
		}
	}
	return first
}

// LogHandler records events when no broker is configured.
func LogHandler(logger log.FieldLogger) Handler {
	return HandlerFunc(func(event domain.Event) error {
		logger.WithFields(log.Fields{
			"event":   event.Type(),
			"payload": event,
		}).Info("domain event")
		return nil
	})
}
