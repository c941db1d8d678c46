package service

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"storefront/pkg/analysis/domain/model"
)

type Analyzer interface {
	SubmitImage(image []byte) (model.Result, error)
}

// NewMockAnalyzer returns an analyzer that accepts images and queues nothing: every
// accepted submission comes back Pending with a fresh ticket.
func NewMockAnalyzer() Analyzer {
	return &mockAnalyzer{}
}

type mockAnalyzer struct{}

func (a *mockAnalyzer) SubmitImage(image []byte) (model.Result, error) {
	if len(image) == 0 {
		return model.Result{}, model.ErrEmptyImage
	}

	contentType := http.DetectContentType(image)
	if !strings.HasPrefix(contentType, "image/") {
		return model.Result{Status: model.Failed, FailureReason: "unsupported content type " + contentType}, model.ErrUnsupportedImage
	}

	ticketID, err := uuid.NewRandom()
	if err != nil {
		return model.Result{}, err
	}
	return model.Result{TicketID: ticketID, Status: model.Pending}, nil
}
