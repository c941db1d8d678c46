package model

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyImage       = errors.New("no image provided")
	ErrUnsupportedImage = errors.New("file is not a supported image")
)

type Status int

const (
	Pending Status = iota
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completed:
		return "completed"
	default:
		return "failed"
	}
}

type Finding struct {
	Condition  string
	Confidence float64
}

type Result struct {
	TicketID        uuid.UUID
	Status          Status
	Findings        []Finding
	Recommendations []int
	FailureReason   string
}
