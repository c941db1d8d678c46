package service

import (
	"strings"

	"storefront/pkg/tracking/domain/model"
)

const minOrderNumberLength = 5

type Tracker interface {
	Track(orderNumber string) (model.Tracking, error)
}

// NewMockTracker returns a placeholder tracker. It derives progress from the last
// character of the order number and performs no lookup.
func NewMockTracker() Tracker {
	return &mockTracker{}
}

type mockTracker struct{}

func (t *mockTracker) Track(orderNumber string) (model.Tracking, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if len(orderNumber) < minOrderNumberLength {
		return model.Tracking{}, model.ErrInvalidOrderNumber
	}

	count := StageCount(orderNumber)
	stages := append([]model.Stage(nil), model.Stages[:count]...)
	return model.Tracking{
		OrderNumber: orderNumber,
		Status:      stages[count-1].Status,
		Stages:      stages,
	}, nil
}

// StageCount is (last digit mod 6) clamped to [1, 5]. A non-digit last character
// counts as 0 and so yields one stage, "Order Placed"; an order number is never
// shown with an empty timeline.
func StageCount(orderNumber string) int {
	digit := 0
	if n := len(orderNumber); n > 0 {
		if c := orderNumber[n-1]; c >= '0' && c <= '9' {
			digit = int(c - '0')
		}
	}

	count := digit % 6
	if count < 1 {
		count = 1
	}
	if count > len(model.Stages) {
		count = len(model.Stages)
	}
	return count
}
