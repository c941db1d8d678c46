package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/tracking/domain/model"
	"storefront/pkg/tracking/domain/service"
)

func TestStageCount(t *testing.T) {
	cases := map[string]int{
		"RR-10000": 1,
		"RR-10001": 1,
		"RR-10002": 2,
		"RR-10005": 5,
		"RR-10006": 1,
		"RR-10007": 1,
		"RR-10008": 2,
		"RR-10009": 3,
		"RR-1000X": 1,
	}
	for orderNumber, expected := range cases {
		assert.Equal(t, expected, service.StageCount(orderNumber), orderNumber)
	}
}

func TestTrack(t *testing.T) {
	tracker := service.NewMockTracker()

	t.Run("Prefix of lifecycle", func(t *testing.T) {
		tracking, err := tracker.Track("RR-12343")
		require.NoError(t, err)
		require.Len(t, tracking.Stages, 3)
		assert.Equal(t, "Order Placed", tracking.Stages[0].Status)
		assert.Equal(t, "Shipped", tracking.Status)
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, _ := tracker.Track("RR-55555")
		second, _ := tracker.Track("RR-55555")
		assert.Equal(t, first, second)
		assert.Equal(t, "Delivered", first.Status)
	})

	t.Run("Non digit suffix shows only the first stage", func(t *testing.T) {
		tracking, err := tracker.Track("RR-1000X")
		require.NoError(t, err)
		require.Len(t, tracking.Stages, 1)
		assert.Equal(t, "Order Placed", tracking.Status)
	})

	t.Run("Short order number", func(t *testing.T) {
		_, err := tracker.Track(" 1234 ")
		assert.ErrorIs(t, err, model.ErrInvalidOrderNumber)
	})
}
