package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStatus int

const (
	Placed OrderStatus = iota
	Processing
	Shipped
	OutForDelivery
	Delivered
	Cancelled
)

var orderStatusNames = map[OrderStatus]string{
	Placed:         "Placed",
	Processing:     "Processing",
	Shipped:        "Shipped",
	OutForDelivery: "Out for Delivery",
	Delivered:      "Delivered",
	Cancelled:      "Cancelled",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for status, name := range orderStatusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown order status %q", s)
}

type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    OrderStatus
	Total     decimal.Decimal
	Items     []OrderItem
	CreatedAt time.Time
}

type OrderItem struct {
	ProductID int
	Quantity  int
	UnitPrice decimal.Decimal
}

// OrderRepository lists orders newest first.
type OrderRepository interface {
	Find(ownerID, id uuid.UUID) (*Order, error)
	ListByOwner(ownerID uuid.UUID) ([]Order, error)
}
