package service

import (
	"strings"

	"github.com/google/uuid"

	"storefront/pkg/account/domain/model"
)

type OrderService interface {
	// History lists the caller's orders, optionally narrowed to those whose id or
	// status contains query.
	History(session model.Session, query string) ([]model.Order, error)
	Order(session model.Session, orderID uuid.UUID) (*model.Order, error)
}

func NewOrderService(repo model.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

type orderService struct {
	repo model.OrderRepository
}

func (s *orderService) History(session model.Session, query string) ([]model.Order, error) {
	orders, err := s.repo.ListByOwner(session.UserID)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return orders, nil
	}

	result := make([]model.Order, 0, len(orders))
	for _, order := range orders {
		if strings.Contains(order.ID.String(), query) ||
			strings.Contains(strings.ToLower(order.Status.String()), query) {
			result = append(result, order)
		}
	}
	return result, nil
}

func (s *orderService) Order(session model.Session, orderID uuid.UUID) (*model.Order, error) {
	return s.repo.Find(session.UserID, orderID)
}
