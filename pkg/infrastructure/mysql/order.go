package mysql

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"storefront/pkg/account/domain/model"
)

type orderRow struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Status    string          `db:"status"`
	Total     decimal.Decimal `db:"total"`
	CreatedAt time.Time       `db:"created_at"`
}

type orderItemRow struct {
	OrderID   uuid.UUID       `db:"order_id"`
	ProductID int             `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

func (r orderRow) toModel(items []orderItemRow) (model.Order, error) {
	status, err := model.ParseOrderStatus(r.Status)
	if err != nil {
		return model.Order{}, errors.Wrapf(err, "order %s", r.ID)
	}
	order := model.Order{
		ID:        r.ID,
		UserID:    r.UserID,
		Status:    status,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
		Items:     make([]model.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}
	return order, nil
}

// OrderRepository reads orders written by the checkout backend.
type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Find(ownerID, id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT id, user_id, status, total, created_at FROM orders WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		if isNoRows(err) {
			return nil, model.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "select order")
	}
	orders, err := r.withItems([]orderRow{row})
	if err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *OrderRepository) ListByOwner(ownerID uuid.UUID) ([]model.Order, error) {
	var rows []orderRow
	err := r.db.Select(&rows, `SELECT id, user_id, status, total, created_at FROM orders
		WHERE user_id = ? ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	return r.withItems(rows)
}

func (r *OrderRepository) withItems(rows []orderRow) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(rows))
	if len(rows) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID.String())
	}
	query, args, err := sqlx.In(`SELECT order_id, product_id, quantity, price FROM order_items
		WHERE order_id IN (?) ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build order items query")
	}
	var items []orderItemRow
	if err := r.db.Select(&items, r.db.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "select order items")
	}

	byOrder := make(map[uuid.UUID][]orderItemRow, len(rows))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for _, row := range rows {
		order, err := row.toModel(byOrder[row.ID])
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
