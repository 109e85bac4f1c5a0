package order_repository

import (
	"context"
	"fmt"
	"restaurant-backend/internal/core/domain/models"
	"time"

	"github.com/jackc/pgx/v5"
)

// Pool is the subset of *pgxpool.Pool the repository needs.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

type OrderRepository struct {
	pool Pool
}

func NewOrderRepository(pool Pool) *OrderRepository {
	return &OrderRepository{
		pool: pool,
	}
}

// CreateOrder inserts one row and returns it with the store-generated id and timestamp.
func (repo *OrderRepository) CreateOrder(ctx context.Context, newOrder models.CreateOrder) (order models.Order, err error) {
	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: begin: %v", models.ErrorDbTransactionFailed, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
INSERT INTO orders (
    name,
    item,
    phone,
    status
) VALUES ($1, $2, $3, $4)
RETURNING id, status, created_at
`

	var createdAt *time.Time
	err = tx.QueryRow(
		ctx,
		query,
		newOrder.Name,
		newOrder.Item,
		newOrder.Phone,
		models.StatusReceived,
	).Scan(&order.ID, &order.Status, &createdAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: creating order: %v", models.ErrorDbTransactionFailed, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("%w: commit: %v", models.ErrorDbTransactionFailed, err)
	}

	order.Name = newOrder.Name
	order.Item = newOrder.Item
	order.Phone = newOrder.Phone
	order.CreatedAt = createdAt
	return order, nil
}

// ListRecentOrders returns at most limit orders, newest first.
func (repo *OrderRepository) ListRecentOrders(ctx context.Context, limit int) (orders []models.Order, err error) {
	if limit <= 0 {
		limit = models.DefaultListLimit
	}

	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", models.ErrorDbTransactionFailed, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
SELECT id, name, item, phone, status, created_at
FROM orders
ORDER BY created_at DESC NULLS LAST, id DESC
LIMIT $1
`

	rows, err := tx.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching orders: %v", models.ErrorDbTransactionFailed, err)
	}

	orders = make([]models.Order, 0, limit)
	for rows.Next() {
		var (
			o         models.Order
			createdAt *time.Time
		)
		if err = rows.Scan(&o.ID, &o.Name, &o.Item, &o.Phone, &o.Status, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: scanning order: %v", models.ErrorDbTransactionFailed, err)
		}
		o.CreatedAt = createdAt
		orders = append(orders, o)
	}
	rows.Close()

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating orders: %v", models.ErrorDbTransactionFailed, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", models.ErrorDbTransactionFailed, err)
	}

	return orders, nil
}

func (repo *OrderRepository) Close() {
	repo.pool.Close()
}
