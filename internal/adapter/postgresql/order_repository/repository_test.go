package order_repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-backend/internal/core/domain/models"
)

func setupRepo(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewOrderRepository(mock), mock
}

func TestCreateOrder(t *testing.T) {
	repo, mock := setupRepo(t)
	createdAt := time.Date(2025, 10, 26, 14, 45, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("Alice", "Margherita Pizza", "+15550001111", models.StatusReceived).
		WillReturnRows(pgxmock.NewRows([]string{"id", "status", "created_at"}).
			AddRow(int64(1), models.StatusReceived, &createdAt))
	mock.ExpectCommit()

	order, err := repo.CreateOrder(context.Background(), models.CreateOrder{
		Name:  "Alice",
		Item:  "Margherita Pizza",
		Phone: "+15550001111",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, "Alice", order.Name)
	assert.Equal(t, "Margherita Pizza", order.Item)
	assert.Equal(t, models.StatusReceived, order.Status)
	require.NotNil(t, order.CreatedAt)
	assert.True(t, createdAt.Equal(*order.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_InsertFailsRollsBack(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("Bob", "Cheeseburger", "+15550002222", models.StatusReceived).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.CreateOrder(context.Background(), models.CreateOrder{
		Name:  "Bob",
		Item:  "Cheeseburger",
		Phone: "+15550002222",
	})
	assert.ErrorIs(t, err, models.ErrorDbTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_BeginFails(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("store unreachable"))

	_, err := repo.CreateOrder(context.Background(), models.CreateOrder{Name: "Carol", Item: "Salad", Phone: "1"})
	assert.ErrorIs(t, err, models.ErrorDbTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentOrders(t *testing.T) {
	repo, mock := setupRepo(t)
	newer := time.Date(2025, 10, 26, 15, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, item, phone, status, created_at").
		WithArgs(models.DefaultListLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "item", "phone", "status", "created_at"}).
			AddRow(int64(2), "Bob", "Cheeseburger", "+15550002222", "received", &newer).
			AddRow(int64(1), "Alice", "Margherita Pizza", "+15550001111", "received", &older))
	mock.ExpectCommit()

	orders, err := repo.ListRecentOrders(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, int64(2), orders[0].ID)
	assert.Equal(t, int64(1), orders[1].ID)
	assert.True(t, orders[0].CreatedAt.After(*orders[1].CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentOrders_QueryFails(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, item, phone, status, created_at").
		WithArgs(10).
		WillReturnError(errors.New("relation \"orders\" does not exist"))
	mock.ExpectRollback()

	_, err := repo.ListRecentOrders(context.Background(), 10)
	assert.ErrorIs(t, err, models.ErrorDbTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
