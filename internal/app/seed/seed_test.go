package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/pkg/logger"
)

type memRepo struct {
	orders []models.Order
	failOn string
}

func (m *memRepo) CreateOrder(_ context.Context, o models.CreateOrder) (models.Order, error) {
	if o.Name == m.failOn {
		return models.Order{}, models.ErrorDbTransactionFailed
	}
	order := models.Order{ID: int64(len(m.orders) + 1), Name: o.Name, Item: o.Item, Phone: o.Phone, Status: models.StatusReceived}
	m.orders = append(m.orders, order)
	return order, nil
}

func (m *memRepo) ListRecentOrders(context.Context, int) ([]models.Order, error) {
	return m.orders, nil
}

func TestInsert(t *testing.T) {
	repo := &memRepo{}

	created, err := Insert(context.Background(), repo, logger.Discard())

	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, "Alice", created[0].Name)
	assert.Equal(t, "Carol", created[2].Name)
}

func TestInsert_StopsOnFailure(t *testing.T) {
	repo := &memRepo{failOn: "Bob"}

	created, err := Insert(context.Background(), repo, logger.Discard())

	assert.True(t, errors.Is(err, models.ErrorDbTransactionFailed))
	assert.Len(t, created, 1)
}
