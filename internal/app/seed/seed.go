package seed

import (
	"context"
	"os"
	"restaurant-backend/internal/app/bootstrap"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
)

// SampleOrders are inserted by --mode=seed.
var SampleOrders = []models.CreateOrder{
	{Name: "Alice", Item: "Margherita Pizza", Phone: "+15550001111"},
	{Name: "Bob", Item: "Cheeseburger", Phone: "+15550002222"},
	{Name: "Carol", Item: "Caesar Salad", Phone: "+15550003333"},
}

// Run inserts the sample orders straight through the store, without notifications.
func Run() {
	cfg := bootstrap.MustConfig()
	log := bootstrap.Logger(cfg, "seed")
	ctx := context.Background()

	repo, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		os.Exit(1)
	}
	_, err = Insert(ctx, repo, log)
	repo.Close()
	if err != nil {
		os.Exit(1)
	}
}

func Insert(ctx context.Context, repo port.OrderRepository, log logger.Logger) ([]models.Order, error) {
	created := make([]models.Order, 0, len(SampleOrders))
	for _, o := range SampleOrders {
		order, err := repo.CreateOrder(ctx, o)
		if err != nil {
			log.Error(ctx, types.ActionDBTransactionFailed, "failed to insert sample order", err, "name", o.Name)
			return created, err
		}
		created = append(created, order)
	}
	log.Info(ctx, types.ActionSeeded, "sample orders inserted", "count", len(created))
	return created, nil
}
