package restaurant

import (
	"fmt"
	"os"
	"restaurant-backend/internal/app/notification"
	"restaurant-backend/internal/app/order"
	"restaurant-backend/internal/app/seed"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/pkg/flags"
)

// Run starts the service selected by --mode.
func Run() {
	flags.ParseFlag()

	switch *flags.Mode {
	case types.ModeOrderService:
		app := order.NewOrderApp()
		app.Start()

	case types.ModeNotificationSubscriber:
		app := notification.NewNotificationApp()
		app.Start()

	case types.ModeSeed:
		seed.Run()

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q (want %s, %s or %s)\n",
			*flags.Mode, types.ModeOrderService, types.ModeNotificationSubscriber, types.ModeSeed)
		os.Exit(2)
	}
}
