// pkg/flags/flag.go
package flags

import (
	"flag"
	"log/slog"
	"os"
)

var (
	Port    = flag.Int("port", 0, "port to listen on (overrides PORT)")
	Mode    = flag.String("mode", "order-service", "mode to run (order-service, notification-subscriber, seed)")
	EnvFile = flag.String("env-file", ".env", "path to an optional .env file")
	Migrate = flag.Bool("migrate", true, "apply database migrations on start (AND-ed with AUTO_MIGRATE)")
)

func ParseFlag() {
	flag.Parse()

	if *Port < 0 || *Port > 65535 {
		slog.Error("invalid port", "port", *Port)
		os.Exit(1)
	}
}
