package observability

import (
	"log/slog"

	"github.com/couchcryptid/meteorite-map/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and makes
// it the slog default. Every record carries the service name.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", "meteorite-map")
	slog.SetDefault(logger)
	return logger
}
