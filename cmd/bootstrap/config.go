package bootstrap

import (
	"log/slog"

	"travel-booking/internal/pkg/config"

	"github.com/cockroachdb/errors"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(loadConfig),
)

// loadConfig refuses combinations that would let bookings or coupon payments be faked in production.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Payment.Provider == "http" && (cfg.Payment.KeyID == "" || cfg.Payment.KeySecret == "") {
		return config.Config{}, errors.New("PAYMENT_KEY_ID and PAYMENT_KEY_SECRET are required for the http payment provider")
	}
	if cfg.Payment.Provider != "http" && cfg.Payment.Provider != "fake" {
		return config.Config{}, errors.Newf("unknown PAYMENT_PROVIDER %q", cfg.Payment.Provider)
	}

	slog.Info("configuration loaded",
		"payment_provider", cfg.Payment.Provider,
		"restore_seats_on_cancel", cfg.Booking.RestoreSeatsOnCancel,
		"rate_limit", cfg.RateLimit.Enabled,
		"workers", cfg.Worker.Enabled,
		"db_lock_timeout", cfg.DB.LockTimeout)
	return cfg, nil
}
