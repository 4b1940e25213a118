package config

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

const HelpMessage = `
BATODA tricycle booking service

Usage:
  batoda -mode <booking-service|auth-service|standalone> [-config-path config.yaml]

Flags:
  -mode          service to run
  -config-path   path to the yaml config file (default config.yaml)
  -help          show this message

Every config key can be overridden by an environment variable,
e.g. database.host -> DATABASE_HOST, booking.tick_interval -> BOOKING_TICK_INTERVAL.
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the non-secret part of the configuration.
func PrintConfig(cfg *Config) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "mode\t%s\n", cfg.Mode)
	fmt.Fprintf(w, "log_level\t%s\n", cfg.LogLevel)
	fmt.Fprintf(w, "storage.driver\t%s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == "postgres" {
		fmt.Fprintf(w, "database\t%s@%s:%s/%s\n", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	}
	fmt.Fprintf(w, "redis.enabled\t%t\n", cfg.Redis.Enabled)
	fmt.Fprintf(w, "rabbitmq.enabled\t%t\n", cfg.RabbitMQ.Enabled)
	fmt.Fprintf(w, "services\tbooking=%s auth=%s\n", cfg.Services.BookingService, cfg.Services.AuthService)
	fmt.Fprintf(w, "booking\tconfirm_delay=%s tick=%s fare=%.2f %s\n",
		cfg.Booking.ConfirmDelay, cfg.Booking.TickInterval, cfg.Booking.Fare, cfg.Booking.Currency)
}
