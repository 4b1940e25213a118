package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/configparser"
)

// Flags
var (
	modeFlag = flag.String("mode", "", "application mode: booking-service, auth-service or standalone")
)

// Errors
var (
	ErrModeNotProvided = errors.New("mode flag not provided")
	ErrInvalidStorage  = errors.New("storage driver must be memory or postgres")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Mode     types.ServiceMode `mapstructure:"mode"`
		LogLevel string            `mapstructure:"log_level" default:"DEBUG"`

		Storage   StorageConfig   `mapstructure:"storage"`
		Database  DatabaseConfig  `mapstructure:"database"`
		Redis     RedisConfig     `mapstructure:"redis"`
		RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
		Services  ServicesConfig  `mapstructure:"services"`
		Booking   BookingConfig   `mapstructure:"booking"`
		Auth      Auth            `mapstructure:"auth"`
		HTTP      HTTPConfig      `mapstructure:"http"`
		WebSocket WebSocketConfig `mapstructure:"websocket"`
	}

	StorageConfig struct {
		Driver string `mapstructure:"driver" default:"memory"` // memory | postgres
	}

	DatabaseConfig struct {
		Host     string `mapstructure:"host" default:"localhost"`
		Port     string `mapstructure:"port" default:"5432"`
		User     string `mapstructure:"user" default:"batoda_user"`
		Password string `mapstructure:"password" default:"batoda_pass"`
		Database string `mapstructure:"database" default:"batoda_db"`

		MaxConns        int32         `mapstructure:"maxconns" default:"20"`
		MinConns        int32         `mapstructure:"minconns" default:"2"`
		MaxConnLifetime time.Duration `mapstructure:"maxconnlifetime" default:"30m"`
		MaxConnIdleTime time.Duration `mapstructure:"maxconnidletime" default:"5m"`

		AutoMigrate bool `mapstructure:"automigrate" default:"true"`
	}

	RedisConfig struct {
		Enabled  bool   `mapstructure:"enabled" default:"false"`
		Host     string `mapstructure:"host" default:"localhost"`
		Port     string `mapstructure:"port" default:"6379"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db" default:"0"`

		ReadTTL time.Duration `mapstructure:"read_ttl" default:"720h"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `mapstructure:"enabled" default:"false"`
		Host     string `mapstructure:"host" default:"localhost"`
		Port     string `mapstructure:"port" default:"5672"`
		User     string `mapstructure:"user" default:"guest"`
		Password string `mapstructure:"password" default:"guest"`

		PublishBuffer int `mapstructure:"publish_buffer" default:"256"`
	}

	ServicesConfig struct {
		BookingService string `mapstructure:"booking_service" default:"3000"`
		AuthService    string `mapstructure:"auth_service" default:"3005"`
	}

	BookingConfig struct {
		ConfirmDelay       time.Duration `mapstructure:"confirm_delay" default:"1200ms"`
		TickInterval       time.Duration `mapstructure:"tick_interval" default:"3s"`
		DefaultETA         int           `mapstructure:"default_eta" default:"5"`
		Fare               float64       `mapstructure:"fare" default:"50"`
		Currency           string        `mapstructure:"currency" default:"PHP"`
		DefaultPickup      string        `mapstructure:"default_pickup" default:"Basco Terminal"`
		DefaultDestination string        `mapstructure:"default_destination" default:"Marlboro Hills"`
		NearbyLimit        int           `mapstructure:"nearby_limit" default:"10"`
		IdleTimeout        time.Duration `mapstructure:"idle_timeout" default:"30m"`
		EvictInterval      time.Duration `mapstructure:"evict_interval" default:"1m"`
	}

	Auth struct {
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl" default:"24h"`
		JWTSecret      string        `mapstructure:"jwt_secret" default:"supersecretkey"`
		AccountDomain  string        `mapstructure:"account_domain" default:"batoda.ph"`
		HashIterations int           `mapstructure:"hash_iterations" default:"210000"`
	}

	HTTPConfig struct {
		AllowedOrigins []string `mapstructure:"allowed_origins" default:"*"`
	}

	WebSocketConfig struct {
		AuthTimeout time.Duration `mapstructure:"auth_timeout" default:"5s"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Defaults, yaml file and environment, in increasing precedence.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseFlags(cfg *Config) error {
	if modeFlag != nil && *modeFlag != "" {
		cfg.Mode = types.ServiceMode(*modeFlag)
	}

	if cfg.Mode == "" {
		return ErrModeNotProvided
	}

	return nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return ErrInvalidStorage
	}

	if c.Booking.DefaultPickup == c.Booking.DefaultDestination {
		return errors.New("booking default pickup and destination must differ")
	}

	return nil
}

// LoadDatabase reads only the database section. It does not require a mode.
func LoadDatabase(filepath string) (DatabaseConfig, error) {
	cfg := &Config{}
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return DatabaseConfig{}, fmt.Errorf("failed to load and parse config: %w", err)
	}
	return cfg.Database, nil
}
