package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Mode     string `mapstructure:"mode"`
	Database struct {
		Host string `mapstructure:"host" default:"localhost"`
		Port int    `mapstructure:"port" default:"5432"`
	} `mapstructure:"database"`
	Booking struct {
		TickInterval time.Duration `mapstructure:"tick_interval" default:"3s"`
		Enabled      bool          `mapstructure:"enabled" default:"true"`
	} `mapstructure:"booking"`
	Origins []string `mapstructure:"origins" default:"a,b"`
}

func TestLoadAndParseYaml_Defaults(t *testing.T) {
	var cfg testConfig
	if err := LoadAndParseYaml("", &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Host != "localhost" || cfg.Database.Port != 5432 {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Booking.TickInterval != 3*time.Second {
		t.Fatalf("tick interval default = %v", cfg.Booking.TickInterval)
	}
	if !cfg.Booking.Enabled {
		t.Fatalf("enabled default must be true")
	}
	if len(cfg.Origins) != 2 {
		t.Fatalf("origins default = %v", cfg.Origins)
	}
}

func TestLoadAndParseYaml_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "mode: standalone\ndatabase:\n  host: db\n  port: 6543\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DATABASE_HOST", "from-env")
	t.Setenv("BOOKING_TICK_INTERVAL", "250ms")

	var cfg testConfig
	if err := LoadAndParseYaml(path, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Mode != "standalone" {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.Database.Host != "from-env" {
		t.Fatalf("env must win over file, got %q", cfg.Database.Host)
	}
	if cfg.Database.Port != 6543 {
		t.Fatalf("file must win over default, got %d", cfg.Database.Port)
	}
	if cfg.Booking.TickInterval != 250*time.Millisecond {
		t.Fatalf("tick interval = %v", cfg.Booking.TickInterval)
	}
}

func TestLoadAndParseYaml_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := LoadAndParseYaml(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
}

func TestLoadAndParseYaml_NotPointer(t *testing.T) {
	if err := LoadAndParseYaml("", testConfig{}); err != ErrNotPointer {
		t.Fatalf("expected ErrNotPointer, got %v", err)
	}
}
