package app

import (
	"os"
	"time"

	"github.com/micbed86/FancyNote-sub000/internal/dao"
	"github.com/micbed86/FancyNote-sub000/internal/routers"
	"github.com/micbed86/FancyNote-sub000/internal/service"
	pkgapp "github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/storage"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ServerConfig is the HTTP listener configuration.
type ServerConfig struct {
	routers.Config `yaml:",inline"`
	HTTPPort       string        `yaml:"http-port" default:"8000"`
	ReadTimeout    time.Duration `yaml:"read-timeout" default:"60s"`
	WriteTimeout   time.Duration `yaml:"write-timeout" default:"60s"`
	PrivateHTTP    string        `yaml:"private-http"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Level      string `yaml:"level" default:"info"`
	File       string `yaml:"file" default:"storage/logs/fancynote.log"`
	Production bool   `yaml:"production" default:"true"`
}

// PoolConfig sizes the background worker pool.
type PoolConfig struct {
	MaxWorkers int `yaml:"max-workers" default:"50"`
	QueueSize  int `yaml:"queue-size" default:"500"`
}

// CronConfig drives the periodic maintenance tasks.
type CronConfig struct {
	Enabled             bool          `yaml:"enabled" default:"true"`
	TempSweep           string        `yaml:"temp-sweep" default:"0 */30 * * * *"`
	NotificationCleanup string        `yaml:"notification-cleanup" default:"0 0 3 * * *"`
	NotificationMaxAge  time.Duration `yaml:"notification-max-age" default:"720h"`
	TempMaxAge          time.Duration `yaml:"temp-max-age" default:"24h"`
}

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig       `yaml:"server"`
	Log      LogConfig          `yaml:"log"`
	Database dao.DatabaseConfig `yaml:"database"`
	Security pkgapp.TokenConfig `yaml:"security"`
	Storage  *storage.Config    `yaml:"storage"`
	Service  service.Config     `yaml:"service"`
	Pool     PoolConfig         `yaml:"pool"`
	Cron     CronConfig         `yaml:"cron"`
}

// LoadConfig reads the yaml file, layers defaults underneath and pulls
// secrets from the environment. A .env file next to the binary is
// honored when present.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "config defaults")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config read %s", path)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "config parse %s", path)
	}

	// secrets are never kept in the yaml file
	if v := os.Getenv("FANCYNOTE_SECRET_KEY"); v != "" {
		cfg.Security.SecretKey = v
	}
	if v := os.Getenv("FANCYNOTE_AI_API_KEY"); v != "" {
		cfg.Service.AI.APIKey = v
	}
	if v := os.Getenv("FANCYNOTE_SCRAPER_API_KEY"); v != "" {
		cfg.Service.Scraper.APIKey = v
	}

	if cfg.Security.SecretKey == "" {
		return nil, errors.New("config: security.secret-key (or FANCYNOTE_SECRET_KEY) is required")
	}
	return cfg, nil
}
