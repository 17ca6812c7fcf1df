package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Mode         string        `yaml:"mode" env:"MINES_MODE" env-default:"production" env-description:"production or development"`
	Difficulty   string        `yaml:"difficulty" env:"MINES_DIFFICULTY" env-default:"easy" env-description:"easy, medium or hard"`
	Seed         uint64        `yaml:"seed" env:"MINES_SEED" env-default:"0" env-description:"mine layout seed, 0 for random"`
	TickInterval time.Duration `yaml:"tick-interval" env:"MINES_TICK_INTERVAL" env-default:"1s" env-description:"timer refresh interval"`
	Log          Log           `yaml:"log"`
}

type Log struct {
	Level      string `yaml:"level" env:"MINES_LOG_LEVEL" env-default:"info"`
	File       string `yaml:"file" env:"MINES_LOG_FILE" env-description:"rotate logs into this file"`
	MaxSize    int    `yaml:"max-size" env:"MINES_LOG_MAX_SIZE" env-default:"10" env-description:"megabytes"`
	MaxBackups int    `yaml:"max-backups" env:"MINES_LOG_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"max-age" env:"MINES_LOG_MAX_AGE" env-default:"28" env-description:"days"`
}

// Load reads the config file at path, or only the environment when path is
// empty. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to read env: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	if cfg.Mode != "production" && cfg.Mode != "development" {
		return nil, fmt.Errorf("unknown mode %q, want production or development", cfg.Mode)
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}

func (c Config) Development() bool {
	return c.Mode == "development"
}

func (c Config) LogLevel() logrus.Level {
	if c.Development() {
		return logrus.DebugLevel
	}
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":            c.Mode,
		"difficulty":      c.Difficulty,
		"seed":            c.Seed,
		"tick_interval":   c.TickInterval.String(),
		"log_level":       c.Log.Level,
		"log_file":        c.Log.File,
		"log_max_size":    c.Log.MaxSize,
		"log_max_backups": c.Log.MaxBackups,
		"log_max_age":     c.Log.MaxAge,
	}
}
