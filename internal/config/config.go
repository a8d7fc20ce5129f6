// Package config loads service configuration from a YAML file with
// environment variable overrides. Every field has a usable default, so
// the service runs with no config file at all.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StorageConfig selects the persistence backend. PostgresURL wins over
// SQLitePath, which wins over the JSON file.
type StorageConfig struct {
	File        string `yaml:"file"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresURL string `yaml:"postgres_url"`
}

// ScheduleConfig controls the background jobs. Cron expressions use the
// 6-field form with a leading seconds field.
type ScheduleConfig struct {
	AutoProcess    bool   `yaml:"auto_process"`
	TransferCron   string `yaml:"transfer_cron"`
	WithdrawalCron string `yaml:"withdrawal_cron"`
}

// Load reads path, applies environment overrides and fills defaults. A
// missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("POTS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("POTS_DATA_FILE"); v != "" {
		cfg.Storage.File = v
	}
	if v := os.Getenv("POTS_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.PostgresURL = v
	}
	if v := os.Getenv("POTS_AUTO_PROCESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Schedule.AutoProcess = b
		}
	}
	if v := os.Getenv("POTS_TRANSFER_CRON"); v != "" {
		cfg.Schedule.TransferCron = v
	}
	if v := os.Getenv("POTS_WITHDRAWAL_CRON"); v != "" {
		cfg.Schedule.WithdrawalCron = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Storage.File == "" {
		cfg.Storage.File = "data/pots.json"
	}
	if cfg.Schedule.TransferCron == "" {
		// 09:00 on the 1st of every month.
		cfg.Schedule.TransferCron = "0 0 9 1 * *"
	}
	if cfg.Schedule.WithdrawalCron == "" {
		// 07:00 every day.
		cfg.Schedule.WithdrawalCron = "0 0 7 * * *"
	}
}
