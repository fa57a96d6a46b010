// Package config loads flip settings from a YAML file and FLIP_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/etnz/flip"
	"github.com/spf13/viper"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = "flip.yaml"

type Config struct {
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Fees    FeesConfig    `mapstructure:"fees"`
	Log     LogConfig     `mapstructure:"log"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Redis   RedisConfig   `mapstructure:"redis"`
	DB      DBConfig      `mapstructure:"db"`
	Assist  AssistConfig  `mapstructure:"assist"`
}

type LedgerConfig struct {
	File     string `mapstructure:"file"`
	Currency string `mapstructure:"currency"`
}

// FeesConfig holds marketplace fee rates, as "0.1" or "10%".
type FeesConfig struct {
	Rate    string `mapstructure:"rate"`
	Pending string `mapstructure:"pending"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type PricingConfig struct {
	Cache string        `mapstructure:"cache"` // "memory" or "redis"
	TTL   time.Duration `mapstructure:"ttl"`
	Dir   string        `mapstructure:"dir"` // saved marketplace searches
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AssistConfig struct {
	Model string `mapstructure:"model"`
}

// Load reads the settings file at path, then FLIP_ environment variables.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("ledger.file", "flip.jsonl")
	v.SetDefault("ledger.currency", flip.DefaultCurrency)
	v.SetDefault("fees.rate", "10%")
	v.SetDefault("fees.pending", "15%")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disable_caller", true)
	v.SetDefault("log.disable_stacktrace", true)
	v.SetDefault("pricing.cache", "memory")
	v.SetDefault("pricing.ttl", "24h")
	v.SetDefault("pricing.dir", "comps")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "flip:")
	v.SetDefault("db.path", "flip.db")
	v.SetDefault("assist.model", "gemini-2.5-pro")

	if err := v.ReadInConfig(); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("could not read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config %q: %w", path, err)
	}
	return cfg, nil
}

// FeeRate returns the marketplace fee rate.
func (c Config) FeeRate() (flip.Rate, error) { return rate("fees.rate", c.Fees.Rate) }

// PendingFeeRate returns the fee rate used to estimate pending partner shares.
func (c Config) PendingFeeRate() (flip.Rate, error) { return rate("fees.pending", c.Fees.Pending) }

func rate(key, s string) (flip.Rate, error) {
	r, err := flip.ParseRate(s)
	if err != nil {
		return flip.Rate{}, fmt.Errorf("%s: %w", key, err)
	}
	if err := r.Validate(); err != nil {
		return flip.Rate{}, fmt.Errorf("%s: %w", key, err)
	}
	return r, nil
}
