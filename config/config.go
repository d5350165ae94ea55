package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type GRPC struct {
	Addr string `yaml:"addr"`
}

type HTTP struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // conference-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Postgres struct {
	// пустой DSN — каталог событий берётся из conference.events (dev-режим)
	DSN string `yaml:"dsn"`
}

type Auth struct {
	JWTSecret string `yaml:"jwtSecret"`
	Issuer    string `yaml:"issuer"`
	TokenTTL  string `yaml:"tokenTTL"`
}

type SeedEvent struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Organizer string `yaml:"organizer"`
}

type Conference struct {
	JoinDelay      string      `yaml:"joinDelay"`      // задержка симулированного подключения пиров
	ReactionTTL    string      `yaml:"reactionTTL"`    // время жизни реакции в активном наборе
	SimulatedPeers []string    `yaml:"simulatedPeers"` // имена симулированных участников
	ShareBaseURL   string      `yaml:"shareBaseURL"`
	Events         []SeedEvent `yaml:"events"` // dev-каталог при пустом postgres.dsn
}

type Config struct {
	HTTP       HTTP       `yaml:"http"`
	GRPC       GRPC       `yaml:"grpc"`
	Logging    Logging    `yaml:"logging"`
	Postgres   Postgres   `yaml:"postgres"`
	Auth       Auth       `yaml:"auth"`
	Conference Conference `yaml:"conference"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.GRPC.Addr == "" {
		return errors.New("grpc.addr is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required")
	}
	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "conference-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "conference-service"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}
	if len(c.Conference.SimulatedPeers) == 0 {
		c.Conference.SimulatedPeers = []string{"Sarah Johnson", "Mike Chen"}
	}
	if c.Conference.ShareBaseURL == "" {
		c.Conference.ShareBaseURL = "http://localhost:5173"
	}
	return nil
}

func (c *Config) JoinDelay() time.Duration {
	return parseDurationOr(2*time.Second, c.Conference.JoinDelay)
}

func (c *Config) ReactionTTL() time.Duration {
	return parseDurationOr(3*time.Second, c.Conference.ReactionTTL)
}

func (c *Config) TokenTTL() time.Duration {
	return parseDurationOr(24*time.Hour, c.Auth.TokenTTL)
}

// helper для парсинга timeout-ов
func parseDurationOr(def time.Duration, s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}
