package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string   `yaml:"env" env:"ENV" env-default:"local"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Server   Server   `yaml:"server" env-required:"true"`
	Auth     Auth     `yaml:"auth"`
	Payment  Payment  `yaml:"payment"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-required:"true"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-required:"true"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

type Server struct {
	Host    string        `yaml:"host" env-default:"localhost"`
	Port    string        `yaml:"port" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type Auth struct {
	JWTSecret string        `env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string        `yaml:"issuer" env-default:"service-dispatch"`
	TokenTTL  time.Duration `yaml:"token_ttl" env-default:"24h"`
}

type Payment struct {
	// SimulatedDelay is how long a card submission "processes" before the
	// payment row is marked paid.
	SimulatedDelay time.Duration `yaml:"simulated_delay" env-default:"2s"`
}

// Load reads an optional .env file and then the YAML file named by CONFIG_PATH.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("cannot read .env file: %w", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// ConnString builds the lib/pq URL for the configured database.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.Username, p.Password, p.Host, p.Port, p.Database,
	)
}
