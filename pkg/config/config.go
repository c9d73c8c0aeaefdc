package config

import (
	"time"

	"github.com/shopspring/decimal"
)

type DB struct {
	// Url is a postgres DSN or sqlite://<path> (sqlite://:memory: for tests).
	Url             string        `envconfig:"URL" default:"sqlite://digitalbank.db"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
	Issuer string        `envconfig:"ISSUER" default:"digitalbank"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Savings struct {
	MonthlyRate decimal.Decimal `envconfig:"MONTHLY_RATE" default:"0.0089"`
}

type EventBus struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	Stream       string        `envconfig:"STREAM" default:"digitalbank:events"`
	Group        string        `envconfig:"GROUP" default:"digitalbank"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type Kafka struct {
	Brokers     string `envconfig:"BROKERS" default:"localhost:9092"`
	TopicPrefix string `envconfig:"TOPIC_PREFIX" default:"digitalbank.events"`
	GroupID     string `envconfig:"GROUP_ID" default:"digitalbank"`
}

type Metrics struct {
	Enabled   bool   `envconfig:"ENABLED" default:"true"`
	Namespace string `envconfig:"NAMESPACE" default:"digitalbank"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[digitalbank]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Savings   *Savings   `envconfig:"SAVINGS"`
	EventBus  *EventBus  `envconfig:"EVENTBUS"`
	Redis     *Redis     `envconfig:"REDIS"`
	Kafka     *Kafka     `envconfig:"KAFKA"`
	Metrics   *Metrics   `envconfig:"METRICS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
