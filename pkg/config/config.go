package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Sweep struct {
	Schedule       string        `envconfig:"SCHEDULE" default:"0 3 * * *"`
	PerFundTimeout time.Duration `envconfig:"PER_FUND_TIMEOUT" default:"30s"`
	BatchLimit     int           `envconfig:"BATCH_LIMIT" default:"500"`
}

type AMQP struct {
	Url        string `envconfig:"URL"`
	Exchange   string `envconfig:"EXCHANGE" default:"notifications"`
	RoutingKey string `envconfig:"ROUTING_KEY" default:"intent"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[cagnotte]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env    string  `envconfig:"APP_ENV" default:"development"`
	Server *Server `envconfig:"SERVER"`
	Log    *Log    `envconfig:"LOG"`
	DB     *DB     `envconfig:"DATABASE"`
	Sweep  *Sweep  `envconfig:"SWEEP"`
	AMQP   *AMQP   `envconfig:"AMQP"`
}
