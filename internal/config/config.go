package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port            int           `env:"PORT" envDefault:"8080"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
		RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" envDefault:"0"`
		RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	}

	Mongo struct {
		// Names kept from the frontend deployment's shared env file.
		URI        string `env:"NEXT_PUBLIC_MONGODB_URI"`
		Database   string `env:"MONGODB_DATABASE" envDefault:"test"`
		Collection string `env:"MONGODB_COLLECTION" envDefault:"users"`
	}

	Mail struct {
		User        string `env:"NEXT_PUBLIC_NODE_MAILER_USER"`
		Password    string `env:"NEXT_PUBLIC_NODE_MAILER_PASS"`
		Host        string `env:"SMTP_HOST" envDefault:"smtp.office365.com"`
		Port        int    `env:"SMTP_PORT" envDefault:"587"`
		FromName    string `env:"MAIL_FROM_NAME" envDefault:"Orion team"`
		FromAddress string `env:"MAIL_FROM_ADDRESS" envDefault:"orion@dioneprotocol.com"`
		Subject     string `env:"MAIL_SUBJECT" envDefault:"Your Orion is on the Way!"`
	}

	AMQP struct {
		URL      string `env:"AMQP_URL"`
		Exchange string `env:"AMQP_EXCHANGE" envDefault:"orion.orders"`
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Mail.Host, c.Mail.Port)
}
