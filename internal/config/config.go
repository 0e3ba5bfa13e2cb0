package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	SessionSecret  string `env:"SESSION_SECRET,required,notEmpty"`
	SessionTimeout int    `env:"SESSION_TIMEOUT_S" envDefault:"600"`
	LoanDelayMS    int    `env:"LOAN_DELAY_MS" envDefault:"2500"`
	Port           int    `env:"PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv         string `env:"APP_ENV" envDefault:"production"`

	// TokenMaxAge caps a session token's lifetime. Whether the session is
	// still live is decided by the inactivity timer, not by the token.
	TokenMaxAge time.Duration `env:"TOKEN_MAX_AGE" envDefault:"12h"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.SessionTimeout <= 0 {
		return nil, fmt.Errorf("config.Load: SESSION_TIMEOUT_S must be positive, got %d", cfg.SessionTimeout)
	}
	if cfg.LoanDelayMS < 0 {
		return nil, fmt.Errorf("config.Load: LOAN_DELAY_MS must not be negative, got %d", cfg.LoanDelayMS)
	}
	if cfg.TokenMaxAge <= 0 {
		return nil, fmt.Errorf("config.Load: TOKEN_MAX_AGE must be positive, got %s", cfg.TokenMaxAge)
	}
	return &cfg, nil
}

func (c *Config) LoanDelay() time.Duration {
	return time.Duration(c.LoanDelayMS) * time.Millisecond
}

func (c *Config) TokenExpiry() time.Duration {
	return c.TokenMaxAge
}
