package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

// Environment holds process settings read from environment variables
type Environment struct {
	ConfigDir      string `env:"CONFIG_DIR" envDefault:"configs"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	NgrokEnabled   bool   `env:"NGROK_ENABLED"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokAuthAlt   string `env:"NGROK_AUTH_TOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`
}

// LoadEnvironment parses Environment from the process environment
func LoadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// NgrokToken returns the ngrok auth token, accepting both variable spellings
func (e Environment) NgrokToken() string {
	if e.NgrokAuthToken != "" {
		return e.NgrokAuthToken
	}
	return e.NgrokAuthAlt
}

// Level parses LogLevel, defaulting to info
func (e Environment) Level() log.Level {
	level, err := log.ParseLevel(e.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
