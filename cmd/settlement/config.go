package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config is filled from flags first; environment variables override them.
type Config struct {
	Endpoint           string        `env:"RUN_ADDRESS"`
	DSN                string        `env:"DATABASE_URI"`
	LogLevel           string        `env:"LOG_LEVEL"`
	Env                string        `env:"ENV"`
	PlatformFeePercent string        `env:"PLATFORM_FEE_PERCENT"`
	GatewayURL         string        `env:"GATEWAY_URL"`
	GatewaySecretKey   string        `env:"GATEWAY_SECRET_KEY"`
	GatewayCurrency    string        `env:"GATEWAY_CURRENCY"`
	GatewayTimeout     time.Duration `env:"GATEWAY_TIMEOUT"`
	PayoutAMQPURL      string        `env:"PAYOUT_AMQP_URL"`
	PayoutQueue        string        `env:"PAYOUT_QUEUE"`
	PayoutWorkers      int           `env:"PAYOUT_WORKERS"`
}

// loadDotEnv reads .env when it exists. Variables already set in the
// environment are not overwritten.
func loadDotEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: .env file wasn't loaded: %s\n", err)
	}
}

func NewConfig(args []string) (Config, error) {
	config := Config{
		LogLevel:        "error",
		Env:             "production",
		GatewayCurrency: "usd",
		GatewayTimeout:  10 * time.Second,
		PayoutQueue:     "seller_payouts",
		PayoutWorkers:   2,
	}

	flags := flag.NewFlagSet("settlement", flag.ContinueOnError)
	flags.StringVar(&config.Endpoint, "a", "localhost:8090", "address and port to run server")
	flags.StringVar(&config.DSN, "d", "", "data source name for database connection")
	flags.StringVar(&config.PlatformFeePercent, "f", "15", "platform fee percent")
	flags.StringVar(&config.GatewayURL, "g", "", "payment gateway base url, sandbox is used when empty")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	var result error

	if c.Endpoint == "" {
		result = multierror.Append(result, errors.New("RUN_ADDRESS must not be empty"))
	}

	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("LOG_LEVEL is invalid: %w", err))
	}

	if c.GatewayURL != "" && c.GatewaySecretKey == "" {
		result = multierror.Append(result, errors.New("GATEWAY_SECRET_KEY is required when GATEWAY_URL is set"))
	}

	if c.GatewayTimeout <= 0 {
		result = multierror.Append(result, errors.New("GATEWAY_TIMEOUT must be positive"))
	}

	if c.PayoutWorkers < 1 {
		result = multierror.Append(result, errors.New("PAYOUT_WORKERS must be at least 1"))
	}

	if c.PayoutAMQPURL != "" && c.PayoutQueue == "" {
		result = multierror.Append(result, errors.New("PAYOUT_QUEUE is required when PAYOUT_AMQP_URL is set"))
	}

	return result
}
