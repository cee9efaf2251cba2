// Package config loads the application configuration from environment
// variables (prefixed with ORCHWATCH_) and validates it.
package config

import (
	"time"

	"github.com/gabapcia/orchwatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix used by Load.
const Prefix = "orchwatch"

// Ledger configures the chains the watcher reads from.
type Ledger struct {
	SourceRPCURL    string `envconfig:"SOURCE_RPC_URL" required:"true" validate:"required,url"`
	SecondaryRPCURL string `envconfig:"SECONDARY_RPC_URL" required:"true" validate:"required,url"`

	BondingManager string `envconfig:"BONDING_MANAGER" default:"0x35Bcf3c30594191d53231E4FF333E8A770453e40" validate:"required,eth_addr"`
	RoundsManager  string `envconfig:"ROUNDS_MANAGER" default:"0xdd6f56DcC28D3F5f27084381fE8Df634985cc39f" validate:"required,eth_addr"`
	TicketBroker   string `envconfig:"TICKET_BROKER" default:"0xa8bB618B1520E284046F3dFc448851A1Ff26e41B" validate:"required,eth_addr"`

	RetryAttempts uint          `envconfig:"RETRY_ATTEMPTS" default:"3" validate:"gte=1"`
	RetryDelay    time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
}

// Storage selects and configures the persistence backend.
type Storage struct {
	Driver string `envconfig:"DRIVER" default:"redis" validate:"oneof=redis pebble"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379" validate:"required_if=Driver redis"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0" validate:"gte=0"`

	PebbleDir string `envconfig:"PEBBLE_DIR" default:"./data" validate:"required_if=Driver pebble"`
}

// Telegram configures outbound notifications.
type Telegram struct {
	APIURL         string        `envconfig:"API_URL" default:"https://api.telegram.org" validate:"required,url"`
	BotToken       string        `envconfig:"BOT_TOKEN" required:"true" validate:"required"`
	OperatorChatID string        `envconfig:"OPERATOR_CHAT_ID" required:"true" validate:"required"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

// Watcher configures the polling loop.
type Watcher struct {
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5m" validate:"gt=0"`
	LagThreshold uint64        `envconfig:"LAG_THRESHOLD" default:"500"`
	RoundLength  uint64        `envconfig:"ROUND_LENGTH" default:"5760" validate:"gt=0"`
	SendPause    time.Duration `envconfig:"SEND_PAUSE" default:"1500ms"`
	ExplorerURL  string        `envconfig:"EXPLORER_URL" default:"https://arbiscan.io" validate:"required,url"`
}

// Config is the root configuration.
type Config struct {
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`

	Ledger   Ledger   `envconfig:"LEDGER"`
	Storage  Storage  `envconfig:"STORAGE"`
	Telegram Telegram `envconfig:"TELEGRAM"`
	Watcher  Watcher  `envconfig:"WATCHER"`
}

// Load reads the configuration from the environment and validates it.
//
// Variables follow the layout ORCHWATCH_<SECTION>_<FIELD>, for example
// ORCHWATCH_LEDGER_SOURCE_RPC_URL or ORCHWATCH_WATCHER_POLL_INTERVAL.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, err
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
