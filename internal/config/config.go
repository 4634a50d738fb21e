package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath = "config.toml"
	DefaultHTTPAddr   = ":8080"
	DefaultAPIBaseURL = "https://api.telegram.org"
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Telegram TelegramConfig `toml:"telegram"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type TelegramConfig struct {
	// BotToken authenticates outbound Bot API calls. When it is empty the
	// server still starts and answers every request with a configuration
	// error, so a misdeployed instance stays observable.
	BotToken string `toml:"bot_token" validate:"required"`
	// SecretToken, when set, must match the X-Telegram-Bot-Api-Secret-Token
	// header of inbound webhook requests.
	SecretToken string `toml:"secret_token"`
	// WorkerURL is the externally visible base URL used to build proxy and
	// webhook URLs. When empty the inbound request's own host is used.
	WorkerURL  string `toml:"worker_url" validate:"omitempty,url"`
	APIBaseURL string `toml:"api_base_url" validate:"omitempty,url"`
}

// Load reads the optional TOML file at path over built-in defaults, then
// applies BOT_TOKEN, SECRET_TOKEN and WORKER_URL environment overrides.
// A missing file is not an error; a missing bot token is reported by
// Validate, not here.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Telegram: TelegramConfig{
			APIBaseURL: DefaultAPIBaseURL,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("SECRET_TOKEN"); v != "" {
		cfg.Telegram.SecretToken = v
	}
	if v := os.Getenv("WORKER_URL"); v != "" {
		cfg.Telegram.WorkerURL = v
	}
	if cfg.Telegram.APIBaseURL == "" {
		cfg.Telegram.APIBaseURL = DefaultAPIBaseURL
	}

	return cfg, nil
}

// Validate reports structural problems such as a missing bot token or a
// malformed worker URL.
func (c Config) Validate() error {
	return validator.New().Struct(c.Telegram)
}
