package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/KirkDiggler/puppybowl/internal/clients/puppybowl"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load
const (
	EnvConfigFile    = "PUPPYBOWL_CONFIG"
	EnvAPIURL        = "PUPPYBOWL_API_URL"
	EnvHTTPTimeout   = "PUPPYBOWL_HTTP_TIMEOUT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvLogFormat     = "LOG_FORMAT"
	EnvDiscordToken  = "DISCORD_TOKEN"
	EnvApplicationID = "APPLICATION_ID"
	EnvGuildID       = "GUILD_ID"
	EnvFakeAPIAddr   = "FAKEAPI_ADDR"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
)

// Config is the configuration shared by the binaries
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Discord DiscordConfig `yaml:"discord"`
	FakeAPI FakeAPIConfig `yaml:"fake_api"`
}

// APIConfig points the client at the players collection
type APIConfig struct {
	BaseURL string `yaml:"base_url"`

	// Timeout is zero by default, leaving requests to the transport's defaults
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls the logger built by the logging package
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DiscordConfig holds the bot credentials
type DiscordConfig struct {
	Token         string `yaml:"token"`
	ApplicationID string `yaml:"application_id"`
	GuildID       string `yaml:"guild_id"`
}

// FakeAPIConfig configures the local stand-in for the players API
type FakeAPIConfig struct {
	Addr string `yaml:"addr"`

	// Seed preloads a few players
	Seed bool `yaml:"seed"`

	// RedisAddr keeps players in Redis instead of memory when set
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: puppybowl.DefaultBaseURL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		FakeAPI: FakeAPIConfig{
			Addr: ":8080",
			Seed: true,
		},
	}
}

// Load reads an optional .env file, then the YAML file named by PUPPYBOWL_CONFIG,
// then applies environment overrides.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if value, ok := lookup(key); ok && value != "" {
			*dst = value
		}
	}

	set(EnvAPIURL, &c.API.BaseURL)
	set(EnvLogLevel, &c.Log.Level)
	set(EnvLogFormat, &c.Log.Format)
	set(EnvDiscordToken, &c.Discord.Token)
	set(EnvApplicationID, &c.Discord.ApplicationID)
	set(EnvGuildID, &c.Discord.GuildID)
	set(EnvFakeAPIAddr, &c.FakeAPI.Addr)
	set(EnvRedisAddr, &c.FakeAPI.RedisAddr)
	set(EnvRedisPassword, &c.FakeAPI.RedisPassword)

	if value, ok := lookup(EnvHTTPTimeout); ok && value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvHTTPTimeout, err)
		}
		c.API.Timeout = timeout
	}

	return nil
}
