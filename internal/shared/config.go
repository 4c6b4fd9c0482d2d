package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/oauth2"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Sync        SyncConfig        `toml:"sync"`
	Recommend   RecommendConfig   `toml:"recommend"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spinlist SpinlistConfig `toml:"spinlist"`
	Wavebeat WavebeatConfig `toml:"wavebeat"`
}

// SpinlistConfig contains Spinlist API credentials.
type SpinlistConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	UserID       string `toml:"user_id"`
	AuthURL      string `toml:"auth_url"`
	TokenURL     string `toml:"token_url"`
}

// OAuthConfig builds the OAuth2 client config for the authorization code
// flow with the scopes syncing needs.
func (c SpinlistConfig) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthURL,
			TokenURL: c.TokenURL,
		},
		Scopes: []string{
			"playlist-modify-public",
			"playlist-modify-private",
			"user-read-currently-playing",
		},
	}
}

// WavebeatConfig contains Wavebeat catalog credentials.
type WavebeatConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SyncConfig tunes the sync orchestrator.
type SyncConfig struct {
	AdapterTimeoutSeconds int    `toml:"adapter_timeout_seconds"`
	SearchRatePerSecond   int    `toml:"search_rate_per_second"`
	LegacyService         string `toml:"legacy_service"`
}

// AdapterTimeout returns the per-adapter call deadline.
func (c SyncConfig) AdapterTimeout() time.Duration {
	if c.AdapterTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.AdapterTimeoutSeconds) * time.Second
}

// RecommendConfig tunes the recommendation pipeline.
type RecommendConfig struct {
	MaxResults  int `toml:"max_results"`
	SearchLimit int `toml:"search_limit"`
	MaxQueries  int `toml:"max_queries"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", ErrInvalidArgument, path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
