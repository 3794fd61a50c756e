package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Hosted client record store
	RecordStore RecordStoreConfig `yaml:"record_store"`

	// Invoice dispatch endpoints
	Dispatch DispatchConfig `yaml:"dispatch"`

	// Form defaults and routing
	Forms FormsConfig `yaml:"forms"`

	// Local submission history
	History HistoryConfig `yaml:"history"`
}

type RecordStoreConfig struct {
	BaseURL string `yaml:"base_url"` // PostgREST base, no trailing slash
}

type DispatchConfig struct {
	// Endpoints maps a logical client grouping to its hosted renderer URL.
	// The table is closed: keys are fixed at startup, never registered at
	// runtime.
	Endpoints map[string]string `yaml:"endpoints"`

	HourlyEndpoint   string `yaml:"hourly_endpoint"`   // endpoint key for the hourly form
	RetainerEndpoint string `yaml:"retainer_endpoint"` // endpoint key for the retainer form
}

type FormsConfig struct {
	// Routes maps a lowercased, trimmed client name to a form variant
	// ("hourly" or "retainer"). Unlisted names use the hourly form.
	Routes map[string]string `yaml:"routes"`

	DefaultWeekHours   float64 `yaml:"default_week_hours"`  // pre-filled on both hour fields
	HourlyRecipients   string  `yaml:"hourly_recipients"`   // fallback when the client has no email
	RetainerRecipients string  `yaml:"retainer_recipients"` // fallback recipient list, comma-separated

	SuccessBannerSeconds int `yaml:"success_banner_seconds"` // auto-dismiss interval
	RedirectDelaySeconds int `yaml:"redirect_delay_seconds"` // pause before returning to the dashboard
}

type HistoryConfig struct {
	Path string `yaml:"path"` // Path to the encrypted SQLite log
}

// DefaultConfigPath returns ~/.config/invoicer/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "invoicer", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "invoicer", "config.yaml")
}

// DefaultConfig returns the shipped configuration: the hosted store and the
// two renderer endpoints the agency uses today.
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		RecordStore: RecordStoreConfig{
			BaseURL: "https://lmuhkvjjougawkcfznrn.supabase.co",
		},
		Dispatch: DispatchConfig{
			Endpoints: map[string]string{
				"invisible-arts": "https://script.google.com/macros/s/AKfycbyXunWS9R16yK7H0WS1cMUNxvMdoWK403vHnHvut0kCmw7f4LpE5GHt466Ou2xb6-x4/exec",
				"touch-a-heart":  "https://script.google.com/macros/s/AKfycbxSsPa7iyNz1re27zsrXjOGOzieh1XaSBkozWH0igYfxIr-1Vg1QruqPnQqnNJpXPCw/exec",
			},
			HourlyEndpoint:   "invisible-arts",
			RetainerEndpoint: "touch-a-heart",
		},
		Forms: FormsConfig{
			Routes: map[string]string{
				"invisible arts": "hourly",
				"touch a heart":  "retainer",
			},
			DefaultWeekHours:     40,
			HourlyRecipients:     "",
			RetainerRecipients:   "robin@touchahearthawaii.org, touchaheart@ap.ramp.com, support@upstreambookkeeping.com",
			SuccessBannerSeconds: 5,
			RedirectDelaySeconds: 2,
		},
		History: HistoryConfig{
			Path: filepath.Join(homeDir, ".config", "invoicer", "history.db"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories the history database lives in.
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(filepath.Dir(c.History.Path), 0700)
}
