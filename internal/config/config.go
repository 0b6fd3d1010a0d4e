package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreConfig selects and parameterizes the document store backend.
type StoreConfig struct {
	// Backend is "sqlite" (default) or "firestore".
	Backend string `yaml:"backend"`

	// SQLitePath is the database file used by the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// FirestoreProject is the GCP project id for the firestore backend.
	FirestoreProject string `yaml:"firestore_project"`

	// FirestoreToken is a static OAuth bearer token for the Firestore REST
	// API. Suited to self-hosted setups where tokens are refreshed outside
	// the process.
	FirestoreToken string `yaml:"firestore_token"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// Timezone is the IANA timezone all cycle dates are interpreted in.
	Timezone string `yaml:"timezone"`

	// SecretKey signs auth tokens. Required in production.
	SecretKey string `yaml:"secret_key"`

	// ReminderCron is a cron-style schedule for the daily reminder scan.
	ReminderCron string `yaml:"reminder_cron"`

	Store StoreConfig `yaml:"store"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		Timezone:     "UTC",
		ReminderCron: "0 8 * * *",
		Store: StoreConfig{
			Backend:    "sqlite",
			SQLitePath: "data/cyra.db",
		},
	}
}

// Normalize fills in missing values so partially-filled configs still
// behave correctly, then applies environment overrides.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.ReminderCron == "" {
		c.ReminderCron = "0 8 * * *"
	}
	switch c.Store.Backend {
	case "sqlite", "firestore":
	default:
		c.Store.Backend = "sqlite"
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = "data/cyra.db"
	}

	overrideFromEnv(&c.Listen, "CYRA_LISTEN")
	overrideFromEnv(&c.Timezone, "CYRA_TIMEZONE")
	overrideFromEnv(&c.SecretKey, "CYRA_SECRET_KEY")
	overrideFromEnv(&c.ReminderCron, "CYRA_REMINDER_CRON")
	overrideFromEnv(&c.Store.Backend, "CYRA_STORE_BACKEND")
	overrideFromEnv(&c.Store.SQLitePath, "CYRA_SQLITE_PATH")
	overrideFromEnv(&c.Store.FirestoreProject, "CYRA_FIRESTORE_PROJECT")
	overrideFromEnv(&c.Store.FirestoreToken, "CYRA_FIRESTORE_TOKEN")
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("secret key is not set")
	}
	if c.Store.Backend == "firestore" && c.Store.FirestoreProject == "" {
		return errors.New("firestore backend requires a project id")
	}
	return nil
}

// Load reads configuration from the given YAML path. A missing file is
// not an error: defaults plus environment overrides are returned, so a
// container can run on env vars alone.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.Normalize()
	return cfg, nil
}

func overrideFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
