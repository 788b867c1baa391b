// Package config handles the configuration directory, backend selection and debug logging.
package config

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// MySQLDSNEnv names the environment variable holding the MySQL DSN.
	MySQLDSNEnv = "TASKLIST_MYSQL_DSN"
)

// Backend names a repository implementation.
const (
	BackendMemory = "memory"
	BackendGoogle = "google"
	BackendMySQL  = "mysql"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Backend selects the repository implementation.
	Backend string

	// MySQLDSN is the data source name for the mysql backend.
	MySQLDSN string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	logger *log.Logger
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		Backend:  BackendMemory,
		MySQLDSN: os.Getenv(MySQLDSNEnv),
	}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SetLogOutput directs debug logs to w. Logs are only written when Debug is set.
func (c *Config) SetLogOutput(w io.Writer) {
	c.logger = log.New(w, "debug: ", 0)
}

// Logger returns the debug logger.
// It discards everything unless Debug is set and an output was configured.
func (c *Config) Logger() *log.Logger {
	if c.Debug && c.logger != nil {
		return c.logger
	}
	return log.New(io.Discard, "", 0)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// ErrUnknownBackend is returned by Validate for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown backend")

// Validate checks that Backend names a supported repository.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendGoogle, BackendMySQL:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownBackend, c.Backend)
}
