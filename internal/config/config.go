package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/codecheck/internal/errors"
)

const (
	// DefaultServerURL is the backend the browser client was served from.
	DefaultServerURL = "http://localhost:5000"

	// DefaultCookieName is the Flask session cookie name.
	DefaultCookieName = "session"

	// DefaultRequestTimeout bounds every API call. There are no retries.
	DefaultRequestTimeout = 30 * time.Second

	// EnvServer overrides ServerURL.
	EnvServer = "CODECHECK_SERVER"

	// EnvSession overrides SessionCookie.
	EnvSession = "CODECHECK_SESSION"
)

// Config holds the application configuration
type Config struct {
	ServerURL             string `json:"server_url"`
	SessionCookie         string `json:"session_cookie,omitempty"`          // Value of the backend session cookie
	CookieName            string `json:"cookie_name,omitempty"`             // Defaults to "session"
	DownloadDir           string `json:"download_dir,omitempty"`            // Where report.md is written
	Theme                 string `json:"theme,omitempty"`                   // UI theme name (e.g., "tokyo-night", "nord")
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"`   // Desktop notification when a report is saved
	RequestTimeoutSeconds int    `json:"request_timeout_seconds,omitempty"` // 0 uses DefaultRequestTimeout

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".codecheck"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default location, or returns defaults if
// the file doesn't exist yet. Environment overrides are applied afterwards.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.codecheck/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path and applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config at path without environment overrides, so
// that saving it back never persists a transient override.
func LoadFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ensureInitialized()
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.ConfigLoadFailed(path, err)
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigLoadFailed(path, err)
		}
	}
	return cfg, nil
}

// applyEnv overlays environment variables. Like ensureInitialized it is only
// called during single-threaded initialization.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServer); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvSession); v != "" {
		c.SessionCookie = v
	}
}

// ensureInitialized fills defaults for empty fields. Not thread-safe; only
// called from LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	c.ServerURL = strings.TrimRight(c.ServerURL, "/")
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.DownloadDir == "" {
		c.DownloadDir = defaultDownloadDir()
	}
}

// defaultDownloadDir mirrors where a browser would put the report.
func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads
	}
	return "."
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("server_url %q: %v", c.ServerURL, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid(fmt.Sprintf("server_url %q must use http or https", c.ServerURL))
	}
	if u.Host == "" {
		return errors.ConfigInvalid(fmt.Sprintf("server_url %q has no host", c.ServerURL))
	}
	if c.RequestTimeoutSeconds < 0 {
		return errors.ConfigInvalid("request_timeout_seconds must not be negative")
	}
	if strings.ContainsAny(c.CookieName, " ;=") {
		return errors.ConfigInvalid(fmt.Sprintf("cookie_name %q is not a valid cookie name", c.CookieName))
	}
	return nil
}

// Save writes the config to disk. A Config that was not loaded from a
// file is saved to DefaultPath and remembers it.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filePath == "" {
		path, err := DefaultPath()
		if err != nil {
			return errors.ConfigSaveFailed("~/.codecheck/config.json", err)
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	// The file holds a session credential.
	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is loaded from and saved to
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetServerURL returns the backend base URL without a trailing slash
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ServerURL
}

// SetServerURL sets the backend base URL
func (c *Config) SetServerURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = strings.TrimRight(u, "/")
}

// LoginURL returns the page a user visits to start the OAuth flow
func (c *Config) LoginURL() string {
	return c.GetServerURL() + "/login/github"
}

// GetSessionCookie returns the cookie name and value used to authenticate
func (c *Config) GetSessionCookie() (name, value string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.CookieName, c.SessionCookie
}

// SetSessionCookie sets the session cookie value
func (c *Config) SetSessionCookie(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SessionCookie = strings.TrimSpace(value)
}

// GetDownloadDir returns the directory where report.md is written
func (c *Config) GetDownloadDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.DownloadDir
}

// SetDownloadDir sets the report directory
func (c *Config) SetDownloadDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DownloadDir = dir
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// RequestTimeout returns the per-request deadline
func (c *Config) RequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
