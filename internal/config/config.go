// Package config loads runtime settings for the folio commands from the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHost          = "0.0.0.0"
	defaultPort          = 8080
	defaultSiteDir       = "."
	defaultDataDir       = ".data"
	defaultWatchDebounce = 500 * time.Millisecond

	defaultSSHHost        = "0.0.0.0"
	defaultSSHPort        = 2222
	defaultSSHIdleTimeout = 120 * time.Second

	hostKeyFile  = "host_ed25519"
	databaseFile = "folio.db"
	contentFile  = "content.yaml"
)

// Config captures startup settings for the folio commands.
type Config struct {
	Host          string
	Port          int
	SiteDir       string
	DataDir       string
	LiveReload    bool
	WatchDebounce time.Duration

	SSHHost        string
	SSHPort        int
	SSHHostKeyPath string
	SSHIdleTimeout time.Duration
}

// LoadFromEnv loads runtime configuration from environment variables.
func LoadFromEnv() (Config, error) {
	host, err := readRequiredOrDefault("FOLIO_HOST", defaultHost)
	if err != nil {
		return Config{}, err
	}

	port, err := readInt("FOLIO_PORT", defaultPort, 1, 65535)
	if err != nil {
		return Config{}, err
	}

	siteDir, err := readRequiredOrDefault("FOLIO_SITE_DIR", defaultSiteDir)
	if err != nil {
		return Config{}, err
	}

	dataDir, err := readRequiredOrDefault("FOLIO_DATA_DIR", defaultDataDir)
	if err != nil {
		return Config{}, err
	}

	liveReload, err := readBool("FOLIO_LIVE_RELOAD", true)
	if err != nil {
		return Config{}, err
	}

	watchDebounce, err := readDuration("FOLIO_WATCH_DEBOUNCE", defaultWatchDebounce)
	if err != nil {
		return Config{}, err
	}

	sshHost, err := readRequiredOrDefault("FOLIO_SSH_HOST", defaultSSHHost)
	if err != nil {
		return Config{}, err
	}

	sshPort, err := readInt("FOLIO_SSH_PORT", defaultSSHPort, 1, 65535)
	if err != nil {
		return Config{}, err
	}

	hostKeyPath, err := readRequiredOrDefault("FOLIO_SSH_HOST_KEY_PATH", filepath.Join(dataDir, hostKeyFile))
	if err != nil {
		return Config{}, err
	}
	cleanHostKeyPath := filepath.Clean(hostKeyPath)
	if cleanHostKeyPath == "." {
		return Config{}, fmt.Errorf("FOLIO_SSH_HOST_KEY_PATH must not resolve to current directory")
	}

	sshIdleTimeout, err := readDuration("FOLIO_SSH_IDLE_TIMEOUT", defaultSSHIdleTimeout)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Host:           host,
		Port:           port,
		SiteDir:        filepath.Clean(siteDir),
		DataDir:        filepath.Clean(dataDir),
		LiveReload:     liveReload,
		WatchDebounce:  watchDebounce,
		SSHHost:        sshHost,
		SSHPort:        sshPort,
		SSHHostKeyPath: cleanHostKeyPath,
		SSHIdleTimeout: sshIdleTimeout,
	}, nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// SSHAddr is the terminal preview listen address.
func (c Config) SSHAddr() string { return fmt.Sprintf("%s:%d", c.SSHHost, c.SSHPort) }

// DatabasePath is the sqlite file shared by preferences and visit stats.
func (c Config) DatabasePath() string { return filepath.Join(c.DataDir, databaseFile) }

// ContentPath is the optional YAML content file.
func (c Config) ContentPath() string { return filepath.Join(c.SiteDir, contentFile) }

func (c Config) TemplatesGlob() string { return filepath.Join(c.SiteDir, "templates", "*") }
func (c Config) StaticDir() string     { return filepath.Join(c.SiteDir, "static") }
func (c Config) ImagesDir() string     { return filepath.Join(c.SiteDir, "images") }

func readRequiredOrDefault(key, fallback string) (string, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}

	return raw, nil
}

func readInt(key string, fallback, min, max int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}

	return parsed, nil
}

func readDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func readBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}

	return parsed, nil
}
