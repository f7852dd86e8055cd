package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alexjbarnes/eas-sync/eas"
	"github.com/alexjbarnes/eas-sync/internal/state"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	// maxDeviceIDLen is the longest DeviceId Exchange accepts.
	maxDeviceIDLen = 32

	minHeartbeat = time.Minute
	maxHeartbeat = 59 * time.Minute
)

// Config holds all environment-based configuration for eas-sync.
type Config struct {
	// Server endpoint
	Host   string `env:"EAS_HOST"`
	Port   int    `env:"EAS_PORT" envDefault:"0"`
	UseTLS bool   `env:"EAS_USE_TLS" envDefault:"true"`

	// Account credentials (required)
	Username string `env:"EAS_USERNAME"`
	Password string `env:"EAS_PASSWORD"`

	// Device identity. DeviceID defaults to a stable hash of user and host.
	DeviceID   string `env:"EAS_DEVICE_ID"`
	DeviceType string `env:"EAS_DEVICE_TYPE" envDefault:"EasSync"`

	RequestTimeout time.Duration `env:"EAS_REQUEST_TIMEOUT" envDefault:"60s"`
	Heartbeat      time.Duration `env:"EAS_HEARTBEAT" envDefault:"9m"`

	// Sync window. A negative age disables the date filter.
	MaxAgeDays          int  `env:"SYNC_MAX_AGE_DAYS" envDefault:"14"`
	SyncRemoteDeletions bool `env:"SYNC_REMOTE_DELETIONS" envDefault:"true"`
	MaxMessages         int  `env:"SYNC_MAX_MESSAGES" envDefault:"0"`
	MaxDownloadSize     int  `env:"SYNC_MAX_DOWNLOAD_SIZE" envDefault:"0"`

	// Folder server ids to watch with push. Empty means the inbox.
	PushFolders []string `env:"PUSH_FOLDERS" envSeparator:","`

	// Directory watched for .eml files to send. Empty disables the outbox.
	OutboxDir string `env:"OUTBOX_DIR"`

	// State database location. Defaults to ~/.eas-sync/state.db.
	StatePath string `env:"STATE_PATH"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing credentials to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if cfg.DeviceID == "" {
		cfg.DeviceID = DefaultDeviceID(cfg.Username, cfg.Host)
	}

	if cfg.StatePath == "" {
		p, err := state.DefaultPath()
		if err != nil {
			return nil, err
		}

		cfg.StatePath = p
	}

	if cfg.OutboxDir != "" {
		absDir, err := filepath.Abs(cfg.OutboxDir)
		if err != nil {
			return nil, fmt.Errorf("resolving outbox dir to absolute path: %w", err)
		}

		cfg.OutboxDir = absDir
	}

	cfg.PushFolders = compact(cfg.PushFolders)

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("EAS_HOST is required")
	}

	if strings.Contains(c.Host, "/") {
		return fmt.Errorf("EAS_HOST must be a host name, not a URL: %q", c.Host)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("EAS_PORT out of range: %d", c.Port)
	}

	if c.Username == "" {
		return fmt.Errorf("EAS_USERNAME is required")
	}

	if c.Password == "" {
		return fmt.Errorf("EAS_PASSWORD is required")
	}

	if c.DeviceID != "" && !validDeviceID(c.DeviceID) {
		return fmt.Errorf("EAS_DEVICE_ID must be 1-%d letters or digits", maxDeviceIDLen)
	}

	if c.DeviceType == "" {
		return fmt.Errorf("EAS_DEVICE_TYPE must not be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("EAS_REQUEST_TIMEOUT must be positive")
	}

	if c.Heartbeat < minHeartbeat || c.Heartbeat > maxHeartbeat {
		return fmt.Errorf("EAS_HEARTBEAT must be between %s and %s", minHeartbeat, maxHeartbeat)
	}

	if c.MaxMessages < 0 {
		return fmt.Errorf("SYNC_MAX_MESSAGES must not be negative")
	}

	if c.MaxDownloadSize < 0 {
		return fmt.Errorf("SYNC_MAX_DOWNLOAD_SIZE must not be negative")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return nil
}

func validDeviceID(id string) bool {
	if id == "" || len(id) > maxDeviceIDLen {
		return false
	}

	for _, r := range id {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isLetter && (r < '0' || r > '9') {
			return false
		}
	}

	return true
}

// DefaultDeviceID derives a stable 32 character device id from the
// account so the server sees the same device across restarts.
func DefaultDeviceID(username, host string) string {
	name := strings.ToLower(username) + "@" + strings.ToLower(host)
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("eas-sync:"+name))

	return strings.ReplaceAll(id.String(), "-", "")
}

func compact(ids []string) []string {
	var out []string

	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}

	return out
}

// ServerSettings returns the client settings for this account.
func (c *Config) ServerSettings() eas.ServerSettings {
	return eas.ServerSettings{
		Host:       c.Host,
		Port:       c.Port,
		UseTLS:     c.UseTLS,
		Username:   c.Username,
		Password:   c.Password,
		DeviceID:   c.DeviceID,
		DeviceType: c.DeviceType,
		Timeout:    c.RequestTimeout,
	}
}

// SyncConfig returns the folder sync limits.
func (c *Config) SyncConfig() eas.SyncConfig {
	return eas.SyncConfig{
		MaxAgeDays:          c.MaxAgeDays,
		SyncRemoteDeletions: c.SyncRemoteDeletions,
		MaxDownloadSize:     c.MaxDownloadSize,
		MessageLimit:        c.MaxMessages,
	}
}
