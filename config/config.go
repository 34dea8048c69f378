// Package config handles loading vimail configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bassamadnan/vimail/gmail"
	"github.com/bassamadnan/vimail/imap"
	"github.com/bassamadnan/vimail/mail"
)

// Backend names.
const (
	BackendIMAP  = "imap"
	BackendGmail = "gmail"
)

// Config represents the vimail configuration.
type Config struct {
	Backend string        `toml:"backend"`
	IMAP    IMAPConfig    `toml:"imap"`
	Gmail   GmailConfig   `toml:"gmail"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
	Filters FiltersConfig `toml:"filters"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// IMAPConfig holds IMAP server settings. The password is never stored here.
type IMAPConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	TLS        bool   `toml:"tls"`
	STARTTLS   bool   `toml:"starttls"`
	Username   string `toml:"username"`
	FetchLimit int    `toml:"fetch_limit"`
}

// GmailConfig holds Gmail API settings.
type GmailConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	TokenFile       string `toml:"token_file"`
	FetchLimit      int    `toml:"fetch_limit"`
}

// UIConfig holds dashboard behaviour.
type UIConfig struct {
	InitialFolder   string `toml:"initial_folder"`
	PickerQuitExits bool   `toml:"picker_quit_exits"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// FiltersConfig defines the message filtering rules.
type FiltersConfig struct {
	IgnoreSenders         []string `toml:"ignore_senders"`
	IgnoreSubjectKeywords []string `toml:"ignore_subject_keywords"`
}

// DefaultHome returns the default vimail home directory.
// Respects VIMAIL_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("VIMAIL_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vimail"
	}
	return filepath.Join(home, ".vimail")
}

// Load reads the configuration from the specified file.
// If path is empty, uses the default location (~/.vimail/config.toml),
// which may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		Backend: BackendIMAP,
		IMAP: IMAPConfig{
			TLS: true,
		},
		Gmail: GmailConfig{
			CredentialsFile: filepath.Join(homeDir, "credentials.json"),
			TokenFile:       filepath.Join(homeDir, "token.json"),
			FetchLimit:      20,
		},
		UI: UIConfig{
			InitialFolder:   "INBOX",
			PickerQuitExits: true,
		},
		Log: LogConfig{
			File:  filepath.Join(homeDir, "vimail.log"),
			Level: "info",
		},
	}

	// The default config file is optional - use defaults if not present
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Expand ~ in paths
	cfg.Gmail.CredentialsFile = expandPath(cfg.Gmail.CredentialsFile)
	cfg.Gmail.TokenFile = expandPath(cfg.Gmail.TokenFile)
	cfg.Log.File = expandPath(cfg.Log.File)

	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendIMAP:
		if c.IMAP.Host == "" {
			errs = append(errs, errors.New("imap.host is required"))
		}
		if c.IMAP.Username == "" {
			errs = append(errs, errors.New("imap.username is required"))
		}
		if c.IMAP.TLS && c.IMAP.STARTTLS {
			errs = append(errs, errors.New("imap.tls and imap.starttls are mutually exclusive"))
		}
		if c.IMAP.FetchLimit < 0 {
			errs = append(errs, fmt.Errorf("imap.fetch_limit = %d, must not be negative", c.IMAP.FetchLimit))
		}
	case BackendGmail:
		if c.Gmail.CredentialsFile == "" {
			errs = append(errs, errors.New("gmail.credentials_file is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendIMAP, BackendGmail))
	}
	if c.UI.InitialFolder == "" {
		errs = append(errs, errors.New("ui.initial_folder is required"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// IMAPSettings converts the [imap] section for the IMAP client.
func (c *Config) IMAPSettings() *imap.Config {
	return &imap.Config{
		Host:       c.IMAP.Host,
		Port:       c.IMAP.Port,
		TLS:        c.IMAP.TLS,
		STARTTLS:   c.IMAP.STARTTLS,
		Username:   c.IMAP.Username,
		FetchLimit: c.IMAP.FetchLimit,
	}
}

// GmailSettings converts the [gmail] section for the Gmail client.
func (c *Config) GmailSettings() *gmail.Config {
	return &gmail.Config{
		CredentialsFile: c.Gmail.CredentialsFile,
		TokenFile:       c.Gmail.TokenFile,
		FetchLimit:      c.Gmail.FetchLimit,
	}
}

// Rules returns the [filters] section as message filter rules.
func (c *Config) Rules() mail.Rules {
	return mail.Rules{
		IgnoreSenders:           c.Filters.IgnoreSenders,
		IgnoreKeywordsInSubject: c.Filters.IgnoreSubjectKeywords,
	}
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
