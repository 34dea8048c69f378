// Package imap retrieves folders and messages from an IMAP server.
package imap

import (
	"fmt"
	"net/url"
)

// Config holds connection settings for an IMAP server.
type Config struct {
	Host       string
	Port       int
	TLS        bool // Implicit TLS (IMAPS, port 993)
	STARTTLS   bool // STARTTLS upgrade (port 143)
	Username   string
	FetchLimit int // Newest messages fetched per folder, 0 for all
}

func (c *Config) port() int {
	if c.Port != 0 {
		return c.Port
	}
	if c.TLS {
		return 993
	}
	return 143
}

// Addr returns the "host:port" string.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.port())
}

// Identifier returns a canonical string like "imaps://user@host:port".
// It names the account's password in the keyring.
func (c *Config) Identifier() string {
	scheme := "imap"
	if c.TLS {
		scheme = "imaps"
	}
	return fmt.Sprintf("%s://%s@%s:%d", scheme, url.PathEscape(c.Username), c.Host, c.port())
}
