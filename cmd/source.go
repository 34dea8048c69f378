package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bassamadnan/vimail/config"
	"github.com/bassamadnan/vimail/credential"
	"github.com/bassamadnan/vimail/gmail"
	"github.com/bassamadnan/vimail/imap"
	"github.com/bassamadnan/vimail/login"
	"github.com/bassamadnan/vimail/mail"
)

// openSource connects the configured backend and applies the filter
// rules. The returned func closes the connection.
func openSource(ctx context.Context) (mail.Source, func(), error) {
	var (
		src     mail.Source
		closeFn = func() {}
	)
	switch cfg.Backend {
	case config.BackendGmail:
		c, err := gmail.NewClient(ctx, cfg.GmailSettings(),
			gmail.WithLogger(logger),
			gmail.WithPrompt(os.Stdin, os.Stdout),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("gmail: %w", err)
		}
		src = c
	default:
		c, err := openIMAP(ctx)
		if err != nil {
			return nil, nil, err
		}
		src = c
		closeFn = func() {
			if err := c.Close(); err != nil {
				logger.Warn("closing IMAP connection", "error", err)
			}
		}
	}
	return mail.Filter(src, cfg.Rules(), logger), closeFn, nil
}

// openIMAP resolves the password and logs in. A prompted password is
// checked against the server before the prompt closes.
func openIMAP(ctx context.Context) (*imap.Client, error) {
	settings := cfg.IMAPSettings()
	key := settings.Identifier()

	var store *credential.Store
	if s, err := credential.Open(filepath.Join(cfg.HomeDir, "credentials")); err != nil {
		logger.Warn("keyring unavailable", "error", err)
	} else {
		store = s
	}

	var client *imap.Client
	connect := func(password string) error {
		c := imap.NewClient(settings, password, imap.WithLogger(logger))
		if err := c.Connect(ctx); err != nil {
			return err
		}
		client = c
		return nil
	}

	password, from, err := credential.Resolve(key, store, func() (string, error) {
		return login.PromptPassword(ctx, os.Stdin, os.Stdout, key, connect)
	})
	if err != nil {
		return nil, err
	}
	if client == nil {
		if err := connect(password); err != nil {
			return nil, err
		}
	}

	if from == credential.FromPrompt && remember && store != nil {
		if err := store.Set(key, password); err != nil {
			logger.Warn("storing password failed", "error", err)
		} else {
			logger.Info("stored password in keyring", "account", key)
		}
	}
	return client, nil
}
