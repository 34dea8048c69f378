package imap

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	imap "github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/bassamadnan/vimail/mail"
)

// Option is a functional option for Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client implements mail.Source for IMAP servers. The connection is opened
// on first use and kept until Close.
type Client struct {
	config   *Config
	password string
	logger   *slog.Logger

	mu   sync.Mutex
	conn *imapclient.Client
}

// NewClient creates a new IMAP client.
func NewClient(cfg *Config, password string, opts ...Option) *Client {
	c := &Client{
		config:   cfg,
		password: password,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// connect establishes and authenticates the IMAP connection. Caller must hold mu.
func (c *Client) connect() error {
	if c.conn != nil {
		return nil
	}

	addr := c.config.Addr()
	c.logger.Debug("connecting to IMAP server", "addr", addr, "tls", c.config.TLS, "starttls", c.config.STARTTLS)

	var (
		conn *imapclient.Client
		err  error
	)
	switch {
	case c.config.TLS:
		conn, err = imapclient.DialTLS(addr, nil)
	case c.config.STARTTLS:
		conn, err = imapclient.DialStartTLS(addr, nil)
	default:
		conn, err = imapclient.DialInsecure(addr, nil)
	}
	if err != nil {
		return fmt.Errorf("dial IMAP %s: %w", addr, err)
	}

	if err := conn.Login(c.config.Username, c.password).Wait(); err != nil {
		_ = conn.Close()
		return fmt.Errorf("IMAP login: %w", err)
	}

	c.conn = conn
	c.logger.Info("connected to server", "addr", addr, "user", c.config.Username)
	return nil
}

// withConn runs fn with the active connection, connecting if necessary.
func (c *Client) withConn(ctx context.Context, fn func(*imapclient.Client) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connect(); err != nil {
		return err
	}
	return fn(c.conn)
}

// Connect opens and authenticates the connection ahead of the first call.
func (c *Client) Connect(ctx context.Context) error {
	return c.withConn(ctx, func(*imapclient.Client) error { return nil })
}

// ListFolders returns every selectable mailbox, nested ones included,
// in the order the server lists them.
func (c *Client) ListFolders(ctx context.Context) ([]string, error) {
	var names []string
	err := c.withConn(ctx, func(conn *imapclient.Client) error {
		items, err := conn.List("", "*", nil).Collect()
		if err != nil {
			return fmt.Errorf("LIST: %w", err)
		}
		for _, item := range items {
			if slices.Contains(item.Attrs, imap.MailboxAttrNoSelect) {
				continue
			}
			names = append(names, item.Mailbox)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Fetch returns the messages of folder, newest first. With a fetch limit
// only the newest FetchLimit messages are retrieved.
func (c *Client) Fetch(ctx context.Context, folder string) ([]mail.Message, error) {
	var msgs []mail.Message
	err := c.withConn(ctx, func(conn *imapclient.Client) error {
		data, err := conn.Select(folder, &imap.SelectOptions{ReadOnly: true}).Wait()
		if err != nil {
			return fmt.Errorf("SELECT %q: %w", folder, err)
		}
		if data.NumMessages == 0 {
			return nil
		}

		var seqSet imap.SeqSet
		seqSet.AddRange(firstSeqNum(data.NumMessages, c.config.FetchLimit), data.NumMessages)

		section := &imap.FetchItemBodySection{Peek: true}
		fetchOpts := &imap.FetchOptions{
			Envelope:    true,
			BodySection: []*imap.FetchItemBodySection{section},
		}
		bufs, err := conn.Fetch(seqSet, fetchOpts).Collect()
		if err != nil {
			return fmt.Errorf("FETCH %q: %w", folder, err)
		}

		slices.SortFunc(bufs, func(a, b *imapclient.FetchMessageBuffer) int {
			return int(b.SeqNum) - int(a.SeqNum)
		})
		msgs = make([]mail.Message, 0, len(bufs))
		for _, buf := range bufs {
			msgs = append(msgs, messageFromBuffer(buf, section))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched messages", "folder", folder, "count", len(msgs))
	return msgs, nil
}

// firstSeqNum returns the lowest sequence number to fetch from a mailbox
// of total messages.
func firstSeqNum(total uint32, limit int) uint32 {
	if limit <= 0 || uint32(limit) >= total {
		return 1
	}
	return total - uint32(limit) + 1
}

// messageFromBuffer extracts the display fields of a fetched message.
func messageFromBuffer(buf *imapclient.FetchMessageBuffer, section *imap.FetchItemBodySection) mail.Message {
	var msg mail.Message
	if env := buf.Envelope; env != nil {
		msg.From = formatAddresses(env.From)
		msg.To = formatAddresses(env.To)
		msg.Subject = env.Subject
	}
	if raw := buf.FindBodySection(section); raw != nil {
		msg.Body = bodyText(raw)
	}
	return msg
}

// formatAddresses renders addresses as "Name <user@host>" joined by commas.
func formatAddresses(addrs []imap.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		addr := a.Addr()
		switch {
		case a.Name == "":
			parts = append(parts, addr)
		case addr == "":
			parts = append(parts, a.Name)
		default:
			parts = append(parts, fmt.Sprintf("%s <%s>", a.Name, addr))
		}
	}
	return strings.Join(parts, ", ")
}

// Close logs out and disconnects from the IMAP server.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil
	return conn.Logout().Wait()
}
