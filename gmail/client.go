// Package gmail retrieves labels and messages through the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/bassamadnan/vimail/mail"
)

const user = "me"

// Option is a functional option for Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithPrompt sets where the authorization URL is printed and the code is
// read from during the first login.
func WithPrompt(in io.Reader, out io.Writer) Option {
	return func(c *Client) { c.in, c.out = in, out }
}

// Client implements mail.Source for Gmail. Labels are folders.
type Client struct {
	srv    *gmail.Service
	config *Config
	logger *slog.Logger
	in     io.Reader
	out    io.Writer

	labels map[string]string // label name -> label ID
}

// NewClient authorizes against the Gmail API. Without a cached token the
// user is sent through the browser consent flow.
func NewClient(ctx context.Context, cfg *Config, opts ...Option) (*Client, error) {
	c := &Client{
		config: cfg,
		logger: slog.Default(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}

	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	httpClient, err := c.oauthClient(ctx, oauthConfig)
	if err != nil {
		return nil, err
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	c.srv = srv
	return c, nil
}

func (c *Client) oauthClient(ctx context.Context, config *oauth2.Config) (*http.Client, error) {
	tok, err := tokenFromFile(c.config.TokenFile)
	if err != nil {
		c.logger.Info("no cached token, requesting authorization", "token_file", c.config.TokenFile)
		tok, err = c.tokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(c.config.TokenFile, tok); err != nil {
			return nil, err
		}
	}
	return config.Client(context.Background(), tok), nil
}

func (c *Client) tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(c.out, "Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)
	var authCode string
	if _, err := fmt.Fscan(c.in, &authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}
	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// ListFolders returns the names of the account's labels.
func (c *Client) ListFolders(ctx context.Context) ([]string, error) {
	resp, err := c.srv.Users.Labels.List(user).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	c.labels = make(map[string]string, len(resp.Labels))
	names := make([]string, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		c.labels[l.Name] = l.Id
		names = append(names, l.Name)
	}
	return names, nil
}

// labelID resolves a label name. System labels such as INBOX use their
// name as ID, so unknown names are passed through.
func (c *Client) labelID(ctx context.Context, name string) string {
	if c.labels == nil {
		if _, err := c.ListFolders(ctx); err != nil {
			c.logger.Debug("resolving label names failed", "error", err)
		}
	}
	if id, ok := c.labels[name]; ok {
		return id
	}
	return name
}

// Fetch returns the newest messages carrying the label named folder,
// newest first.
func (c *Client) Fetch(ctx context.Context, folder string) ([]mail.Message, error) {
	list, err := c.srv.Users.Messages.List(user).
		LabelIds(c.labelID(ctx, folder)).
		MaxResults(c.config.fetchLimit()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing messages in %q: %w", folder, err)
	}

	msgs := make([]mail.Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		full, err := c.srv.Users.Messages.Get(user, m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			c.logger.Warn("unable to retrieve message", "id", m.Id, "error", err)
			continue
		}
		msgs = append(msgs, c.messageFromGmail(full))
	}
	return msgs, nil
}

func (c *Client) messageFromGmail(msg *gmail.Message) mail.Message {
	var out mail.Message
	if msg.Payload == nil {
		return out
	}
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			out.Subject = header.Value
		case "From":
			out.From = header.Value
		case "To":
			out.To = header.Value
		}
	}
	out.Body = c.plainTextBody(msg.Payload)
	return out
}

// plainTextBody returns the first text/plain part found depth first.
func (c *Client) plainTextBody(payload *gmail.MessagePart) string {
	if payload.MimeType == "text/plain" && payload.Body != nil && payload.Body.Data != "" {
		data, err := decodeBody(payload.Body.Data)
		if err == nil {
			return string(data)
		}
		c.logger.Debug("error decoding text/plain body", "error", err)
	}
	for _, part := range payload.Parts {
		mimeType := strings.ToLower(part.MimeType)
		if strings.HasPrefix(mimeType, "text/") || strings.HasPrefix(mimeType, "multipart/") {
			if body := c.plainTextBody(part); body != "" {
				return body
			}
		}
	}
	return ""
}

// decodeBody decodes Gmail's base64url body data, padded or not.
func decodeBody(data string) ([]byte, error) {
	if b, err := base64.URLEncoding.DecodeString(data); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(data)
}
