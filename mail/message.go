// Package mail defines the messages the dashboard displays and the
// contract of the backends that retrieve them.
package mail

import "context"

// Message holds the display fields extracted from one mail message.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string // Plain text body
}

// Source retrieves folders and their messages from a mail backend.
// Fetch returns messages newest first.
type Source interface {
	ListFolders(ctx context.Context) ([]string, error)
	Fetch(ctx context.Context, folder string) ([]Message, error)
}
