package imap

import (
	"bytes"
	"io"
	"strings"

	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
)

// bodyText returns the displayable text of a raw RFC 5322 message: the
// first text/plain inline part, else the first inline part of any type.
// Unparseable input is returned as is.
func bodyText(raw []byte) string {
	mr, err := gomail.CreateReader(bytes.NewReader(raw))
	if err != nil && mr == nil {
		return string(raw)
	}
	defer mr.Close()

	var (
		fallback     string
		haveFallback bool
	)
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		h, ok := part.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}
		body, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		contentType, _, _ := h.ContentType()
		if contentType == "" || strings.HasPrefix(contentType, "text/plain") {
			return string(body)
		}
		if !haveFallback {
			fallback, haveFallback = string(body), true
		}
	}
	return fallback
}
