package mail

import (
	"context"
	"log/slog"
	"strings"
)

// Rules lists messages to hide from every folder.
type Rules struct {
	IgnoreSenders           []string
	IgnoreKeywordsInSubject []string
}

// Empty reports whether the rules hide nothing.
func (r Rules) Empty() bool {
	return len(r.IgnoreSenders) == 0 && len(r.IgnoreKeywordsInSubject) == 0
}

// Ignored reports whether m matches a rule. Matching is a case-insensitive
// substring test on the sender or the subject.
func (r Rules) Ignored(m Message) (bool, string) {
	from := strings.ToLower(m.From)
	for _, sender := range r.IgnoreSenders {
		if sender != "" && strings.Contains(from, strings.ToLower(sender)) {
			return true, "sender " + sender
		}
	}
	subject := strings.ToLower(m.Subject)
	for _, keyword := range r.IgnoreKeywordsInSubject {
		if keyword != "" && strings.Contains(subject, strings.ToLower(keyword)) {
			return true, "subject keyword " + keyword
		}
	}
	return false, ""
}

type filtered struct {
	Source
	rules  Rules
	logger *slog.Logger
}

// Filter wraps src so fetched messages matching rules are dropped.
// Folder listing is passed through unchanged.
func Filter(src Source, rules Rules, logger *slog.Logger) Source {
	if rules.Empty() {
		return src
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &filtered{Source: src, rules: rules, logger: logger}
}

func (f *filtered) Fetch(ctx context.Context, folder string) ([]Message, error) {
	msgs, err := f.Source.Fetch(ctx, folder)
	if err != nil {
		return nil, err
	}
	kept := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if ignored, rule := f.rules.Ignored(m); ignored {
			f.logger.Debug("filtering message", "subject", m.Subject, "rule", rule)
			continue
		}
		kept = append(kept, m)
	}
	return kept, nil
}
