// Package login asks for an account password before the dashboard takes
// over the terminal.
package login

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves the prompt without
// submitting a password.
var ErrCancelled = errors.New("login cancelled")

// Model is the Bubble Tea model of the password prompt.
type Model struct {
	account string
	input   textinput.Model
	verify  func(string) error

	verifying bool
	err       error
	password  string
	done      bool
	cancelled bool
}

// New creates a prompt for account. When verify is non-nil a submitted
// password is accepted only once verify returns nil; a rejected one is
// cleared and the prompt asks again.
func New(account string, verify func(string) error) Model {
	ti := textinput.New()
	ti.Prompt = "Password: "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	return Model{account: account, input: ti, verify: verify}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.verifying || m.input.Value() == "" {
				return m, nil
			}
			if m.verify == nil {
				return m.accept()
			}
			m.verifying = true
			m.err = nil
			return m, verifyCmd(m.verify, m.input.Value())
		}
		if m.verifying {
			return m, nil
		}

	case verifiedMsg:
		m.verifying = false
		if msg.err != nil {
			m.err = msg.err
			m.input.Reset()
			return m, nil
		}
		return m.accept()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) accept() (tea.Model, tea.Cmd) {
	m.password = m.input.Value()
	m.done = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("vimail login"))
	b.WriteString("\n")
	b.WriteString(AccountStyle.Render(m.account))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	switch {
	case m.verifying:
		b.WriteString(HelpStyle.Render("checking..."))
	case m.err != nil:
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	default:
		b.WriteString(HelpStyle.Render("enter: submit • esc: cancel"))
	}
	return BoxStyle.Render(b.String()) + "\n"
}

// Password returns the accepted password, empty until one is accepted.
func (m Model) Password() string { return m.password }

// PromptPassword runs the prompt on in and out until a password is
// accepted or the user cancels.
func PromptPassword(ctx context.Context, in io.Reader, out io.Writer, account string, verify func(string) error) (string, error) {
	p := tea.NewProgram(
		New(account, verify),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running login prompt: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.cancelled || !m.done {
		return "", ErrCancelled
	}
	return m.password, nil
}
