package login

import tea "github.com/charmbracelet/bubbletea"

// verifyCmd checks password off the UI goroutine and reports back with a
// verifiedMsg.
func verifyCmd(verify func(string) error, password string) tea.Cmd {
	return func() tea.Msg {
		return verifiedMsg{err: verify(password)}
	}
}
