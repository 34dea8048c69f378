package login

// verifiedMsg carries the outcome of checking a submitted password.
type verifiedMsg struct{ err error }
