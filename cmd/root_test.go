package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenLogFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vimail.log")

	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("openLogFile() error = %v", err)
	}
	if _, err := f.WriteString("first\n"); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
	f.Close()

	// Reopening appends.
	f, err = openLogFile(path)
	if err != nil {
		t.Fatalf("openLogFile() again error = %v", err)
	}
	f.WriteString("second\n")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := string(data); got != "first\nsecond\n" {
		t.Errorf("log contents = %q, want %q", got, "first\nsecond\n")
	}
}

func TestPreRunRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VIMAIL_HOME", dir)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("backend = \"pop3\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })
	if err := rootCmd.PersistentPreRunE(rootCmd, nil); err == nil {
		t.Fatal("PersistentPreRunE() error = nil, want invalid config")
	}
}
