package resume

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	content := "  Jane Doe  \n\n\n  Senior Engineer \n\nSkills: Go, SQL\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	text, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "Jane Doe\nSenior Engineer\nSkills: Go, SQL"
	if text != want {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte("   \n\n  "), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for a resume with no text")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestClean(t *testing.T) {
	got := Clean("  a \n\n\n b\t\n\nc  ")
	if got != "a\nb\nc" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}
