package fsops

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRealFS_ValidateIdentifier(t *testing.T) {
	fs := &RealFS{}

	tests := []struct {
		name      string
		id        string
		wantError bool
	}{
		{name: "simple domain", id: "messages", wantError: false},
		{name: "locale with region", id: "pt_BR", wantError: false},
		{name: "hyphenated locale", id: "zh-Hant", wantError: false},
		{name: "empty identifier", id: "", wantError: true},
		{name: "current directory", id: ".", wantError: true},
		{name: "parent directory", id: "..", wantError: true},
		{name: "dotted name", id: "app.admin", wantError: true},
		{name: "path with separator", id: "app/admin", wantError: true},
		{name: "path with backslash", id: "app\\admin", wantError: true},
		{name: "surrounding space", id: " en", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantError %v", tt.id, err, tt.wantError)
			}
		})
	}
}

func TestRealFS_Exists(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	t.Run("existing file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "app.en.yaml")
		if err := os.WriteFile(testFile, []byte("a: b\n"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		exists, err := fs.Exists(testFile)
		if err != nil {
			t.Errorf("Exists returned error: %v", err)
		}
		if !exists {
			t.Error("Exists should return true for existing file")
		}
	})

	t.Run("non-existing file", func(t *testing.T) {
		exists, err := fs.Exists(filepath.Join(tmpDir, "missing.yaml"))
		if err != nil {
			t.Errorf("Exists returned error: %v", err)
		}
		if exists {
			t.Error("Exists should return false for non-existing file")
		}
	})
}

func TestRealFS_AtomicWrite(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	t.Run("creates parent directories", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "out", "nested", "app.en.yaml")
		content := []byte("home:\n    title: Home\n")

		if err := fs.AtomicWrite(testFile, content, 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		readContent, err := os.ReadFile(testFile)
		if err != nil {
			t.Fatalf("failed to read written file: %v", err)
		}
		if string(readContent) != string(content) {
			t.Errorf("File content mismatch: got %q, want %q", readContent, content)
		}
	})

	t.Run("overwrite existing file", func(t *testing.T) {
		testFile := filepath.Join(tmpDir, "table.csv")
		if err := os.WriteFile(testFile, []byte("initial"), 0644); err != nil {
			t.Fatalf("failed to create initial file: %v", err)
		}

		if err := fs.AtomicWrite(testFile, []byte("overwritten"), 0644); err != nil {
			t.Fatalf("AtomicWrite failed: %v", err)
		}

		readContent, err := fs.ReadFile(testFile)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(readContent) != "overwritten" {
			t.Errorf("File content not updated: got %q", readContent)
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		entries, err := os.ReadDir(tmpDir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".transheet-tmp-") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})
}

func TestRealFS_Glob(t *testing.T) {
	fs := &RealFS{}
	tmpDir := t.TempDir()

	for _, name := range []string{"web.en.yaml", "app.en.yaml", "app.cs.yaml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("a: b\n"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	if err := fs.MkdirAll(filepath.Join(tmpDir, "dir.en.yaml"), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	got, err := fs.Glob(tmpDir, "*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	want := []string{
		filepath.Join(tmpDir, "app.cs.yaml"),
		filepath.Join(tmpDir, "app.en.yaml"),
		filepath.Join(tmpDir, "web.en.yaml"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Glob = %v, want %v", got, want)
	}

	if _, err := fs.Glob(tmpDir, "[bad"); err == nil {
		t.Error("Glob should reject a malformed pattern")
	}
	if _, err := fs.Glob(filepath.Join(tmpDir, "missing"), "*"); err == nil {
		t.Error("Glob should fail for a missing directory")
	}
}

func TestRealFS_Stat(t *testing.T) {
	fs := NewRealFS()
	tmpDir := t.TempDir()

	info, err := fs.Stat(tmpDir)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat should report a directory")
	}

	if _, err := fs.Stat(filepath.Join(tmpDir, "missing")); !os.IsNotExist(err) {
		t.Errorf("Stat on missing path: got %v, want not-exist", err)
	}
}
