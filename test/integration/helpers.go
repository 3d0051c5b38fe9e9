package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/danieljhkim/transheet/internal/clock"
	"github.com/danieljhkim/transheet/internal/config"
	"github.com/danieljhkim/transheet/internal/engine"
	"github.com/danieljhkim/transheet/internal/fsops"
	"github.com/danieljhkim/transheet/internal/hash"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files  map[string][]byte
	dirs   map[string]bool
	hasher *hash.FakeHasher
	writes int
	failOn map[string]error
}

func newTestFS(hasher *hash.FakeHasher) *testFS {
	return &testFS{
		files:  make(map[string][]byte),
		dirs:   make(map[string]bool),
		hasher: hasher,
		failOn: make(map[string]error),
	}
}

// put stores a file without counting it as a write.
func (fs *testFS) put(path string, data string) {
	path = filepath.Clean(path)
	fs.files[path] = []byte(data)
	fs.dirs[filepath.Dir(path)] = true
	fs.hasher.SetHash(path, data)
}

func (fs *testFS) Stat(path string) (os.FileInfo, error) {
	path = filepath.Clean(path)
	if data, ok := fs.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: 0644}, nil
	}
	if fs.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), mode: os.ModeDir | 0755, isDir: true}, nil
	}
	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
	return nil
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if err, ok := fs.failOn[path]; ok {
		return err
	}
	if fs.dirs[path] {
		return fmt.Errorf("%s is a directory", path)
	}
	_ = fs.MkdirAll(filepath.Dir(path), 0755)
	fs.files[path] = append([]byte(nil), data...)
	fs.hasher.SetHash(path, string(data))
	fs.writes++
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := fs.files[filepath.Clean(path)]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) Exists(path string) (bool, error) {
	path = filepath.Clean(path)
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) Glob(dir, pattern string) ([]string, error) {
	dir = filepath.Clean(dir)
	var matches []string
	for p := range fs.files {
		if filepath.Dir(p) != dir {
			continue
		}
		ok, err := filepath.Match(pattern, filepath.Base(p))
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (fs *testFS) ValidateIdentifier(id string) error {
	return fsops.NewRealFS().ValidateIdentifier(id)
}

func (fs *testFS) content(t *testing.T, path string) string {
	t.Helper()
	data, ok := fs.files[filepath.Clean(path)]
	if !ok {
		t.Fatalf("expected file at %s", path)
	}
	return string(data)
}

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name  string
	size  int64
	mode  os.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

func setupTestEngine(t *testing.T, settings config.Settings) (*engine.Engine, *testFS, *observer.ObservedLogs) {
	t.Helper()
	hasher := hash.NewFakeHasher()
	fs := newTestFS(hasher)
	clk := clock.NewSteppingClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), time.Second)
	core, logs := observer.New(zapcore.DebugLevel)

	eng := engine.New(fs, hasher, clk, zap.New(core), settings)
	return eng, fs, logs
}
