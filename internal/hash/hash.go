// Package hash provides content hashing for unchanged-document detection.
//
// Before a document is rewritten, the hash of the encoded bytes is compared
// with the hash of the file already on disk; equal hashes mean the write is
// skipped.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher provides an abstraction for content hashing.
type Hasher interface {
	// HashBytes computes the hash of data.
	HashBytes(data []byte) string

	// HashFile computes the hash of the file at the given path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes computes the hex SHA-256 of data.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile computes the hex SHA-256 of the file at the given path.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// FakeHasher implements Hasher with preset hashes for testing.
type FakeHasher struct {
	hashes map[string]string
	calls  int
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		hashes: make(map[string]string),
	}
}

// SetHash sets the hash returned for a path.
func (h *FakeHasher) SetHash(path, hash string) {
	h.hashes[path] = hash
}

// HashBytes returns the content itself, so equal bytes compare equal.
func (h *FakeHasher) HashBytes(data []byte) string {
	h.calls++
	return string(data)
}

// HashFile returns the preset hash for path, or os.ErrNotExist.
func (h *FakeHasher) HashFile(path string) (string, error) {
	h.calls++
	if hash, ok := h.hashes[path]; ok {
		return hash, nil
	}
	return "", fmt.Errorf("fake hasher: %s: %w", path, os.ErrNotExist)
}

// Calls returns how many hashes were computed.
func (h *FakeHasher) Calls() int {
	return h.calls
}
