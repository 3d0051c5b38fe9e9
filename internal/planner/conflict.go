package planner

import (
	"fmt"

	"github.com/danieljhkim/transheet/internal/fsops"
)

// ConflictChecker checks destinations before anything is written.
type ConflictChecker struct {
	fs fsops.FS
}

// NewConflictChecker creates a new ConflictChecker.
func NewConflictChecker(fs fsops.FS) *ConflictChecker {
	return &ConflictChecker{fs: fs}
}

// CheckPath checks for conflicts at the given destination path.
// Returns a Conflict if one is detected, and whether a regular file already
// exists at the path.
func (c *ConflictChecker) CheckPath(destPath string) (*Conflict, bool) {
	exists, err := c.fs.Exists(destPath)
	if err != nil {
		return &Conflict{
			Path:   destPath,
			Reason: fmt.Sprintf("Failed to check path: %v", err),
		}, false
	}
	if !exists {
		return nil, false
	}

	info, err := c.fs.Stat(destPath)
	if err != nil {
		return &Conflict{
			Path:   destPath,
			Reason: fmt.Sprintf("Failed to stat path: %v", err),
		}, false
	}
	if info.IsDir() {
		return &Conflict{
			Path:   destPath,
			Reason: "A directory exists at destination",
		}, false
	}
	if !info.Mode().IsRegular() {
		return &Conflict{
			Path:   destPath,
			Reason: fmt.Sprintf("Destination is not a regular file (%s)", info.Mode().Type()),
		}, false
	}

	return nil, true
}
