package planner

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/transheet/internal/fsops"
	"github.com/danieljhkim/transheet/internal/hash"
)

// BuildWritePlan generates a deterministic plan for targets, in their order.
// A target whose destination already holds identical bytes becomes an
// OpUnchanged operation.
func BuildWritePlan(targets []Target, fs fsops.FS, hasher hash.Hasher) (*WritePlan, error) {
	plan := NewWritePlan()
	checker := NewConflictChecker(fs)

	claimed := make(map[string]Target)

	for _, target := range targets {
		destPath := filepath.Clean(target.Path)

		if previous, exists := claimed[destPath]; exists {
			plan.AddConflict(Conflict{
				Path: destPath,
				Reason: fmt.Sprintf("%s and %s map to the same file",
					describe(previous), describe(target)),
			})
			continue
		}
		claimed[destPath] = target

		conflict, exists := checker.CheckPath(destPath)
		if conflict != nil {
			plan.AddConflict(*conflict)
			continue
		}

		op := Operation{
			Type:     OpWrite,
			DestPath: destPath,
			Domain:   target.Domain,
			Locale:   target.Locale,
			Data:     target.Data,
		}

		if exists {
			current, err := hasher.HashFile(destPath)
			if err != nil {
				return nil, fmt.Errorf("failed to hash %s: %w", destPath, err)
			}
			if current == hasher.HashBytes(target.Data) {
				op.Type = OpUnchanged
			}
		}

		plan.AddOperation(op)
	}

	return plan, nil
}

func describe(t Target) string {
	if t.Domain == "" && t.Locale == "" {
		return "table"
	}
	return fmt.Sprintf("document %s/%s", t.Domain, t.Locale)
}
