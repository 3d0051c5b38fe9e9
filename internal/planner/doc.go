// Package planner handles the planning phase of conversions.
//
// A conversion first renders every output in memory, then the planner turns
// the rendered outputs into a deterministic WritePlan. Nothing is written
// while planning, so a conversion that fails never leaves partial output.
//
// Key responsibilities:
//   - Generate WritePlan with ordered operations
//   - Detect conflicts (directories in the way, two outputs for one file)
//   - Detect outputs whose bytes already match the file on disk
//   - Record documents held back by output gating
package planner
