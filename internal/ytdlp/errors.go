package ytdlp

import (
	"errors"
	"fmt"
)

// Error kinds, used for metrics labels and history records.
const (
	KindSpawnFailure = "spawn_failure"
	KindToolFailure  = "tool_failure"
	KindParseFailure = "parse_failure"
	KindUnknown      = "unknown"
)

// SpawnError indicates the extractor binary could not be launched at all
// (missing from PATH, not executable). This is an operator problem, not a
// per-video one.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ToolError indicates the extractor ran but exited non-zero, or was killed by
// the per-invocation timeout. Stderr carries the tool's diagnostic output.
type ToolError struct {
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *ToolError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("extractor timed out: %v", e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("extractor failed: %s", e.Stderr)
	}
	return fmt.Sprintf("extractor failed: %v", e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// ParseError indicates the extractor's output did not have the expected
// shape.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected extractor output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unexpected extractor output: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorKind tags an error with its taxonomy kind for observability.
func ErrorKind(err error) string {
	var spawnErr *SpawnError
	var toolErr *ToolError
	var parseErr *ParseError

	switch {
	case errors.As(err, &spawnErr):
		return KindSpawnFailure
	case errors.As(err, &toolErr):
		return KindToolFailure
	case errors.As(err, &parseErr):
		return KindParseFailure
	default:
		return KindUnknown
	}
}
