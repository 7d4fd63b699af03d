package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	deepagent "github.com/armatrix/deep-agent-go"
)

// GlobInput defines the input for the Glob tool.
type GlobInput struct {
	Pattern string `json:"pattern" jsonschema:"required,description=The glob pattern to match file paths against (supports ** for recursive matching)"`
}

// GlobTool matches workspace paths against a glob pattern, returning them
// in file insertion order.
type GlobTool struct{}

var _ deepagent.Tool[GlobInput] = (*GlobTool)(nil)

func (t *GlobTool) Name() string { return "Glob" }
func (t *GlobTool) Description() string {
	return "Find workspace files whose paths match a glob pattern"
}

func (t *GlobTool) Execute(ctx context.Context, input GlobInput) (*deepagent.ToolResult, error) {
	if input.Pattern == "" {
		return deepagent.ErrorResult("pattern is required"), nil
	}
	if !doublestar.ValidatePattern(input.Pattern) {
		return deepagent.ErrorResult(fmt.Sprintf("Error: Invalid glob pattern: '%s'", input.Pattern)), nil
	}

	state, _ := deepagent.ContextWorkspace(ctx)

	var matched []string
	for _, path := range deepagent.FilePaths(state.Files) {
		// Paths are absolute; patterns without a leading slash match
		// against the path with the slash stripped.
		candidate := path
		if !strings.HasPrefix(input.Pattern, "/") {
			candidate = strings.TrimPrefix(path, "/")
		}
		if ok, _ := doublestar.Match(input.Pattern, candidate); ok {
			matched = append(matched, path)
		}
	}

	if len(matched) == 0 {
		return deepagent.TextResult(fmt.Sprintf("No files matching pattern '%s'", input.Pattern)), nil
	}
	return deepagent.TextResult(strings.Join(matched, "\n")), nil
}
