package tools

import (
	"context"
	"strings"

	deepagent "github.com/armatrix/deep-agent-go"
)

// LsInput defines the input for the Ls tool. It takes no arguments.
type LsInput struct{}

// LsTool lists every path in the virtual file store, in the order the
// files were first written.
type LsTool struct{}

var _ deepagent.Tool[LsInput] = (*LsTool)(nil)

func (t *LsTool) Name() string { return "Ls" }
func (t *LsTool) Description() string {
	return "List all files in the workspace"
}

func (t *LsTool) Execute(ctx context.Context, _ LsInput) (*deepagent.ToolResult, error) {
	state, _ := deepagent.ContextWorkspace(ctx)
	paths := deepagent.FilePaths(state.Files)
	if len(paths) == 0 {
		return deepagent.TextResult("(no files)"), nil
	}
	return deepagent.TextResult(strings.Join(paths, "\n")), nil
}
