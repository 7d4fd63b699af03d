package tools

import (
	"context"
	"fmt"

	deepagent "github.com/armatrix/deep-agent-go"
)

// WriteInput defines the input for the Write tool.
type WriteInput struct {
	FilePath string `json:"file_path" jsonschema:"required,description=The absolute path of the file to write"`
	Content  string `json:"content" jsonschema:"required,description=The full content to write to the file"`
}

// WriteTool creates or overwrites a file in the virtual store. A write
// always replaces the path's entire content; the delta carries only the
// written key, so disjoint writes in one turn combine cleanly.
type WriteTool struct{}

var _ deepagent.Tool[WriteInput] = (*WriteTool)(nil)

func (t *WriteTool) Name() string { return "Write" }
func (t *WriteTool) Description() string {
	return "Create or overwrite a file in the workspace"
}

func (t *WriteTool) Execute(_ context.Context, input WriteInput) (*deepagent.ToolResult, error) {
	if input.FilePath == "" {
		return deepagent.ErrorResult("file_path is required"), nil
	}

	files := deepagent.NewFileMap()
	files.Set(input.FilePath, input.Content)

	return deepagent.DeltaResult(
		fmt.Sprintf("Successfully wrote to %s", input.FilePath),
		&deepagent.StateDelta{Files: files},
	), nil
}
