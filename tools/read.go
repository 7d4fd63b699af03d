package tools

import (
	"context"
	"fmt"
	"strings"

	deepagent "github.com/armatrix/deep-agent-go"
)

const (
	defaultReadLimit   = 2000
	maxLineLength      = 2000
	lineNumberTabWidth = 6 // right-justified width for line numbers
)

// ReadInput defines the input for the Read tool.
type ReadInput struct {
	FilePath string `json:"file_path" jsonschema:"required,description=The absolute path of the file to read"`
	Offset   *int   `json:"offset,omitempty" jsonschema:"description=The line number to start reading from (0-based)"`
	Limit    *int   `json:"limit,omitempty" jsonschema:"description=The number of lines to read (defaults to 2000)"`
}

// ReadTool reads a file from the virtual store with optional offset and
// limit, rendering numbered lines the way an editor view would.
type ReadTool struct{}

var _ deepagent.Tool[ReadInput] = (*ReadTool)(nil)

func (t *ReadTool) Name() string { return "Read" }
func (t *ReadTool) Description() string {
	return "Read a file from the workspace with optional line offset and limit"
}

func (t *ReadTool) Execute(ctx context.Context, input ReadInput) (*deepagent.ToolResult, error) {
	if input.FilePath == "" {
		return deepagent.ErrorResult("file_path is required"), nil
	}

	state, _ := deepagent.ContextWorkspace(ctx)
	content, ok := lookupFile(state.Files, input.FilePath)
	if !ok {
		return deepagent.ErrorResult(fmt.Sprintf("Error: File '%s' not found", input.FilePath)), nil
	}
	if content == "" {
		return deepagent.TextResult(fmt.Sprintf("System reminder: File '%s' exists but has empty contents", input.FilePath)), nil
	}

	offset := 0
	if input.Offset != nil && *input.Offset > 0 {
		offset = *input.Offset
	}
	limit := defaultReadLimit
	if input.Limit != nil && *input.Limit > 0 {
		limit = *input.Limit
	}

	lines := strings.Split(content, "\n")
	if offset >= len(lines) {
		return deepagent.ErrorResult(fmt.Sprintf(
			"Error: Line offset %d exceeds file length (%d lines)", offset, len(lines))), nil
	}

	end := offset + limit
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := offset; i < end; i++ {
		line := lines[i]
		if len(line) > maxLineLength {
			line = line[:maxLineLength]
		}
		if i > offset {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*d\t%s", lineNumberTabWidth, i+1, line)
	}
	return deepagent.TextResult(b.String()), nil
}

// lookupFile fetches a path from the file store, tolerating a nil map.
func lookupFile(files *deepagent.FileMap, path string) (string, bool) {
	if files == nil {
		return "", false
	}
	return files.Get(path)
}
