package tools

import (
	"context"
	"fmt"
	"strings"

	deepagent "github.com/armatrix/deep-agent-go"
	"github.com/armatrix/deep-agent-go/internal/diff"
)

// EditInput defines the input for the Edit tool.
type EditInput struct {
	FilePath   string `json:"file_path" jsonschema:"required,description=The absolute path of the file to edit"`
	OldString  string `json:"old_string" jsonschema:"required,description=The exact text to replace"`
	NewString  string `json:"new_string" jsonschema:"required,description=The text to replace it with"`
	ReplaceAll bool   `json:"replace_all,omitempty" jsonschema:"description=Replace every occurrence instead of requiring a unique match"`
}

// EditTool performs literal string replacement on a file in the virtual
// store. Without replace_all the old string must occur exactly once; an
// ambiguous match is reported back so the model can supply more context.
type EditTool struct{}

var _ deepagent.Tool[EditInput] = (*EditTool)(nil)

func (t *EditTool) Name() string { return "Edit" }
func (t *EditTool) Description() string {
	return "Replace an exact string in a workspace file"
}

func (t *EditTool) Execute(ctx context.Context, input EditInput) (*deepagent.ToolResult, error) {
	if input.FilePath == "" {
		return deepagent.ErrorResult("file_path is required"), nil
	}
	if input.OldString == "" {
		return deepagent.ErrorResult("old_string is required"), nil
	}

	state, _ := deepagent.ContextWorkspace(ctx)
	content, ok := lookupFile(state.Files, input.FilePath)
	if !ok {
		return deepagent.ErrorResult(fmt.Sprintf("Error: File '%s' not found", input.FilePath)), nil
	}

	count := strings.Count(content, input.OldString)
	if count == 0 {
		return deepagent.ErrorResult(fmt.Sprintf(
			"Error: String not found in file: '%s'", input.OldString)), nil
	}

	var updated string
	var summary string
	if input.ReplaceAll {
		updated = strings.ReplaceAll(content, input.OldString, input.NewString)
		summary = fmt.Sprintf("Successfully replaced %d occurrence(s) in %s", count, input.FilePath)
	} else {
		if count > 1 {
			return deepagent.ErrorResult(fmt.Sprintf(
				"Error: String '%s' appears %d times in the file. Provide a larger unique context or set replace_all to true",
				input.OldString, count)), nil
		}
		updated = strings.Replace(content, input.OldString, input.NewString, 1)
		summary = fmt.Sprintf("Successfully replaced string in %s", input.FilePath)
	}

	files := deepagent.NewFileMap()
	files.Set(input.FilePath, updated)

	if snippet := diff.Snippet(content, updated, 0); snippet != "" {
		summary += "\n" + snippet
	}
	return deepagent.DeltaResult(summary, &deepagent.StateDelta{Files: files}), nil
}
