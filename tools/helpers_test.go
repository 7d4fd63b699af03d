package tools

import (
	"context"
	"encoding/json"

	deepagent "github.com/armatrix/deep-agent-go"
)

// extractText gets the text content from a ToolResult's first content block.
func extractText(r *deepagent.ToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	// The content block is a union; marshal and extract the text field.
	b, err := json.Marshal(r.Content[0])
	if err != nil {
		return ""
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return ""
	}
	if text, ok := m["text"].(string); ok {
		return text
	}
	return ""
}

// ctxWithFiles builds a context carrying a workspace snapshot whose file
// store holds the given path/content pairs in argument order.
func ctxWithFiles(pairs ...string) context.Context {
	files := deepagent.NewFileMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		files.Set(pairs[i], pairs[i+1])
	}
	return deepagent.WithContextWorkspace(context.Background(), deepagent.WorkspaceState{Files: files})
}

// ctxWithState builds a context carrying the given workspace snapshot.
func ctxWithState(state deepagent.WorkspaceState) context.Context {
	return deepagent.WithContextWorkspace(context.Background(), state)
}
