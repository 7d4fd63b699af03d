package tools

import (
	deepagent "github.com/armatrix/deep-agent-go"
)

// RegisterAll registers the built-in workspace tools into a registry.
// The Task tool is not included; use InstallSubagents to wire delegation.
func RegisterAll(r *deepagent.ToolRegistry) {
	deepagent.RegisterTool(r, &LsTool{})
	deepagent.RegisterTool(r, &ReadTool{})
	deepagent.RegisterTool(r, &WriteTool{})
	deepagent.RegisterTool(r, &EditTool{})
	deepagent.RegisterTool(r, &GlobTool{})
	deepagent.RegisterTool(r, &TodoTool{})
}
