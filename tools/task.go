package tools

import (
	"context"
	"fmt"
	"strings"

	deepagent "github.com/armatrix/deep-agent-go"
	"github.com/armatrix/deep-agent-go/subagent"
)

// TaskInput defines the input for the Task tool.
type TaskInput struct {
	SubagentName string `json:"subagent_name" jsonschema:"required,description=The name of the sub-agent to delegate to"`
	Task         string `json:"task" jsonschema:"required,description=The task for the sub-agent to perform"`
}

// TaskTool delegates a task to a registered sub-agent. The child runs
// synchronously to completion against a snapshot of the parent's files and
// todos; on success only the child's files merge back, alongside a single
// summary message. A failed child run is reported as an error result and
// leaves the parent workspace untouched.
type TaskTool struct {
	registry *subagent.Registry
}

// NewTaskTool creates a Task tool dispatching through the given registry.
func NewTaskTool(registry *subagent.Registry) *TaskTool {
	return &TaskTool{registry: registry}
}

var _ deepagent.Tool[TaskInput] = (*TaskTool)(nil)

func (t *TaskTool) Name() string { return "Task" }

func (t *TaskTool) Description() string {
	desc := "Delegate a task to a sub-agent and wait for its result"
	if listing := t.registry.Describe(); listing != "" {
		desc += ". Available sub-agents:\n" + listing
	}
	return desc
}

func (t *TaskTool) Execute(ctx context.Context, input TaskInput) (*deepagent.ToolResult, error) {
	if input.SubagentName == "" || input.Task == "" {
		return deepagent.ErrorResult("subagent_name and task are required"), nil
	}
	if !t.registry.Has(input.SubagentName) {
		return deepagent.ErrorResult(fmt.Sprintf(
			"Error: Sub-agent '%s' not found. Available sub-agents: %s",
			input.SubagentName, strings.Join(t.registry.Names(), ", "))), nil
	}

	snapshot, _ := deepagent.ContextWorkspace(ctx)
	res := t.registry.Dispatch(ctx, input.SubagentName, input.Task, snapshot)
	if res.Err != nil {
		return deepagent.ErrorResult(fmt.Sprintf("Error: Delegation to '%s' failed: %s",
			input.SubagentName, res.Err.Error())), nil
	}

	return deepagent.DeltaResult(res.Summary, &deepagent.StateDelta{Files: res.Files}), nil
}

// InstallSubagents registers the Task tool on the parent and eagerly builds
// one child agent per definition. The Task tool enters the parent catalog
// before the children are built, so a child granted the full catalog can
// itself delegate further.
func InstallSubagents(parent *deepagent.Agent, defs ...subagent.Definition) *subagent.Registry {
	registry := subagent.NewRegistry(parent.Logger())
	deepagent.RegisterTool(parent.Tools(), NewTaskTool(registry))
	registry.Build(parent, defs...)
	return registry
}
