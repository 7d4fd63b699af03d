package tools

import (
	"context"
	"fmt"

	deepagent "github.com/armatrix/deep-agent-go"
)

// TodoInput defines the input for the TodoWrite tool.
type TodoInput struct {
	Todos []deepagent.Todo `json:"todos" jsonschema:"required,description=The complete todo list to write"`
}

// TodoTool replaces the workspace todo list wholesale. The model always
// emits the complete desired list, so no element-wise merging happens; an
// empty list clears the plan.
type TodoTool struct{}

var _ deepagent.Tool[TodoInput] = (*TodoTool)(nil)

func (t *TodoTool) Name() string { return "TodoWrite" }
func (t *TodoTool) Description() string {
	return "Write and update the todo list for tracking task progress"
}

func (t *TodoTool) Execute(_ context.Context, input TodoInput) (*deepagent.ToolResult, error) {
	todos := make([]deepagent.Todo, len(input.Todos))
	copy(todos, input.Todos)

	pending, inProgress, completed := 0, 0, 0
	for _, item := range todos {
		switch item.Status {
		case deepagent.TodoPending:
			pending++
		case deepagent.TodoInProgress:
			inProgress++
		case deepagent.TodoCompleted:
			completed++
		}
	}

	return deepagent.DeltaResult(
		fmt.Sprintf("Todo list updated: %d pending, %d in progress, %d completed",
			pending, inProgress, completed),
		&deepagent.StateDelta{Todos: todos},
	), nil
}
