package subagent

import (
	"context"
	"fmt"

	deepagent "github.com/armatrix/deep-agent-go"
)

// Result holds the narrow slice of a finished child run that may flow back
// to the parent: the child's final file store and a one-message summary.
// The child's transcript and todos never propagate.
type Result struct {
	// Files is the child workspace's file store at completion.
	Files *deepagent.FileMap

	// Summary is the child's final text output.
	Summary string

	// Err is non-nil if the child run failed. Files is nil in that case.
	Err error
}

// RunFunc executes a child agent against a seeded workspace and returns its
// final text. The default implementation drives a real run and drains the
// stream; tests replace it to avoid API calls.
type RunFunc func(ctx context.Context, child *deepagent.Agent, ws *deepagent.Workspace, task string) (string, error)

// defaultRunFunc runs the child to completion and returns the final result
// text, or an error when the run ends with an error result.
func defaultRunFunc(ctx context.Context, child *deepagent.Agent, ws *deepagent.Workspace, task string) (string, error) {
	stream := child.RunWithWorkspace(ctx, ws, task)

	var final *deepagent.ResultEvent
	for stream.Next() {
		if e, ok := stream.Current().(*deepagent.ResultEvent); ok {
			final = e
		}
	}
	if err := stream.Err(); err != nil {
		return "", err
	}
	if final == nil {
		return "", fmt.Errorf("child run produced no result")
	}
	if final.IsError {
		return "", fmt.Errorf("child run failed (%s): %s", final.Subtype, final.Result)
	}
	return final.Result, nil
}

// Dispatch runs the named sub-agent synchronously against a fresh workspace
// seeded with the parent's files and todos. The child sees a single user
// message equal to task, never the parent's transcript. Failures are
// reported in Result.Err, wrapped in ErrDelegationFailed; they never
// propagate as a raised error, and a failed child changes nothing in the
// parent.
func (r *Registry) Dispatch(ctx context.Context, name, task string, snapshot deepagent.WorkspaceState) *Result {
	e, ok := r.entries[name]
	if !ok {
		return &Result{Err: fmt.Errorf("%w: unknown sub-agent %q", deepagent.ErrNotFound, name)}
	}

	ws := deepagent.NewWorkspaceWith(deepagent.WorkspaceState{
		Todos: snapshot.Todos,
		Files: snapshot.Files,
	})

	r.logger.Info("dispatching to sub-agent", "subagent", name)
	summary, err := r.runFunc(ctx, e.agent, ws, task)
	if err != nil {
		r.logger.Warn("sub-agent run failed", "subagent", name, "error", err)
		return &Result{Err: fmt.Errorf("%w: %s: %s", deepagent.ErrDelegationFailed, name, err.Error())}
	}

	if summary == "" {
		summary = "(sub-agent completed with no output)"
	}
	return &Result{
		Files:   ws.Snapshot().Files,
		Summary: summary,
	}
}
