package deepagent

import "context"

type contextKey int

const (
	ctxKeyWorkspace contextKey = iota
	ctxKeyToolCallID
)

// WithContextWorkspace returns a context carrying a workspace state snapshot.
// The run loop refreshes the snapshot before every tool call, so a tool
// always reads the state as of its position in the call order.
func WithContextWorkspace(ctx context.Context, state WorkspaceState) context.Context {
	return context.WithValue(ctx, ctxKeyWorkspace, state)
}

// ContextWorkspace returns the workspace snapshot from context.
// The second return is false when no snapshot was attached.
func ContextWorkspace(ctx context.Context) (WorkspaceState, bool) {
	v, ok := ctx.Value(ctxKeyWorkspace).(WorkspaceState)
	return v, ok
}

// WithContextToolCallID returns a context carrying the opaque identifier of
// the tool_use block being executed.
func WithContextToolCallID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyToolCallID, id)
}

// ContextToolCallID returns the current tool call identifier, or empty string.
func ContextToolCallID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyToolCallID).(string); ok {
		return v
	}
	return ""
}
