package deepagent

import (
	"context"
	"sync"
)

// Client is a stateful container that wraps an Agent and keeps one
// Workspace alive across multiple Query calls, so a multi-turn
// conversation accumulates files and todos.
type Client struct {
	agent     *Agent
	workspace *Workspace

	mu     sync.Mutex
	cancel context.CancelFunc // cancel for current Query
}

// NewClient creates a new Client with its own Agent configured by the given options.
func NewClient(opts ...AgentOption) *Client {
	return &Client{
		agent:     NewAgent(opts...),
		workspace: NewWorkspace(),
	}
}

// Query sends a prompt to the agent within the client's ongoing workspace.
// Transcript, todos, and files persist across calls.
func (c *Client) Query(ctx context.Context, prompt string) *AgentStream {
	c.mu.Lock()
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	return c.agent.RunWithWorkspace(ctx, c.workspace, prompt)
}

// Interrupt cancels the currently running Query, if any.
func (c *Client) Interrupt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Fork creates a new Client that shares the same Agent but owns an
// independent copy of the workspace state.
func (c *Client) Fork() *Client {
	snapshot := c.workspace.Snapshot()
	return &Client{
		agent:     c.agent,
		workspace: NewWorkspaceWith(snapshot),
	}
}

// Workspace returns the client's workspace.
func (c *Client) Workspace() *Workspace {
	return c.workspace
}

// Agent returns the underlying Agent.
func (c *Client) Agent() *Agent {
	return c.agent
}
