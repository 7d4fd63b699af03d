package deepagent

// AgentStream is an iterator over events emitted during an agent run.
// Usage:
//
//	stream := agent.Run(ctx, "prompt")
//	for stream.Next() {
//	    event := stream.Current()
//	    // handle event
//	}
//	if err := stream.Err(); err != nil {
//	    // handle error
//	}
type AgentStream struct {
	events    chan Event
	current   Event
	err       error
	done      bool
	workspace *Workspace
}

// newStream creates a new AgentStream with the given event channel and workspace.
func newStream(events chan Event, workspace *Workspace) *AgentStream {
	return &AgentStream{
		events:    events,
		workspace: workspace,
	}
}

// Next advances to the next event. Returns false when the stream is exhausted.
func (s *AgentStream) Next() bool {
	if s.done {
		return false
	}
	event, ok := <-s.events
	if !ok {
		s.done = true
		return false
	}
	s.current = event
	return true
}

// Current returns the most recent event returned by Next.
func (s *AgentStream) Current() Event {
	return s.current
}

// Err returns the first error encountered during iteration, if any.
func (s *AgentStream) Err() error {
	return s.err
}

// Workspace returns the workspace threaded through this run. After the run
// completes it holds the final state; snapshot it rather than holding on to
// intermediate reads.
func (s *AgentStream) Workspace() *Workspace {
	return s.workspace
}
