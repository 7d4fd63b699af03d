// Package checkpoint records workspace snapshots for rewind capability.
// A snapshot captures the full workspace value (transcript, todos, files)
// at a point in time; rewinding restores it. Because the workspace is a
// persistent value type, snapshots are cheap clones with no shared memory.
package checkpoint

import (
	"sync"

	deepagent "github.com/armatrix/deep-agent-go"
)

// Snapshot is one recorded workspace state.
type Snapshot struct {
	ID    string
	State deepagent.WorkspaceState
}

// Tracker holds named workspace snapshots. It is safe for concurrent use.
type Tracker struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	order     []string
}

// NewTracker creates a new empty checkpoint tracker.
func NewTracker() *Tracker {
	return &Tracker{
		snapshots: make(map[string]Snapshot),
	}
}

// Save records a snapshot of the given state and returns its generated ID.
func (t *Tracker) Save(state deepagent.WorkspaceState) string {
	id := deepagent.GenerateID("ckpt")
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshots[id] = Snapshot{ID: id, State: state.Clone()}
	t.order = append(t.order, id)
	return id
}

// Rewind returns the snapshot recorded under id. The returned state is an
// independent clone; rewinding twice yields two independent values.
func (t *Tracker) Rewind(id string) (deepagent.WorkspaceState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap, ok := t.snapshots[id]
	if !ok {
		return deepagent.WorkspaceState{}, false
	}
	return snap.State.Clone(), true
}

// Latest returns the most recently saved snapshot ID.
func (t *Tracker) Latest() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.order) == 0 {
		return "", false
	}
	return t.order[len(t.order)-1], true
}

// IDs returns all snapshot IDs in save order.
func (t *Tracker) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, len(t.order))
	copy(ids, t.order)
	return ids
}

// Len returns the number of recorded snapshots.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// Drop discards the snapshot with the given id, if present.
func (t *Tracker) Drop(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.snapshots[id]; !ok {
		return
	}
	delete(t.snapshots, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Clear discards all snapshots.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshots = make(map[string]Snapshot)
	t.order = nil
}
