package deepagent

import (
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// TodoStatus is the lifecycle state of a single todo entry.
type TodoStatus string

const (
	TodoPending    TodoStatus = "pending"
	TodoInProgress TodoStatus = "in_progress"
	TodoCompleted  TodoStatus = "completed"
)

// Todo is one entry in the workspace plan. The model is trusted to keep the
// list coherent; no cross-field validation happens beyond the status enum.
type Todo struct {
	Content string     `json:"content" jsonschema:"required,description=Task description"`
	Status  TodoStatus `json:"status" jsonschema:"required,enum=pending,enum=in_progress,enum=completed,description=Current status of the task"`
}

// FileMap is the flat in-memory file store: absolute path → full content.
// It preserves insertion order so Ls output is stable across a run.
// There are no directories and no partial contents; every write replaces
// a path's entire value.
type FileMap = orderedmap.OrderedMap[string, string]

// NewFileMap returns an empty file store.
func NewFileMap() *FileMap {
	return orderedmap.New[string, string]()
}

// CloneFiles returns an independent copy of src. A nil src yields an empty map.
func CloneFiles(src *FileMap) *FileMap {
	dst := NewFileMap()
	if src == nil {
		return dst
	}
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
	return dst
}

// FilePaths returns the paths of m in insertion order.
func FilePaths(m *FileMap) []string {
	if m == nil {
		return nil
	}
	paths := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

// WorkspaceState is the versioned value threaded through one agent
// invocation: the transcript, the todo plan, and the virtual file store.
// It is created empty per top-level run and evolves only through Apply.
type WorkspaceState struct {
	Messages []anthropic.MessageParam
	Todos    []Todo
	Files    *FileMap
}

// StateDelta is the mutation a tool may return alongside its result message.
// Nil fields mean "leave unchanged". A non-nil empty Todos slice replaces
// the plan with an empty one. The nil/empty distinction carries meaning.
type StateDelta struct {
	MessagesAdd []anthropic.MessageParam
	Todos       []Todo
	Files       *FileMap
}

// MergeFiles is the reducer for the file store: key-wise union with delta
// winning on shared keys. New keys keep delta insertion order; existing keys
// keep their original position. Both inputs are left untouched.
func MergeFiles(old, delta *FileMap) *FileMap {
	if delta == nil {
		if old == nil {
			return NewFileMap()
		}
		return old
	}
	if old == nil {
		return CloneFiles(delta)
	}
	merged := CloneFiles(old)
	for pair := delta.Oldest(); pair != nil; pair = pair.Next() {
		merged.Set(pair.Key, pair.Value)
	}
	return merged
}

// MergeTodos is the reducer for the todo plan: a non-nil delta replaces the
// list wholesale (the model always emits the complete desired list), a nil
// delta keeps the old one.
func MergeTodos(old, delta []Todo) []Todo {
	if delta == nil {
		return old
	}
	next := make([]Todo, len(delta))
	copy(next, delta)
	return next
}

// AppendMessages is the reducer for the transcript: pure append, never
// truncation or reordering.
func AppendMessages(old, add []anthropic.MessageParam) []anthropic.MessageParam {
	if len(add) == 0 {
		return old
	}
	next := make([]anthropic.MessageParam, 0, len(old)+len(add))
	next = append(next, old...)
	next = append(next, add...)
	return next
}

// Apply folds a delta into the state via the field reducers and returns the
// next state. The receiver is never mutated; untouched fields are shared.
func (s WorkspaceState) Apply(delta *StateDelta) WorkspaceState {
	if delta == nil {
		return s
	}
	next := s
	if len(delta.MessagesAdd) > 0 {
		next.Messages = AppendMessages(s.Messages, delta.MessagesAdd)
	}
	if delta.Todos != nil {
		next.Todos = MergeTodos(s.Todos, delta.Todos)
	}
	if delta.Files != nil {
		next.Files = MergeFiles(s.Files, delta.Files)
	}
	return next
}

// Clone returns a state whose containers are independent of the receiver.
func (s WorkspaceState) Clone() WorkspaceState {
	cloned := WorkspaceState{
		Messages: make([]anthropic.MessageParam, len(s.Messages)),
		Todos:    make([]Todo, len(s.Todos)),
		Files:    CloneFiles(s.Files),
	}
	copy(cloned.Messages, s.Messages)
	copy(cloned.Todos, s.Todos)
	return cloned
}

// Workspace is the mutex-guarded holder for one invocation's state. The run
// loop folds every tool delta into it sequentially in call order; tools only
// ever see value snapshots, so there is no shared mutable memory between a
// tool and the workspace it reads.
type Workspace struct {
	mu    sync.Mutex
	state WorkspaceState
}

// NewWorkspace creates an empty workspace (fresh defaults for every field).
func NewWorkspace() *Workspace {
	return &Workspace{state: WorkspaceState{Files: NewFileMap()}}
}

// NewWorkspaceWith creates a workspace seeded from the given state. The seed
// is cloned, so the caller's value stays independent.
func NewWorkspaceWith(seed WorkspaceState) *Workspace {
	return &Workspace{state: seed.Clone()}
}

// Snapshot returns an independent copy of the current state.
func (w *Workspace) Snapshot() WorkspaceState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// ApplyDelta folds a delta into the workspace via the reducers.
func (w *Workspace) ApplyDelta(delta *StateDelta) {
	if delta == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = w.state.Apply(delta)
}

// History returns the current transcript.
func (w *Workspace) History() []anthropic.MessageParam {
	w.mu.Lock()
	defer w.mu.Unlock()
	msgs := make([]anthropic.MessageParam, len(w.state.Messages))
	copy(msgs, w.state.Messages)
	return msgs
}

// Append adds messages to the transcript through the messages reducer.
func (w *Workspace) Append(msgs ...anthropic.MessageParam) {
	w.ApplyDelta(&StateDelta{MessagesAdd: msgs})
}
