package deepagent

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileMapOf(pairs ...string) *FileMap {
	m := NewFileMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func TestMergeFiles_Union(t *testing.T) {
	old := fileMapOf("/a.txt", "a", "/b.txt", "b")
	delta := fileMapOf("/b.txt", "B", "/c.txt", "c")

	merged := MergeFiles(old, delta)

	assert.Equal(t, []string{"/a.txt", "/b.txt", "/c.txt"}, FilePaths(merged))
	v, _ := merged.Get("/a.txt")
	assert.Equal(t, "a", v)
	v, _ = merged.Get("/b.txt")
	assert.Equal(t, "B", v, "delta wins on shared keys")
	v, _ = merged.Get("/c.txt")
	assert.Equal(t, "c", v)
}

func TestMergeFiles_NilDelta(t *testing.T) {
	old := fileMapOf("/a.txt", "a")
	assert.Same(t, old, MergeFiles(old, nil))
}

func TestMergeFiles_NilOld(t *testing.T) {
	delta := fileMapOf("/a.txt", "a")
	merged := MergeFiles(nil, delta)
	v, ok := merged.Get("/a.txt")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.NotSame(t, delta, merged, "delta is cloned, not adopted")
}

func TestMergeFiles_BothNil(t *testing.T) {
	merged := MergeFiles(nil, nil)
	require.NotNil(t, merged)
	assert.Equal(t, 0, merged.Len())
}

func TestMergeFiles_InputsUntouched(t *testing.T) {
	old := fileMapOf("/a.txt", "a")
	delta := fileMapOf("/a.txt", "A")

	MergeFiles(old, delta)

	v, _ := old.Get("/a.txt")
	assert.Equal(t, "a", v)
	v, _ = delta.Get("/a.txt")
	assert.Equal(t, "A", v)
}

func TestMergeTodos_NonNilReplacesWholesale(t *testing.T) {
	old := []Todo{{Content: "a", Status: TodoPending}, {Content: "b", Status: TodoPending}}
	delta := []Todo{{Content: "c", Status: TodoCompleted}}

	merged := MergeTodos(old, delta)
	require.Len(t, merged, 1)
	assert.Equal(t, "c", merged[0].Content)
}

func TestMergeTodos_EmptyNonNilClears(t *testing.T) {
	old := []Todo{{Content: "x", Status: TodoPending}}

	merged := MergeTodos(old, []Todo{})
	require.NotNil(t, merged)
	assert.Empty(t, merged)
}

func TestMergeTodos_NilKeepsOld(t *testing.T) {
	old := []Todo{{Content: "x", Status: TodoPending}}
	assert.Equal(t, old, MergeTodos(old, nil))
}

func TestAppendMessages_PreservesOrder(t *testing.T) {
	m1 := anthropic.NewUserMessage(anthropic.NewTextBlock("one"))
	m2 := anthropic.NewUserMessage(anthropic.NewTextBlock("two"))
	m3 := anthropic.NewUserMessage(anthropic.NewTextBlock("three"))

	merged := AppendMessages([]anthropic.MessageParam{m1}, []anthropic.MessageParam{m2, m3})
	require.Len(t, merged, 3)
	assert.Equal(t, m1, merged[0])
	assert.Equal(t, m2, merged[1])
	assert.Equal(t, m3, merged[2])
}

func TestAppendMessages_EmptyAddSharesOld(t *testing.T) {
	old := []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("x"))}
	merged := AppendMessages(old, nil)
	assert.Len(t, merged, 1)
}

func TestWorkspaceState_Apply_NilDelta(t *testing.T) {
	state := WorkspaceState{Files: fileMapOf("/a.txt", "a")}
	next := state.Apply(nil)
	assert.Same(t, state.Files, next.Files)
}

func TestWorkspaceState_Apply_AllFields(t *testing.T) {
	state := WorkspaceState{
		Messages: []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock("hi"))},
		Todos:    []Todo{{Content: "old", Status: TodoPending}},
		Files:    fileMapOf("/a.txt", "a"),
	}

	next := state.Apply(&StateDelta{
		MessagesAdd: []anthropic.MessageParam{anthropic.NewAssistantMessage(anthropic.NewTextBlock("yo"))},
		Todos:       []Todo{{Content: "new", Status: TodoInProgress}},
		Files:       fileMapOf("/b.txt", "b"),
	})

	assert.Len(t, next.Messages, 2)
	require.Len(t, next.Todos, 1)
	assert.Equal(t, "new", next.Todos[0].Content)
	assert.Equal(t, []string{"/a.txt", "/b.txt"}, FilePaths(next.Files))

	// Original state is a value; applying produced a new one.
	assert.Len(t, state.Messages, 1)
	assert.Equal(t, "old", state.Todos[0].Content)
	assert.Equal(t, []string{"/a.txt"}, FilePaths(state.Files))
}

func TestWorkspaceState_Apply_UntouchedFieldsShared(t *testing.T) {
	state := WorkspaceState{
		Todos: []Todo{{Content: "keep", Status: TodoPending}},
		Files: fileMapOf("/a.txt", "a"),
	}

	next := state.Apply(&StateDelta{Files: fileMapOf("/b.txt", "b")})
	assert.Equal(t, state.Todos, next.Todos)
}

func TestWorkspace_ApplyDelta_SequentialFolding(t *testing.T) {
	ws := NewWorkspace()

	ws.ApplyDelta(&StateDelta{Files: fileMapOf("/a.txt", "first")})
	ws.ApplyDelta(&StateDelta{Files: fileMapOf("/b.txt", "b")})
	ws.ApplyDelta(&StateDelta{Files: fileMapOf("/a.txt", "second")})

	state := ws.Snapshot()
	assert.Equal(t, []string{"/a.txt", "/b.txt"}, FilePaths(state.Files))
	v, _ := state.Files.Get("/a.txt")
	assert.Equal(t, "second", v, "last applied wins in call order")
}

func TestWorkspace_SnapshotIndependence(t *testing.T) {
	ws := NewWorkspace()
	ws.ApplyDelta(&StateDelta{Files: fileMapOf("/a.txt", "a")})

	snap := ws.Snapshot()
	snap.Files.Set("/a.txt", "mutated")
	snap.Files.Set("/new.txt", "new")

	state := ws.Snapshot()
	v, _ := state.Files.Get("/a.txt")
	assert.Equal(t, "a", v)
	_, ok := state.Files.Get("/new.txt")
	assert.False(t, ok)
}

func TestWorkspace_AppendRoutesThroughReducer(t *testing.T) {
	ws := NewWorkspace()
	ws.Append(anthropic.NewUserMessage(anthropic.NewTextBlock("one")))
	ws.Append(anthropic.NewUserMessage(anthropic.NewTextBlock("two")))

	assert.Len(t, ws.History(), 2)
}

func TestNewWorkspaceWith_ClonesSeed(t *testing.T) {
	seed := WorkspaceState{Files: fileMapOf("/a.txt", "a")}
	ws := NewWorkspaceWith(seed)

	seed.Files.Set("/a.txt", "mutated after seeding")

	v, _ := ws.Snapshot().Files.Get("/a.txt")
	assert.Equal(t, "a", v)
}
