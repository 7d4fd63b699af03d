package deepagent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/armatrix/deep-agent-go/internal/schema"
)

// Tool is the generic interface for workspace tools. The type parameter T
// defines the input struct deserialized from the model's JSON arguments.
// A tool returns a result message and, optionally, a StateDelta the run
// loop folds into the workspace; tools never mutate state directly.
type Tool[T any] interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input T) (*ToolResult, error)
}

// ToolResult is the output of a tool execution: content for the transcript
// plus an optional workspace delta.
type ToolResult struct {
	Content []anthropic.ContentBlockParamUnion
	IsError bool
	Delta   *StateDelta
}

// TextResult is a convenience constructor for a text-only tool result.
func TextResult(text string) *ToolResult {
	return &ToolResult{
		Content: []anthropic.ContentBlockParamUnion{
			anthropic.NewTextBlock(text),
		},
	}
}

// ErrorResult is a convenience constructor for an error tool result.
// Errors always travel as readable strings, never as raised exceptions.
// The model is expected to read the message and retry.
func ErrorResult(text string) *ToolResult {
	return &ToolResult{
		Content: []anthropic.ContentBlockParamUnion{
			anthropic.NewTextBlock(text),
		},
		IsError: true,
	}
}

// DeltaResult is a convenience constructor for a result carrying a
// workspace delta alongside its message.
func DeltaResult(text string, delta *StateDelta) *ToolResult {
	r := TextResult(text)
	r.Delta = delta
	return r
}

// toolEntry is the type-erased wrapper stored in the registry.
type toolEntry struct {
	name        string
	description string
	schema      anthropic.ToolInputSchemaParam
	execute     func(ctx context.Context, raw json.RawMessage) (*ToolResult, error)
}

// ToolRegistry is the catalog of tools available to one agent. It is
// concurrent-safe, but by convention it is populated at construction time
// and read-only afterwards, so it can be shared across invocations.
type ToolRegistry struct {
	mu    sync.RWMutex
	tools map[string]*toolEntry
	order []string // preserve registration order
}

// NewToolRegistry creates a new empty ToolRegistry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]*toolEntry),
	}
}

// RegisterTool registers a generic tool into the registry.
// The input type T is used to auto-generate a JSON Schema.
func RegisterTool[T any](r *ToolRegistry, tool Tool[T]) {
	s := schema.Generate[T]()
	entry := &toolEntry{
		name:        tool.Name(),
		description: tool.Description(),
		schema:      s,
		execute: func(ctx context.Context, raw json.RawMessage) (*ToolResult, error) {
			var input T
			if err := json.Unmarshal(raw, &input); err != nil {
				return ErrorResult(fmt.Sprintf("invalid input: %s", err.Error())), nil
			}
			return tool.Execute(ctx, input)
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(entry)
}

// RegisterRaw registers a tool with a pre-built schema and execute function,
// for dynamic tool sources that don't use the generic Tool[T] interface.
func (r *ToolRegistry) RegisterRaw(
	name, description string,
	inputSchema anthropic.ToolInputSchemaParam,
	execute func(ctx context.Context, raw json.RawMessage) (*ToolResult, error),
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(&toolEntry{
		name:        name,
		description: description,
		schema:      inputSchema,
		execute:     execute,
	})
}

// put inserts an entry, preserving first-registration order. Callers hold mu.
func (r *ToolRegistry) put(entry *toolEntry) {
	if _, exists := r.tools[entry.name]; !exists {
		r.order = append(r.order, entry.name)
	}
	r.tools[entry.name] = entry
}

// Execute runs a tool by name with the given raw JSON input.
func (r *ToolRegistry) Execute(ctx context.Context, name string, input json.RawMessage) (*ToolResult, error) {
	r.mu.RLock()
	entry, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return entry.execute(ctx, input)
}

// ListForAPI returns the registered tools in the format expected by the API.
func (r *ToolRegistry) ListForAPI() []anthropic.ToolUnionParam {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]anthropic.ToolUnionParam, 0, len(r.tools))
	for _, name := range r.order {
		entry := r.tools[name]
		result = append(result, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        entry.name,
				Description: param.NewOpt(entry.description),
				InputSchema: entry.schema,
			},
		})
	}
	return result
}

// Has reports whether a tool with the given name is registered.
func (r *ToolRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Names returns the names of all registered tools in registration order.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Subset returns a new registry containing only the named tools, in the
// receiver's registration order, plus the list of names that did not
// resolve. A nil names slice selects the entire catalog, the convention
// a sub-agent definition uses to inherit every parent tool.
func (r *ToolRegistry) Subset(names []string) (*ToolRegistry, []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub := NewToolRegistry()
	if names == nil {
		for _, name := range r.order {
			sub.put(r.tools[name])
		}
		return sub, nil
	}

	wanted := make(map[string]bool, len(names))
	var missing []string
	for _, name := range names {
		if _, ok := r.tools[name]; ok {
			wanted[name] = true
		} else {
			missing = append(missing, name)
		}
	}
	for _, name := range r.order {
		if wanted[name] {
			sub.put(r.tools[name])
		}
	}
	return sub, missing
}

// Merge copies every entry of src into the receiver, preserving src's order.
func (r *ToolRegistry) Merge(src *ToolRegistry) {
	if src == nil {
		return
	}
	src.mu.RLock()
	entries := make([]*toolEntry, 0, len(src.order))
	for _, name := range src.order {
		entries = append(entries, src.tools[name])
	}
	src.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range entries {
		r.put(entry)
	}
}
