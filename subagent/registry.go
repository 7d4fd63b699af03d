package subagent

import (
	"fmt"
	"log/slog"
	"strings"

	deepagent "github.com/armatrix/deep-agent-go"
)

// entry pairs a definition with its eagerly built child agent.
type entry struct {
	def   Definition
	agent *deepagent.Agent
}

// Registry maps sub-agent names to fully built child agents. It is
// populated once by Build and read-only afterwards, so one Registry can be
// shared across concurrent top-level invocations.
type Registry struct {
	logger  *slog.Logger
	entries map[string]*entry
	order   []string
	runFunc RunFunc
}

// NewRegistry creates an empty registry. A nil logger falls back to the
// default slog logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		entries: make(map[string]*entry),
		runFunc: defaultRunFunc,
	}
}

// Build materializes each definition into a child agent wired to a subset
// of the parent's tool catalog. Tool names that do not resolve are dropped
// with a warning, not an error; a nil Tools slice grants the full catalog.
// Later definitions with a duplicate name replace earlier ones.
func (r *Registry) Build(parent *deepagent.Agent, defs ...Definition) {
	for _, def := range defs {
		subset, missing := parent.Tools().Subset(def.Tools)
		for _, name := range missing {
			r.logger.Warn("sub-agent references unknown tool, dropping",
				"subagent", def.Name, "tool", name)
		}

		model := def.Model
		if model == "" {
			model = parent.Model()
		}
		maxTurns := def.MaxTurns
		if maxTurns == 0 {
			maxTurns = parent.MaxTurns()
		}

		child := deepagent.NewAgent(
			deepagent.WithModel(model),
			deepagent.WithSystemPrompt(def.Prompt),
			deepagent.WithMaxTurns(maxTurns),
			deepagent.WithLogger(r.logger.With("subagent", def.Name)),
		)
		child.Tools().Merge(subset)

		if _, exists := r.entries[def.Name]; !exists {
			r.order = append(r.order, def.Name)
		}
		r.entries[def.Name] = &entry{def: def, agent: child}
	}
}

// SetRunFunc replaces the function used to execute child runs. Tests use
// this to avoid real API calls.
func (r *Registry) SetRunFunc(fn RunFunc) {
	if fn != nil {
		r.runFunc = fn
	}
}

// Has reports whether a sub-agent with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Lookup returns the built child agent for a name.
func (r *Registry) Lookup(name string) (*deepagent.Agent, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.agent, true
}

// Names returns the registered sub-agent names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Describe renders a "name: description" line per sub-agent, used to build
// the Task tool description the parent model sees.
func (r *Registry) Describe() string {
	var b strings.Builder
	for _, name := range r.order {
		fmt.Fprintf(&b, "- %s: %s\n", name, r.entries[name].def.Description)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
