// Package subagent provides parent-to-child agent delegation. A parent
// Agent declares named, tool-scoped child agents; each declaration is
// materialized eagerly into a fully configured Agent inside a read-only
// Registry, which the Task tool dispatches through at run time.
package subagent

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// Definition describes a named sub-agent the parent can delegate to.
type Definition struct {
	// Name is the unique identifier used to reference this sub-agent in
	// the Task tool.
	Name string `yaml:"name"`

	// Description tells the parent model what this sub-agent is for.
	Description string `yaml:"description"`

	// Prompt is the child's system prompt.
	Prompt string `yaml:"prompt"`

	// Tools is the set of tool names granted to this sub-agent, resolved
	// against the parent's catalog. Nil means inherit every parent tool.
	Tools []string `yaml:"tools"`

	// Model overrides the parent's model. Empty means inherit.
	Model anthropic.Model `yaml:"model"`

	// MaxTurns limits the child's loop iterations. 0 means inherit.
	MaxTurns int `yaml:"max_turns"`
}
