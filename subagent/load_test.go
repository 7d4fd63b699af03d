package subagent

import (
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefinitions(t *testing.T) {
	doc := `
- name: researcher
  description: Gathers sources on a topic
  prompt: You research topics and write findings to files.
  tools:
    - Read
    - Write
  model: claude-haiku-4-5
  max_turns: 5
- name: critic
  description: Reviews drafts
  prompt: You critique drafts.
`
	defs, err := LoadDefinitions(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "researcher", defs[0].Name)
	assert.Equal(t, []string{"Read", "Write"}, defs[0].Tools)
	assert.Equal(t, anthropic.Model("claude-haiku-4-5"), defs[0].Model)
	assert.Equal(t, 5, defs[0].MaxTurns)

	assert.Equal(t, "critic", defs[1].Name)
	assert.Nil(t, defs[1].Tools)
}

func TestLoadDefinitions_MissingName(t *testing.T) {
	doc := `
- description: no name
  prompt: p
`
	_, err := LoadDefinitions(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadDefinitions_MissingPrompt(t *testing.T) {
	doc := `
- name: a
  description: no prompt
`
	_, err := LoadDefinitions(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt is required")
}

func TestLoadDefinitions_InvalidYAML(t *testing.T) {
	_, err := LoadDefinitions(strings.NewReader("not: [valid"))
	require.Error(t, err)
}
