package subagent

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefinitions parses sub-agent definitions from YAML. The document is
// a list of definition objects (name, description, prompt, tools, model,
// max_turns).
func LoadDefinitions(r io.Reader) ([]Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}

	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}

	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("definition %d: name is required", i)
		}
		if def.Prompt == "" {
			return nil, fmt.Errorf("definition %q: prompt is required", def.Name)
		}
	}
	return defs, nil
}

// LoadDefinitionsFile reads sub-agent definitions from a YAML file.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open definitions file: %w", err)
	}
	defer f.Close()
	return LoadDefinitions(f)
}
