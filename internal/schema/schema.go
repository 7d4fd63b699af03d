// Package schema generates Anthropic tool input schemas from Go structs.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// Generate produces an anthropic.ToolInputSchemaParam from a Go struct type T.
// It uses struct tags (json, jsonschema) to derive the JSON Schema.
func Generate[T any]() anthropic.ToolInputSchemaParam {
	var zero T
	s := jsonschema.Reflect(&zero)

	root := resolveRef(s, s.Definitions)

	return anthropic.ToolInputSchemaParam{
		Properties: schemaProperties(root, s.Definitions),
		Required:   root.Required,
	}
}

// resolveRef follows a "#/$defs/Name" reference into defs. Schemas without
// a ref are returned as-is.
func resolveRef(s *jsonschema.Schema, defs jsonschema.Definitions) *jsonschema.Schema {
	if s == nil || s.Ref == "" || defs == nil {
		return s
	}
	name := s.Ref[strings.LastIndex(s.Ref, "/")+1:]
	if def, ok := defs[name]; ok {
		return def
	}
	return s
}

// schemaProperties converts an ordered map of properties into a plain
// map[string]any suitable for the Anthropic API.
func schemaProperties(s *jsonschema.Schema, defs jsonschema.Definitions) map[string]any {
	if s == nil || s.Properties == nil {
		return nil
	}
	props := make(map[string]any)
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = propertySchema(pair.Value, defs)
	}
	return props
}

// propertySchema converts a single property schema to a serializable map,
// resolving $defs references so nested struct and slice-of-struct inputs
// (the todo list) render inline.
func propertySchema(s *jsonschema.Schema, defs jsonschema.Definitions) map[string]any {
	s = resolveRef(s, defs)
	m := make(map[string]any)

	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Default != nil {
		m["default"] = s.Default
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}

	// Pointer types: invopop/jsonschema uses anyOf for nullable types.
	if len(s.AnyOf) > 0 {
		for _, sub := range s.AnyOf {
			if sub.Type != "null" && sub.Type != "" {
				m["type"] = sub.Type
				break
			}
		}
	}

	if s.Properties != nil {
		m["type"] = "object"
		m["properties"] = schemaProperties(s, defs)
		if len(s.Required) > 0 {
			m["required"] = s.Required
		}
	}

	if s.Items != nil {
		m["items"] = propertySchema(s.Items, defs)
	}

	return m
}

// GenerateJSON is a convenience that returns the schema as raw JSON bytes.
func GenerateJSON[T any]() (json.RawMessage, error) {
	param := Generate[T]()
	return json.Marshal(param)
}
