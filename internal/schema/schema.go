// Package schema declares the JSON shapes flows accept and return, and
// validates values against them.
package schema

import (
	"strconv"
	"strings"
)

// Schema is the JSON-schema subset flows need. Properties keep their
// declaration order so prompts, tool definitions and listings are stable.
type Schema struct {
	Type        string
	Description string
	Properties  []Property
	Items       *Schema
	Enum        []string
	Minimum     *float64
	Maximum     *float64
	MinLength   *int
	Pattern     string
	MinItems    *int
	MaxItems    *int

	// Message replaces the validator's wording for constraint failures on
	// this node; Missing replaces it when a parent omits the node.
	Message string
	Missing string

	optional bool
}

type Property struct {
	Name   string
	Schema *Schema
}

// P pairs a property name with its schema.
func P(name string, s *Schema) Property { return Property{Name: name, Schema: s} }

func Object(description string, props ...Property) *Schema {
	return &Schema{Type: "object", Description: description, Properties: props}
}

func String(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}

func Number(description string) *Schema {
	return &Schema{Type: "number", Description: description}
}

func Integer(description string) *Schema {
	return &Schema{Type: "integer", Description: description}
}

func Boolean(description string) *Schema {
	return &Schema{Type: "boolean", Description: description}
}

func Array(description string, items *Schema) *Schema {
	return &Schema{Type: "array", Description: description, Items: items}
}

// Optional marks the schema as not required by its parent object.
func (s *Schema) Optional() *Schema { s.optional = true; return s }

// IsOptional reports whether the parent object may omit this property.
func (s *Schema) IsOptional() bool { return s.optional }

func (s *Schema) Min(v float64) *Schema { s.Minimum = &v; return s }

func (s *Schema) Max(v float64) *Schema { s.Maximum = &v; return s }

func (s *Schema) Range(lo, hi float64) *Schema { return s.Min(lo).Max(hi) }

// NonEmpty requires at least one character.
func (s *Schema) NonEmpty() *Schema { n := 1; s.MinLength = &n; return s }

func (s *Schema) OneOf(values ...string) *Schema { s.Enum = values; return s }

func (s *Schema) Matching(pattern string) *Schema { s.Pattern = pattern; return s }

// Len fixes the array length.
func (s *Schema) Len(n int) *Schema { s.MinItems = &n; s.MaxItems = &n; return s }

func (s *Schema) Msg(message string) *Schema { s.Message = message; return s }

func (s *Schema) MissingMsg(message string) *Schema { s.Missing = message; return s }

// Required lists the names of non-optional properties in order.
func (s *Schema) Required() []string {
	var out []string
	for _, p := range s.Properties {
		if !p.Schema.optional {
			out = append(out, p.Name)
		}
	}
	return out
}

// Property returns the named property schema, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// Lookup walks a dotted path such as "crops.0.cropName".
func (s *Schema) Lookup(path string) *Schema {
	cur := s
	if path == "" || path == "(root)" {
		return cur
	}
	for _, seg := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}
		if _, err := strconv.Atoi(seg); err == nil && cur.Type == "array" {
			cur = cur.Items
			continue
		}
		cur = cur.Property(seg)
	}
	return cur
}

// ToMap renders the schema as a JSON-schema document.
func (s *Schema) ToMap() map[string]any {
	m := map[string]any{}
	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for _, p := range s.Properties {
			props[p.Name] = p.Schema.ToMap()
		}
		m["properties"] = props
		if req := s.Required(); len(req) > 0 {
			m["required"] = req
		}
	}
	if s.Items != nil {
		m["items"] = s.Items.ToMap()
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if s.Minimum != nil {
		m["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		m["maximum"] = *s.Maximum
	}
	if s.MinLength != nil {
		m["minLength"] = *s.MinLength
	}
	if s.Pattern != "" {
		m["pattern"] = s.Pattern
	}
	if s.MinItems != nil {
		m["minItems"] = *s.MinItems
	}
	if s.MaxItems != nil {
		m["maxItems"] = *s.MaxItems
	}
	return m
}
