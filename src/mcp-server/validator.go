// Copyright (c) 2025 Theycallmeholla All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationOutcome is the result of checking a raw argument bag against a
// tool descriptor's input schema. On acceptance Args carries the coerced bag
// (declared fields only, defaults filled in); on rejection Violations carries
// every constraint that was broken.
type ValidationOutcome struct {
	Args       map[string]any
	Violations []Violation
}

// Accepted reports whether the argument bag passed validation.
func (o ValidationOutcome) Accepted() bool { return len(o.Violations) == 0 }

// validateArguments decides acceptance of rawArgs against the descriptor's
// declared input schema.
//
// Policy:
//   - Required fields must be present and non-null; absence is a rejection,
//     never a default-fill.
//   - Fields with a declared default are filled with it when absent.
//   - A present field whose type mismatches the declared type is a rejection;
//     there is no silent coercion across type families.
//   - Unknown fields (not declared in the schema) are dropped, not rejected.
//
// Required/null checks run first so the violation wording is stable; the
// remaining structural checks are delegated to the JSON Schema engine, which
// reports all errors rather than stopping at the first.
func validateArguments(schema mcp.ToolInputSchema, rawArgs map[string]any) ValidationOutcome {
	// Keep declared fields only. Unknown fields are forward-compatibility
	// noise, never an error.
	args := make(map[string]any, len(schema.Properties))
	for name := range schema.Properties {
		if v, ok := rawArgs[name]; ok {
			args[name] = v
		}
	}

	var violations []Violation
	for _, name := range schema.Required {
		v, present := args[name]
		switch {
		case !present:
			violations = append(violations, Violation{Field: name, Reason: "required field is missing"})
		case v == nil:
			violations = append(violations, Violation{Field: name, Reason: "required field must not be null"})
		}
	}

	// Fill declared defaults for absent optional fields.
	for name, raw := range schema.Properties {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if _, present := args[name]; present {
			continue
		}
		if def, ok := prop["default"]; ok {
			args[name] = def
		}
	}

	// Structural validation via the JSON Schema engine. Required is handled
	// above with stable wording, so it is deliberately omitted here.
	schemaDoc := map[string]any{
		"type":       "object",
		"properties": schema.Properties,
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schemaDoc), gojsonschema.NewGoLoader(args))
	if err != nil {
		violations = append(violations, Violation{Field: "(schema)", Reason: err.Error()})
		return ValidationOutcome{Violations: violations}
	}
	for _, re := range result.Errors() {
		// Skip null-value errors already reported by the required pass.
		if reportedNull(violations, re.Field()) {
			continue
		}
		violations = append(violations, Violation{Field: re.Field(), Reason: re.Description()})
	}

	if len(violations) > 0 {
		return ValidationOutcome{Violations: violations}
	}
	return ValidationOutcome{Args: args}
}

// reportedNull reports whether the required pass already produced a
// must-not-be-null violation for the field.
func reportedNull(violations []Violation, field string) bool {
	for _, v := range violations {
		if v.Field == field && v.Reason == "required field must not be null" {
			return true
		}
	}
	return false
}
