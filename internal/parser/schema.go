package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resultSchemaURL = "heatsheet-result.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// BuildResultJSONSchema returns the JSON-Schema for a parse result document.
// Times may be empty but otherwise must be dot-separated.
func BuildResultJSONSchema() map[string]any {
	timeProp := map[string]any{"type": "string", "pattern": `^(\d{1,2}:\d{2}\.\d{2})?$`}
	lane := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bib":             map[string]any{"type": "string", "pattern": `^\d*$`},
			"name":            map[string]any{"type": "string", "minLength": 1},
			"category":        map[string]any{"type": "string"},
			"nation":          map[string]any{"type": "string", "pattern": `^([A-Za-z]{3})?$`},
			"personal_record": timeProp,
			"season_best":     timeProp,
			"race_time":       timeProp,
		},
		"required": []string{"name"},
	}
	heat := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"number": map[string]any{"type": "integer", "minimum": 1},
			"lane_a": lane,
			"lane_b": lane,
		},
		"required": []string{"number", "lane_a", "lane_b"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"event":    map[string]any{"type": "string", "minLength": 1},
					"distance": map[string]any{"type": "string", "minLength": 1},
					"extras":   map[string]any{"type": "string"},
				},
				"required": []string{"event", "distance"},
			},
			"heats": map[string]any{"type": "array", "items": heat},
		},
		"required": []string{"metadata", "heats"},
	}
}

func resultSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		b, err := json.Marshal(BuildResultJSONSchema())
		if err != nil {
			schemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(resultSchemaURL, bytes.NewReader(b)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(resultSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateResult checks a parse result against BuildResultJSONSchema.
// A failure means the sheet needs human review, not that parsing failed.
func ValidateResult(res Result) error {
	schema, err := resultSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
