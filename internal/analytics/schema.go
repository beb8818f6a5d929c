package analytics

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

type PayloadKind string

const (
	KindAnalytics PayloadKind = "analytics"
	KindResult    PayloadKind = "result"
)

// PayloadError reports a server payload that does not match the shape the
// presentation layer relies on.
type PayloadError struct {
	Kind PayloadKind
	Err  error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("unexpected %s payload: %v", e.Kind, e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

var schemaDefinitions = map[PayloadKind]string{
	KindAnalytics: `{
		"type": "object",
		"required": ["total_candidates", "pass_rate", "average_score"],
		"properties": {
			"total_candidates": {"type": "integer", "minimum": 0},
			"completion_rate": {"type": "number", "minimum": 0, "maximum": 1},
			"pass_rate": {"type": "number", "minimum": 0, "maximum": 1},
			"average_score": {"type": "number"},
			"average_completion_time": {"type": "number", "minimum": 0},
			"score_distribution": {
				"type": "object",
				"additionalProperties": {"type": "integer", "minimum": 0}
			},
			"question_analytics": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["question_id", "content"],
					"properties": {
						"question_id": {"type": "string"},
						"content": {"type": "string"},
						"average_score": {"type": "number"},
						"success_rate": {"type": "number", "minimum": 0, "maximum": 1},
						"average_time": {"type": "number", "minimum": 0}
					}
				}
			},
			"skill_breakdown": {
				"type": "object",
				"additionalProperties": {"type": "number"}
			}
		}
	}`,
	KindResult: `{
		"type": "object",
		"required": ["total_score", "passing_score", "status"],
		"properties": {
			"assessment_id": {"type": "string"},
			"assessment_title": {"type": "string"},
			"total_score": {"type": "number"},
			"passing_score": {"type": "number"},
			"status": {"enum": ["passed", "failed"]},
			"time_spent": {"type": "integer", "minimum": 0},
			"question_results": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["id", "points", "earned_points"],
					"properties": {
						"id": {"type": "string"},
						"question_type": {"enum": ["mcq", "coding", "essay", "file_upload"]},
						"points": {"type": "number"},
						"earned_points": {"type": "number"},
						"time_spent": {"type": "integer", "minimum": 0},
						"code_execution": {
							"type": ["object", "null"],
							"properties": {
								"test_results": {"type": "array"}
							}
						}
					}
				}
			},
			"skill_scores": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["name", "score"],
					"properties": {
						"score": {"type": "number", "minimum": 0, "maximum": 100}
					}
				}
			},
			"strengths": {"type": "array", "items": {"type": "string"}},
			"weaknesses": {"type": "array", "items": {"type": "string"}}
		}
	}`,
}

var schemaCache sync.Map // map[PayloadKind]*jsonschema.Schema

// ValidatePayload checks raw JSON against the schema for kind.
func ValidatePayload(kind PayloadKind, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &PayloadError{Kind: kind, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(kind)
	if err != nil {
		return &PayloadError{Kind: kind, Err: err}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &PayloadError{Kind: kind, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compiledSchema(kind PayloadKind) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(kind); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := schemaDefinitions[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for %q", kind)
	}
	var defParsed any
	if err := json.Unmarshal([]byte(def), &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", kind)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(kind, compiled)
	return compiled, nil
}
