package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ContentType identifies a daily content bucket entry.
type ContentType string

const (
	ContentKeypoint    ContentType = "keypoint"
	ContentQuiz        ContentType = "quiz"
	ContentUserAnswers ContentType = "user_answers"
	ContentResults     ContentType = "results"
)

// Valid reports whether the content type is one of the four bucket kinds.
func (c ContentType) Valid() bool {
	switch c {
	case ContentKeypoint, ContentQuiz, ContentUserAnswers, ContentResults:
		return true
	}
	return false
}

// questionTypes are the quiz question kinds the generator may emit.
var questionTypes = []any{"multiple_choice", "fill_blank", "dialogue_completion", "chinglish_fix"}

// keypointSchema validates generated knowledge-point payloads.
var keypointSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"date":              map[string]any{"type": "string"},
		"topic_fingerprint": map[string]any{"type": "string"},
		"category":          map[string]any{"type": "string", "enum": []any{"oral", "written"}},
		"topic":             map[string]any{"type": "string"},
		"scene":             map[string]any{"type": "string"},
		"expressions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"phrase":     map[string]any{"type": "string"},
					"meaning":    map[string]any{"type": "string"},
					"usage_note": map[string]any{"type": "string"},
				},
				"required": []any{"phrase"},
			},
		},
		"chinglish_trap": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"wrong":   map[string]any{"type": "string"},
				"correct": map[string]any{"type": "string"},
			},
			"required": []any{"wrong", "correct"},
		},
		"examples":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"alternatives": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required": []any{"date", "topic_fingerprint", "category", "topic", "expressions"},
}

// quizSchema validates generated quiz payloads.
var quizSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"quiz_date":            map[string]any{"type": "string"},
		"keypoint_fingerprint": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":             map[string]any{"type": []any{"integer", "string"}},
					"type":           map[string]any{"type": "string", "enum": questionTypes},
					"question":       map[string]any{"type": "string"},
					"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"correct_answer": map[string]any{"type": "string"},
					"xp_value":       map[string]any{"type": "integer", "minimum": 0},
					"explanation":    map[string]any{"type": "string"},
				},
				"required": []any{"id", "type", "question", "correct_answer"},
			},
		},
		"total_xp":      map[string]any{"type": "integer"},
		"passing_score": map[string]any{"type": "integer"},
	},
	"required": []any{"quiz_date", "questions"},
}

// userAnswersSchema validates submitted answer payloads.
var userAnswersSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"quiz_date": map[string]any{"type": "string"},
		"answers": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
	"required": []any{"quiz_date", "answers"},
}

// resultsSchema validates persisted grading results.
var resultsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"date":            map[string]any{"type": "string"},
		"quiz_date":       map[string]any{"type": "string"},
		"total_questions": map[string]any{"type": "integer"},
		"correct_count":   map[string]any{"type": "integer"},
		"base_xp":         map[string]any{"type": "integer"},
		"total_xp_earned": map[string]any{"type": "integer"},
		"accuracy":        map[string]any{"type": "number"},
		"passed":          map[string]any{"type": "boolean"},
	},
	"required": []any{"date", "total_questions", "correct_count", "total_xp_earned", "passed"},
}

var contentSchemas = map[ContentType]map[string]any{
	ContentKeypoint:    keypointSchema,
	ContentQuiz:        quizSchema,
	ContentUserAnswers: userAnswersSchema,
	ContentResults:     resultsSchema,
}

// schemaCache caches compiled JSON schemas by content type.
var schemaCache sync.Map // map[ContentType]*jsonschema.Schema

// validateContent checks raw JSON against the content type's schema.
// Returns *SchemaValidationError on mismatch.
func validateContent(ct ContentType, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &SchemaValidationError{ContentType: ct, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(ct)
	if err != nil {
		return &SchemaValidationError{ContentType: ct, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &SchemaValidationError{
			ContentType: ct,
			Causes:      validationCauses(err),
			Err:         err,
		}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(ct ContentType) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(ct); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := contentSchemas[ct]
	if !ok {
		return nil, fmt.Errorf("no schema registered for %q", ct)
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", ct)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(ct, compiled)
	return compiled, nil
}

// validationCauses flattens a jsonschema validation error into the
// offending-field messages callers surface to the generator.
func validationCauses(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	leaves := collectLeaves(ve)
	causes := make([]string, 0, len(leaves))
	for _, l := range leaves {
		loc := "/"
		if len(l.InstanceLocation) > 0 {
			loc = ""
			for _, seg := range l.InstanceLocation {
				loc += "/" + seg
			}
		}
		causes = append(causes, fmt.Sprintf("%s: %v", loc, l.ErrorKind))
	}
	return causes
}

func collectLeaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, collectLeaves(c)...)
	}
	return out
}
