package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	MinScore = 0
	MaxScore = 100
)

var (
	compiled     *jsonschema.Schema
	compileErr   error
	compileOnce  sync.Once
	schemaSource = "cv_review.json"
)

// CVReviewJSONSchema returns the review shape as a JSON Schema document.
func CVReviewJSONSchema() map[string]any {
	return toJSONSchema(cvReview)
}

func toJSONSchema(f field) map[string]any {
	s := map[string]any{}
	if f.description != "" {
		s["description"] = f.description
	}
	switch f.kind {
	case kindString:
		s["type"] = "string"
	case kindScore:
		s["type"] = "integer"
		s["minimum"] = MinScore
		s["maximum"] = MaxScore
	case kindStringList:
		s["type"] = "array"
		s["items"] = map[string]any{"type": "string"}
	case kindObject:
		s["type"] = "object"
		props := make(map[string]any, len(f.children))
		required := []string{}
		for _, child := range f.children {
			props[child.name] = toJSONSchema(child)
			if child.required {
				required = append(required, child.name)
			}
		}
		s["properties"] = props
		if len(required) > 0 {
			s["required"] = required
		}
	}
	return s
}

func compile() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(CVReviewJSONSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaSource, bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaSource)
	})
	return compiled, compileErr
}

// Validate checks a serialized review against the CV review schema.
func Validate(data []byte) error {
	s, err := compile()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal review: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("review does not match schema: %w", err)
	}
	return nil
}
