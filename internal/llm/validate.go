package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CompileSchema turns a schema map into a reusable validator.
func CompileSchema(name string, schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", name, err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add %s: %w", name, err)
	}
	return c.Compile(name)
}

var resumeSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return CompileSchema("resume.json", ResumeJSONSchema())
})

// ValidateResumeJSON checks a structured answer against ResumeJSONSchema.
// The schema is compiled on first use and shared afterwards.
func ValidateResumeJSON(data []byte) error {
	schema, err := resumeSchema()
	if err != nil {
		return fmt.Errorf("resume schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("answer is not json: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("answer does not match resume schema: %w", err)
	}
	return nil
}
