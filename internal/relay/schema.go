package relay

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const contactSchemaURL = "contact-form.json"

const contactSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name", "email", "phone", "message"],
	"properties": {
		"name":    {"type": "string"},
		"email":   {"type": "string"},
		"phone":   {"type": "string"},
		"message": {"type": "string"}
	}
}`

// compileContactSchema builds the validator for relay payloads.
func compileContactSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(contactSchemaURL, strings.NewReader(contactSchema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(contactSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile contact schema: %w", err)
	}
	return schema, nil
}

// decodeSubmission validates body against the schema and decodes it.
func decodeSubmission(schema *jsonschema.Schema, body []byte) (Submission, error) {
	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Submission{}, fmt.Errorf("request body is not valid JSON: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return Submission{}, fmt.Errorf("request body does not match schema: %w", err)
	}

	var s Submission
	if err := json.Unmarshal(body, &s); err != nil {
		return Submission{}, fmt.Errorf("request body is not valid JSON: %w", err)
	}
	return s, nil
}
