package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed sprout.embedded.schema.json
var embeddedSchemaData []byte

// Validator validates configuration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	schema, err := compileEmbedded("sprout.json", embeddedSchemaData)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: schema}, nil
}

// Validate validates configuration data against the schema.
// It expects configData to be any struct or map that can be marshaled to YAML.
func (v *Validator) Validate(configData interface{}) error {
	dataToValidate, err := toJSONValue(configData)
	if err != nil {
		return err
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// compileEmbedded compiles an embedded schema document.
func compileEmbedded(name string, data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return schema, nil
}

// toJSONValue converts a Go value into the plain JSON shape the schema
// library expects. Round-tripping through YAML first honors yaml struct
// tags (including inline maps), then through JSON to normalize numbers.
func toJSONValue(data interface{}) (interface{}, error) {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data for validation: %w", err)
	}

	var intermediate interface{}
	if err := yaml.Unmarshal(yamlData, &intermediate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data for validation: %w", err)
	}

	jsonData, err := json.Marshal(intermediate)
	if err != nil {
		return nil, fmt.Errorf("failed to convert data to JSON for validation: %w", err)
	}

	var result interface{}
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON for validation: %w", err)
	}

	return result, nil
}

// formatValidationError renders schema violations as a readable list.
func formatValidationError(err error) error {
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		var errorMessages []string
		collectErrors(validationErr, &errorMessages)
		return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
	}
	return fmt.Errorf("schema validation failed: %w", err)
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
