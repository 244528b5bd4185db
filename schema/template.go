package schema

import (
	_ "embed"
)

//go:embed template.embedded.schema.json
var embeddedTemplateSchemaData []byte

// TemplateValidator validates template descriptors against the embedded
// template.json schema.
type TemplateValidator struct {
	validator *Validator
}

// NewTemplateValidator creates a validator for template descriptor files.
func NewTemplateValidator() (*TemplateValidator, error) {
	schema, err := compileEmbedded("template.json", embeddedTemplateSchemaData)
	if err != nil {
		return nil, err
	}
	return &TemplateValidator{validator: &Validator{schema: schema}}, nil
}

// Validate validates a parsed template descriptor against the schema.
func (v *TemplateValidator) Validate(descriptor interface{}) error {
	return v.validator.Validate(descriptor)
}
