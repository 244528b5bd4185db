package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// extensionSchemaFiles maps extension config keys to their generated
// schema definitions. Run the per-extension generators first.
var extensionSchemaFiles = map[string]string{
	"logging": "schema/definitions/logging.schema.json",
}

func main() {
	log.Println("Starting schema composition...")

	baseSchemaPath := "schema/definitions/base.schema.json"
	outputPath := "schema/sprout.embedded.schema.json"

	composed, err := composeSchema(baseSchemaPath)
	if err != nil {
		log.Fatalf("Failed to compose schema: %v", err)
	}

	if err := writeJSONFile(outputPath, composed); err != nil {
		log.Fatalf("Failed to write composed schema: %v", err)
	}
	log.Printf("Generated embedded schema at %s", outputPath)
}

// composeSchema inlines every extension schema into the base schema's
// properties so the embedded validator needs no remote resolution.
func composeSchema(basePath string) (map[string]interface{}, error) {
	baseBytes, err := os.ReadFile(basePath)
	if err != nil {
		return nil, fmt.Errorf("could not read base schema: %w", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(baseBytes, &schema); err != nil {
		return nil, fmt.Errorf("could not parse base schema: %w", err)
	}

	if _, ok := schema["properties"]; !ok {
		schema["properties"] = make(map[string]interface{})
	}
	properties := schema["properties"].(map[string]interface{})

	for key, path := range extensionSchemaFiles {
		subBytes, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("could not read extension schema for %s: %w", key, err)
		}

		var subSchema map[string]interface{}
		if err := json.Unmarshal(subBytes, &subSchema); err != nil {
			return nil, fmt.Errorf("could not parse extension schema for %s: %w", key, err)
		}
		properties[key] = subSchema
	}

	// Extensions beyond the known set are allowed
	schema["additionalProperties"] = true
	schema["title"] = "Sprout Configuration Schema"
	schema["description"] = "A unified schema for sprout.yml configuration files."

	return schema, nil
}

func writeJSONFile(path string, data map[string]interface{}) error {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0644)
}
