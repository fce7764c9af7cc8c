package application

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"insight-mcp-server/internal/domain"
)

// ApplyDefaults fills missing arguments from the schema's declared property
// defaults. Defaults are applied here, during validation, so handlers never
// substitute them.
func ApplyDefaults(schema domain.JSONSchema, args map[string]interface{}) {
	for name, def := range schema.Defaults() {
		if _, exists := args[name]; !exists {
			args[name] = def
		}
	}
}

// ValidateArguments checks raw arguments against the tool's input schema.
// A violation is returned as an InvalidParams error carrying every schema
// failure; the handler must not run when this returns non-nil.
func ValidateArguments(def domain.ToolDefinition, args map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(def.InputSchema)
	argsLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, argsLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, len(result.Errors()))
		for i, e := range result.Errors() {
			messages[i] = e.String()
		}
		return &domain.Error{
			Code:    domain.InvalidParams,
			Message: fmt.Sprintf("invalid arguments for %s: %s", def.Name, strings.Join(messages, "; ")),
		}
	}

	return nil
}
