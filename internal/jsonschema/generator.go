package jsonschema

import (
	"encoding/json"

	"github.com/notwillk/databundle/internal/config"
)

// GenerateConfigSchema generates a JSON Schema for the databundle.yaml config file.
// Defaults are taken from config.Default so the two cannot drift apart.
func GenerateConfigSchema() ([]byte, error) {
	def := config.Default()
	doc := map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12",
		"title":       "databundle configuration",
		"description": "Configuration file for databundle (" + config.FileName + ")",
		"type":        "object",
		"properties": map[string]any{
			"output": map[string]any{
				"type":        "string",
				"description": "Name of the generated script, written inside the root directory",
				"default":     def.OutputFile,
				"pattern":     `^[^/\\]+$`,
			},
			"extension": map[string]any{
				"type":        "string",
				"description": "Extension of the data files to embed, including the dot",
				"default":     def.Extension,
				"pattern":     `^\..+$`,
			},
			"variable": map[string]any{
				"type":        "string",
				"description": "Global the generated script assigns the merged object to",
				"default":     def.Variable,
				"minLength":   1,
			},
			"header": map[string]any{
				"type":        "string",
				"description": "Single comment line written at the top of the generated script",
				"default":     def.Header,
				"pattern":     `^//[^\r\n]*$`,
			},
			"indent": map[string]any{
				"type":        "integer",
				"description": "Spaces per nesting level in the serialized object",
				"default":     def.Indent,
				"minimum":     0,
				"maximum":     config.MaxIndent,
			},
			"invalid": map[string]any{
				"type": "string",
				"enum": []string{
					string(config.InvalidSilent),
					string(config.InvalidWarn),
					string(config.InvalidFail),
				},
				"description": "Behavior when a data file cannot be parsed",
				"default":     string(def.Invalid),
			},
		},
		"additionalProperties": false,
	}
	return json.MarshalIndent(doc, "", "  ")
}
