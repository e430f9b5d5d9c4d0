package prompt

// PlanSchemaName identifies the study plan schema.
const PlanSchemaName = "study-plan"

// Priorities allowed in a study plan topic, highest first.
var Priorities = []string{"High", "Medium", "Low"}

// PlanSchema returns the JSON Schema a study plan response must satisfy.
// A fresh map is returned on each call.
func PlanSchema() map[string]any {
	priorities := make([]any, len(Priorities))
	for i, p := range Priorities {
		priorities[i] = p
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject": map[string]any{"type": "string"},
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":     map[string]any{"type": "string"},
						"priority": map[string]any{"type": "string", "enum": priorities},
						"estimatedHours": map[string]any{"type": "number"},
					},
					"required":             []any{"name", "priority", "estimatedHours"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"subject", "topics"},
		"additionalProperties": false,
	}
}
