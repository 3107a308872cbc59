package openai

import (
	"encoding/json"
	"sort"

	"github.com/invopop/jsonschema"
)

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// GenerateSchema reflects T into a strict structured-output schema: every
// object closed and every property required
func GenerateSchema[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	strict(m)
	return m, nil
}

func strict(schema map[string]any) {
	if t, ok := schema[typeKey].(string); ok && t == "object" {
		schema[additionalPropertiesKey] = false
		if props, ok := schema[propertiesKey].(map[string]any); ok && len(props) > 0 {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			sort.Strings(required)
			schema[requiredKey] = required
		}
	}
	if props, ok := schema[propertiesKey].(map[string]any); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]any); ok {
				strict(pm)
			}
		}
	}
	if items, ok := schema[itemsKey].(map[string]any); ok {
		strict(items)
	}
}
