// Package render serializes reports for machines: indented JSON and the JSON
// Schema describing it.
package render

import (
	"encoding/json"
	"io"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/abelzeko/popo-bot/internal/entities"
)

// JSON writes r as indented JSON followed by a newline.
func JSON(w io.Writer, r entities.VolcanoReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// Schema returns the JSON Schema of VolcanoReport.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    mapEntityTypes,
	}
	schema := reflector.Reflect(entities.VolcanoReport{})
	allowNull(schema, reflect.TypeOf(entities.VolcanoReport{}))
	return schema
}

// allowNull lets every pointer field of t be null. Those fields are always
// present in the output but hold null when the bulletin lacks them.
func allowNull(schema *jsonschema.Schema, t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		prop, ok := schema.Properties.Get(name)
		if !ok {
			continue
		}
		inner := *prop
		inner.Description = ""
		schema.Properties.Set(name, &jsonschema.Schema{
			Description: prop.Description,
			AnyOf:       []*jsonschema.Schema{&inner, {Type: "null"}},
		})
	}
}

// SchemaJSON returns Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

var (
	dateType  = reflect.TypeOf(entities.Date{})
	alertType = reflect.TypeOf(entities.AlertLevel(0))
	windType  = reflect.TypeOf(entities.WindDirection(0))
)

// mapEntityTypes describes the text-marshaled entity types as strings.
func mapEntityTypes(t reflect.Type) *jsonschema.Schema {
	switch t {
	case dateType:
		return &jsonschema.Schema{Type: "string", Format: "date"}
	case alertType:
		enum := make([]any, 0, len(entities.AlertLevels))
		for _, level := range entities.AlertLevels {
			enum = append(enum, level.String())
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	case windType:
		enum := make([]any, 0, len(entities.WindDirections))
		for _, dir := range entities.WindDirections {
			enum = append(enum, dir.Kebab())
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	}
	return nil
}
