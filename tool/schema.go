package tool

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SchemaFor generates a JSON Schema object from the struct type T.
//
// Field names come from json tags. Supported struct tags:
//
//	desc:"..."        property description
//	required:"true"   adds the field to "required"
//	enum:"a,b,c"      allowed string values
//	min:"1" max:"10"  numeric bounds
func SchemaFor[T any]() (json.RawMessage, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool: schema requires a struct type, got %s", t)
	}

	node, err := objectSchema(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

type schemaNode struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Minimum     *float64               `json:"minimum,omitempty"`
	Maximum     *float64               `json:"maximum,omitempty"`
	Items       *schemaNode            `json:"items,omitempty"`
	Properties  map[string]*schemaNode `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

func objectSchema(t reflect.Type) (*schemaNode, error) {
	node := &schemaNode{Type: "object", Properties: map[string]*schemaNode{}}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop, err := typeSchema(field.Type)
		if err != nil {
			return nil, fmt.Errorf("tool: field %s: %w", field.Name, err)
		}
		prop.Description = field.Tag.Get("desc")
		if enum := field.Tag.Get("enum"); enum != "" {
			for _, v := range strings.Split(enum, ",") {
				prop.Enum = append(prop.Enum, strings.TrimSpace(v))
			}
		}
		if prop.Minimum, err = bound(field, "min"); err != nil {
			return nil, err
		}
		if prop.Maximum, err = bound(field, "max"); err != nil {
			return nil, err
		}

		node.Properties[name] = prop
		if field.Tag.Get("required") == "true" {
			node.Required = append(node.Required, name)
		}
	}
	return node, nil
}

func typeSchema(t reflect.Type) (*schemaNode, error) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return &schemaNode{Type: "string"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &schemaNode{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &schemaNode{Type: "number"}, nil
	case reflect.Bool:
		return &schemaNode{Type: "boolean"}, nil
	case reflect.Slice, reflect.Array:
		items, err := typeSchema(t.Elem())
		if err != nil {
			return nil, err
		}
		return &schemaNode{Type: "array", Items: items}, nil
	case reflect.Struct:
		return objectSchema(t)
	case reflect.Map:
		return &schemaNode{Type: "object"}, nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", t.Kind())
	}
}

func bound(field reflect.StructField, tag string) (*float64, error) {
	raw := field.Tag.Get(tag)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("tool: field %s: invalid %s tag %q", field.Name, tag, raw)
	}
	return &v, nil
}
