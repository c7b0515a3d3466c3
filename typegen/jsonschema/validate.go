package jsonschema

import (
	"encoding/json"
	"sort"

	"github.com/kaptinlin/jsonschema"

	"github.com/teranos/fsdefs/errors"
)

// Result is the evaluation result of a validation
type Result = jsonschema.EvaluationResult

// Root returns a schema that validates typeName using doc's definitions.
func Root(doc Schema, typeName string) (Schema, error) {
	defs := doc.Defs()
	if _, ok := defs[typeName]; !ok {
		return nil, errors.Wrapf(errors.ErrUnknownType, "no definition for %q", typeName)
	}
	return Schema{
		"$schema": Draft,
		"$defs":   defs,
		"$ref":    "#/$defs/" + typeName,
	}, nil
}

// Compile compiles the schema for typeName.
func Compile(doc Schema, typeName string) (*jsonschema.Schema, error) {
	root, err := Root(doc, typeName)
	if err != nil {
		return nil, err
	}
	bytes, err := json.Marshal(root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile schema")
	}
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(bytes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile schema")
	}
	return schema, nil
}

// Validate checks a JSON payload against the definition of typeName.
// A rejected payload returns ErrInvalidPayload with one detail per failure.
func Validate(doc Schema, typeName string, payload []byte) error {
	schema, err := Compile(doc, typeName)
	if err != nil {
		return err
	}

	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return errors.Wrap(err, "payload is not valid JSON")
	}

	result := schema.Validate(value)
	if result.Valid {
		return nil
	}

	messages := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		messages = append(messages, e.Error())
	}
	sort.Strings(messages)

	err = errors.Wrapf(errors.ErrInvalidPayload, "%s", typeName)
	for _, m := range messages {
		err = errors.WithDetail(err, m)
	}
	return err
}
