package aws

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// stringAttr reads an optional string attribute from a resolved value map.
func stringAttr(attrs map[string]cty.Value, key string) (string, bool) {
	val, ok := attrs[key]
	if !ok || val.IsNull() || val.Type() != cty.String {
		return "", false
	}
	return val.AsString(), true
}

// requireString reads a mandatory string attribute.
func requireString(attrs map[string]cty.Value, key string) (string, error) {
	s, ok := stringAttr(attrs, key)
	if !ok {
		return "", fmt.Errorf("missing required attribute %q", key)
	}
	return s, nil
}

// stringList reads an optional list of strings, accepting lists, sets and
// tuples since HCL literals arrive as tuples.
func stringList(attrs map[string]cty.Value, key string) ([]string, error) {
	val, ok := attrs[key]
	if !ok || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsListType() && !ty.IsSetType() && !ty.IsTupleType() {
		return nil, fmt.Errorf("attribute %q must be a list of strings", key)
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() != cty.String {
			return nil, fmt.Errorf("attribute %q must contain only strings", key)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}

// boolAttr reads an optional bool attribute, defaulting to false.
func boolAttr(attrs map[string]cty.Value, key string) bool {
	val, ok := attrs[key]
	if !ok || val.IsNull() || val.Type() != cty.Bool {
		return false
	}
	return val.True()
}

// int32Attr reads an optional number attribute as an int32.
func int32Attr(attrs map[string]cty.Value, key string) (int32, bool) {
	val, ok := attrs[key]
	if !ok || val.IsNull() || val.Type() != cty.Number {
		return 0, false
	}
	n, _ := val.AsBigFloat().Int64()
	return int32(n), true
}
