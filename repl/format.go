package repl

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/sputter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	FormatSexpr = "sexpr"
	FormatDebug = "debug"
	FormatJSON  = "json"
)

// Integers are encoded as strings so no precision is lost.
type jsonValue struct {
	Type     string       `json:"type"`
	Value    string       `json:"value,omitempty"`
	Children []*jsonValue `json:"children,omitempty"`
}

func toJSON(v *sputter.Value) *jsonValue {
	jv := &jsonValue{Type: v.Type().String()}
	switch v.Type() {
	case sputter.ValueExpr:
		for _, child := range v.Children() {
			jv.Children = append(jv.Children, toJSON(child))
		}
	default:
		jv.Value = v.String()
	}
	return jv
}

// Format renders v in the named format.
func Format(format string, v *sputter.Value) (string, error) {
	switch format {
	case FormatSexpr:
		return v.String(), nil
	case FormatJSON:
		return json.MarshalToString(toJSON(v))
	}
	return v.GoString(), nil
}
