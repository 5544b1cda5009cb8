package stdlib

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/hpl-lang/hpl/internal/hplerr"
	"github.com/hpl-lang/hpl/internal/object"
)

// jsonObjectClass is the class every json.parse()-produced object value
// belongs to. It has no methods; attribute access is how HPL code reads
// its fields.
var jsonObjectClass = &object.Class{Name: "JSON", Methods: map[string]*object.Function{}}

// JSON returns the built-in `json` module — the host-ecosystem-wrap layer
// of module resolution, backed by gjson for parsing and sjson for
// building output, rather than a hand-rolled encoder/decoder.
func JSON() *object.Module {
	return &object.Module{
		Name:        "json",
		Description: "JSON parsing and serialization backed by gjson/sjson",
		Constants:   map[string]object.Value{},
		Functions: map[string]object.BuiltinFunction{
			"parse":     jsonParse,
			"stringify": jsonStringify,
		},
	}
}

func jsonParse(args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return nil, hplerr.NewNoPos(hplerr.Value, "json.parse expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(*object.String)
	if !ok {
		return nil, hplerr.NewNoPos(hplerr.Type, "json.parse requires a string, got %s", args[0].Type())
	}
	if !gjson.Valid(s.Value) {
		return nil, hplerr.NewNoPos(hplerr.Value, "invalid JSON text")
	}
	return fromGJSON(gjson.Parse(s.Value)), nil
}

func fromGJSON(r gjson.Result) object.Value {
	switch r.Type {
	case gjson.Null:
		return object.Nil
	case gjson.False:
		return object.False
	case gjson.True:
		return object.True
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return &object.Integer{Value: int64(r.Num)}
		}
		return &object.Float{Value: r.Num}
	case gjson.String:
		return &object.String{Value: r.String()}
	default: // gjson.JSON: either an array or an object
		if r.IsArray() {
			var elems []object.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(v))
				return true
			})
			return &object.Array{Elements: elems}
		}
		obj := object.NewObject("json", jsonObjectClass)
		r.ForEach(func(k, v gjson.Result) bool {
			obj.Attributes[k.String()] = fromGJSON(v)
			return true
		})
		return obj
	}
}

func jsonStringify(args []object.Value) (object.Value, error) {
	if len(args) != 1 {
		return nil, hplerr.NewNoPos(hplerr.Value, "json.stringify expects 1 argument, got %d", len(args))
	}
	raw, err := toJSONRaw(args[0])
	if err != nil {
		return nil, err
	}
	return &object.String{Value: raw}, nil
}

// toJSONRaw builds a JSON text for v incrementally with sjson.SetRaw,
// rather than hand-rolling a marshaler.
func toJSONRaw(v object.Value) (string, error) {
	switch val := v.(type) {
	case *object.Null:
		return "null", nil
	case *object.Boolean:
		if val.Value {
			return "true", nil
		}
		return "false", nil
	case *object.Integer:
		return strconv.FormatInt(val.Value, 10), nil
	case *object.Float:
		return strconv.FormatFloat(val.Value, 'g', -1, 64), nil
	case *object.String:
		return strconv.Quote(val.Value), nil
	case *object.Array:
		raw := "[]"
		for i, elem := range val.Elements {
			elemRaw, err := toJSONRaw(elem)
			if err != nil {
				return "", err
			}
			raw, err = sjson.SetRaw(raw, strconv.Itoa(i), elemRaw)
			if err != nil {
				return "", hplerr.NewNoPos(hplerr.Value, "json.stringify: %s", err)
			}
		}
		return raw, nil
	case *object.Object:
		raw := "{}"
		for k, attr := range val.Attributes {
			attrRaw, err := toJSONRaw(attr)
			if err != nil {
				return "", err
			}
			raw, err = sjson.SetRaw(raw, k, attrRaw)
			if err != nil {
				return "", hplerr.NewNoPos(hplerr.Value, "json.stringify: %s", err)
			}
		}
		return raw, nil
	default:
		return "", hplerr.NewNoPos(hplerr.Type, "json.stringify cannot serialize a %s", v.Type())
	}
}
