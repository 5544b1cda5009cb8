package program

import "fmt"

// extractRaw reads one decoded document mapping into a rawDocument:
// `includes`, `imports`, `classes`, `objects`, any other string-valued
// key containing `=>` as a top-level function, and an optional `call`
// directive.
func extractRaw(raw map[string]any) (*rawDocument, error) {
	doc := &rawDocument{
		Classes:   make(map[string]*rawClass),
		Objects:   make(map[string]string),
		Functions: make(map[string]string),
	}

	if v, ok := raw["includes"]; ok {
		items, err := toSlice(v)
		if err != nil {
			return nil, fmt.Errorf("includes: %w", err)
		}
		for _, item := range items {
			s, err := toStringValue(item)
			if err != nil {
				return nil, fmt.Errorf("includes entry: %w", err)
			}
			doc.Includes = append(doc.Includes, s)
		}
	}

	if v, ok := raw["imports"]; ok {
		items, err := toSlice(v)
		if err != nil {
			return nil, fmt.Errorf("imports: %w", err)
		}
		for _, item := range items {
			spec, err := parseImportEntry(item)
			if err != nil {
				return nil, fmt.Errorf("imports entry: %w", err)
			}
			doc.Imports = append(doc.Imports, spec)
		}
	}

	if v, ok := raw["classes"]; ok {
		m, err := toMap(v)
		if err != nil {
			return nil, fmt.Errorf("classes: %w", err)
		}
		for name, classVal := range m {
			rc, err := parseRawClass(classVal)
			if err != nil {
				return nil, fmt.Errorf("class %q: %w", name, err)
			}
			doc.Classes[name] = rc
		}
	}

	if v, ok := raw["objects"]; ok {
		m, err := toMap(v)
		if err != nil {
			return nil, fmt.Errorf("objects: %w", err)
		}
		for name, ctorVal := range m {
			ctor, err := toStringValue(ctorVal)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", name, err)
			}
			doc.Objects[name] = ctor
		}
	}

	if v, ok := raw["call"]; ok {
		s, err := toStringValue(v)
		if err != nil {
			return nil, fmt.Errorf("call: %w", err)
		}
		doc.Call = s
	}

	reserved := map[string]bool{"includes": true, "imports": true, "classes": true, "objects": true, "call": true}
	for key, v := range raw {
		if reserved[key] {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if containsArrow(s) {
			doc.Functions[key] = s
		}
	}

	return doc, nil
}

func parseRawClass(v any) (*rawClass, error) {
	m, err := toMap(v)
	if err != nil {
		return nil, err
	}
	rc := &rawClass{Methods: make(map[string]string)}
	for memberName, memberVal := range m {
		s, err := toStringValue(memberVal)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", memberName, err)
		}
		if memberName == "parent" {
			rc.Parent = s
			continue
		}
		rc.Methods[memberName] = s
	}
	return rc, nil
}

func parseImportEntry(v any) (ImportSpec, error) {
	if s, ok := v.(string); ok {
		return ImportSpec{Module: s}, nil
	}
	m, err := toMap(v)
	if err != nil {
		return ImportSpec{}, err
	}
	for module, alias := range m {
		aliasStr, err := toStringValue(alias)
		if err != nil {
			return ImportSpec{}, err
		}
		return ImportSpec{Module: module, Alias: aliasStr}, nil
	}
	return ImportSpec{}, fmt.Errorf("empty import mapping")
}

func containsArrow(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '=' && s[i+1] == '>' {
			return true
		}
	}
	return false
}

// ---- loosely-typed YAML decode helpers ----
//
// goccy/go-yaml decodes mapping nodes into map[string]any when the target
// is `any`, but defensively accept map[any]any too since some decode
// paths (merge keys, anchors) can still surface it.

func toSlice(v any) ([]any, error) {
	switch s := v.(type) {
	case []any:
		return s, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected a sequence, got %T", v)
	}
}

func toMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("expected string keys, got %T", k)
			}
			out[ks] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
}

func toStringValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string, got %T", v)
	}
	return s, nil
}
