package resume

// DeepMerge overlays partial onto defaults and returns a new map. Nested
// objects merge recursively; arrays and scalars from partial replace the
// default. A null in partial replaces a scalar but leaves an object default in
// place. Neither input is modified.
func DeepMerge(defaults, partial map[string]any) map[string]any {
	out := cloneValue(defaults).(map[string]any)
	if out == nil {
		out = map[string]any{}
	}
	for key, src := range partial {
		switch v := src.(type) {
		case map[string]any:
			if base, ok := out[key].(map[string]any); ok {
				out[key] = DeepMerge(base, v)
			} else {
				out[key] = DeepMerge(map[string]any{}, v)
			}
		case nil:
			if _, isObject := out[key].(map[string]any); isObject {
				continue
			}
			out[key] = nil
		default:
			out[key] = cloneValue(v)
		}
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return map[string]any(nil)
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		if t == nil {
			return []any(nil)
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}
