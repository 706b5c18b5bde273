package visualizer

// Metadata describes a payload: the columns used in each role, counts and
// observed ranges. It never feeds back into the data.
type Metadata map[string]any

// column records the column used for role, or null when the role is unused.
func (m Metadata) column(role, name string) Metadata {
	if name == "" {
		m[role] = nil
	} else {
		m[role] = name
	}
	return m
}

func (m Metadata) set(key string, v any) Metadata {
	m[key] = v
	return m
}

// valueRange records min_value and max_value, both null when ok is false.
func (m Metadata) valueRange(lo, hi float64, ok bool) Metadata {
	if !ok {
		m["min_value"], m["max_value"] = nil, nil
		return m
	}
	m["min_value"], m["max_value"] = lo, hi
	return m
}

// degenerate lists the groups whose density could not be estimated.
func (m Metadata) degenerate(groups []string) Metadata {
	if len(groups) > 0 {
		m["degenerate_groups"] = groups
	}
	return m
}

// optional returns *v, or nil for an unset option.
func optional[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
