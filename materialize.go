package quill

import (
	"fmt"
	"maps"
	"slices"
)

// Materializer resolves a property tree that may hold animated references
// into a concrete snapshot. It must not mutate its input.
type Materializer interface {
	Materialize(props Props) (Props, error)
}

// MaterializerFunc adapts a function to the Materializer interface.
type MaterializerFunc func(props Props) (Props, error)

// Materialize calls f(props).
func (f MaterializerFunc) Materialize(props Props) (Props, error) {
	return f(props)
}

// DefaultMaterializer reads every Animated value in the tree once and
// returns a deep copy of the tree's maps and slices with the values
// substituted. Concrete leaves are shared with the input.
type DefaultMaterializer struct{}

// Materialize implements Materializer.
func (DefaultMaterializer) Materialize(props Props) (Props, error) {
	out, err := materializeMap("", props)
	if err != nil {
		return nil, err
	}
	return Props(out), nil
}

func materializeMap(path string, m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]any, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v, err := materializeValue(joinPath(path, k), m[k])
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func materializeValue(path string, v any) (any, error) {
	switch t := v.(type) {
	case Animated:
		if isNil(t) {
			return nil, &PropError{Path: path, Err: ErrNilAnimated}
		}
		cur, err := t.Current()
		if err != nil {
			return nil, &PropError{Path: path, Err: err}
		}
		if _, nested := cur.(Animated); nested {
			return nil, &PropError{Path: path, Err: ErrUnresolvable}
		}
		return cur, nil
	case Props:
		m, err := materializeMap(path, t)
		if err != nil {
			return nil, err
		}
		return Props(m), nil
	case map[string]any:
		return materializeMap(path, t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			r, err := materializeValue(fmt.Sprintf("%s[%d]", path, i), item)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	default:
		return v, nil
	}
}
