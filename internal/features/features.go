// Package features holds the fixed input schema of the rain model and the
// static reference text shown next to the prediction form.
package features

import "sort"

// names lists the model inputs in the positional order the forest consumes.
var names = [...]string{
	"lat", "lon",
	"omega_x", "omega_y", "omega",
	"pr_wtr",
	"rhum_x", "rhum_y", "rhum",
	"slp",
	"tmp_x", "tmp_y", "tmp",
	"uwnd_x", "uwnd_y", "uwnd",
	"vwnd_x", "vwnd_y", "vwnd",
}

// Count is the number of features a complete Vector carries.
const Count = len(names)

// Names returns the feature names in the positional order the forest
// consumes. The slice is a fresh copy on every call.
func Names() []string {
	out := make([]string, Count)
	copy(out, names[:])
	return out
}

var index = func() map[string]int {
	m := make(map[string]int, Count)
	for i, name := range names {
		m[name] = i
	}
	return m
}()

// Index returns the position of name in Names.
func Index(name string) (int, bool) {
	i, ok := index[name]
	return i, ok
}

// Vector maps feature names to observed values. A valid vector carries every
// name in Names and nothing else.
type Vector map[string]float64

// Value is one named entry of an ordered vector.
type Value struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Ordered lays v out in Names order. Missing lists the absent features in
// Names order; extra lists unknown keys, sorted.
func (v Vector) Ordered() (values []float64, missing, extra []string) {
	values = make([]float64, Count)
	for i, name := range names {
		val, ok := v[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		values[i] = val
	}
	for name := range v {
		if _, ok := index[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return values, missing, extra
}

// Rows returns the known features of v in Names order, skipping absent ones.
func (v Vector) Rows() []Value {
	rows := make([]Value, 0, Count)
	for _, name := range names {
		if val, ok := v[name]; ok {
			rows = append(rows, Value{Name: name, Value: val})
		}
	}
	return rows
}

// Zero returns a vector with every feature set to 0.0.
func Zero() Vector {
	v := make(Vector, Count)
	for _, name := range names {
		v[name] = 0
	}
	return v
}

// ZeroFilled returns a copy of v where each absent feature is set to 0.0.
// 0.0 is a placeholder, not a physically meaningful default (slp of 0 hPa is
// impossible), so callers opt in explicitly.
func ZeroFilled(v Vector) Vector {
	out := make(Vector, len(v)+Count)
	for name, val := range v {
		out[name] = val
	}
	for _, name := range names {
		if _, ok := out[name]; !ok {
			out[name] = 0
		}
	}
	return out
}
