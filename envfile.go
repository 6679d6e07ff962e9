// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

// Store represents the mapping which sources fold their variables into.
//
// Lookup exists so file sources can interpolate references against values
// resolved by strictly earlier sources.
type Store interface {
	Set(name, value string)
	Lookup(name string) (string, bool)
}

// Source defines valid variable sources as those who can
// serialize themselves into a key value structure.
type Source interface {
	Apply(Store) error
}

// Map is an ordinary map[string]string but implements both
// the Source and Store interfaces.
type Map map[string]string

// Set implements the Store interface.
func (m Map) Set(name, value string) {
	m[name] = value
}

// Lookup implements the Store interface.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Apply implements the Source interface. Every key overrides
// any existing key of the same name.
func (m Map) Apply(store Store) error {
	for k, v := range m {
		store.Set(k, v)
	}
	return nil
}

// Resolve folds the given sources, in order, into a single mapping.
// Subsequent sources override previous sources, key by key; keys are
// never deleted. File and reader sources interpolate variable references
// against the mapping accumulated from strictly earlier sources.
//
// Any source failing aborts the whole resolution and no partial
// mapping is returned.
func Resolve(srcs ...Source) (Map, error) {
	vars := make(Map)
	for _, src := range srcs {
		err := src.Apply(vars)
		if err != nil {
			return nil, err
		}
	}
	return vars, nil
}
