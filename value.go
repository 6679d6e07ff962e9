// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

// Value represents a variable value which may or may not be set. This
// distinguishes between "not set" and "set to the zero value", which
// matters for nullable lookups.
type Value[T any] struct {
	value T
	set   bool
}

// ValueOf returns a set Value wrapping v.
func ValueOf[T any](v T) Value[T] {
	return Value[T]{
		value: v,
		set:   true,
	}
}

// Value returns the wrapped value and whether it was set.
func (v Value[T]) Value() (T, bool) {
	return v.value, v.set
}
