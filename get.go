// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrEmpty signals that a variable was unset or empty when a strict
// lookup required a value.
var ErrEmpty = errors.New("variable is unset or empty")

// ConversionError occurs when a raw string value can not be coerced
// into the requested type.
type ConversionError struct {
	// Var is the name of the offending variable.
	Var string

	// Type the value was being converted to.
	Type string

	Cause error
}

// Error implements the error interface.
func (e ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s to %s: %s", e.Var, e.Type, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ConversionError) Unwrap() error {
	return e.Cause
}

// ConvFunc converts a raw string value into a T. Any function of this
// shape can be used as a conversion; failures are wrapped in a
// [ConversionError] carrying the variable name by the accessor which
// invoked it.
type ConvFunc[T any] func(string) (T, error)

// Get looks name up in m and converts it with conv. An unset or empty
// value short circuits to the zero value of T without calling conv.
func Get[T any](m Map, name string, conv ConvFunc[T]) (T, error) {
	s := m[name]
	if s == "" {
		var zero T
		return zero, nil
	}
	return convert(name, s, conv)
}

// GetNullable looks name up in m and converts it with conv. An unset
// or empty value short circuits to an unset [Value] without calling
// conv.
func GetNullable[T any](m Map, name string, conv ConvFunc[T]) (Value[T], error) {
	s := m[name]
	if s == "" {
		return Value[T]{}, nil
	}
	v, err := convert(name, s, conv)
	if err != nil {
		return Value[T]{}, err
	}
	return ValueOf(v), nil
}

// GetStrict looks name up in m and converts it with conv. An unset or
// empty value fails with a [ConversionError] wrapping [ErrEmpty].
func GetStrict[T any](m Map, name string, conv ConvFunc[T]) (T, error) {
	s := m[name]
	if s == "" {
		var zero T
		return zero, ConversionError{
			Var:   name,
			Type:  typeName[T](),
			Cause: ErrEmpty,
		}
	}
	return convert(name, s, conv)
}

func convert[T any](name, s string, conv ConvFunc[T]) (T, error) {
	v, err := conv(s)
	if err != nil {
		var zero T
		return zero, ConversionError{
			Var:   name,
			Type:  typeName[T](),
			Cause: err,
		}
	}
	return v, nil
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
