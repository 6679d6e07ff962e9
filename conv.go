// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/z5labs/envfile/symbol"
)

// Chars is a character sequence.
type Chars []rune

// String is the identity conversion.
func String(s string) (string, error) {
	return s, nil
}

// Bool converts the case insensitive literals "true" and "false".
// Anything else fails; notably, unrecognized input is never coerced
// to false.
func Bool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean literal: %q", s)
	}
}

// Int converts a base 10 integer literal. Trailing garbage fails the
// conversion rather than being truncated away.
func Int(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// Float converts a decimal floating point literal.
func Float(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Atom converts any value into a symbolic identifier.
func Atom(s string) (symbol.Name, error) {
	return symbol.Name(s), nil
}

// Charlist converts a value into a character sequence.
func Charlist(s string) (Chars, error) {
	return Chars(s), nil
}

// Module converts any value into a module reference.
func Module(s string) (symbol.Module, error) {
	return symbol.Module(s), nil
}

// ExistingAtom is like [Atom] but only converts identifiers already
// registered with reg.
func ExistingAtom(reg *symbol.Registry) ConvFunc[symbol.Name] {
	return func(s string) (symbol.Name, error) {
		n := symbol.Name(s)
		if !reg.Known(n) {
			return "", fmt.Errorf("unknown symbol: %q", s)
		}
		return n, nil
	}
}

// ExistingModule is like [Module] but only converts module references
// already registered with reg.
func ExistingModule(reg *symbol.Registry) ConvFunc[symbol.Module] {
	return func(s string) (symbol.Module, error) {
		m := symbol.Module(s)
		if !reg.KnownModule(m) {
			return symbol.Root, fmt.Errorf("unknown module: %q", s)
		}
		return m, nil
	}
}
