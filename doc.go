// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package envfile loads environment configuration from an ordered list of sources.
//
// A source is anything which can fold key value pairs into a [Store], most
// commonly a ".env" style file, an [io.Reader] of the same syntax or the live
// process environment. Sources are resolved in order and later sources override
// earlier ones:
//
//	vars, err := envfile.Resolve(
//	    envfile.FromFile(".env"),
//	    envfile.FromFile(".env.local", envfile.Optional()),
//	    envfile.FromEnviron(),
//	)
//
// File values may reference variables resolved by strictly earlier sources
// (or earlier lines of the same file) with ${NAME} or $NAME inside double
// quoted values. The resolved [Map] is a plain string mapping and is meant to
// be treated as read only once resolution completes.
//
// # Typed Access
//
// Raw values are coerced at lookup time. Each lookup pairs a conversion with
// one of three empty value policies:
//
//	port, err := envfile.Get(vars, "PORT", envfile.Int)            // 0 if unset
//	tag, err := envfile.GetNullable(vars, "TAG", envfile.Atom)     // unset Value if unset
//	host, err := envfile.GetStrict(vars, "HOST", envfile.String)   // error if unset
//
// All three fail with a [ConversionError] when a non-empty value cannot be
// converted. Custom conversions are plain functions and receive identical
// error wrapping:
//
//	level, err := envfile.Get(vars, "LEVEL", func(s string) (slog.Level, error) {
//	    var l slog.Level
//	    err := l.UnmarshalText([]byte(s))
//	    return l, err
//	})
//
// # Struct Decoding
//
// An entire resolved mapping can also be decoded into a struct via "env"
// field tags:
//
//	var cfg struct {
//	    Host    string        `env:"HOST"`
//	    Timeout time.Duration `env:"TIMEOUT"`
//	}
//	err := vars.Unmarshal(&cfg)
package envfile
