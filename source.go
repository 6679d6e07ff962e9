// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package envfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/z5labs/envfile/internal/try"
)

// SourceUnavailableError occurs when a declared file source can
// not be opened or read.
type SourceUnavailableError struct {
	// Path of the file source.
	Path string

	Cause error
}

// Error implements the error interface.
func (e SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s is unavailable: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e SourceUnavailableError) Unwrap() error {
	return e.Cause
}

// Optional suppresses the [SourceUnavailableError] which a missing
// file source would otherwise fail resolution with. All other open
// and read failures remain fatal.
func Optional() Option {
	return func(o *options) {
		o.optional = true
	}
}

// InFS opens file sources inside fsys instead of the host filesystem.
func InFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

type osFS struct{}

func (osFS) Open(path string) (fs.File, error) {
	return os.Open(path)
}

type fileSource struct {
	path string
	opts options
}

// FromFile returns a Source which reads ".env" syntax from the file
// at path. The file is opened, read fully and closed during Apply.
func FromFile(path string, opts ...Option) Source {
	o := options{
		fsys: osFS{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return fileSource{
		path: path,
		opts: o,
	}
}

// Apply implements the Source interface.
func (src fileSource) Apply(store Store) (err error) {
	f, err := src.opts.fsys.Open(src.path)
	if err != nil {
		if src.opts.optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return SourceUnavailableError{Path: src.path, Cause: err}
	}
	defer try.Close(&err, f)

	b, err := io.ReadAll(f)
	if err != nil {
		return SourceUnavailableError{Path: src.path, Cause: err}
	}

	vars, err := parseBytes(b, src.path, store.Lookup, src.opts)
	if err != nil {
		return err
	}
	return vars.Apply(store)
}

type readerSource struct {
	r    io.Reader
	opts options
}

// FromReader returns a Source which reads ".env" syntax from r.
// If r is an io.Closer it is closed after being read.
func FromReader(r io.Reader, opts ...Option) Source {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return readerSource{
		r:    r,
		opts: o,
	}
}

// Apply implements the Source interface.
func (src readerSource) Apply(store Store) (err error) {
	defer try.Close(&err, src.r)

	b, err := io.ReadAll(src.r)
	if err != nil {
		return err
	}

	vars, err := parseBytes(b, "", store.Lookup, src.opts)
	if err != nil {
		return err
	}
	return vars.Apply(store)
}

// Environ represents a Source where its underlying values are
// extracted from environment variables.
type Environ struct {
	environ func() []string
}

// FromEnviron returns a Source which will apply the environment
// variables available to the current process. It exists so the live
// process environment is composed explicitly like any other source
// rather than consulted implicitly.
func FromEnviron() Environ {
	return Environ{
		environ: os.Environ,
	}
}

// Apply implements the Source interface.
func (src Environ) Apply(store Store) error {
	m := make(Map)
	env := src.environ()
	for _, pair := range env {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m.Apply(store)
}
