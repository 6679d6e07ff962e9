// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package symbol provides tagged string identifiers and an explicit
// registry of known identifiers.
//
// Some configuration values are not data but references, a name of a
// thing the program already knows about, like a handler, a codec or a
// module. Go has no open, global symbol space to intern such names
// into, so this package models them as tagged string wrappers and
// models "the set of known names" as a Registry value which callers
// construct and share deliberately.
package symbol

import "sync"

// Name is a symbolic identifier.
type Name string

// Module references a named module, package or type.
type Module string

// Root is the root namespace placeholder. It is the zero Module and
// what an empty configuration value resolves to.
const Root Module = ""

// Registry records which names and modules are known. The zero value
// is not usable; construct one with NewRegistry.
//
// A Registry is safe for concurrent use. Unlike the resolved variable
// mapping, a registry typically outlives resolution and may be shared
// across goroutines which keep registering names.
type Registry struct {
	mu      sync.RWMutex
	names   map[Name]struct{}
	modules map[Module]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		names:   make(map[Name]struct{}),
		modules: make(map[Module]struct{}),
	}
}

// Register records the given names as known.
func (r *Registry) Register(names ...Name) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		r.names[n] = struct{}{}
	}
}

// RegisterModule records the given modules as known.
func (r *Registry) RegisterModule(mods ...Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range mods {
		r.modules[m] = struct{}{}
	}
}

// Known reports whether n has been registered.
func (r *Registry) Known(n Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[n]
	return ok
}

// KnownModule reports whether m has been registered. Root is always
// known.
func (r *Registry) KnownModule(m Module) bool {
	if m == Root {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.modules[m]
	return ok
}
