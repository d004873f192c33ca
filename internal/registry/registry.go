// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/fox/blob/master/LICENSE.txt.

// Package registry holds the named-database registry consumed by the
// command interpreter: a set of independent engines keyed by name, plus a
// "current" selection that operations needing a database act against.
// The registry is never exposed to package phfwd itself; it exists purely
// at the command layer's level.
package registry

import (
	"maps"
	"slices"

	"github.com/mdudzinski/phfwd"
	"github.com/mdudzinski/phfwd/internal/iterutil"
)

// Registry is a named collection of independent [phfwd.Engine] instances,
// with at most one of them selected as current. The zero value is not
// usable; construct with [New].
type Registry struct {
	databases map[string]*phfwd.Engine
	current   string
	selected  bool
}

// New returns an empty Registry with no database selected.
func New() *Registry {
	return &Registry{databases: make(map[string]*phfwd.Engine)}
}

// Select switches to the named database, creating it first if it doesn't
// already exist. This implements the command language's "NEW id" statement.
func (r *Registry) Select(name string) {
	if _, ok := r.databases[name]; !ok {
		r.databases[name] = phfwd.New()
	}
	r.current = name
	r.selected = true
}

// Delete destroys the named database. If it was the current selection,
// the registry is left with no database selected. This implements the
// command language's "DEL id" statement. It is a no-op if name is not a
// known database.
func (r *Registry) Delete(name string) {
	if _, ok := r.databases[name]; !ok {
		return
	}
	delete(r.databases, name)
	if r.selected && r.current == name {
		r.current = ""
		r.selected = false
	}
}

// Current returns the currently selected engine and true, or nil and
// false if no database is currently selected.
func (r *Registry) Current() (*phfwd.Engine, bool) {
	if !r.selected {
		return nil, false
	}
	return r.databases[r.current], true
}

// Names returns the names of every database currently held by the
// registry, in no particular order.
func (r *Registry) Names() []string {
	return slices.Collect(iterutil.Left(maps.All(r.databases)))
}
