/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "sort"

// Row is one logical record: attribute name to scalar value.
type Row map[string]Value

// Names returns the attribute names in sorted order.
func (r Row) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named attribute and whether it was present.
func (r Row) Get(name string) (Value, bool) {
	v, ok := r[name]
	return v, ok
}

// Project returns a copy of r holding only the named attributes.
// An empty projection returns a full copy.
func (r Row) Project(names []string) Row {
	if len(names) == 0 {
		out := make(Row, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	out := make(Row, len(names))
	for _, name := range names {
		if v, ok := r[name]; ok {
			out[name] = v
		}
	}
	return out
}
