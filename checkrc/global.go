package checkrc

import "sort"

// Global is a single globals entry. A global is either simple ("treat this
// identifier as defined") or restricted: defined, and when used as a
// base/type name only the listed field names may be accessed on it
// (e.g. Frame = { fields = { "inherits" } }).
type Global struct {
	// Fields is the allowed-field list for a restricted global. A nil slice
	// marks a simple global.
	Fields []string
}

// Restricted reports whether this global carries a field allow-list.
func (g Global) Restricted() bool {
	return g.Fields != nil
}

// Simple returns a bare global declaration.
func Simple() Global {
	return Global{}
}

// Restricted returns a global declaration with a field allow-list.
func Restricted(fields ...string) Global {
	if fields == nil {
		fields = []string{}
	}
	return Global{Fields: fields}
}

// Globals maps identifier names to their declarations. Keys are unique by
// construction; duplicate declarations in the source are last-write-wins.
type Globals map[string]Global

// Names returns the declared identifier names in sorted order.
func (g Globals) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add declares a simple global.
func (g Globals) Add(name string) {
	// a restricted declaration always wins over a bare one: it strictly
	// adds information about the same identifier
	if existing, ok := g[name]; ok && existing.Restricted() {
		return
	}
	g[name] = Simple()
}

// Merge folds other into g. Restricted declarations override simple ones;
// between two restricted declarations the incoming one wins.
func (g Globals) Merge(other Globals) {
	for name, global := range other {
		if existing, ok := g[name]; ok && existing.Restricted() && !global.Restricted() {
			continue
		}
		g[name] = global
	}
}

// Clone returns a deep copy of g.
func (g Globals) Clone() Globals {
	out := make(Globals, len(g))
	for name, global := range g {
		if global.Fields != nil {
			fields := make([]string, len(global.Fields))
			copy(fields, global.Fields)
			global.Fields = fields
		}
		out[name] = global
	}
	return out
}
