// Package auxiliary holds the catalog of small generic C routines (copy, fill,
// BLAS-like kernels, sparse helpers, MEX marshalling) and emits each one at
// most once per generated document.
package auxiliary

import (
	"fmt"
	"strings"
)

// Includer registers a system header with the document being generated.
type Includer func(header string)

// Library tracks which routines were emitted and appends their source to a
// text section.
type Library struct {
	out     *strings.Builder
	include Includer
	emitted map[Tag]struct{}
	order   []Tag
}

// NewLibrary writes routine text into out and reports required headers to
// include. include may be nil.
func NewLibrary(out *strings.Builder, include Includer) *Library {
	if include == nil {
		include = func(string) {}
	}

	return &Library{
		out:     out,
		include: include,
		emitted: make(map[Tag]struct{}),
	}
}

// Ensure emits the routine for tag unless it is already present. Routines it
// depends on are emitted before it. Ensure reports whether text was added for
// tag itself.
func (l *Library) Ensure(tag Tag) bool {
	if _, ok := l.emitted[tag]; ok {
		return false
	}

	r, ok := catalog[tag]
	if !ok {
		panic(fmt.Sprintf("auxiliary: unknown routine %v", tag))
	}

	l.emitted[tag] = struct{}{}

	for _, dep := range r.requires {
		l.Ensure(dep)
	}

	for _, h := range r.includes {
		l.include(h)
	}

	text := r.text
	if r.gen != nil {
		text = r.gen()
	}

	l.out.WriteString(text)
	l.out.WriteString("\n")
	l.order = append(l.order, tag)

	return true
}

// Has reports whether tag was emitted.
func (l *Library) Has(tag Tag) bool {
	_, ok := l.emitted[tag]
	return ok
}

// Emitted returns the emitted tags in emission order.
func (l *Library) Emitted() []Tag {
	return append([]Tag(nil), l.order...)
}
