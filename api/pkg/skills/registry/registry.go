// Package registry maps builtin skill names to their handlers.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// Handler runs one builtin skill. Handlers that need a third-party session
// return an error when sctx.IntegrationID is empty.
type Handler func(ctx context.Context, params map[string]any, sctx types.SkillExecutionContext) (any, error)

// Entry is a named handler
type Entry struct {
	Name    string
	Handler Handler
}

// Builder collects handlers in the order they are added. Duplicate names are
// reported by Build instead of silently replacing earlier handlers.
type Builder struct {
	entries []Entry
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Add(name string, handler Handler) *Builder {
	b.entries = append(b.entries, Entry{Name: name, Handler: handler})
	return b
}

func (b *Builder) AddAll(entries []Entry) *Builder {
	b.entries = append(b.entries, entries...)
	return b
}

func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		handlers: make(map[string]Handler, len(b.entries)),
		names:    make([]string, 0, len(b.entries)),
	}

	var errs []error
	for _, e := range b.entries {
		switch {
		case e.Name == "":
			errs = append(errs, errors.New("handler registered without a name"))
			continue
		case e.Handler == nil:
			errs = append(errs, fmt.Errorf("handler %q is nil", e.Name))
			continue
		}
		if _, ok := r.handlers[e.Name]; ok {
			errs = append(errs, fmt.Errorf("duplicate handler %q", e.Name))
			continue
		}
		r.handlers[e.Name] = e.Handler
		r.names = append(r.names, e.Name)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}

// Registry is immutable once built and safe for concurrent use
type Registry struct {
	handlers map[string]Handler
	names    []string
}

func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Len() int {
	return len(r.names)
}
