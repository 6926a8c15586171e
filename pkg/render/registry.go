package render

import (
	"errors"
	"fmt"
	"sort"
)

// Standard markup-type names registered by Default.
const (
	TypeHTML     = "html"
	TypePlain    = "plain"
	TypeMarkdown = "markdown"
)

// Registry errors.
var (
	ErrUnknownMarkupType = errors.New("unknown markup type")
	ErrInvalidRenderer   = errors.New("invalid renderer registration")
)

// Func converts raw markup text to rendered HTML.
// Renderers are expected to be pure and deterministic; the rendered
// output is stored verbatim, with no additional escaping.
type Func func(raw string) (string, error)

// Registry is a dispatch table from markup-type name to renderer.
// Populate it during configuration; it requires no locking because
// registration never happens concurrently with rendering.
type Registry struct {
	renderers map[string]Func
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{renderers: make(map[string]Func)}
}

// Register adds a renderer under the given markup-type name, replacing
// any existing entry. Returns ErrInvalidRenderer if the name is empty
// or the function is nil.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" || fn == nil {
		return ErrInvalidRenderer
	}
	r.renderers[name] = fn
	return nil
}

// Get returns the renderer registered under name.
// Returns ErrUnknownMarkupType if no renderer is registered.
func (r *Registry) Get(name string) (Func, error) {
	fn, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMarkupType, name)
	}
	return fn, nil
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.renderers[name]
	return ok
}

// Render converts raw text using the renderer registered under name.
// Returns ErrUnknownMarkupType if the name is not registered; renderer
// failures are wrapped and propagated unchanged.
func (r *Registry) Render(name, raw string) (string, error) {
	fn, err := r.Get(name)
	if err != nil {
		return "", err
	}
	out, err := fn(raw)
	if err != nil {
		return "", fmt.Errorf("rendering %q: %w", name, err)
	}
	return out, nil
}

// Names returns the registered markup-type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a registry with the built-in renderers: "html"
// (passthrough), "plain" (escaped text with paragraphs and auto-linked
// URLs), and "markdown" (Goldmark, CommonMark dialect).
func Default() *Registry {
	r := New()
	r.Register(TypeHTML, func(raw string) (string, error) { return raw, nil })
	r.Register(TypePlain, Plain)
	r.Register(TypeMarkdown, Markdown)
	return r
}
