// Package weft is a minimal fiber-based UI rendering runtime.
//
// A declarative element tree is reconciled against the previously
// committed tree incrementally, across yieldable units of work, and the
// result is applied to an injected host document in one non-yieldable
// commit. A single state hook lets components re-enter reconciliation
// after an external state change.
//
//	doc := memdom.New()
//	container := doc.NewContainer()
//	r := weft.NewRenderer(doc)
//	defer r.Close()
//
//	err := r.Render(weft.El("h1", "Count: 1"), container)
//
// This package re-exports the public surface of pkg/element and
// pkg/fiber; the subpackages remain importable directly.
package weft

import (
	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/fiber"
	"github.com/weft-ui/weft/pkg/host"
)

// Version is the weft release version.
const Version = "0.1.0"

// Re-exported types.
type (
	Element   = element.Element
	Component = element.Component
	Props     = element.Props
	Ctx       = element.Ctx
	Event     = element.Event
	Handler   = element.Handler

	Renderer   = fiber.Renderer
	Option     = fiber.Option
	CommitInfo = fiber.CommitInfo
)

// El builds a host element. See element.El.
func El(tag string, items ...any) *Element {
	return element.El(tag, items...)
}

// Text creates a text element.
func Text(content string) *Element {
	return element.Text(content)
}

// Textf creates a formatted text element.
func Textf(format string, args ...any) *Element {
	return element.Textf(format, args...)
}

// A creates an attribute item for El.
func A(key string, value any) element.Attr {
	return element.A(key, value)
}

// On creates an event binding item for El.
func On(event string, h Handler) element.Listener {
	return element.On(event, h)
}

// C builds a component element.
func C(comp Component, attrs map[string]any, children ...any) *Element {
	return element.C(comp, attrs, children...)
}

// NewRenderer creates a renderer for the given host document.
func NewRenderer(doc host.Document, opts ...Option) *Renderer {
	return fiber.NewRenderer(doc, opts...)
}

// UseState is the typed state hook. See fiber.UseState.
func UseState[T any](ctx Ctx, initial T) (T, func(func(T) T)) {
	return fiber.UseState(ctx, initial)
}
