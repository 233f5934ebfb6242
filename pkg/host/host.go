// Package host declares the narrow interface through which the fiber
// engine creates and mutates platform nodes. The engine never touches a
// real document directly; every mutation funnels through a Document.
package host

import "github.com/weft-ui/weft/pkg/element"

// Node is an opaque handle to a platform node. Implementations define
// the concrete type; the engine only stores and passes handles back.
type Node any

// Document provides the host tree primitives consumed by the engine.
//
// Listeners are identified by (node, event name): a node carries at most
// one handler per event, and RemoveListener drops whichever handler is
// bound. Go functions are not comparable, so removal by handler value is
// deliberately not part of the contract.
type Document interface {
	// CreateElement creates a detached element node with the given tag.
	CreateElement(tag string) Node

	// CreateText creates a detached text node with the given value.
	CreateText(value string) Node

	// SetAttribute assigns a named attribute on a node.
	SetAttribute(n Node, name string, value any)

	// RemoveAttribute resets a named attribute to its absent state.
	RemoveAttribute(n Node, name string)

	// SetText replaces the value of a text node.
	SetText(n Node, value string)

	// AddListener binds a handler for an event name on a node,
	// replacing any handler already bound for that name.
	AddListener(n Node, event string, h element.Handler)

	// RemoveListener unbinds the handler for an event name on a node.
	RemoveListener(n Node, event string)

	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)
}
