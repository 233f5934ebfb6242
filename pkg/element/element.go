package element

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindComponent             // Function component
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Update is a deferred state transition: it receives the current hook
// state and returns the next.
type Update func(prev any) any

// Ctx provides hooks to a component while it is being rendered.
// It is implemented by the fiber renderer and is only valid for the
// duration of the component call that received it.
type Ctx interface {
	// UseState returns the hook state at the current cursor position and
	// a setter that queues an Update and requests a re-render.
	UseState(initial any) (any, func(Update))
}

// Component is a function component: invoked with its props during
// reconciliation, it returns exactly one element (or nil for nothing).
type Component func(ctx Ctx, props Props) *Element

// Event is delivered to a Handler when the host dispatches an event.
type Event struct {
	Type  string // "click", "input", etc.
	Value any    // Optional payload (input value, key, ...)
}

// Handler handles a host event.
type Handler func(Event)

// Props holds everything that parameterizes a node: plain attributes,
// event handlers, and the ordered child list. Attributes and events are
// kept in separate maps so nothing downstream has to sniff key prefixes
// to tell them apart.
type Props struct {
	Attrs    map[string]any
	Events   map[string]Handler
	Children []*Element
}

// Element is an immutable description of a desired node and its children.
type Element struct {
	Kind Kind
	Tag  string    // For KindElement: host tag name
	Text string    // For KindText: node value
	Comp Component // For KindComponent

	Props
}
