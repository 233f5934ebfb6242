package element

import "fmt"

// Attr is a plain attribute item for El.
type Attr struct {
	Key   string
	Value any
}

// A creates an attribute item.
func A(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Listener is an event binding item for El. The event name carries no
// "on" prefix and is already lower-case ("click", "input", ...).
type Listener struct {
	Event   string
	Handler Handler
}

// On creates an event binding item.
func On(event string, h Handler) Listener {
	return Listener{Event: event, Handler: h}
}

// El builds a host element. Items may be Attr, Listener, *Element,
// []*Element, Component, or string; bare strings are normalized into
// text elements, nils are skipped.
//
// Example:
//
//	element.El("button",
//	    element.A("class", "primary"),
//	    element.On("click", onClick),
//	    "Save",
//	)
func El(tag string, items ...any) *Element {
	e := &Element{Kind: KindElement, Tag: tag}
	for _, item := range items {
		switch v := item.(type) {
		case nil:
			continue
		case Attr:
			if e.Attrs == nil {
				e.Attrs = make(map[string]any)
			}
			e.Attrs[v.Key] = v.Value
		case Listener:
			if e.Events == nil {
				e.Events = make(map[string]Handler)
			}
			e.Events[v.Event] = v.Handler
		default:
			e.Children = append(e.Children, normalizeChildren(item)...)
		}
	}
	return e
}

// C builds a component element. Children are normalized the same way El
// normalizes them and are delivered to the component through its props.
func C(comp Component, attrs map[string]any, children ...any) *Element {
	e := &Element{Kind: KindComponent, Comp: comp}
	e.Attrs = attrs
	for _, child := range children {
		e.Children = append(e.Children, normalizeChildren(child)...)
	}
	return e
}

// Text creates a text element.
func Text(content string) *Element {
	return &Element{Kind: KindText, Text: content}
}

// Textf creates a formatted text element.
func Textf(format string, args ...any) *Element {
	return Text(fmt.Sprintf(format, args...))
}

// normalizeChildren coerces a child item into zero or more elements.
func normalizeChildren(item any) []*Element {
	switch v := item.(type) {
	case nil:
		return nil
	case *Element:
		if v == nil {
			return nil
		}
		return []*Element{v}
	case []*Element:
		out := make([]*Element, 0, len(v))
		for _, c := range v {
			if c != nil {
				out = append(out, c)
			}
		}
		return out
	case string:
		return []*Element{Text(v)}
	case Component:
		return []*Element{C(v, nil)}
	default:
		// Anything else renders as its string form, matching how bare
		// values appear in a declarative tree literal.
		return []*Element{Text(fmt.Sprintf("%v", v))}
	}
}
