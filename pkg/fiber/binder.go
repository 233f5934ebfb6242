package fiber

import (
	"reflect"

	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/host"
)

// propDiff is the minimal set of host mutations that turns one property
// bag into another. Children never appear here; they are reconciled as
// fibers, not set as properties.
type propDiff struct {
	removeAttrs     []string
	setAttrs        map[string]any
	removeListeners []string
	bindListeners   map[string]element.Handler
}

// empty reports whether applying the diff would touch the host at all.
func (d propDiff) empty() bool {
	return len(d.removeAttrs) == 0 && len(d.setAttrs) == 0 &&
		len(d.removeListeners) == 0 && len(d.bindListeners) == 0
}

// diffProps computes the attribute and listener changes between two
// property bags.
//
// Attributes diff by value. Listeners diff by event-map identity: Go
// functions are not comparable, so when the next props carry a different
// Events map every listener is unbound and re-bound, which keeps handler
// closures from going stale across renders. An element reused by
// reference (same map) produces no listener changes.
func diffProps(prev, next element.Props) propDiff {
	var d propDiff

	for name := range prev.Attrs {
		if _, ok := next.Attrs[name]; !ok {
			d.removeAttrs = append(d.removeAttrs, name)
		}
	}
	for name, nextVal := range next.Attrs {
		prevVal, ok := prev.Attrs[name]
		if !ok || !valuesEqual(prevVal, nextVal) {
			if d.setAttrs == nil {
				d.setAttrs = make(map[string]any)
			}
			d.setAttrs[name] = nextVal
		}
	}

	if sameEventMap(prev.Events, next.Events) {
		return d
	}
	for name := range prev.Events {
		d.removeListeners = append(d.removeListeners, name)
	}
	if len(next.Events) > 0 {
		d.bindListeners = make(map[string]element.Handler, len(next.Events))
		for name, h := range next.Events {
			d.bindListeners[name] = h
		}
	}
	return d
}

// applyPropDiff plays a diff onto a host node.
func applyPropDiff(doc host.Document, n host.Node, d propDiff) {
	for _, name := range d.removeListeners {
		doc.RemoveListener(n, name)
	}
	for _, name := range d.removeAttrs {
		doc.RemoveAttribute(n, name)
	}
	for name, v := range d.setAttrs {
		doc.SetAttribute(n, name, v)
	}
	for name, h := range d.bindListeners {
		doc.AddListener(n, name, h)
	}
}

// createNode creates the host node for a fiber and applies its full
// property bag. Text fibers become text nodes; everything else becomes
// a tagged element node.
func createNode(doc host.Document, f *fiber) host.Node {
	if f.kind == element.KindText {
		return doc.CreateText(f.text)
	}
	n := doc.CreateElement(f.tag)
	applyPropDiff(doc, n, diffProps(element.Props{}, f.props))
	return n
}

// sameEventMap reports whether two event maps are the same map value.
func sameEventMap(a, b map[string]element.Handler) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// valuesEqual compares two attribute values with fast paths for the
// common scalar types before falling back to reflection.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}
