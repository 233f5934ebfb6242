package fiber

import (
	"reflect"

	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/host"
)

// Handle is an arena index identifying a fiber. Fibers reference each
// other by handle instead of by pointer, so the transient coexistence of
// the in-progress tree and the committed tree never forms ownership
// cycles.
type Handle int32

// None is the absent handle.
const None Handle = -1

// EffectTag classifies the pending host mutation for a fiber. It is
// meaningful only during an in-progress pass and is cleared at commit.
type EffectTag uint8

const (
	EffectNone   EffectTag = iota
	EffectInsert           // Attach a freshly created host node
	EffectUpdate           // Re-apply the property diff to a reused node
	EffectDelete           // Remove the host node from the host tree
)

// String returns the string representation of the EffectTag.
func (t EffectTag) String() string {
	switch t {
	case EffectNone:
		return "None"
	case EffectInsert:
		return "Insert"
	case EffectUpdate:
		return "Update"
	case EffectDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// hook is one state slot on a component fiber. Identity is call order.
//
// Once a pass replays a hook, the old record forwards any late-arriving
// updates to its successor on the in-progress fiber; otherwise an event
// dispatched between the replay and the commit would queue onto a
// record that is about to be released.
type hook struct {
	state any
	queue []element.Update // Deferred transitions, applied on replay

	forwarded   bool
	forwardTo   Handle
	forwardSlot int
	forwardGen  uint32
}

// fiber is one unit of reconciliation work/result: one per tree
// position, paired across renders via alternate.
type fiber struct {
	kind  element.Kind
	comp  element.Component // KindComponent only
	tag   string            // KindElement only
	text  string            // KindText only
	props element.Props

	// node is the attached host node. Nil for component fibers and for
	// fibers not yet committed. The tree root carries the container.
	node host.Node

	parent    Handle
	child     Handle
	sibling   Handle
	alternate Handle // Counterpart at the same position last commit

	effect EffectTag
	hooks  []hook
}

// sameKind reports whether an existing fiber and a new element describe
// the same kind of node: tag equality for host elements, always for
// text, function identity for components.
func sameKind(f *fiber, el *element.Element) bool {
	if f.kind != el.Kind {
		return false
	}
	switch el.Kind {
	case element.KindElement:
		return f.tag == el.Tag
	case element.KindComponent:
		return reflect.ValueOf(f.comp).Pointer() == reflect.ValueOf(el.Comp).Pointer()
	default:
		return true
	}
}

// arena is an indexed fiber store with free-list recycling. Handles of
// released fibers carry a generation counter so stale references (for
// example a state setter closure outliving its fiber) can be detected
// and dropped instead of corrupting a recycled slot.
type arena struct {
	fibers []fiber
	gens   []uint32
	free   []Handle
}

// alloc returns a zeroed fiber with all links set to None.
func (a *arena) alloc() Handle {
	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.fibers = append(a.fibers, fiber{})
		a.gens = append(a.gens, 0)
		h = Handle(len(a.fibers) - 1)
	}
	f := &a.fibers[h]
	*f = fiber{
		parent:    None,
		child:     None,
		sibling:   None,
		alternate: None,
	}
	return h
}

// get returns the fiber for a handle. The pointer is invalidated by the
// next alloc; callers re-get after any allocation.
func (a *arena) get(h Handle) *fiber {
	return &a.fibers[h]
}

// gen returns the current generation of a slot.
func (a *arena) gen(h Handle) uint32 {
	return a.gens[h]
}

// release returns a fiber to the free list and bumps its generation.
func (a *arena) release(h Handle) {
	a.gens[h]++
	a.fibers[h] = fiber{parent: None, child: None, sibling: None, alternate: None}
	a.free = append(a.free, h)
}
