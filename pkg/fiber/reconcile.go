package fiber

import "github.com/weft-ui/weft/pkg/element"

// reconcileChildren diffs a parent fiber's new child elements against
// the previous commit's child chain (the parent's alternate's children)
// and links the resulting fibers as the parent's new child/sibling
// chain, in element order.
//
// The walk is purely positional: the element list advances by index,
// the old chain by sibling pointer, in lockstep until both are
// exhausted. Same position and same kind reuses the old fiber's host
// node as an update; anything else is an insert, and the displaced old
// fiber (kind mismatch or no element left) is tagged for deletion. A
// mid-list insertion therefore cascades updates through every following
// sibling — accepted behavior, not a bug.
func (r *Renderer) reconcileChildren(parentH Handle, elems []*element.Element) {
	oldH := None
	if alt := r.arena.get(parentH).alternate; alt != None {
		oldH = r.arena.get(alt).child
	}

	prevSibling := None
	for index := 0; index < len(elems) || oldH != None; index++ {
		var el *element.Element
		if index < len(elems) {
			el = elems[index]
		}

		same := false
		if el != nil && oldH != None {
			same = sameKind(r.arena.get(oldH), el)
		}

		newH := None
		switch {
		case same:
			newH = r.arena.alloc()
			old := r.arena.get(oldH)
			nf := r.arena.get(newH)
			fillFiber(nf, el)
			nf.node = old.node
			nf.parent = parentH
			nf.alternate = oldH
			nf.effect = EffectUpdate

		case el != nil:
			newH = r.arena.alloc()
			nf := r.arena.get(newH)
			fillFiber(nf, el)
			nf.parent = parentH
			nf.effect = EffectInsert
			if oldH != None {
				r.markDeleted(oldH)
			}

		default:
			// Old fiber with no element at this position.
			r.markDeleted(oldH)
		}

		if oldH != None {
			oldH = r.arena.get(oldH).sibling
		}

		if newH != None {
			if prevSibling == None {
				r.arena.get(parentH).child = newH
			} else {
				r.arena.get(prevSibling).sibling = newH
			}
			prevSibling = newH
		}
	}
}

// markDeleted tags an outgoing-tree fiber for deletion at commit.
func (r *Renderer) markDeleted(h Handle) {
	r.arena.get(h).effect = EffectDelete
	r.deletions = append(r.deletions, h)
}

// fillFiber copies an element's description into a fresh fiber.
func fillFiber(f *fiber, el *element.Element) {
	f.kind = el.Kind
	f.comp = el.Comp
	f.tag = el.Tag
	f.text = el.Text
	f.props = el.Props
}
