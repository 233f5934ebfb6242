package fiber

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/host"
)

// commitRoot applies a completed pass to the host tree. It is not
// yieldable: once entered it runs to completion, so no partial commit
// is ever visible. Order: pending deletions first, then a depth-first
// walk applying insert/update effects, then the atomic swap of the
// committed root. Caller holds the lock.
func (r *Renderer) commitRoot() *CommitInfo {
	start := time.Now()

	spanCtx := r.passCtx
	if spanCtx == nil {
		spanCtx = context.Background()
	}
	_, span := r.tracer.Start(spanCtx, "weft.commit")

	r.inserts, r.updates, r.deletes = 0, 0, 0

	for _, h := range r.deletions {
		r.commitDeletion(h)
	}
	r.commitFiber(r.arena.get(r.wip).child)

	old := r.current
	r.current = r.wip
	r.wip = None
	r.nextUnit = None
	r.deletions = r.deletions[:0]

	// The outgoing tree was only reachable through alternate links; it
	// has been fully consumed by this pass.
	if old != None {
		r.releaseTree(old)
	}
	r.finalizeTree(r.current)

	span.SetAttributes(
		attribute.Int("weft.inserts", r.inserts),
		attribute.Int("weft.updates", r.updates),
		attribute.Int("weft.deletes", r.deletes),
	)
	span.End()

	if r.passSpan != nil {
		r.passSpan.SetAttributes(attribute.Int("weft.fibers", r.passFibers))
		r.passSpan.SetStatus(codes.Ok, "")
		r.passSpan.End()
		r.passSpan = nil
		r.passCtx = nil
	}

	r.metrics.recordCommit(time.Since(start))
	return &CommitInfo{
		Pass:    r.passCount,
		Fibers:  r.passFibers,
		Inserts: r.inserts,
		Updates: r.updates,
		Deletes: r.deletes,
	}
}

// commitFiber applies one fiber's effect and recurses child-first.
// Component fibers interpose without host nodes; their effects are
// structural only.
func (r *Renderer) commitFiber(h Handle) {
	if h == None {
		return
	}
	f := r.arena.get(h)

	switch f.effect {
	case EffectInsert:
		if f.node != nil {
			if parent := r.hostParentNode(h); parent != nil {
				r.doc.AppendChild(parent, f.node)
			}
		}
		r.inserts++
		r.metrics.recordEffect(EffectInsert)

	case EffectUpdate:
		if f.node != nil {
			var prev element.Props
			prevText := ""
			if f.alternate != None {
				alt := r.arena.get(f.alternate)
				prev = alt.props
				prevText = alt.text
			}
			if f.kind == element.KindText {
				if f.text != prevText {
					r.doc.SetText(f.node, f.text)
				}
			} else {
				applyPropDiff(r.doc, f.node, diffProps(prev, f.props))
			}
		}
		r.updates++
		r.metrics.recordEffect(EffectUpdate)
	}

	child, sibling := f.child, f.sibling
	r.commitFiber(child)
	r.commitFiber(sibling)
}

// commitDeletion removes an outgoing fiber's host node from the host
// tree. Component fibers own no node, so the removal targets the
// nearest node-owning descendant. A delete subtree with no node at all
// means the reconciler broke an invariant; that fails loudly.
func (r *Renderer) commitDeletion(h Handle) {
	parent := r.hostParentNode(h)
	node := r.nearestNode(h)
	if parent == nil || node == nil {
		r.reportError(ErrOrphanDeletion)
		return
	}
	r.doc.RemoveChild(parent, node)
	r.deletes++
	r.metrics.recordEffect(EffectDelete)
}

// hostParentNode returns the host node of the nearest ancestor that
// owns one. The tree root holds the container, so the walk terminates.
func (r *Renderer) hostParentNode(h Handle) host.Node {
	for p := r.arena.get(h).parent; p != None; p = r.arena.get(p).parent {
		if node := r.arena.get(p).node; node != nil {
			return node
		}
	}
	return nil
}

// nearestNode returns the fiber's own host node or the first one found
// depth-first among its descendants.
func (r *Renderer) nearestNode(h Handle) host.Node {
	f := r.arena.get(h)
	if f.node != nil {
		return f.node
	}
	for c := f.child; c != None; c = r.arena.get(c).sibling {
		if node := r.nearestNode(c); node != nil {
			return node
		}
	}
	return nil
}

// releaseTree returns an entire outgoing tree to the arena free list.
func (r *Renderer) releaseTree(h Handle) {
	c := r.arena.get(h).child
	for c != None {
		next := r.arena.get(c).sibling
		r.releaseTree(c)
		c = next
	}
	r.arena.release(h)
}

// finalizeTree clears effects and alternate links on the committed
// tree. Alternates point into the just-released outgoing tree and must
// not survive the commit.
func (r *Renderer) finalizeTree(h Handle) {
	if h == None {
		return
	}
	f := r.arena.get(h)
	f.alternate = None
	f.effect = EffectNone
	child, sibling := f.child, f.sibling
	r.finalizeTree(child)
	r.finalizeTree(sibling)
}
