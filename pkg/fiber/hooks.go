package fiber

import "github.com/weft-ui/weft/pkg/element"

// componentCtx implements element.Ctx for the component currently being
// rendered. It is valid only for the duration of that call.
type componentCtx struct {
	r *Renderer
}

// UseState implements element.Ctx.
//
// Hook identity is call order: the hook at cursor position i resumes
// from the state of hook i on the fiber's alternate, replaying any
// updates queued since the last render before returning. The returned
// setter queues an update and requests a fresh top-down pass; it must
// not be called synchronously from within a component's render.
func (c componentCtx) UseState(initial any) (any, func(element.Update)) {
	r := c.r
	if r.wipComponent == None {
		panic(ErrHookOutsideRender)
	}

	h := r.wipComponent
	f := r.arena.get(h)
	idx := r.hookIndex

	hk := hook{state: initial}
	if f.alternate != None {
		alt := r.arena.get(f.alternate)
		if idx >= len(alt.hooks) {
			// More hooks this render than last: the call-order
			// contract is broken.
			panic(ErrHookOrder)
		}
		old := &alt.hooks[idx]
		hk.state = old.state
		for _, up := range old.queue {
			hk.state = up(hk.state)
		}
		old.queue = nil
		old.forwarded = true
		old.forwardTo = h
		old.forwardSlot = idx
		old.forwardGen = r.arena.gen(h)
	}

	f.hooks = append(f.hooks, hk)
	r.hookIndex++

	gen := r.arena.gen(h)
	slot := idx
	setter := func(up element.Update) {
		r.enqueueUpdate(h, gen, slot, up)
	}
	return hk.state, setter
}

// enqueueUpdate queues a state transition on a hook and posts a
// re-render command for the work loop to drain between slices. Setters
// from superseded renders (their fiber already recycled) are dropped.
func (r *Renderer) enqueueUpdate(h Handle, gen uint32, slot int, up element.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		if r.closed || r.arena.gen(h) != gen {
			return
		}
		f := r.arena.get(h)
		if slot >= len(f.hooks) {
			return
		}
		hk := &f.hooks[slot]
		if hk.forwarded {
			h, gen, slot = hk.forwardTo, hk.forwardGen, hk.forwardSlot
			continue
		}
		hk.queue = append(hk.queue, up)
		break
	}
	r.commands = append(r.commands, cmdRerender)
}

// UseState is the typed convenience wrapper over element.Ctx.UseState.
//
// Example:
//
//	count, setCount := fiber.UseState(ctx, 0)
//	// ...
//	setCount(func(c int) int { return c + 1 })
func UseState[T any](ctx element.Ctx, initial T) (T, func(func(T) T)) {
	state, set := ctx.UseState(initial)
	value, _ := state.(T)
	setTyped := func(fn func(T) T) {
		set(func(prev any) any {
			pv, _ := prev.(T)
			return fn(pv)
		})
	}
	return value, setTyped
}
