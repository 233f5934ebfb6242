package fiber

import (
	"errors"
	"testing"

	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/sched"
)

// counter is the canonical stateful component: a heading that
// increments on click.
func counter(ctx element.Ctx, props element.Props) *element.Element {
	count, setCount := UseState(ctx, 1)
	return element.El("h1",
		element.On("click", func(element.Event) {
			setCount(func(c int) int { return c + 1 })
		}),
		element.Textf("Count: %d", count),
	)
}

func mustPanicWith(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("no panic")
		}
		err, ok := p.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", p, want)
		}
	}()
	fn()
}

func TestCounterClickEndToEnd(t *testing.T) {
	g := newRig(t)
	g.render(t, element.C(counter, nil))

	h1 := g.container.FindTag("h1")
	if h1 == nil {
		t.Fatal("no h1 in committed tree")
	}
	if got, want := h1.TextContent(), "Count: 1"; got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
	created := g.doc.Created

	if !h1.Dispatch("click", nil) {
		t.Fatal("no click handler bound")
	}
	g.settle(t)

	if got, want := h1.TextContent(), "Count: 2"; got != want {
		t.Errorf("TextContent() after click = %q, want %q", got, want)
	}
	// The re-render rewrites the committed nodes in place.
	if g.container.FindTag("h1") != h1 {
		t.Error("h1 host node replaced instead of reused")
	}
	if g.doc.Created != created {
		t.Errorf("Created = %d, want %d", g.doc.Created, created)
	}
	if g.doc.Removed != 0 {
		t.Errorf("Removed = %d, want 0", g.doc.Removed)
	}
}

func TestQueuedUpdatesReplayInOnePass(t *testing.T) {
	g := newRig(t)
	g.render(t, element.C(counter, nil))
	h1 := g.container.FindTag("h1")

	// Two clicks land before the next idle slice; both transitions must
	// replay in a single rebuild.
	h1.Dispatch("click", nil)
	h1.Dispatch("click", nil)
	g.settle(t)

	if got, want := h1.TextContent(), "Count: 3"; got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
	if got := len(g.commits); got != 2 {
		t.Errorf("commits = %d, want 2", got)
	}
}

func TestSetterDuringInFlightPassIsNotLost(t *testing.T) {
	g := newRig(t)
	g.render(t, element.C(counter, nil))
	h1 := g.container.FindTag("h1")

	// First click queues a rebuild.
	h1.Dispatch("click", nil)

	// Run the rebuild far enough that the hook has already replayed
	// (root, component, h1: three units) but nothing has committed.
	g.sch.Step(sched.Countdown(3))
	if g.r.Idle() {
		t.Fatal("rebuild committed inside a 3-unit slice")
	}

	// A second click now goes through the still-bound committed handler.
	// Its update must survive the in-flight pass and apply on the next.
	h1.Dispatch("click", nil)
	g.settle(t)

	if got, want := h1.TextContent(), "Count: 3"; got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}
}

func TestUseStateOutsideRenderPanics(t *testing.T) {
	g := newRig(t)

	var leaked element.Ctx
	comp := func(ctx element.Ctx, props element.Props) *element.Element {
		leaked = ctx
		return element.El("p")
	}
	g.render(t, element.C(comp, nil))

	mustPanicWith(t, ErrHookOutsideRender, func() {
		leaked.UseState(0)
	})
}

func TestHookOrderChangePanics(t *testing.T) {
	t.Run("more hooks than last render", func(t *testing.T) {
		g := newRig(t)

		hooks := 1
		var bump func(func(int) int)
		comp := func(ctx element.Ctx, props element.Props) *element.Element {
			n, set := UseState(ctx, 0)
			bump = set
			if hooks == 2 {
				UseState(ctx, 0)
			}
			return element.Textf("%d", n)
		}
		g.render(t, element.C(comp, nil))

		hooks = 2
		bump(func(n int) int { return n + 1 })
		mustPanicWith(t, ErrHookOrder, func() {
			g.sch.Step(sched.Forever())
		})
	})

	t.Run("fewer hooks than last render", func(t *testing.T) {
		g := newRig(t)

		hooks := 2
		var bump func(func(int) int)
		comp := func(ctx element.Ctx, props element.Props) *element.Element {
			n, set := UseState(ctx, 0)
			bump = set
			if hooks == 2 {
				UseState(ctx, 0)
			}
			return element.Textf("%d", n)
		}
		g.render(t, element.C(comp, nil))

		hooks = 1
		bump(func(n int) int { return n + 1 })
		mustPanicWith(t, ErrHookOrder, func() {
			g.sch.Step(sched.Forever())
		})
	})
}

func TestStaleSetterFromRemovedComponentIsDropped(t *testing.T) {
	g := newRig(t)

	var bump func(func(int) int)
	comp := func(ctx element.Ctx, props element.Props) *element.Element {
		n, set := UseState(ctx, 0)
		bump = set
		return element.Textf("%d", n)
	}

	g.render(t, element.C(comp, nil))
	g.render(t, element.El("div", "gone"))

	// The component's fiber was recycled with the old tree; its setter
	// must become a no-op rather than corrupt the recycled slot.
	bump(func(n int) int { return n + 1 })
	if !g.r.Idle() {
		t.Error("stale setter queued a rebuild")
	}
	commits := len(g.commits)
	g.sch.Step(sched.Forever())
	if len(g.commits) != commits {
		t.Errorf("commits = %d after stale setter, want %d", len(g.commits), commits)
	}
}

func TestUseStateKeepsStateAcrossRenders(t *testing.T) {
	g := newRig(t)

	renders := 0
	var setName func(func(string) string)
	comp := func(ctx element.Ctx, props element.Props) *element.Element {
		renders++
		name, set := UseState(ctx, "ada")
		setName = set
		return element.El("p", name)
	}

	g.render(t, element.C(comp, nil))
	if got, want := g.container.TextContent(), "ada"; got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}

	setName(func(string) string { return "grace" })
	g.settle(t)
	if got, want := g.container.TextContent(), "grace"; got != want {
		t.Errorf("TextContent() = %q, want %q", got, want)
	}

	// A full top-down re-render with no pending update must keep the
	// current state, not reset to the initial value.
	g.render(t, element.C(comp, nil))
	if got, want := g.container.TextContent(), "grace"; got != want {
		t.Errorf("TextContent() after plain re-render = %q, want %q", got, want)
	}
	if renders != 3 {
		t.Errorf("renders = %d, want 3", renders)
	}
}
