package fiber

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/host"
	"github.com/weft-ui/weft/pkg/sched"
)

// DefaultYieldThreshold is the remaining-budget floor below which the
// work loop yields the slice back to the scheduler.
const DefaultYieldThreshold = time.Millisecond

// command is a message to the work loop, drained between idle slices.
type command uint8

const cmdRerender command = iota

// CommitInfo describes one completed commit.
type CommitInfo struct {
	Pass    uint64 // 1-based pass number
	Fibers  int    // Units of work performed during the pass
	Inserts int
	Updates int
	Deletes int
}

// Renderer owns one fiber tree pair (committed and in-progress) and
// drives reconciliation against one host document. All former global
// singletons of this kind of engine (current root, work-in-progress
// root, next unit of work, hook cursor) live here, so independent
// renderer instances can coexist.
type Renderer struct {
	doc            host.Document
	scheduler      sched.Scheduler
	ownedScheduler *sched.FrameScheduler
	yieldThreshold time.Duration
	metrics        *Metrics
	tracerName     string
	tracer         trace.Tracer
	onError        func(error)

	mu        sync.Mutex
	arena     arena
	container host.Node
	current   Handle
	wip       Handle
	nextUnit  Handle
	deletions []Handle

	// Hook cursor: the component fiber currently rendering, if any.
	wipComponent Handle
	hookIndex    int

	commands []command
	onCommit []func(CommitInfo)

	passCtx    context.Context
	passSpan   trace.Span
	passCount  uint64
	passFibers int

	inserts, updates, deletes int

	started bool
	closed  bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithScheduler sets the idle scheduler. The renderer does not own a
// scheduler passed this way; stopping it is the caller's job.
func WithScheduler(s sched.Scheduler) Option {
	return func(r *Renderer) { r.scheduler = s }
}

// WithMetrics sets the Prometheus metrics set. Nil disables recording.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// WithTracerName sets the OpenTelemetry tracer name (default: "weft").
// The tracer is resolved from the global tracer provider.
func WithTracerName(name string) Option {
	return func(r *Renderer) { r.tracerName = name }
}

// WithOnError sets the callback for reported engine errors
// (ErrNoCommittedTree, ErrOrphanDeletion). The default panics: both
// indicate a broken precondition or invariant, and this engine has no
// partial-failure state to recover into. The callback runs with the
// renderer locked and must not call back into it.
func WithOnError(fn func(error)) Option {
	return func(r *Renderer) { r.onError = fn }
}

// WithYieldThreshold sets the remaining-budget floor at which the work
// loop yields.
func WithYieldThreshold(d time.Duration) Option {
	return func(r *Renderer) { r.yieldThreshold = d }
}

// NewRenderer creates a renderer for the given host document. Without
// WithScheduler it starts and owns a FrameScheduler, stopped by Close.
func NewRenderer(doc host.Document, opts ...Option) *Renderer {
	r := &Renderer{
		doc:            doc,
		yieldThreshold: DefaultYieldThreshold,
		tracerName:     "weft",
		current:        None,
		wip:            None,
		nextUnit:       None,
		wipComponent:   None,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.scheduler == nil {
		fs := sched.NewFrameScheduler()
		r.scheduler = fs
		r.ownedScheduler = fs
	}
	if r.onError == nil {
		r.onError = func(err error) { panic(err) }
	}
	r.tracer = otel.Tracer(r.tracerName)
	return r
}

// Render seeds a new pass whose single child is el, rooted at the given
// container node. The first call starts the idle loop; the pass itself
// runs incrementally across idle slices and commits when complete.
func (r *Renderer) Render(el *element.Element, container host.Node) error {
	if container == nil {
		return ErrNilContainer
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRendererClosed
	}
	if r.wip != None {
		return ErrPassInFlight
	}

	r.container = container
	r.startPass([]*element.Element{el})
	r.ensureLoop()
	return nil
}

// Idle reports whether no pass is in flight and no re-render request is
// queued.
func (r *Renderer) Idle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wip == None && r.nextUnit == None && len(r.commands) == 0
}

// OnCommit registers a callback invoked after every commit, outside the
// renderer lock.
func (r *Renderer) OnCommit(fn func(CommitInfo)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCommit = append(r.onCommit, fn)
}

// Close stops the work loop and, if the renderer owns its scheduler,
// stops that too. The committed host tree is left as-is.
func (r *Renderer) Close() {
	r.mu.Lock()
	r.closed = true
	owned := r.ownedScheduler
	r.mu.Unlock()

	if owned != nil {
		owned.Stop()
	}
}

// startPass seeds the work-in-progress root. Caller holds the lock.
func (r *Renderer) startPass(children []*element.Element) {
	h := r.arena.alloc()
	f := r.arena.get(h)
	f.kind = element.KindElement
	f.node = r.container
	f.props = element.Props{Children: children}
	f.alternate = r.current

	r.wip = h
	r.nextUnit = h
	r.deletions = r.deletions[:0]
	r.passFibers = 0
	r.passCount++
	r.metrics.recordPassStarted()

	r.passCtx, r.passSpan = r.tracer.Start(context.Background(), "weft.pass",
		trace.WithAttributes(attribute.Int64("weft.pass_number", int64(r.passCount))))
}

// ensureLoop requests the first idle slice. Caller holds the lock.
func (r *Renderer) ensureLoop() {
	if r.started {
		return
	}
	r.started = true
	r.scheduler.RequestIdle(r.workLoop)
}

// workLoop is the unit-of-work scheduler: one idle slice per call. It
// drains queued re-render commands, performs units of work until the
// slice budget runs low, commits when the pass is complete, and always
// re-registers for the next slice.
func (r *Renderer) workLoop(d sched.Deadline) {
	start := time.Now()

	info, listeners, closed := r.runSlice(d)
	if closed {
		return
	}

	r.metrics.recordSlice(time.Since(start))

	if info != nil {
		for _, fn := range listeners {
			fn(*info)
		}
	}
	r.scheduler.RequestIdle(r.workLoop)
}

// runSlice is the locked portion of one idle slice. The deferred unlock
// also covers hook-contract panics raised from inside a component.
func (r *Renderer) runSlice(d sched.Deadline) (*CommitInfo, []func(CommitInfo), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, nil, true
	}

	r.drainCommands()

	for r.nextUnit != None && d.TimeRemaining() >= r.yieldThreshold {
		r.nextUnit = r.performUnitOfWork(r.nextUnit)
		r.passFibers++
		r.metrics.recordFiber()
	}

	var info *CommitInfo
	if r.nextUnit == None && r.wip != None {
		info = r.commitRoot()
	}

	listeners := make([]func(CommitInfo), len(r.onCommit))
	copy(listeners, r.onCommit)
	return info, listeners, false
}

// drainCommands starts a queued re-render if no pass is in flight. The
// rebuild renders from the top using the committed root's own children:
// same input tree, new hook states. Caller holds the lock.
func (r *Renderer) drainCommands() {
	if r.wip != None || len(r.commands) == 0 {
		return
	}
	r.commands = r.commands[:0]

	if r.current == None {
		r.reportError(ErrNoCommittedTree)
		return
	}
	r.startPass(r.arena.get(r.current).props.Children)
}

// performUnitOfWork processes one fiber and returns the next one in
// depth-first pre-order, or None when the walk exits the root.
func (r *Renderer) performUnitOfWork(h Handle) Handle {
	if r.arena.get(h).kind == element.KindComponent {
		r.renderComponent(h)
	} else {
		f := r.arena.get(h)
		if f.node == nil {
			f.node = createNode(r.doc, f)
		}
		r.reconcileChildren(h, f.props.Children)
	}

	if child := r.arena.get(h).child; child != None {
		return child
	}
	for cur := h; cur != None && cur != r.wip; {
		f := r.arena.get(cur)
		if f.sibling != None {
			return f.sibling
		}
		cur = f.parent
	}
	return None
}

// renderComponent invokes a function component and reconciles its
// single resulting element as the fiber's sole child. The hook list and
// cursor are reset before the call; hook identity is call order.
func (r *Renderer) renderComponent(h Handle) {
	f := r.arena.get(h)
	comp := f.comp
	props := f.props
	f.hooks = f.hooks[:0]

	r.wipComponent = h
	r.hookIndex = 0
	out := comp(componentCtx{r: r}, props)
	r.wipComponent = None

	f = r.arena.get(h)
	if f.alternate != None {
		if alt := r.arena.get(f.alternate); len(alt.hooks) != len(f.hooks) {
			panic(ErrHookOrder)
		}
	}

	var children []*element.Element
	if out != nil {
		children = []*element.Element{out}
	}
	r.reconcileChildren(h, children)
}

// reportError records and surfaces an engine error. Caller holds the
// lock.
func (r *Renderer) reportError(err error) {
	r.metrics.recordError()
	if r.passSpan != nil {
		r.passSpan.RecordError(err)
	}
	r.onError(err)
}
