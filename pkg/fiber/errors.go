package fiber

import "errors"

// ErrNilContainer is returned by Render when the container handle is
// nil. There is nothing to attach the tree to, so this fails fast.
var ErrNilContainer = errors.New("weft: render called with nil container")

// ErrPassInFlight is returned by Render when a work-in-progress tree
// already exists. Overlapping passes are a disallowed state in this
// design; the previous pass must commit first.
var ErrPassInFlight = errors.New("weft: render pass already in flight")

// ErrRendererClosed is returned by Render after Close.
var ErrRendererClosed = errors.New("weft: renderer closed")

// ErrNoCommittedTree is reported when a state setter requests a rebuild
// before anything has ever committed. There is no tree to re-render
// from, so the request is dropped.
var ErrNoCommittedTree = errors.New("weft: state update before first commit")

// ErrHookOutsideRender is the panic value when UseState is called
// outside a component's render. Hooks have no identity without an
// active component fiber; this is a programmer error.
var ErrHookOutsideRender = errors.New("weft: useState called outside component render")

// ErrHookOrder is the panic value when a component's hook call order
// differs from its previous render. Hook identity is call order;
// conditional hooks are not supported.
var ErrHookOrder = errors.New("weft: hook call order changed between renders")

// ErrOrphanDeletion is reported when a delete-tagged subtree contains no
// host node anywhere. The reconciler never produces such a subtree, so
// reaching this means a broken invariant, not a recoverable condition.
var ErrOrphanDeletion = errors.New("weft: deletion subtree has no host node")
