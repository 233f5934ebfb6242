// Package fiber is the reconciliation and incremental-commit engine.
//
// A Renderer diffs a declarative element tree against the previously
// committed tree one fiber at a time, yielding to its scheduler between
// units of work, then applies the accumulated effects to the host
// document in a single non-yieldable commit. State hooks let a component
// re-enter reconciliation after an external state change.
//
// Rendering is cooperative and single-threaded: all engine work happens
// inside idle slices, and a fiber's processing is never interrupted
// mid-fiber. Reconciliation is strictly positional; there is no keyed
// matching or move detection, so a mid-list insertion updates every
// following sibling.
package fiber
