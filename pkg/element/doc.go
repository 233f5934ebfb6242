// Package element defines the immutable description of a desired node
// tree: what should be on screen, not what currently is.
//
// Elements are produced by the El/Text/C constructors, never mutated, and
// may be shared by reference across renders. The fiber engine consumes
// them during reconciliation.
package element
