// Package memdom is an in-memory host.Document. It backs the engine's
// tests, the CLI demo, and the inspector; there is no real browser
// anywhere in this module.
package memdom

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/weft-ui/weft/pkg/element"
	"github.com/weft-ui/weft/pkg/host"
)

// Node is an in-memory platform node.
type Node struct {
	Tag       string // Empty for text nodes
	Text      string // For text nodes
	Attrs     map[string]any
	Listeners map[string]element.Handler
	Parent    *Node
	Kids      []*Node
}

// IsText reports whether this is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Dispatch fires the handler bound for the event name, if any, and
// reports whether a handler ran.
func (n *Node) Dispatch(event string, value any) bool {
	h, ok := n.Listeners[event]
	if !ok {
		return false
	}
	h(element.Event{Type: event, Value: value})
	return true
}

// Find returns the first node in this subtree (depth-first, self
// included) matching the predicate, or nil.
func (n *Node) Find(pred func(*Node) bool) *Node {
	if pred(n) {
		return n
	}
	for _, kid := range n.Kids {
		if found := kid.Find(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindTag returns the first descendant-or-self element with the tag.
func (n *Node) FindTag(tag string) *Node {
	return n.Find(func(m *Node) bool { return m.Tag == tag })
}

// TextContent concatenates the text of all text nodes in this subtree.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var b strings.Builder
	for _, kid := range n.Kids {
		b.WriteString(kid.TextContent())
	}
	return b.String()
}

// Markup renders the subtree as an HTML-ish string for assertions.
// Attributes are emitted in sorted key order so output is stable.
func (n *Node) Markup() string {
	var b strings.Builder
	n.writeMarkup(&b)
	return b.String()
}

func (n *Node) writeMarkup(b *strings.Builder) {
	if n.IsText() {
		b.WriteString(html.EscapeString(n.Text))
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%q", k, fmt.Sprintf("%v", n.Attrs[k]))
	}
	b.WriteByte('>')
	for _, kid := range n.Kids {
		kid.writeMarkup(b)
	}
	b.WriteString("</" + n.Tag + ">")
}

// Document is an in-memory host document. It additionally counts every
// mutation so tests can assert on node reuse and on empty diffs.
type Document struct {
	Created         int // Nodes created since construction
	Removed         int // RemoveChild calls
	AttrSets        int // SetAttribute calls
	AttrRemovals    int // RemoveAttribute calls
	ListenerBinds   int // AddListener calls
	ListenerUnbinds int // RemoveListener calls
	TextSets        int // SetText calls
}

// New creates an empty in-memory document.
func New() *Document {
	return &Document{}
}

// NewContainer returns a detached element node to render into.
func (d *Document) NewContainer() *Node {
	return &Node{Tag: "root"}
}

// CreateElement implements host.Document.
func (d *Document) CreateElement(tag string) host.Node {
	d.Created++
	return &Node{Tag: tag}
}

// CreateText implements host.Document.
func (d *Document) CreateText(value string) host.Node {
	d.Created++
	return &Node{Text: value}
}

// SetAttribute implements host.Document.
func (d *Document) SetAttribute(n host.Node, name string, value any) {
	d.AttrSets++
	node := n.(*Node)
	if node.Attrs == nil {
		node.Attrs = make(map[string]any)
	}
	node.Attrs[name] = value
}

// RemoveAttribute implements host.Document.
func (d *Document) RemoveAttribute(n host.Node, name string) {
	d.AttrRemovals++
	delete(n.(*Node).Attrs, name)
}

// SetText implements host.Document.
func (d *Document) SetText(n host.Node, value string) {
	d.TextSets++
	n.(*Node).Text = value
}

// AddListener implements host.Document.
func (d *Document) AddListener(n host.Node, event string, h element.Handler) {
	d.ListenerBinds++
	node := n.(*Node)
	if node.Listeners == nil {
		node.Listeners = make(map[string]element.Handler)
	}
	node.Listeners[event] = h
}

// RemoveListener implements host.Document.
func (d *Document) RemoveListener(n host.Node, event string) {
	d.ListenerUnbinds++
	delete(n.(*Node).Listeners, event)
}

// AppendChild implements host.Document.
func (d *Document) AppendChild(parent, child host.Node) {
	p := parent.(*Node)
	c := child.(*Node)
	if c.Parent != nil {
		d.detach(c)
	}
	c.Parent = p
	p.Kids = append(p.Kids, c)
}

// RemoveChild implements host.Document.
func (d *Document) RemoveChild(parent, child host.Node) {
	d.Removed++
	c := child.(*Node)
	if c.Parent != parent.(*Node) {
		return
	}
	d.detach(c)
}

func (d *Document) detach(c *Node) {
	p := c.Parent
	for i, kid := range p.Kids {
		if kid == c {
			p.Kids = append(p.Kids[:i], p.Kids[i+1:]...)
			break
		}
	}
	c.Parent = nil
}
