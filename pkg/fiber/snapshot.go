package fiber

import "sort"

// Snapshot is a JSON-friendly view of the committed fiber tree, taken
// for diagnostics (the inspector serves it). Handlers are reduced to
// their event names.
type Snapshot struct {
	Kind     string         `json:"kind"`
	Tag      string         `json:"tag,omitempty"`
	Text     string         `json:"text,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Events   []string       `json:"events,omitempty"`
	Children []*Snapshot    `json:"children,omitempty"`
}

// Snapshot returns the committed tree, or nil before the first commit.
func (r *Renderer) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == None {
		return nil
	}
	return r.snapshotFiber(r.current)
}

func (r *Renderer) snapshotFiber(h Handle) *Snapshot {
	f := r.arena.get(h)
	s := &Snapshot{
		Kind: f.kind.String(),
		Tag:  f.tag,
		Text: f.text,
	}
	if len(f.props.Attrs) > 0 {
		s.Attrs = f.props.Attrs
	}
	if len(f.props.Events) > 0 {
		s.Events = make([]string, 0, len(f.props.Events))
		for name := range f.props.Events {
			s.Events = append(s.Events, name)
		}
		sort.Strings(s.Events)
	}
	for c := f.child; c != None; c = r.arena.get(c).sibling {
		s.Children = append(s.Children, r.snapshotFiber(c))
	}
	return s
}
