package fiber

import (
	"sort"
	"testing"

	"github.com/weft-ui/weft/pkg/element"
)

func attrs(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}

func TestDiffPropsAttrs(t *testing.T) {
	tests := []struct {
		name        string
		prev, next  map[string]any
		wantRemoved []string
		wantSet     map[string]any
	}{
		{
			name: "no change",
			prev: attrs("id", "a", "class", "x"),
			next: attrs("id", "a", "class", "x"),
		},
		{
			name:    "added",
			prev:    attrs("id", "a"),
			next:    attrs("id", "a", "class", "x"),
			wantSet: attrs("class", "x"),
		},
		{
			name:        "removed",
			prev:        attrs("id", "a", "class", "x"),
			next:        attrs("id", "a"),
			wantRemoved: []string{"class"},
		},
		{
			name:    "changed value",
			prev:    attrs("count", 1),
			next:    attrs("count", 2),
			wantSet: attrs("count", 2),
		},
		{
			name:    "changed type",
			prev:    attrs("value", "1"),
			next:    attrs("value", 1),
			wantSet: attrs("value", 1),
		},
		{
			name: "both empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diffProps(element.Props{Attrs: tt.prev}, element.Props{Attrs: tt.next})

			sort.Strings(d.removeAttrs)
			if len(d.removeAttrs) != len(tt.wantRemoved) {
				t.Fatalf("removeAttrs = %v, want %v", d.removeAttrs, tt.wantRemoved)
			}
			for i, name := range tt.wantRemoved {
				if d.removeAttrs[i] != name {
					t.Errorf("removeAttrs[%d] = %q, want %q", i, d.removeAttrs[i], name)
				}
			}

			if len(d.setAttrs) != len(tt.wantSet) {
				t.Fatalf("setAttrs = %v, want %v", d.setAttrs, tt.wantSet)
			}
			for name, want := range tt.wantSet {
				if got := d.setAttrs[name]; !valuesEqual(got, want) {
					t.Errorf("setAttrs[%q] = %v, want %v", name, got, want)
				}
			}

			if len(d.removeListeners) != 0 || len(d.bindListeners) != 0 {
				t.Errorf("listener changes = %v/%v, want none", d.removeListeners, d.bindListeners)
			}
		})
	}
}

func TestDiffPropsIdempotent(t *testing.T) {
	p := element.Props{
		Attrs:  attrs("id", "a", "count", 3),
		Events: map[string]element.Handler{"click": func(element.Event) {}},
	}
	if d := diffProps(p, p); !d.empty() {
		t.Errorf("diffProps(p, p) = %+v, want empty", d)
	}
}

func TestDiffPropsListenersByMapIdentity(t *testing.T) {
	h := func(element.Event) {}
	shared := map[string]element.Handler{"click": h}

	t.Run("same map is quiet", func(t *testing.T) {
		d := diffProps(element.Props{Events: shared}, element.Props{Events: shared})
		if !d.empty() {
			t.Errorf("diff = %+v, want empty", d)
		}
	})

	t.Run("rebuilt map rebinds everything", func(t *testing.T) {
		rebuilt := map[string]element.Handler{"click": h, "focus": h}
		d := diffProps(element.Props{Events: shared}, element.Props{Events: rebuilt})
		if len(d.removeListeners) != 1 || d.removeListeners[0] != "click" {
			t.Errorf("removeListeners = %v, want [click]", d.removeListeners)
		}
		if len(d.bindListeners) != 2 {
			t.Errorf("bindListeners = %v, want click and focus", d.bindListeners)
		}
	})

	t.Run("dropped map unbinds", func(t *testing.T) {
		d := diffProps(element.Props{Events: shared}, element.Props{})
		if len(d.removeListeners) != 1 || len(d.bindListeners) != 0 {
			t.Errorf("diff = %v/%v, want [click]/none", d.removeListeners, d.bindListeners)
		}
	})
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{"x", "x", true},
		{"x", "y", false},
		{1, 1, true},
		{1, 2, false},
		{1, int64(1), false},
		{int64(7), int64(7), true},
		{1.5, 1.5, true},
		{true, true, true},
		{true, false, false},
		{nil, nil, true},
		{nil, "x", false},
		{[]string{"a"}, []string{"a"}, true},
		{[]string{"a"}, []string{"b"}, false},
	}
	for _, tt := range tests {
		if got := valuesEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("valuesEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
