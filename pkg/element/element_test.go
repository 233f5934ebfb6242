package element

import "testing"

func TestElCollectsItems(t *testing.T) {
	clicked := false
	e := El("button",
		A("class", "primary"),
		A("disabled", true),
		On("click", func(Event) { clicked = true }),
		"Save",
	)

	if e.Kind != KindElement || e.Tag != "button" {
		t.Fatalf("El() = %s %q, want Element button", e.Kind, e.Tag)
	}
	if got := e.Attrs["class"]; got != "primary" {
		t.Errorf("Attrs[class] = %v, want primary", got)
	}
	if got := e.Attrs["disabled"]; got != true {
		t.Errorf("Attrs[disabled] = %v, want true", got)
	}
	if len(e.Events) != 1 {
		t.Fatalf("Events = %v, want one click binding", e.Events)
	}
	e.Events["click"](Event{Type: "click"})
	if !clicked {
		t.Error("bound handler did not run")
	}
	if len(e.Children) != 1 || e.Children[0].Kind != KindText || e.Children[0].Text != "Save" {
		t.Errorf("Children = %+v, want one Save text node", e.Children)
	}
}

func TestElNormalizesChildren(t *testing.T) {
	list := []*Element{El("li", "a"), nil, El("li", "b")}
	e := El("ul",
		nil,
		list,
		If(false, El("li", "hidden")),
		42,
	)

	if len(e.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(e.Children))
	}
	if e.Children[0].Tag != "li" || e.Children[1].Tag != "li" {
		t.Errorf("slice children not flattened: %+v", e.Children)
	}
	if e.Children[2].Kind != KindText || e.Children[2].Text != "42" {
		t.Errorf("bare value child = %+v, want text 42", e.Children[2])
	}
}

func TestC(t *testing.T) {
	comp := func(ctx Ctx, props Props) *Element { return nil }
	e := C(comp, map[string]any{"title": "x"}, "hello", El("b"))

	if e.Kind != KindComponent || e.Comp == nil {
		t.Fatalf("C() = %s, want Component with function", e.Kind)
	}
	if got := e.Attrs["title"]; got != "x" {
		t.Errorf("Attrs[title] = %v, want x", got)
	}
	if len(e.Children) != 2 || e.Children[0].Text != "hello" || e.Children[1].Tag != "b" {
		t.Errorf("Children = %+v, want text then b", e.Children)
	}
}

func TestTextf(t *testing.T) {
	e := Textf("Count: %d", 7)
	if e.Kind != KindText || e.Text != "Count: 7" {
		t.Errorf("Textf() = %s %q, want Text %q", e.Kind, e.Text, "Count: 7")
	}
}

func TestIf(t *testing.T) {
	e := El("p")
	if If(true, e) != e {
		t.Error("If(true) did not return the element")
	}
	if If(false, e) != nil {
		t.Error("If(false) != nil")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	out := Range(items, func(s string, i int) *Element {
		if s == "b" {
			return nil
		}
		return El("li", Textf("%d:%s", i, s))
	})

	if len(out) != 2 {
		t.Fatalf("Range() = %d elements, want 2", len(out))
	}
	if out[0].Children[0].Text != "0:a" || out[1].Children[0].Text != "2:c" {
		t.Errorf("Range() = [%q %q], want [0:a 2:c]",
			out[0].Children[0].Text, out[1].Children[0].Text)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindComponent, "Component"},
		{Kind(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
