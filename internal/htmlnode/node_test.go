package htmlnode

import (
	"errors"
	"testing"
)

func TestLeafRender(t *testing.T) {
	cases := []struct {
		name string
		leaf *Leaf
		want string
	}{
		{name: "tagged", leaf: NewLeaf("p", "hello", nil), want: "<p>hello</p>"},
		{name: "raw", leaf: NewLeaf("", "just text", nil), want: "just text"},
		{name: "attributes", leaf: NewLeaf("a", "docs", NewAttributes("href", "https://example.com", "target", "_blank")), want: `<a href="https://example.com" target="_blank">docs</a>`},
		{name: "no escaping", leaf: NewLeaf("b", "<i>x</i> & y", nil), want: "<b><i>x</i> & y</b>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.leaf.Render()
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLeafRenderRequiresValue(t *testing.T) {
	_, err := NewLeaf("p", "", nil).Render()
	if err == nil {
		t.Fatal("expected render error for empty value")
	}
	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	var renderErr *RenderError
	if !errors.As(err, &renderErr) || renderErr.Tag != "p" {
		t.Fatalf("expected RenderError for <p>, got %#v", err)
	}
}

func TestParentRender(t *testing.T) {
	list := NewParent("ul", []Node{
		NewLeaf("li", "a", nil),
		NewLeaf("li", "b", nil),
	}, nil)

	got, err := list.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "<ul><li>a</li><li>b</li></ul>"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParentRenderNested(t *testing.T) {
	node := NewParent("div", []Node{
		NewParent("span", []Node{NewLeaf("b", "bold", nil), Raw(" tail")}, nil),
		NewLeaf("", "text", nil),
	}, NewAttributes("class", "wrap"))

	got, err := node.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `<div class="wrap"><span><b>bold</b> tail</span>text</div>`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParentRenderErrors(t *testing.T) {
	cases := map[string]*Parent{
		"no children":       NewParent("ul", nil, nil),
		"missing tag":       NewParent("", []Node{NewLeaf("li", "a", nil)}, nil),
		"empty child value": NewParent("ul", []Node{NewLeaf("li", "", nil)}, nil),
		"empty root":        {Root: true},
	}
	for name, node := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := node.Render(); !errors.Is(err, ErrRender) {
				t.Fatalf("expected ErrRender, got %v", err)
			}
		})
	}
}

func TestRootIgnoresTagAndRendersRawChildren(t *testing.T) {
	root := &Parent{
		Tag:  "section",
		Root: true,
		Children: []Node{
			NewLeaf("h1", "Title", nil),
			Raw("<!-- raw -->"),
			NewLeaf("p", "body", nil),
		},
	}

	got, err := root.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "<h1>Title</h1><!-- raw --><p>body</p>"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRootBuilder(t *testing.T) {
	builder := NewRoot()
	builder.Append(NewLeaf("p", "one", nil)).Append(nil).Append(NewLeaf("p", "two", nil))
	if builder.Len() != 2 {
		t.Fatalf("expected 2 children, got %d", builder.Len())
	}

	root := builder.Build()
	builder.Append(NewLeaf("p", "late", nil))

	if !root.Root || root.Tag != "" {
		t.Fatalf("expected untagged root, got %#v", root)
	}
	got, err := root.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "<p>one</p><p>two</p>"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAttributesString(t *testing.T) {
	if got := NewAttributes().String(); got != "" {
		t.Fatalf("expected empty attributes to render empty, got %q", got)
	}
	var nilAttrs *Attributes
	if got := nilAttrs.String(); got != "" {
		t.Fatalf("expected nil attributes to render empty, got %q", got)
	}

	attrs := NewAttributes("z", "1", "a", "2")
	attrs.Set("m", "3").Set("z", "4")

	first := attrs.String()
	second := attrs.String()
	if first != second {
		t.Fatalf("expected deterministic output, got %q and %q", first, second)
	}
	if want := ` z="4" a="2" m="3"`; first != want {
		t.Fatalf("expected %q, got %q", want, first)
	}
	if names := attrs.Names(); len(names) != 3 || names[0] != "z" || names[2] != "m" {
		t.Fatalf("unexpected attribute order %v", names)
	}
	if value, ok := attrs.Get("a"); !ok || value != "2" {
		t.Fatalf("expected a=2, got %q (%v)", value, ok)
	}
}
