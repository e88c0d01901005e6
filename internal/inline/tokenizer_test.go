package inline

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "empty input",
			input: "",
			want:  []Span{PlainSpan("")},
		},
		{
			name:  "plain text",
			input: "nothing to see",
			want:  []Span{PlainSpan("nothing to see")},
		},
		{
			name:  "links and images",
			input: "plain [x](u1) and ![y](u2)",
			want: []Span{
				PlainSpan("plain "),
				LinkSpan("x", "u1"),
				PlainSpan(" and "),
				ImageSpan("y", "u2"),
			},
		},
		{
			name:  "all delimiters",
			input: "Some **bold** and *italic* and `code`.",
			want: []Span{
				PlainSpan("Some "),
				BoldSpan("bold"),
				PlainSpan(" and "),
				ItalicSpan("italic"),
				PlainSpan(" and "),
				CodeSpan("code"),
				PlainSpan("."),
			},
		},
		{
			name:  "adjacent matches drop empty gaps",
			input: "**a***b*`c`",
			want:  []Span{BoldSpan("a"), ItalicSpan("b"), CodeSpan("c")},
		},
		{
			name:  "unterminated delimiter stays literal",
			input: "a `b and c",
			want:  []Span{PlainSpan("a `b and c")},
		},
		{
			name:  "delimiters do not span lines",
			input: "*one\ntwo*",
			want:  []Span{PlainSpan("*one\ntwo*")},
		},
		{
			name:  "unterminated image stays literal",
			input: "broken ![alt](example.com/image.png",
			want:  []Span{PlainSpan("broken ![alt](example.com/image.png")},
		},
		{
			name:  "empty link text is not a link",
			input: "[](u) tail",
			want:  []Span{PlainSpan("[](u) tail")},
		},
		{
			name:  "formatted spans are not rescanned",
			input: "`**not bold**` and [*x*](u)",
			want: []Span{
				PlainSpan("`"),
				BoldSpan("not bold"),
				PlainSpan("` and "),
				LinkSpan("*x*", "u"),
			},
		},
		{
			name:  "image takes precedence over link",
			input: "![logo](/logo.png)",
			want:  []Span{ImageSpan("logo", "/logo.png")},
		},
		{
			name:  "multiple links",
			input: "[a](1)[b](2) end",
			want:  []Span{LinkSpan("a", "1"), LinkSpan("b", "2"), PlainSpan(" end")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q)\nwant: %#v\ngot:  %#v", tc.input, tc.want, got)
			}
		})
	}
}

func TestTokenizeTargetsOnlyOnReferences(t *testing.T) {
	spans := Tokenize("**b** *i* `c` [l](u) ![m](v) tail")
	for _, span := range spans {
		if span.Kind.HasTarget() != (span.Target != "") {
			t.Fatalf("span %#v violates target invariant", span)
		}
	}
}

func TestRender(t *testing.T) {
	text := "Some **bold**, *italic*, `code`, [link](https://example.com) and ![alt](/a.png)"

	got := RenderText(text, Options{})
	want := `Some <b>bold</b>, <i>italic</i>, <code>code</code>, <a href="https://example.com">link</a> and !<a href="/a.png">alt</a>`
	if got != want {
		t.Fatalf("unexpected fragment\nwant: %s\ngot:  %s", want, got)
	}

	got = RenderText("see ![alt](/a.png)", Options{Images: true})
	if want := `see <img src="/a.png" alt="alt">`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestKindString(t *testing.T) {
	if Bold.String() != "bold" || Image.String() != "image" || Kind(42).String() != "unknown" {
		t.Fatalf("unexpected kind labels")
	}
}
