package blocks

import (
	"reflect"
	"testing"
)

func TestSegment(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "only whitespace", input: " \n\n\t \n", want: nil},
		{name: "ideographic space separator", input: "para one\n\u3000\n# Head", want: []string{"para one", "# Head"}},
		{name: "no-break space separator", input: "para one\n\u00a0 \n# Head", want: []string{"para one", "# Head"}},
		{name: "no-break space inside a line", input: "a\u00a0b\nc", want: []string{"a\u00a0b\nc"}},
		{name: "surrounding whitespace", input: " \n\n  X  \n\n ", want: []string{"X"}},
		{
			name:  "scenario",
			input: "# Title\n\nSome **bold** and *italic* and `code`.",
			want:  []string{"# Title", "Some **bold** and *italic* and `code`."},
		},
		{
			name:  "blank line with spaces separates",
			input: "first\n   \t\nsecond",
			want:  []string{"first", "second"},
		},
		{
			name:  "single newline keeps block",
			input: "* a\n* b",
			want:  []string{"* a\n* b"},
		},
		{
			name:  "normalizes lines",
			input: "  line   one \t here \n\t  line two  \n\n\n\nnext\tblock",
			want:  []string{"line one here\nline two", "next block"},
		},
		{
			name:  "crlf line endings",
			input: "para one\r\n\r\npara\r\ntwo",
			want:  []string{"para one", "para\ntwo"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Segment(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Segment(%q)\nwant: %q\ngot:  %q", tc.input, tc.want, got)
			}
		})
	}
}

func TestSegmentWhitespaceInvariance(t *testing.T) {
	padded := Segment(" \n\n  X  \n\n ")
	plain := Segment("X")
	if !reflect.DeepEqual(padded, plain) || !reflect.DeepEqual(plain, []string{"X"}) {
		t.Fatalf("expected both segmentations to equal [X], got %q and %q", padded, plain)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		block string
		want  Kind
	}{
		{block: "", want: Kind{Type: Paragraph}},
		{block: "   ", want: Kind{Type: Paragraph}},
		{block: "# Title", want: Kind{Type: Heading, Level: 1}},
		{block: "### Third", want: Kind{Type: Heading, Level: 3}},
		{block: "###### Six", want: Kind{Type: Heading, Level: 6}},
		{block: "####### too many", want: Kind{Type: Paragraph}},
		{block: "#NoSpace", want: Kind{Type: Paragraph}},
		{block: "```\nfmt.Println()\n```", want: Kind{Type: CodeBlock}},
		{block: "```go\nunterminated", want: Kind{Type: Paragraph}},
		{block: "> quoted\n> lines", want: Kind{Type: QuoteBlock}},
		{block: "> quoted\nnot quoted", want: Kind{Type: Paragraph}},
		{block: "* a\n- b", want: Kind{Type: UnorderedList}},
		{block: "* a\nb", want: Kind{Type: Paragraph}},
		{block: "1. a\n2. b\n3. c", want: Kind{Type: OrderedList}},
		{block: "1. a\n3. b\n2. c", want: Kind{Type: Paragraph}},
		{block: "2. a\n3. b", want: Kind{Type: Paragraph}},
		{block: "1.a", want: Kind{Type: Paragraph}},
		{block: "Plain text.", want: Kind{Type: Paragraph}},
	}

	for _, tc := range cases {
		got := Classify(tc.block)
		if got != tc.want {
			t.Fatalf("Classify(%q): want %+v, got %+v", tc.block, tc.want, got)
		}
		if again := Classify(tc.block); again != got {
			t.Fatalf("Classify(%q) not stable: %+v then %+v", tc.block, got, again)
		}
	}
}

func TestParse(t *testing.T) {
	got := Parse("## Sub\n\n* a\n* b\n\n1. x\n2. y")
	want := []Block{
		{Text: "## Sub", Kind: Kind{Type: Heading, Level: 2}},
		{Text: "* a\n* b", Kind: Kind{Type: UnorderedList}},
		{Text: "1. x\n2. y", Kind: Kind{Type: OrderedList}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse mismatch\nwant: %+v\ngot:  %+v", want, got)
	}
}

func TestBlockTextHelpers(t *testing.T) {
	if got := HeadingText("### Hello  ", 3); got != "Hello" {
		t.Fatalf("HeadingText: got %q", got)
	}
	if got := CodeText("```\ncode here\n```"); got != "code here" {
		t.Fatalf("CodeText: got %q", got)
	}
	if got := QuoteLines("> one\n> two"); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("QuoteLines: got %q", got)
	}
	if got := ListItems("* a\n- b", false); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("ListItems unordered: got %q", got)
	}
	if got := ListItems("1. first. item\n2. second", true); !reflect.DeepEqual(got, []string{"first. item", "second"}) {
		t.Fatalf("ListItems ordered: got %q", got)
	}
}

func TestTypeString(t *testing.T) {
	if CodeBlock.String() != "code block" || OrderedList.String() != "ordered list" {
		t.Fatal("unexpected type labels")
	}
}
