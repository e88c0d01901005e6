package generator

import "testing"

func TestOutputPathFor(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		slugify bool
		want    string
	}{
		{name: "root page", source: "index.md", want: "index.html"},
		{name: "nested page", source: "blog/post.md", want: "blog/post.html"},
		{name: "windows separators", source: `blog\post.md`, want: "blog/post.html"},
		{name: "no extension", source: "README", want: "README.html"},
		{name: "keeps case without slugify", source: "About.md", want: "About.html"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := outputPathFor(tc.source, tc.slugify)
			if err != nil {
				t.Fatalf("outputPathFor: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestOutputPathForRejectsEscapes(t *testing.T) {
	for _, source := range []string{"", ".", "../outside.md"} {
		if _, err := outputPathFor(source, false); err == nil {
			t.Fatalf("expected error for %q", source)
		}
	}
}
