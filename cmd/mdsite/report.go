package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/goliatone/go-mdsite/internal/generator"
)

// reporter prints human readable summaries of generator runs.
type reporter struct {
	out   io.Writer
	ok    *color.Color
	muted *color.Color
	warn  *color.Color
	fail  *color.Color
}

func newReporter(out io.Writer, enabled bool) *reporter {
	r := &reporter{
		out:   out,
		ok:    color.New(color.FgGreen),
		muted: color.New(color.FgHiBlack),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.ok, r.muted, r.warn, r.fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *reporter) build(result *generator.BuildResult) {
	if result == nil {
		return
	}
	for _, diag := range result.Diagnostics {
		switch {
		case diag.Err != nil:
			fmt.Fprintf(r.out, "%s %s: %v\n", r.fail.Sprint("error"), diag.Source, diag.Err)
		case diag.Draft:
			fmt.Fprintf(r.out, "%s %s\n", r.muted.Sprint("draft"), diag.Source)
		case diag.Skipped:
			fmt.Fprintf(r.out, "%s %s\n", r.muted.Sprint("unchanged"), diag.Source)
		default:
			fmt.Fprintf(r.out, "%s %s -> %s\n", r.ok.Sprint("built"), diag.Source, diag.Route)
		}
	}

	verb := "built"
	if result.DryRun {
		verb = "rendered (dry run)"
	}
	summary := fmt.Sprintf("%d pages %s, %d skipped, %d static files copied in %s",
		result.PagesBuilt, verb, result.PagesSkipped, result.AssetsCopied, result.Duration.Round(time.Millisecond))
	if len(result.Errors) > 0 {
		fmt.Fprintf(r.out, "%s (%d errors)\n", r.warn.Sprint(summary), len(result.Errors))
		return
	}
	fmt.Fprintln(r.out, r.ok.Sprint(summary))
}

func (r *reporter) page(page *generator.RenderedPage) {
	if page == nil {
		return
	}
	fmt.Fprintf(r.out, "%s %s -> %s\n", r.ok.Sprint("built"), page.Source, page.Output)
}

func (r *reporter) diffs(diffs []generator.PageDiff, withPatch bool) {
	if len(diffs) == 0 {
		fmt.Fprintln(r.out, r.ok.Sprint("output is up to date"))
		return
	}
	for _, d := range diffs {
		label := r.warn.Sprint(string(d.Status))
		if d.Status == generator.DiffAdded {
			label = r.ok.Sprint(string(d.Status))
		}
		fmt.Fprintf(r.out, "%s %s -> %s\n", label, d.Source, d.Output)
		if withPatch && d.Patch != "" {
			fmt.Fprintln(r.out, r.muted.Sprint(d.Patch))
		}
	}
}

func (r *reporter) info(msg string) {
	fmt.Fprintln(r.out, r.muted.Sprint(msg))
}
