package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffStatus classifies how a page output would change.
type DiffStatus string

const (
	DiffAdded    DiffStatus = "added"
	DiffModified DiffStatus = "modified"
)

// PageDiff is the pending change to one output file. Patch uses the
// unidiff-like text format of diffmatchpatch.
type PageDiff struct {
	Source string
	Output string
	Status DiffStatus
	Patch  string
}

func (s *service) Diff(ctx context.Context) ([]PageDiff, error) {
	result, err := s.Build(ctx, BuildOptions{DryRun: true, Force: true})
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()
	var diffs []PageDiff
	for _, page := range result.Rendered {
		current, err := os.ReadFile(page.Output)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return diffs, fmt.Errorf("generator: read %s: %w", page.Output, err)
		}
		status := DiffModified
		if err != nil {
			status = DiffAdded
		} else if string(current) == page.HTML {
			continue
		}

		changes := dmp.DiffMain(string(current), page.HTML, false)
		patches := dmp.PatchMake(string(current), changes)
		diffs = append(diffs, PageDiff{
			Source: page.Source,
			Output: page.Output,
			Status: status,
			Patch:  dmp.PatchToText(patches),
		})
	}
	s.logger.Info("generator.diff.completed", "pages", len(result.Rendered), "changed", len(diffs))
	return diffs, nil
}
