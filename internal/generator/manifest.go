package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	manifestFileName    = ".mdsite-manifest.json"
	manifestFileVersion = 1
)

// buildManifest stores metadata about the last successful build to support incremental runs.
type buildManifest struct {
	Version     int
	GeneratedAt time.Time
	BuildID     string
	Pages       map[string]manifestPage
}

type manifestPage struct {
	Source     string    `json:"source"`
	Output     string    `json:"output"`
	Hash       string    `json:"hash"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

// orderedManifest is the on-disk form; pages are sorted by source for stable output.
type orderedManifest struct {
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	BuildID     string         `json:"build_id,omitempty"`
	Pages       []manifestPage `json:"pages"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestFileVersion,
		Pages:   map[string]manifestPage{},
	}
}

func parseManifest(data []byte) (*buildManifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return newBuildManifest(), nil
	}
	var ordered orderedManifest
	if err := json.Unmarshal(data, &ordered); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	manifest := newBuildManifest()
	if ordered.Version != 0 {
		manifest.Version = ordered.Version
	}
	manifest.GeneratedAt = ordered.GeneratedAt
	manifest.BuildID = ordered.BuildID
	for _, entry := range ordered.Pages {
		manifest.setPage(entry)
	}
	return manifest, nil
}

func (m *buildManifest) marshal() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	ordered := orderedManifest{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		BuildID:     m.BuildID,
		Pages:       make([]manifestPage, 0, len(m.Pages)),
	}
	if ordered.Version == 0 {
		ordered.Version = manifestFileVersion
	}
	for _, entry := range m.Pages {
		ordered.Pages = append(ordered.Pages, entry)
	}
	sort.Slice(ordered.Pages, func(i, j int) bool {
		return ordered.Pages[i].Source < ordered.Pages[j].Source
	})
	return json.MarshalIndent(ordered, "", "  ")
}

func (m *buildManifest) pageKey(source string) string {
	return strings.TrimSpace(filepath.ToSlash(source))
}

func (m *buildManifest) lookupPage(source string) (manifestPage, bool) {
	if m == nil || len(m.Pages) == 0 {
		return manifestPage{}, false
	}
	entry, ok := m.Pages[m.pageKey(source)]
	return entry, ok
}

func (m *buildManifest) setPage(entry manifestPage) {
	if m == nil {
		return
	}
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	key := m.pageKey(entry.Source)
	if key == "" {
		return
	}
	m.Pages[key] = entry
}

func (m *buildManifest) shouldSkipPage(source, hash, output string) bool {
	entry, ok := m.lookupPage(source)
	if !ok {
		return false
	}
	if entry.Hash != hash {
		return false
	}
	return strings.TrimSpace(entry.Output) == strings.TrimSpace(output)
}

// prunePages drops entries whose source was not seen in the latest build.
func (m *buildManifest) prunePages(keys map[string]struct{}) {
	if m == nil || len(m.Pages) == 0 {
		return
	}
	for key := range m.Pages {
		if _, ok := keys[key]; !ok {
			delete(m.Pages, key)
		}
	}
}

func (s *service) manifestTargetPath() string {
	return joinOutputPath(s.cfg.OutputDir, manifestFileName)
}

func (s *service) loadManifest() (*buildManifest, error) {
	data, err := os.ReadFile(s.manifestTargetPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newBuildManifest(), nil
		}
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	return parseManifest(data)
}

func (s *service) persistManifest(ctx context.Context, writer artifactWriter, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	target := s.manifestTargetPath()
	if err := ensureDir(ctx, writer, nil, filepath.Dir(target)); err != nil {
		return err
	}
	return writer.WriteFile(ctx, writeFileRequest{
		Path:     target,
		Content:  bytes.NewReader(data),
		Size:     int64(len(data)),
		Category: categoryManifest,
		Checksum: computeHash(data),
	})
}
