package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/internal/markdown"
	"github.com/goliatone/go-mdsite/internal/runtimeconfig"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

const noTitleCode = "MARKDOWN_NO_TITLE"

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errMarkdownRequired = errors.New("generator: markdown service is required")
	errOutputRequired   = errors.New("generator: output directory is required")
)

// Service describes the static site generator contract.
type Service interface {
	// Build renders every discovered page into the output directory.
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	// BuildPage renders and writes a single source file.
	BuildPage(ctx context.Context, sourcePath string) (*RenderedPage, error)
	// CopyStatic mirrors the static directory into the output directory and
	// returns the number of files copied.
	CopyStatic(ctx context.Context) (int, error)
	// Diff renders the site without writing and reports the pages whose
	// output would change.
	Diff(ctx context.Context) ([]PageDiff, error)
	// Clean removes the output directory.
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	ContentDir   string
	StaticDir    string
	TemplatePath string
	OutputDir    string
	DefaultTitle string
	// RequireTitle fails pages without a title instead of using DefaultTitle.
	RequireTitle  bool
	CleanBuild    bool
	CopyStatic    bool
	Incremental   bool
	IncludeDrafts bool
	SlugifyPaths  bool
	Workers       int
	RenderTimeout time.Duration
	Parse         interfaces.ParseOptions
}

// ConfigFromRuntime maps the file-based configuration onto generator settings.
func ConfigFromRuntime(cfg runtimeconfig.Config) Config {
	gen := cfg.Generator
	parser := cfg.Markdown.Parser
	return Config{
		ContentDir:    cfg.Markdown.ContentDir,
		StaticDir:     gen.StaticDir,
		TemplatePath:  gen.TemplatePath,
		OutputDir:     gen.OutputDir,
		DefaultTitle:  gen.DefaultTitle,
		RequireTitle:  gen.RequireTitle,
		CleanBuild:    gen.CleanBuild,
		CopyStatic:    gen.CopyStatic,
		Incremental:   gen.Incremental,
		IncludeDrafts: gen.IncludeDrafts,
		SlugifyPaths:  gen.SlugifyPaths,
		Workers:       gen.Workers,
		RenderTimeout: gen.RenderTimeout.Duration,
		Parse: interfaces.ParseOptions{
			Engine:       parser.Engine,
			RenderImages: parser.RenderImages,
			Extensions:   append([]string(nil), parser.Extensions...),
			HardWraps:    parser.HardWraps,
			SafeMode:     parser.SafeMode,
		},
	}
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// Paths limits the build to the given source files, relative to the
	// content directory. Empty means every discovered page.
	Paths []string
	// Force renders pages the manifest reports as unchanged.
	Force bool
	// SkipStatic leaves the static directory uncopied.
	SkipStatic bool
	DryRun     bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	BuildID      string
	PagesBuilt   int
	PagesSkipped int
	AssetsCopied int
	Duration     time.Duration
	Rendered     []RenderedPage
	Diagnostics  []RenderDiagnostic
	Errors       []error
	DryRun       bool
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Markdown interfaces.MarkdownService
	Logger   interfaces.Logger
}

// NewService wires a generator implementation with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		writer: fileWriter{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	writer artifactWriter
	now    func() time.Time
	newID  func() string
}

type disabledService struct{}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	start := s.now()
	buildID := s.newID()
	logger := logging.WithBuildID(s.logger, buildID)
	ctx = logging.ContextWithFields(ctx, map[string]any{"build_id": buildID})

	tmpl, err := LoadTemplate(s.cfg.TemplatePath)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		BuildID: buildID,
		DryRun:  opts.DryRun,
	}

	var (
		mu          sync.Mutex
		rendered    []RenderedPage
		errorsSlice []error
		seen        = map[string]struct{}{}
	)

	if !opts.DryRun && !opts.SkipStatic && s.cfg.CopyStatic {
		copied, err := s.CopyStatic(ctx)
		if err != nil {
			return nil, err
		}
		result.AssetsCopied = copied
	}

	sources, err := s.resolveSources(ctx, opts.Paths)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = make([]RenderDiagnostic, 0, len(sources))

	manifest := newBuildManifest()
	if s.cfg.Incremental {
		loaded, err := s.loadManifest()
		if err != nil {
			errorsSlice = append(errorsSlice, err)
		} else {
			manifest = loaded
		}
	}

	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		seen[outcome.diagnostic.Source] = struct{}{}
		if outcome.err != nil {
			errorsSlice = append(errorsSlice, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	job := pageJob{
		template: tmpl,
		manifest: manifest,
		force:    opts.Force || !s.cfg.Incremental,
		logger:   logger,
	}

	workerCount := s.effectiveWorkerCount(len(sources))
	if workerCount <= 1 {
		for _, source := range sources {
			if err := ctx.Err(); err != nil {
				collect(cancelledOutcome(source, err))
				break
			}
			collect(s.renderPage(ctx, source, job))
		}
	} else if err := s.renderConcurrently(ctx, sources, workerCount, job, collect); err != nil {
		errorsSlice = append(errorsSlice, err)
	}

	sort.Slice(rendered, func(i, j int) bool {
		return rendered[i].Source < rendered[j].Source
	})
	sort.Slice(result.Diagnostics, func(i, j int) bool {
		return result.Diagnostics[i].Source < result.Diagnostics[j].Source
	})

	if !opts.DryRun {
		if err := s.persistPages(ctx, s.writer, rendered); err != nil {
			errorsSlice = append(errorsSlice, err)
		}
		if s.cfg.Incremental && len(errorsSlice) == 0 {
			generatedAt := s.now()
			for _, page := range rendered {
				manifest.setPage(manifestPage{
					Source:     page.Source,
					Output:     page.Route,
					Hash:       page.Hash,
					Checksum:   page.Checksum,
					RenderedAt: generatedAt,
				})
			}
			if len(opts.Paths) == 0 {
				manifest.prunePages(seen)
			}
			manifest.GeneratedAt = generatedAt
			manifest.BuildID = buildID
			if err := s.persistManifest(ctx, s.writer, manifest); err != nil {
				errorsSlice = append(errorsSlice, err)
			}
		}
	}

	result.Rendered = rendered
	result.Duration = s.now().Sub(start)
	logger.Info("generator.build.completed",
		"pages_built", result.PagesBuilt,
		"pages_skipped", result.PagesSkipped,
		"assets_copied", result.AssetsCopied,
		"errors", len(errorsSlice),
		"dry_run", opts.DryRun,
		"duration", result.Duration,
	)

	if len(errorsSlice) > 0 {
		result.Errors = append(result.Errors, errorsSlice...)
		return result, errors.Join(errorsSlice...)
	}
	return result, nil
}

func (s *service) BuildPage(ctx context.Context, sourcePath string) (*RenderedPage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	tmpl, err := LoadTemplate(s.cfg.TemplatePath)
	if err != nil {
		return nil, err
	}

	outcome := s.renderPage(ctx, s.relativeSource(sourcePath), pageJob{
		template: tmpl,
		manifest: newBuildManifest(),
		force:    true,
		logger:   s.logger,
	})
	if outcome.err != nil {
		return nil, outcome.err
	}
	if outcome.skipped {
		return nil, fmt.Errorf("generator: %s is a draft", outcome.diagnostic.Source)
	}
	pages := []RenderedPage{outcome.page}
	if err := s.persistPages(ctx, s.writer, pages); err != nil {
		return nil, err
	}
	return &pages[0], nil
}

func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(s.cfg.OutputDir) == "" {
		return errOutputRequired
	}
	if err := s.writer.RemoveAll(ctx, s.cfg.OutputDir); err != nil {
		return fmt.Errorf("generator: clean %s: %w", s.cfg.OutputDir, err)
	}
	s.logger.Info("generator.clean.completed", "output_dir", s.cfg.OutputDir)
	return nil
}

func (s *service) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.deps.Markdown == nil {
		return errMarkdownRequired
	}
	if strings.TrimSpace(s.cfg.OutputDir) == "" {
		return errOutputRequired
	}
	return nil
}

func (s *service) resolveSources(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) > 0 {
		sources := make([]string, 0, len(paths))
		for _, p := range paths {
			sources = append(sources, s.relativeSource(p))
		}
		sort.Strings(sources)
		return sources, nil
	}
	sources, err := s.deps.Markdown.Discover(ctx, ".", interfaces.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("generator: discover content: %w", err)
	}
	return sources, nil
}

// relativeSource turns a path given relative to the working directory or
// the content directory into a slash separated content-relative path.
func (s *service) relativeSource(source string) string {
	clean := filepath.Clean(strings.TrimSpace(source))
	base := strings.TrimSpace(s.cfg.ContentDir)
	if base != "" && base != "." {
		absBase, errBase := filepath.Abs(base)
		absSource, errSource := filepath.Abs(clean)
		if errBase == nil && errSource == nil {
			if rel, err := filepath.Rel(absBase, absSource); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(clean)
}

type pageJob struct {
	template *Template
	manifest *buildManifest
	force    bool
	logger   interfaces.Logger
}

func (s *service) renderConcurrently(
	ctx context.Context,
	sources []string,
	workers int,
	job pageJob,
	collect func(renderOutcome),
) error {
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for source := range jobs {
				if err := ctx.Err(); err != nil {
					collect(cancelledOutcome(source, err))
					continue
				}
				collect(s.renderPage(ctx, source, job))
			}
		}()
	}

	for _, source := range sources {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- source:
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

func (s *service) renderPage(ctx context.Context, source string, job pageJob) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{Source: source},
	}
	fail := func(err error) renderOutcome {
		outcome.err = err
		outcome.diagnostic.Err = err
		return outcome
	}

	route, err := outputPathFor(source, s.cfg.SlugifyPaths)
	if err != nil {
		return fail(err)
	}
	outcome.diagnostic.Route = route
	logger := logging.WithPageContext(job.logger, source, route)

	if !job.force {
		hash, err := s.sourceHash(source, job.template)
		if err == nil && job.manifest.shouldSkipPage(source, hash, route) && s.outputExists(route) {
			outcome.skipped = true
			outcome.diagnostic.Skipped = true
			logger.Debug("generator.page.unchanged")
			return outcome
		}
	}

	renderCtx := ctx
	if s.cfg.RenderTimeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, s.cfg.RenderTimeout)
		defer cancel()
	}

	start := time.Now()
	doc, err := s.deps.Markdown.Load(renderCtx, source, interfaces.LoadOptions{Parser: s.cfg.Parse})
	outcome.diagnostic.Duration = time.Since(start)
	if err != nil {
		logger.Warn("generator.page.failed", "error", err)
		return fail(fmt.Errorf("generator: render %s: %w", source, err))
	}

	if doc.FrontMatter.Draft && !s.cfg.IncludeDrafts {
		outcome.skipped = true
		outcome.diagnostic.Skipped = true
		outcome.diagnostic.Draft = true
		logger.Debug("generator.page.draft_skipped")
		return outcome
	}

	title, err := s.resolveTitle(doc)
	if err != nil {
		logger.Warn("generator.page.untitled", "error", err)
		return fail(err)
	}

	html := job.template.Apply(title, string(doc.BodyHTML))
	outcome.page = RenderedPage{
		Source:   source,
		Route:    route,
		Output:   joinOutputPath(s.cfg.OutputDir, route),
		Title:    title,
		HTML:     html,
		Draft:    doc.FrontMatter.Draft,
		Duration: outcome.diagnostic.Duration,
		Hash:     pageHash(hex.EncodeToString(doc.Checksum), job.template.Checksum),
	}
	logger.Debug("generator.page.rendered", "duration", outcome.diagnostic.Duration)
	return outcome
}

func (s *service) resolveTitle(doc *interfaces.Document) (string, error) {
	if title := strings.TrimSpace(doc.Title); title != "" {
		return title, nil
	}
	if s.cfg.RequireTitle {
		return "", goerrors.Wrap(markdown.ErrNoTitle, goerrors.CategoryValidation, "page has no title: "+doc.FilePath).
			WithTextCode(noTitleCode)
	}
	return s.cfg.DefaultTitle, nil
}

func (s *service) sourceHash(source string, tmpl *Template) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.cfg.ContentDir, filepath.FromSlash(source)))
	if err != nil {
		return "", err
	}
	return pageHash(computeHash(data), tmpl.Checksum), nil
}

func (s *service) outputExists(route string) bool {
	_, err := os.Stat(joinOutputPath(s.cfg.OutputDir, route))
	return err == nil
}

func (s *service) persistPages(ctx context.Context, writer artifactWriter, pages []RenderedPage) error {
	if len(pages) == 0 {
		return nil
	}
	dirCache := map[string]struct{}{}
	for i := range pages {
		if err := ensureDir(ctx, writer, dirCache, filepath.Dir(pages[i].Output)); err != nil {
			return err
		}
		pages[i].Checksum = computeHashFromString(pages[i].HTML)
		req := writeFileRequest{
			Path:     pages[i].Output,
			Content:  strings.NewReader(pages[i].HTML),
			Size:     int64(len(pages[i].HTML)),
			Category: categoryPage,
			Checksum: pages[i].Checksum,
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			return fmt.Errorf("generator: write %s: %w", pages[i].Output, err)
		}
	}
	return nil
}

func (s *service) effectiveWorkerCount(pageCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if pageCount > 0 && workers > pageCount {
		return pageCount
	}
	return workers
}

func cancelledOutcome(source string, err error) renderOutcome {
	return renderOutcome{
		diagnostic: RenderDiagnostic{Source: source, Err: err},
		err:        err,
	}
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return filepath.FromSlash(strings.TrimLeft(rel, "/"))
	}
	return filepath.Join(base, filepath.FromSlash(rel))
}

func pageHash(sourceChecksum, templateChecksum string) string {
	return computeHashFromString(sourceChecksum + ":" + templateChecksum)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) BuildPage(context.Context, string) (*RenderedPage, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) CopyStatic(context.Context) (int, error) {
	return 0, ErrServiceDisabled
}

func (disabledService) Diff(context.Context) ([]PageDiff, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
