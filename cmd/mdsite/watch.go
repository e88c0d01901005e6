package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"

	staticcmd "github.com/goliatone/go-mdsite/internal/commands/static"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/internal/watch"
)

func watchSite(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: watch takes no arguments", cli.ErrUsage)
	}
	module, err := cfg.module(0)
	if err != nil {
		return err
	}

	report := newReporter(cc.Out, cfg.colorEnabled(cc.Out))
	rebuild := func(ctx context.Context, changed []string) error {
		if len(changed) > 0 {
			report.info(fmt.Sprintf("%d change(s), rebuilding", len(changed)))
		}
		return module.Build.Execute(ctx, staticcmd.BuildSiteCommand{
			ResultCallback: func(env staticcmd.ResultEnvelope) {
				report.build(env.Result)
			},
		})
	}

	ctx := cfg.context()
	// A failed first build is reported and watching continues.
	if err := rebuild(ctx, nil); err != nil {
		module.Logger.Error("watch.initial_build.failed", "error", err)
	}

	site := module.Config
	paths := []string{site.Markdown.ContentDir, site.Generator.TemplatePath}
	if site.Generator.CopyStatic && strings.TrimSpace(site.Generator.StaticDir) != "" {
		paths = append(paths, site.Generator.StaticDir)
	}
	watcher := watch.New(watch.Config{
		Paths:    existing(paths),
		Debounce: site.Watch.Debounce.Duration,
	}, rebuild, logging.WatchLogger(module.Provider))

	report.info("watching for changes, press Ctrl+C to stop")
	return watcher.Run(ctx)
}

// existing drops blank and missing paths; a site without a static
// directory is still watchable.
func existing(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
