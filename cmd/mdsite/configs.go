package main

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-mdsite/cmd/mdsite/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

type MainConfig struct {
	ConfigPath string `cli:"name=config aliases=c desc='path to the TOML config (default mdsite.toml when present)'"`
	Verbose    bool   `cli:"name=v aliases=verbose desc='log at debug level'"`
	NoColor    bool   `cli:"name=nocolor desc='disable coloured output'"`

	Main *cli.Command
	ctx  context.Context
}

func (cfg *MainConfig) context() context.Context {
	if cfg.ctx == nil {
		return context.Background()
	}
	return cfg.ctx
}

func (cfg *MainConfig) module(workers int) (*bootstrap.Module, error) {
	opts := bootstrap.Options{
		ConfigPath: cfg.ConfigPath,
		Verbose:    cfg.Verbose,
		Workers:    workers,
	}
	if cfg.NoColor {
		off := false
		opts.Color = &off
	}
	return moduleBuilder(opts)
}

// colorEnabled reports whether w should receive ANSI colours.
func (cfg *MainConfig) colorEnabled(w io.Writer) bool {
	if cfg.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type BuildConfig struct {
	*MainConfig
	Force      bool `cli:"name=f aliases=force desc='rebuild pages the manifest reports as unchanged'"`
	DryRun     bool `cli:"name=n aliases=dryrun desc='render without writing any file'"`
	SkipStatic bool `cli:"name=nostatic desc='do not copy the static directory'"`
	StaticOnly bool `cli:"name=static desc='only copy the static directory'"`
	Workers    int  `cli:"name=workers desc='number of render workers (default from config)'"`

	Build *cli.Command
}

type RenderConfig struct {
	*MainConfig
	Print bool `cli:"name=p aliases=print desc='also print the page to stdout'"`

	Render *cli.Command
}

type CleanConfig struct {
	*MainConfig

	Clean *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Patch bool `cli:"name=patch desc='print the patch text for each changed page'"`

	Diff *cli.Command
}

type WatchConfig struct {
	*MainConfig

	Watch *cli.Command
}
