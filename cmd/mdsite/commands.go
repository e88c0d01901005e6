package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "mdsite").
		WithSynopsis("mdsite [opts] command [opts]").
		WithDescription("mdsite turns a directory of Markdown files into a static HTML site.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mdsiteMain(cfg, cc, args)
		}).
		WithSubs(
			BuildCommand(cfg),
			RenderCommand(cfg),
			CleanCommand(cfg),
			DiffCommand(cfg),
			WatchCommand(cfg))
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [-f] [-n] [-workers n] [files]").
		WithDescription("copy static files and render every Markdown page through the template").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return build(cfg, cc, args)
		})
}

func RenderCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RenderConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Render, "render").
		WithAliases("r").
		WithSynopsis("render [-p] <file>").
		WithDescription("render a single Markdown file into the output directory").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return render(cfg, cc, args)
		})
}

func CleanCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CleanConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Clean, "clean").
		WithSynopsis("clean").
		WithDescription("remove the output directory").
		WithRun(func(cc *cli.Context, args []string) error {
			return clean(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-patch]").
		WithDescription("list pages whose output would change; exits 1 when there are changes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithSynopsis("watch").
		WithDescription("build, then rebuild whenever content, static files or the template change").
		WithRun(func(cc *cli.Context, args []string) error {
			return watchSite(cfg, cc, args)
		})
}
