package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	staticcmd "github.com/goliatone/go-mdsite/internal/commands/static"
)

func build(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: -workers must not be negative", cli.ErrUsage)
	}
	if cfg.StaticOnly && (cfg.SkipStatic || len(args) > 0) {
		return fmt.Errorf("%w: -static cannot be combined with -nostatic or files", cli.ErrUsage)
	}

	module, err := cfg.module(cfg.Workers)
	if err != nil {
		return err
	}

	report := newReporter(cc.Out, cfg.colorEnabled(cc.Out))
	return module.Build.Execute(cfg.context(), staticcmd.BuildSiteCommand{
		Paths:      args,
		Force:      cfg.Force,
		DryRun:     cfg.DryRun,
		SkipStatic: cfg.SkipStatic,
		StaticOnly: cfg.StaticOnly,
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			if env.Metadata["operation"] == "copy_static" && env.Result != nil {
				report.info(fmt.Sprintf("%d static files copied", env.Result.AssetsCopied))
				return
			}
			report.build(env.Result)
		},
	})
}
