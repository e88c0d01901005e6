package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	staticcmd "github.com/goliatone/go-mdsite/internal/commands/static"
	"github.com/goliatone/go-mdsite/internal/generator"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: diff takes no arguments", cli.ErrUsage)
	}
	module, err := cfg.module(0)
	if err != nil {
		return err
	}

	var changes []generator.PageDiff
	err = module.Diff.Execute(cfg.context(), staticcmd.DiffSiteCommand{
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			changes = env.Diffs
		},
	})
	if err != nil {
		return err
	}
	newReporter(cc.Out, cfg.colorEnabled(cc.Out)).diffs(changes, cfg.Patch)
	if len(changes) > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
