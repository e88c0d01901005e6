package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	staticcmd "github.com/goliatone/go-mdsite/internal/commands/static"
)

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Render.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: render requires exactly one file, got %d", cli.ErrUsage, len(args))
	}

	module, err := cfg.module(0)
	if err != nil {
		return err
	}

	report := newReporter(cc.Out, cfg.colorEnabled(cc.Out))
	return module.Render.Execute(cfg.context(), staticcmd.RenderFileCommand{
		Path: args[0],
		ResultCallback: func(env staticcmd.ResultEnvelope) {
			if cfg.Print && env.Page != nil {
				fmt.Fprintln(cc.Out, env.Page.HTML)
				return
			}
			report.page(env.Page)
		},
	})
}
