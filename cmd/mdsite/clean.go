package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	staticcmd "github.com/goliatone/go-mdsite/internal/commands/static"
)

func clean(cfg *CleanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Clean.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: clean takes no arguments", cli.ErrUsage)
	}
	module, err := cfg.module(0)
	if err != nil {
		return err
	}
	if err := module.Clean.Execute(cfg.context(), staticcmd.CleanSiteCommand{}); err != nil {
		return err
	}
	newReporter(cc.Out, cfg.colorEnabled(cc.Out)).info("removed " + module.Config.Generator.OutputDir)
	return nil
}
