package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"

	"github.com/freecad-tools/fcweekly"
	"github.com/freecad-tools/fcweekly/internal/console"
)

type updateCmd struct {
	Yes        bool `kong:"short='y',help=${yes_help}"`
	KeepOld    bool `kong:"name=keep-old,help=${keep_old_help}"`
	NoShortcut bool `kong:"name=no-shortcut,help=${no_shortcut_help}"`
}

func (c *updateCmd) Run(ctx *runContext) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	opts := &fcweekly.UpdateOptions{
		Console: &console.Printer{
			Out: ctx.stdout,
			Err: ctx.stderr,
		},
		KeepOld:    c.KeepOld,
		NoShortcut: c.NoShortcut,
	}
	if !c.Yes && isatty.IsTerminal(ctx.stdin.Fd()) {
		opts.Confirm = func(count int) (bool, error) {
			proceed := true
			err := survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Delete %d old version(s)?", count),
				Default: true,
			}, &proceed, survey.WithStdio(ctx.stdin, ctx.stdout, nil), survey.WithShowCursor(true))
			return proceed, err
		}
	}
	return fcweekly.Update(ctx, cfg, opts)
}
