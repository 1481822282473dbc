package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/freecad-tools/fcweekly"
)

type listCmd struct{}

func (c *listCmd) Run(ctx *runContext) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	installs, err := fcweekly.Installs(cfg.InstallRoot, cfg.InstallPattern())
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(ctx.stdout, "no versions installed")
			return nil
		}
		return err
	}
	if len(installs) == 0 {
		fmt.Fprintln(ctx.stdout, "no versions installed")
		return nil
	}
	newest, err := fcweekly.NewestInstall(cfg.InstallRoot, cfg.InstallPattern())
	if err != nil {
		return err
	}
	sort.SliceStable(installs, func(i, j int) bool {
		return installs[i].Version.Compare(installs[j].Version) < 0
	})
	for _, install := range installs {
		marker := " "
		if install.Path == newest.Path {
			marker = "*"
		}
		fmt.Fprintf(ctx.stdout, "%s %s  %s\n", marker, install.Version, install.Name)
	}
	return nil
}
