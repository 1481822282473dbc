// Package fcweekly keeps a local FreeCAD weekly-build installation current:
// it extracts the newest downloaded archive into the install root, flattens
// the double-nested directory some weekly archives produce, deletes
// superseded installs and refreshes the launcher shortcut.
package fcweekly

import (
	"context"
	"path/filepath"

	"github.com/freecad-tools/fcweekly/internal/console"
)

// UpdateOptions adjusts a single update run. The zero value runs with the
// real external collaborators and no confirmation.
type UpdateOptions struct {
	// Extractor overrides the external 7-Zip engine. When nil the tool is
	// discovered and a SevenZipExtractor is used.
	Extractor Extractor
	// Publisher overrides the PowerShell shortcut writer.
	Publisher ShortcutPublisher
	// Console receives progress messages. Nil discards them.
	Console *console.Printer
	// Confirm is asked before old versions are deleted. Nil means proceed.
	Confirm func(count int) (bool, error)
	// KeepOld skips retiring old versions.
	KeepOld bool
	// NoShortcut skips publishing the shortcut.
	NoShortcut bool
}

// Update performs one full update run: locate the newest archive, extract
// it, repair the nested layout if present, retire old installs and point
// the shortcut at the newest installed executable. A shortcut failure is
// downgraded to a warning; every other failure aborts the run.
func Update(ctx context.Context, cfg Config, opts *UpdateOptions) error {
	if opts == nil {
		opts = &UpdateOptions{}
	}
	out := opts.Console

	x := opts.Extractor
	if x == nil {
		tool := cfg.SevenZip
		if tool == "" {
			var err error
			tool, err = FindSevenZip()
			if err != nil {
				return err
			}
		}
		out.Infof("using %s", tool)
		x = &SevenZipExtractor{Tool: tool}
	}

	archive, err := NewestArchive(cfg.DownloadDir, cfg.NamePattern)
	if err != nil {
		return err
	}
	version, err := ParseVersion(filepath.Base(archive))
	if err != nil {
		return err
	}
	out.Infof("extracting %s", filepath.Base(archive))
	target, err := ExtractArchive(ctx, x, archive, cfg.InstallRoot)
	if err != nil {
		return err
	}
	repaired, err := RepairNested(target)
	if err != nil {
		return err
	}
	if repaired {
		out.Infof("flattened nested directory in %s", filepath.Base(target))
	}

	if !opts.KeepOld {
		err = retire(cfg, target, opts, out)
		if err != nil {
			return err
		}
	}

	exe, err := ResolveExecutable(cfg.InstallRoot, cfg.InstallPattern(), cfg.ExecutablePath)
	if err != nil {
		return err
	}
	if !opts.NoShortcut {
		pub := opts.Publisher
		if pub == nil {
			pub = &PowerShellPublisher{}
		}
		err = pub.Publish(ctx, exe, cfg.ShortcutPath())
		if err != nil {
			// a missing shortcut doesn't mean the update failed
			out.Warnf("could not update shortcut: %v", err)
		} else {
			out.Infof("shortcut %s -> %s", cfg.ShortcutName, exe)
		}
	}
	out.Successf("FreeCAD weekly %s is ready", version)
	return nil
}

func retire(cfg Config, keep string, opts *UpdateOptions, out *console.Printer) error {
	if opts.Confirm != nil {
		installs, err := Installs(cfg.InstallRoot, cfg.InstallPattern())
		if err != nil {
			return err
		}
		candidates := 0
		for _, install := range installs {
			if !samePath(install.Path, keep) {
				candidates++
			}
		}
		if candidates == 0 {
			return nil
		}
		proceed, err := opts.Confirm(candidates)
		if err != nil {
			return err
		}
		if !proceed {
			out.Infof("keeping old versions")
			return nil
		}
	}
	removed, err := RetireOld(cfg.InstallRoot, keep, cfg.InstallPattern(), func(name string, err error) {
		out.Warnf("skipping %s: %v", name, err)
	})
	if err != nil {
		return err
	}
	if removed > 0 {
		out.Infof("removed %d old version(s)", removed)
	}
	return nil
}
