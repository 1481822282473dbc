package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/freecad-tools/fcweekly"
)

var kongVars = kong.Vars{
	"config_help":        `yaml file with fcweekly config. default is the first one of fcweekly.yml, fcweekly.yaml, .fcweekly.yml or .fcweekly.yaml`,
	"download_dir_help":  `directory weekly archives are downloaded to`,
	"install_root_help":  `directory versioned installs live under`,
	"pattern_help":       `glob matched against archive file names`,
	"shortcut_dir_help":  `directory the launcher shortcut is written to`,
	"shortcut_name_help": `file name of the launcher shortcut`,
	"seven_zip_help":     `path to the 7z executable`,
	"update_help":        `extract the newest downloaded build and retire old ones`,
	"list_help":          `list installed versions`,
	"yes_help":           `do not ask before deleting old versions`,
	"keep_old_help":      `do not delete old versions`,
	"no_shortcut_help":   `do not write the launcher shortcut`,
	"completions_help":   `install shell completions`,
}

type rootCmd struct {
	Config       string `kong:"type=path,help=${config_help},env='FCWEEKLY_CONFIG'"`
	DownloadDir  string `kong:"name=download-dir,type=path,help=${download_dir_help}"`
	InstallRoot  string `kong:"name=install-root,type=path,help=${install_root_help}"`
	Pattern      string `kong:"help=${pattern_help}"`
	ShortcutDir  string `kong:"name=shortcut-dir,type=path,help=${shortcut_dir_help}"`
	ShortcutName string `kong:"name=shortcut-name,help=${shortcut_name_help}"`
	SevenZip     string `kong:"name=7z,type=path,help=${seven_zip_help}"`
	Quiet        bool   `kong:"short='q',help='suppress output to stdout'"`

	Update updateCmd `kong:"cmd,default='withargs',help=${update_help}"`
	List   listCmd   `kong:"cmd,help=${list_help}"`

	Version            versionCmd                   `kong:"cmd,help='show fcweekly version'"`
	InstallCompletions kongplete.InstallCompletions `kong:"cmd,help=${completions_help}"`
}

var defaultConfigFilenames = []string{
	"fcweekly.yml",
	"fcweekly.yaml",
	".fcweekly.yml",
	".fcweekly.yaml",
}

func loadConfig(ctx *runContext) (fcweekly.Config, error) {
	filename := ctx.rootCmd.Config
	if filename == "" {
		for _, configFilename := range defaultConfigFilenames {
			info, err := os.Stat(configFilename)
			if err == nil && !info.IsDir() {
				filename = configFilename
				break
			}
		}
	}
	var cfg fcweekly.Config
	if filename == "" {
		cfg = fcweekly.DefaultConfig()
	} else {
		var err error
		cfg, err = fcweekly.LoadConfig(filename)
		if err != nil {
			return fcweekly.Config{}, err
		}
	}
	root := ctx.rootCmd
	if root.DownloadDir != "" {
		cfg.DownloadDir = root.DownloadDir
	}
	if root.InstallRoot != "" {
		cfg.InstallRoot = root.InstallRoot
	}
	if root.Pattern != "" {
		cfg.NamePattern = root.Pattern
	}
	if root.ShortcutDir != "" {
		cfg.ShortcutDir = root.ShortcutDir
	}
	if root.ShortcutName != "" {
		cfg.ShortcutName = root.ShortcutName
	}
	if root.SevenZip != "" {
		cfg.SevenZip = root.SevenZip
	}
	return cfg, nil
}

// fileWriter covers terminal.FileWriter. Needed for survey
type fileWriter interface {
	io.Writer
	Fd() uintptr
}

type SimpleFileWriter struct {
	io.Writer
}

func (s SimpleFileWriter) Fd() uintptr {
	return 0
}

// fileReader covers terminal.FileReader. Needed for survey
type fileReader interface {
	io.Reader
	Fd() uintptr
}

type runContext struct {
	parent  context.Context
	stdin   fileReader
	stdout  fileWriter
	stderr  fileWriter
	rootCmd *rootCmd
}

func newRunContext(ctx context.Context) *runContext {
	return &runContext{
		parent: ctx,
	}
}

func (r *runContext) Deadline() (deadline time.Time, ok bool) {
	return r.parent.Deadline()
}

func (r *runContext) Done() <-chan struct{} {
	return r.parent.Done()
}

func (r *runContext) Err() error {
	return r.parent.Err()
}

func (r *runContext) Value(key any) any {
	return r.parent.Value(key)
}

type runOpts struct {
	stdin       fileReader
	stdout      fileWriter
	stderr      fileWriter
	cmdName     string
	exitHandler func(int)
}

// Run parses args and runs the selected command.
func Run(ctx context.Context, args []string, opts *runOpts) {
	if opts == nil {
		opts = &runOpts{}
	}
	var root rootCmd
	runCtx := newRunContext(ctx)
	runCtx.rootCmd = &root
	runCtx.stdin = opts.stdin
	if runCtx.stdin == nil {
		runCtx.stdin = os.Stdin
	}
	runCtx.stdout = opts.stdout
	if runCtx.stdout == nil {
		runCtx.stdout = os.Stdout
	}
	runCtx.stderr = opts.stderr
	if runCtx.stderr == nil {
		runCtx.stderr = os.Stderr
	}

	kongOptions := []kong.Option{
		kong.HelpOptions{Compact: true},
		kong.BindTo(runCtx, &runCtx),
		kongVars,
		kong.UsageOnError(),
		kong.Writers(runCtx.stdout, runCtx.stderr),
	}
	if opts.exitHandler != nil {
		kongOptions = append(kongOptions, kong.Exit(opts.exitHandler))
	}
	if opts.cmdName != "" {
		kongOptions = append(kongOptions, kong.Name(opts.cmdName))
	}

	parser := kong.Must(&root, kongOptions...)
	kongplete.Complete(parser)

	kongCtx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)
	if root.Quiet {
		runCtx.stdout = SimpleFileWriter{io.Discard}
		kongCtx.Stdout = io.Discard
	}
	err = kongCtx.Run()
	kongCtx.FatalIfErrorf(err)
}
