package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type simpleFileReader struct {
	io.Reader
}

func (s simpleFileReader) Fd() uintptr {
	return 0
}

type cmdRunner struct {
	t           testing.TB
	tmpDir      string
	downloadDir string
	installRoot string
	stdin       io.Reader
}

func newCmdRunner(t testing.TB) *cmdRunner {
	t.Helper()
	dir := t.TempDir()
	runner := &cmdRunner{
		t:           t,
		tmpDir:      dir,
		downloadDir: filepath.Join(dir, "downloads"),
		installRoot: filepath.Join(dir, "apps"),
	}
	require.NoError(t, os.MkdirAll(runner.downloadDir, 0o755))
	require.NoError(t, os.MkdirAll(runner.installRoot, 0o755))
	return runner
}

func (c *cmdRunner) run(commandLine ...string) *runCmdResult {
	ctx := context.Background()
	c.t.Helper()
	result := runCmdResult{t: c.t}
	commandLine = append(commandLine,
		"--download-dir", c.downloadDir,
		"--install-root", c.installRoot,
	)
	stdin := c.stdin
	if stdin == nil {
		stdin = bytes.NewReader(nil)
	}
	Run(
		ctx,
		commandLine,
		&runOpts{
			stdin:   simpleFileReader{stdin},
			stdout:  SimpleFileWriter{&result.stdOut},
			stderr:  SimpleFileWriter{&result.stdErr},
			cmdName: "fcweekly",
			exitHandler: func(i int) {
				result.exited = true
				result.exitVal = i
			},
		},
	)
	return &result
}

func (c *cmdRunner) writeArchive(name string) string {
	c.t.Helper()
	path := filepath.Join(c.downloadDir, name)
	require.NoError(c.t, os.WriteFile(path, []byte(name), 0o600))
	return path
}

func (c *cmdRunner) writeInstall(name string) string {
	c.t.Helper()
	dir := filepath.Join(c.installRoot, name)
	require.NoError(c.t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))
	require.NoError(c.t, os.WriteFile(filepath.Join(dir, "bin", "FreeCAD.exe"), []byte(name), 0o755))
	return dir
}

// writeFakeSevenZip writes a shell script that extracts nothing but creates
// the double-nested layout a defective weekly archive would produce.
func (c *cmdRunner) writeFakeSevenZip() string {
	c.t.Helper()
	tool := filepath.Join(c.tmpDir, "7z")
	script := `#!/bin/sh
# args: x <archive> -o<dest> -y
archive=$2
dest=${3#-o}
name=$(basename "$archive" .7z)
mkdir -p "$dest/$name/$name/bin"
printf exe > "$dest/$name/$name/bin/FreeCAD.exe"
`
	require.NoError(c.t, os.WriteFile(tool, []byte(script), 0o755))
	return tool
}

type runCmdResult struct {
	t       testing.TB
	stdOut  bytes.Buffer
	stdErr  bytes.Buffer
	exited  bool
	exitVal int
}

func (r *runCmdResult) assertSuccess() {
	r.t.Helper()
	assert.False(r.t, r.exited, "stderr: %s", r.stdErr.String())
}

func (r *runCmdResult) assertError() {
	r.t.Helper()
	assert.True(r.t, r.exited)
	assert.Equal(r.t, 1, r.exitVal)
}
