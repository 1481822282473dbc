package fcweekly

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ShortcutPublisher writes a launcher shortcut pointing at an executable.
type ShortcutPublisher interface {
	Publish(ctx context.Context, target, shortcutPath string) error
}

// PowerShellPublisher writes .lnk shortcuts through WScript.Shell. The
// shortcut's working directory is the target's directory and the target is
// its own icon source.
type PowerShellPublisher struct {
	// PowerShell is the path to powershell.exe. Discovered when empty.
	PowerShell string
}

func (p *PowerShellPublisher) Publish(ctx context.Context, target, shortcutPath string) error {
	shell := p.PowerShell
	if shell == "" {
		var err error
		shell, err = findPowerShell()
		if err != nil {
			return &ShortcutError{Shortcut: shortcutPath, Err: err}
		}
	}
	script := fmt.Sprintf(
		"$ws = New-Object -ComObject WScript.Shell; $s = $ws.CreateShortcut(%s); $s.TargetPath = %s; $s.WorkingDirectory = %s; $s.IconLocation = %s; $s.Save()",
		psQuote(shortcutPath),
		psQuote(target),
		psQuote(filepath.Dir(target)),
		psQuote(target+",0"),
	)
	cmd := exec.CommandContext(ctx, shell, "-NoProfile", "-NonInteractive", "-Command", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return &ShortcutError{Shortcut: shortcutPath, Err: err}
	}
	return nil
}

func findPowerShell() (string, error) {
	for _, name := range []string{"powershell.exe", "powershell"} {
		path, err := exec.LookPath(name)
		if err == nil {
			return path, nil
		}
	}
	windir := os.Getenv("WINDIR")
	if windir != "" {
		path := filepath.Join(windir, "system32", "WindowsPowershell", "v1.0", "powershell.exe")
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.New("powershell not found")
}

// psQuote single-quotes s for PowerShell.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
