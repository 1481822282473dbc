package fcweekly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver/v4"
)

// Extractor decompresses an archive into destDir.
type Extractor interface {
	Extract(ctx context.Context, archivePath, destDir string) error
}

// ExtractArchive extracts archivePath under destDir and returns the
// extraction target, destDir joined with the archive's base name minus its
// extension. Any stale directory already at the target is removed first so
// a prior extraction can not merge into the new one.
func ExtractArchive(ctx context.Context, x Extractor, archivePath, destDir string) (string, error) {
	base := filepath.Base(archivePath)
	target := filepath.Join(destDir, strings.TrimSuffix(base, filepath.Ext(base)))
	err := os.RemoveAll(target)
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(destDir, 0o755)
	if err != nil {
		return "", err
	}
	err = x.Extract(ctx, archivePath, destDir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", &ExtractError{
			Archive:  archivePath,
			ExitCode: -1,
			Err:      fmt.Errorf("extraction did not produce %s", target),
		}
	}
	return target, nil
}

// sevenZipLocations are probed after PATH. 7-Zip does not add itself to
// PATH on a default Windows install.
var sevenZipLocations = []string{
	`C:\Program Files\7-Zip\7z.exe`,
	`C:\Program Files (x86)\7-Zip\7z.exe`,
}

// FindSevenZip locates the external 7-Zip executable, returning
// ErrToolNotFound when there is none.
func FindSevenZip() (string, error) {
	for _, name := range []string{"7z", "7z.exe"} {
		path, err := exec.LookPath(name)
		if err == nil {
			return path, nil
		}
	}
	for _, path := range sevenZipLocations {
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrToolNotFound
}

// SevenZipExtractor runs the external 7-Zip tool. The invocation blocks
// until the tool exits; there is no timeout beyond ctx.
type SevenZipExtractor struct {
	Tool string
}

func (s *SevenZipExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	cmd := exec.CommandContext(ctx, s.Tool, "x", archivePath, "-o"+destDir, "-y")
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	msg := strings.TrimSpace(string(output))
	if msg != "" {
		err = fmt.Errorf("%w: %s", err, msg)
	}
	return &ExtractError{Archive: archivePath, ExitCode: exitCode, Err: err}
}

// ArchiveExtractor extracts in-process. It is the fallback for machines
// without 7-Zip installed.
type ArchiveExtractor struct{}

func (ArchiveExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return &ExtractError{Archive: archivePath, ExitCode: -1, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()
	format, _, err := archiver.Identify(filepath.Base(archivePath), f)
	if err != nil {
		if errors.Is(err, archiver.ErrNoMatch) {
			err = fmt.Errorf("unrecognized archive format for %s", filepath.Base(archivePath))
		}
		return &ExtractError{Archive: archivePath, ExitCode: -1, Err: err}
	}
	ex, ok := format.(archiver.Extractor)
	if !ok {
		return &ExtractError{
			Archive:  archivePath,
			ExitCode: -1,
			Err:      fmt.Errorf("%s format does not support extraction", format.Name()),
		}
	}
	// 7z and zip need random access, so rewind and hand over the file
	// itself rather than Identify's replay reader.
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return &ExtractError{Archive: archivePath, ExitCode: -1, Err: err}
	}
	err = ex.Extract(ctx, f, nil, func(_ context.Context, af archiver.File) error {
		return writeArchiveFile(af, destDir)
	})
	if err != nil {
		return &ExtractError{Archive: archivePath, ExitCode: -1, Err: err}
	}
	return nil
}

func writeArchiveFile(af archiver.File, destDir string) error {
	outPath := filepath.Join(destDir, filepath.FromSlash(af.NameInArchive))
	if af.IsDir() {
		return os.MkdirAll(outPath, 0o755)
	}
	err := os.MkdirAll(filepath.Dir(outPath), 0o755)
	if err != nil {
		return err
	}
	reader, err := af.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = reader.Close()
	}()
	mode := af.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	writer, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, reader)
	if err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}
