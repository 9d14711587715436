// Package report writes analysis reports to disk. The bytes are never
// inspected.
package report

import (
	"os"
	"path/filepath"

	"github.com/zhubert/codecheck/internal/errors"
	"github.com/zhubert/codecheck/internal/logger"
)

// Filename is the fixed name every report is saved under.
const Filename = "report.md"

// Save writes data to dir/report.md, replacing any previous report, and
// returns the final path. The data goes to a temporary file in dir that is
// renamed into place; the temporary file is closed and removed whether or
// not the save succeeds.
func Save(dir string, data []byte) (string, error) {
	const op = errors.Op("report.Save")

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.E(op, errors.KindIO, "failed to create download directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.md")
	if err != nil {
		return "", errors.E(op, errors.KindIO, "failed to create temporary file", err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			logger.Warn("report: failed to remove temporary file %s: %v", tmpName, err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return "", errors.E(op, errors.KindIO, "failed to write report", err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.E(op, errors.KindIO, "failed to flush report", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", errors.E(op, errors.KindIO, "failed to set report permissions", err)
	}

	dest := filepath.Join(dir, Filename)
	if err := os.Rename(tmpName, dest); err != nil {
		return "", errors.E(op, errors.KindIO, "failed to save "+Filename, err)
	}

	logger.Info("report: saved %d bytes to %s", len(data), dest)
	return dest, nil
}

// Saver saves reports into a fixed directory.
type Saver struct {
	Dir string
}

// Save writes data to the Saver's directory.
func (s Saver) Save(data []byte) (string, error) {
	return Save(s.Dir, data)
}
