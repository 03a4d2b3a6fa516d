package repositories

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"poisurvey/pkg/utils"
)

const maxNameAttempts = 100

// ExportRepositoryInterface writes one CSV export file per flush.
type ExportRepositoryInterface interface {
	// Write creates <prefix>_<YYYYMMDD_HHMMSS>.csv and returns its path.
	Write(prefix string, at time.Time, header []string, rows [][]string) (string, error)
}

type ExportRepository struct {
	dir string
}

func NewExportRepository(dir string) *ExportRepository {
	return &ExportRepository{dir: dir}
}

// Write serializes the whole table in memory before touching the disk. The
// file is created exclusively; a name taken in the same second gets a _<n>
// suffix. On any failure the partial file is removed and the error wraps
// utils.ErrPersistence.
func (r *ExportRepository) Write(prefix string, at time.Time, header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("%w: encode header: %v", utils.ErrPersistence, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("%w: encode rows: %v", utils.ErrPersistence, err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create results dir: %v", utils.ErrPersistence, err)
	}

	base := prefix + "_" + utils.ExportStamp(at)
	for n := 0; n < maxNameAttempts; n++ {
		name := base + ".csv"
		if n > 0 {
			name = fmt.Sprintf("%s_%d.csv", base, n)
		}
		path := filepath.Join(r.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: create %s: %v", utils.ErrPersistence, path, err)
		}

		if _, err := f.Write(buf.Bytes()); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("%w: write %s: %v", utils.ErrPersistence, path, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("%w: close %s: %v", utils.ErrPersistence, path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: no free file name for %s", utils.ErrPersistence, base)
}
