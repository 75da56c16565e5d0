package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/petrzlen/digitaudit/pkg/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Header is the fixed schema of the output table.
var Header = []string{"Filename", "Timestamp", "Count of Audible Words", "Words Out of Order", "Longest Consecutive Count"}

// Writer appends one row per record and never rewrites earlier rows.
type Writer struct {
	f    afero.File
	w    *csv.Writer
	path string
	rows int
}

// Create truncates path and writes the header.
func Create(fs afero.Fs, path string) (*Writer, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "report: creating %s failed", path)
	}
	return newWriter(f, path, true)
}

// Open appends to path, writing the header only if the file is empty.
func Open(fs afero.Fs, path string) (*Writer, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "report: opening %s failed", path)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "report: stating %s failed", path)
	}
	return newWriter(f, path, fi.Size() == 0)
}

func newWriter(f afero.File, path string, withHeader bool) (*Writer, error) {
	w := &Writer{f: f, w: csv.NewWriter(f), path: path}
	if withHeader {
		if err := w.writeRow(Header); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Writer) Write(r models.Record) error {
	if err := w.writeRow(formatRecord(r)); err != nil {
		return err
	}
	w.rows++
	log.Trace().Str("path", w.path).Str("filename", r.Filename).Int("rows", w.rows).Msg("row written")
	return nil
}

func (w *Writer) writeRow(row []string) error {
	if err := w.w.Write(row); err != nil {
		return errors.Wrapf(err, "report: writing row to %s failed", w.path)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return errors.Wrapf(err, "report: flushing %s failed", w.path)
	}
	return nil
}

// Rows is the number of records written through this writer.
func (w *Writer) Rows() int {
	return w.rows
}

func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		_ = w.f.Close()
		return errors.Wrapf(err, "report: flushing %s failed", w.path)
	}
	if err := w.f.Close(); err != nil {
		return errors.Wrapf(err, "report: closing %s failed", w.path)
	}
	return nil
}

func formatRecord(r models.Record) []string {
	return []string{
		r.Filename,
		r.Timestamp,
		strconv.Itoa(r.WordCount),
		formatBool(r.OutOfOrder),
		strconv.Itoa(r.LongestRun),
	}
}

// formatBool keeps the True/False spelling existing consumers of the table expect.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
