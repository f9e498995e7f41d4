// Package tabular reads and writes OSeMOSYS parameter tables stored as CSV
// files with a header row.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/osemosys-il/core/model"
)

// ErrEmpty is returned when a file has no header row.
var ErrEmpty = errors.New("empty table")

// bom is the UTF-8 byte order mark Excel writes at the start of CSV exports.
const bom = "\ufeff"

// Decode parses a CSV stream. Rows whose field count differs from the header
// are kept as-is so that callers can report them individually.
func Decode(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.Table{}, ErrEmpty
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	t := model.Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, err
		}
		t.Rows = append(t.Rows, model.Row(rec))
	}
	return t, nil
}

// Encode writes the header followed by every row.
func Encode(w io.Writer, t model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read loads the table stored at path.
func Read(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, err
	}
	defer func() { _ = f.Close() }()
	t, err := Decode(f)
	if err != nil {
		return model.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write stores t at path. The content is written to a temporary file in the
// same directory and renamed over the target, so a failed write never leaves
// a truncated table behind.
func Write(path string, t model.Table) error {
	return atomicWrite(path, func(w io.Writer) error { return Encode(w, t) })
}

// CopyFile copies src to dst byte for byte.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	return atomicWrite(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

// atomicWrite keeps the permissions of an existing target and uses 0644 for
// new files.
func atomicWrite(path string, fill func(io.Writer) error) (err error) {
	perm := os.FileMode(0o644)
	if fi, serr := os.Stat(path); serr == nil {
		perm = fi.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = fill(tmp); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// FileStore implements model.TableStore on the local filesystem.
type FileStore struct{}

func (FileStore) Read(path string) (model.Table, error)  { return Read(path) }
func (FileStore) Write(path string, t model.Table) error { return Write(path, t) }
func (FileStore) Copy(src, dst string) error             { return CopyFile(src, dst) }

var _ model.TableStore = FileStore{}
