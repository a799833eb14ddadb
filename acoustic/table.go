package acoustic

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteTable writes one row per line, coefficients separated by a space.
// Values use the shortest representation that reads back exactly.
func WriteTable(w io.Writer, rows [][]float64) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadTable reads a whitespace-separated table of floats. Blank lines are
// ignored; every row must have the same number of columns.
func ReadTable(r io.Reader) ([][]float64, error) {
	sc := bufio.NewScanner(r)
	var rows [][]float64
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, j+1, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d column %d: %q is not finite", line, j+1, f)
			}
			row[j] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d has %d columns, want %d: %w", line, len(row), len(rows[0]), ErrShapeMismatch)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("acoustic: empty table")
	}
	return rows, nil
}

// DirStore keeps one text table per class in Dir, named Prefix+label+".txt".
type DirStore struct {
	Dir    string
	Prefix string
}

// Path returns the file that holds label's template.
func (d DirStore) Path(label string) string {
	return filepath.Join(d.Dir, d.Prefix+label+".txt")
}

func (d DirStore) checkLabel(label string) error {
	if label == "" || strings.ContainsAny(label, `/\`) || label == "." || label == ".." {
		return fmt.Errorf("acoustic: label %q is not usable as a file name", label)
	}
	return nil
}

func (d DirStore) Save(_ context.Context, t *Template) error {
	if err := d.checkLabel(t.label); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(d.Path(t.label))
	if err != nil {
		return err
	}
	if err := WriteTable(f, t.means); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", f.Name(), err)
	}
	return f.Close()
}

func (d DirStore) Load(_ context.Context, label string) (*Template, error) {
	if err := d.checkLabel(label); err != nil {
		return nil, err
	}
	f, err := os.Open(d.Path(label))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", d.Path(label), ErrTemplateNotFound)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name(), err)
	}
	return NewTemplate(label, rows)
}
