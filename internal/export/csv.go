package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteTable writes headers followed by rows as CSV.
func WriteTable(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeCSVFiles(dir, stamp string, snap *Snapshot) ([]string, error) {
	var paths []string
	for _, t := range snap.tables() {
		path := filepath.Join(dir, fileName(t.name, stamp, "csv"))
		if err := writeCSVFile(path, t); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeCSVFile(path string, t table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := WriteTable(f, t.headers, t.rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", t.name, err)
	}
	return f.Close()
}
