// Package csvio writes float64 data as comma-separated text.
package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
)

func format(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// Write emits columns side by side, one line per index. Columns may differ
// in length; a column that has run out leaves its cell empty.
func Write(w io.Writer, columns ...[]float64) error {
	return WriteWithHeader(w, nil, columns...)
}

// WriteWithHeader is Write preceded by a header line. A nil header writes
// no header line.
func WriteWithHeader(w io.Writer, header []string, columns ...[]float64) error {
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	rows := 0
	for _, c := range columns {
		rows = max(rows, len(c))
	}

	record := make([]string, len(columns))
	for i := range rows {
		for j, c := range columns {
			record[j] = ""
			if i < len(c) {
				record[j] = format(c[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRows emits one line per row. Rows may differ in length.
func WriteRows(w io.Writer, header []string, rows [][]float64) error {
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	for _, row := range rows {
		record := make([]string, len(row))
		for i, x := range row {
			record[i] = format(x)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
