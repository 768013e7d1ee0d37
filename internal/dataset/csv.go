package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSV reads a numeric CSV file. hasHeader skips the first line.
func LoadCSV(filename string, hasHeader bool) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	rows, err := ReadCSV(file, hasHeader)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	return rows, nil
}

// ReadCSV parses every record of r as a row of floats. All records must
// have the same number of fields; blank lines are ignored.
func ReadCSV(r io.Reader, hasHeader bool) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "failed to read csv: %v", err)
	}

	startRow := 0
	if hasHeader {
		startRow = 1
	}
	if len(records) <= startRow {
		return nil, errors.Wrap(ErrMalformed, "csv has no data rows")
	}

	rows := make([][]float64, 0, len(records)-startRow)
	for i := startRow; i < len(records); i++ {
		row := make([]float64, len(records[i]))
		for j, valStr := range records[i] {
			val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformed, "row %d, col %d: %v", i, j, err)
			}
			row[j] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes rows with an optional header. Values use the shortest
// representation that parses back to the same float.
func WriteCSV(w io.Writer, header []string, rows [][]float64) error {
	writer := csv.NewWriter(w)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return errors.Wrap(err, "write header")
		}
	}

	record := make([]string, 0)
	for i, row := range rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}
