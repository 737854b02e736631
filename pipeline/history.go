// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// HistoryFile collects one row per finished job in the output directory.
const HistoryFile = "history.csv"

// AppendHistory appends the fields as one CSV row, creating the file if needed.
// Floats are written with 2 decimals.
func AppendHistory(filename string, fields ...interface{}) (err error) {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	row := make([]string, len(fields))
	for i, field := range fields {
		switch v := field.(type) {
		case float32, float64:
			row[i] = fmt.Sprintf("%.2f", v)
		case time.Time:
			row[i] = v.UTC().Format(time.RFC3339)
		default:
			row[i] = fmt.Sprint(v)
		}
	}

	w := csv.NewWriter(f)
	if err = w.Write(row); err != nil {
		return
	}
	w.Flush()
	return w.Error()
}

func (result *Result) historyRow(seed int64, finished time.Time) []interface{} {
	id := ""
	if result.Record != nil {
		id = result.Record.ID
	}
	return []interface{}{
		finished, result.Name, seed, result.NX, result.NY,
		result.Lowest, result.Highest, len(result.Files), result.Bytes,
		result.Duration.Seconds(), id,
	}
}
