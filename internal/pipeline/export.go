package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"kiricut/internal/parser"
	"kiricut/internal/types"
)

// ExportJSON writes the full report, indented for human inspection.
func ExportJSON(w io.Writer, report types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// ExportCSV writes the ranked candidate list as a spreadsheet-friendly
// table, timestamps formatted the way players display them.
func ExportCSV(w io.Writer, report types.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "start", "end", "duration_sec", "score", "reasons", "url"}); err != nil {
		return err
	}
	for i, c := range report.Candidates {
		rec := []string{
			strconv.Itoa(i + 1),
			parser.FormatTimestamp(c.Start),
			parser.FormatTimestamp(c.End),
			strconv.FormatFloat(c.End-c.Start, 'f', 1, 64),
			strconv.FormatFloat(c.Score, 'f', 3, 64),
			strings.Join(c.Reasons, "; "),
			c.URL,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
