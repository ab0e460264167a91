// Package export serializes in-memory payloads to downloadable files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// UnsupportedFormatError reports an export format this package cannot
// produce.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %q", e.Format)
}

// Rows flattens any JSON-marshalable slice into generic records, so the
// same export path serves ports, alerts, and ad-hoc payloads.
func Rows(data any) ([]map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("flatten rows: %w", err)
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("flatten rows: %w", err)
	}
	return rows, nil
}

// Export writes rows to dir as "{filename}_{epoch-millis}.{format}" and
// returns the written path. JSON output is pretty-printed; CSV output
// takes its header from the first record's field set (sorted for
// determinism), quotes every data cell, doubles embedded quotes, and
// renders missing cells as empty strings.
func Export(rows []map[string]any, dir, filename, format string) (string, error) {
	var payload []byte
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		payload = data
	case FormatCSV:
		payload = []byte(MarshalCSV(rows))
	default:
		return "", &UnsupportedFormatError{Format: format}
	}

	name := fmt.Sprintf("%s_%d.%s", filename, time.Now().UnixMilli(), format)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// MarshalCSV renders rows with the export CSV contract: unquoted header
// from the first record, every data cell quoted with embedded quotes
// doubled. Commas inside a field survive because every cell is quoted.
func MarshalCSV(rows []map[string]any) string {
	if len(rows) == 0 {
		return ""
	}
	header := make([]string, 0, len(rows[0]))
	for key := range rows[0] {
		header = append(header, key)
	}
	sort.Strings(header)

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		cells := make([]string, len(header))
		for idx, key := range header {
			value, ok := row[key]
			if !ok || value == nil {
				cells[idx] = quoteCell("")
				continue
			}
			cells[idx] = quoteCell(coerce(value))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func coerce(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
