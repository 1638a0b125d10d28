package classify

import (
	"encoding/json"
	"sort"
)

// Error strings surfaced to the table/chart widgets. These are display
// strings, not sentinel errors: the normalizer boundary reports problems
// as fields, never as panics or returned errors.
const (
	ErrInvalidJSON = "Invalid JSON"
	ErrNotTabular  = "Data is not tabular"
)

// Conventional container keys checked, in priority order, when the payload
// is an object wrapping the actual row array.
var containerKeys = []string{"users", "data", "items", "rows", "results", "records", "list"}

// Column describes one column of an extracted table
type Column struct {
	Key     string
	Numeric bool
}

// TabularResult is the outcome of tabular extraction. On failure Rows is nil
// and Err holds a human-readable message.
type TabularResult struct {
	Rows    []map[string]any
	Columns []Column
	Err     string
}

// Tabular extracts an array-of-objects table from raw input. The input may be
// a JSON string (parsed strictly) or an already-parsed JSON value.
func Tabular(input any) TabularResult {
	value := input

	if s, ok := input.(string); ok {
		var parsed any
		if err := json.Unmarshal([]byte(s), &parsed); err != nil {
			return TabularResult{Err: ErrInvalidJSON}
		}
		value = parsed
	}

	rows := extractRows(value)
	if rows == nil {
		return TabularResult{Err: ErrNotTabular}
	}

	return TabularResult{Rows: rows, Columns: Columns(rows)}
}

// extractRows locates a row-bearing structure inside the parsed value.
// Priority: the value itself as an array of objects, then conventional
// container keys, then any other value that is an array of objects.
func extractRows(value any) []map[string]any {
	switch v := value.(type) {
	case []any:
		return rowsFromArray(v)
	case map[string]any:
		for _, key := range containerKeys {
			if rows := rowsFromArray(asArray(v[key])); rows != nil {
				return rows
			}
		}
		// Fall back to the first value that is itself an array of objects.
		// Map iteration order is not stable in Go, so scan keys sorted to
		// keep the fallback deterministic.
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if rows := rowsFromArray(asArray(v[key])); rows != nil {
				return rows
			}
		}
	}
	return nil
}

func asArray(v any) []any {
	arr, _ := v.([]any)
	return arr
}

// rowsFromArray accepts a non-empty array whose first element is an object,
// and returns its object elements as rows. Non-object elements are skipped.
func rowsFromArray(arr []any) []map[string]any {
	if len(arr) == 0 {
		return nil
	}
	if _, ok := arr[0].(map[string]any); !ok {
		return nil
	}

	rows := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			rows = append(rows, obj)
		}
	}
	return rows
}

// Columns computes the column set: the union of keys across all rows in
// first-seen order (keys within a single row are visited sorted, since Go
// maps carry no insertion order). A column is numeric iff every row's value
// for that key is a number, null, or absent.
func Columns(rows []map[string]any) []Column {
	var order []string
	numeric := make(map[string]bool)
	seen := make(map[string]bool)

	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if !seen[key] {
				seen[key] = true
				numeric[key] = true
				order = append(order, key)
			}
			if !isNumericValue(row[key]) {
				numeric[key] = false
			}
		}
	}

	columns := make([]Column, 0, len(order))
	for _, key := range order {
		columns = append(columns, Column{Key: key, Numeric: numeric[key]})
	}
	return columns
}

// isNumericValue treats absent and null values as numeric-compatible so a
// sparse numeric column still sorts numerically.
func isNumericValue(v any) bool {
	switch v.(type) {
	case nil:
		return true
	case float64:
		return true
	case json.Number:
		return true
	default:
		return false
	}
}
