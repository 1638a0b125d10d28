package classify

import (
	"regexp"
	"strings"
)

// ChartKind is the suggested chart type for a set of rows
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartPie  ChartKind = "pie"
)

// Label keys checked in priority order when picking the x-axis
var labelKeyPriority = []string{"name", "label", "day", "category", "id", "x"}

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	weekdayNames   = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}
	monthNames     = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
)

// ChartAxes is the inferred axis assignment and default chart kind for a
// table of rows. Suggested is a default only: the consumer may override the
// kind without re-deriving the axes.
type ChartAxes struct {
	LabelKey   string
	SeriesKeys []string
	Suggested  ChartKind
}

// InferAxes picks a label column and numeric series columns for charting,
// then suggests a chart kind. Precedence is fixed: pie when there are at
// most 10 rows and exactly one numeric series, line when labels look like
// dates/weekdays/months or every series is monotonically non-decreasing,
// bar otherwise.
func InferAxes(rows []map[string]any) ChartAxes {
	axes := ChartAxes{Suggested: ChartBar}
	if len(rows) == 0 {
		return axes
	}

	columns := Columns(rows)
	axes.LabelKey = pickLabelKey(rows[0], columns)
	axes.SeriesKeys = pickSeriesKeys(rows, columns)
	axes.Suggested = suggestKind(rows, axes.LabelKey, axes.SeriesKeys)
	return axes
}

// pickLabelKey prefers conventional label keys, then the first string-valued
// column, then the first column.
func pickLabelKey(first map[string]any, columns []Column) string {
	for _, key := range labelKeyPriority {
		if _, ok := first[key]; ok {
			return key
		}
	}
	for _, col := range columns {
		if _, ok := first[col.Key].(string); ok {
			return col.Key
		}
	}
	if len(columns) > 0 {
		return columns[0].Key
	}
	return ""
}

// pickSeriesKeys takes columns numeric in the first row; if none qualify it
// falls back to columns numeric in any row.
func pickSeriesKeys(rows []map[string]any, columns []Column) []string {
	var series []string
	for _, col := range columns {
		if _, ok := rows[0][col.Key].(float64); ok {
			series = append(series, col.Key)
		}
	}
	if len(series) > 0 {
		return series
	}

	for _, col := range columns {
		for _, row := range rows {
			if _, ok := row[col.Key].(float64); ok {
				series = append(series, col.Key)
				break
			}
		}
	}
	return series
}

func suggestKind(rows []map[string]any, labelKey string, series []string) ChartKind {
	// Pie takes priority over the monotonic-line rule.
	if len(rows) <= 10 && len(series) == 1 {
		return ChartPie
	}
	if labelsLookTemporal(rows, labelKey) {
		return ChartLine
	}
	if len(series) > 0 && allSeriesMonotonic(rows, series) {
		return ChartLine
	}
	return ChartBar
}

// labelsLookTemporal reports whether every non-empty label looks like a
// date, weekday, or month name.
func labelsLookTemporal(rows []map[string]any, labelKey string) bool {
	if labelKey == "" {
		return false
	}
	matched := 0
	for _, row := range rows {
		label, ok := row[labelKey].(string)
		if !ok || label == "" {
			continue
		}
		if !looksTemporal(label) {
			return false
		}
		matched++
	}
	return matched > 0
}

func looksTemporal(label string) bool {
	lower := strings.ToLower(strings.TrimSpace(label))
	if isoDatePattern.MatchString(lower) {
		return true
	}
	for _, day := range weekdayNames {
		if strings.HasPrefix(lower, day) {
			return true
		}
	}
	for _, month := range monthNames {
		if strings.HasPrefix(lower, month) {
			return true
		}
	}
	return false
}

// allSeriesMonotonic reports whether every numeric series is non-decreasing
// across rows. Missing values do not break the run.
func allSeriesMonotonic(rows []map[string]any, series []string) bool {
	for _, key := range series {
		prev := 0.0
		started := false
		for _, row := range rows {
			val, ok := row[key].(float64)
			if !ok {
				continue
			}
			if started && val < prev {
				return false
			}
			prev = val
			started = true
		}
	}
	return true
}
