package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func monthlyRows() []map[string]any {
	return []map[string]any{
		{"name": "Jan", "value": float64(10)},
		{"name": "Feb", "value": float64(20)},
		{"name": "Mar", "value": float64(35)},
	}
}

// Pie takes priority over the monotonic-line rule: three rows with one
// numeric series satisfy both, and pie must win.
func TestInferAxes_PieBeatsMonotonicLine(t *testing.T) {
	axes := InferAxes(monthlyRows())

	assert.Equal(t, "name", axes.LabelKey)
	assert.Equal(t, []string{"value"}, axes.SeriesKeys)
	assert.Equal(t, ChartPie, axes.Suggested)
}

func TestInferAxes_TemporalLabelsSuggestLine(t *testing.T) {
	rows := []map[string]any{
		{"name": "Mon", "a": float64(5), "b": float64(1)},
		{"name": "Tue", "a": float64(3), "b": float64(2)},
		{"name": "Wed", "a": float64(9), "b": float64(4)},
	}

	axes := InferAxes(rows)

	assert.Equal(t, ChartLine, axes.Suggested)
}

func TestInferAxes_ManyRowsNonMonotonicSuggestBar(t *testing.T) {
	var rows []map[string]any
	values := []float64{4, 9, 2, 7, 1, 8, 3, 6, 5, 10, 2, 4}
	for i, v := range values {
		rows = append(rows, map[string]any{
			"category": string(rune('a' + i)),
			"first":    v,
			"second":   float64(i),
		})
	}

	axes := InferAxes(rows)

	assert.Equal(t, "category", axes.LabelKey)
	assert.Equal(t, ChartBar, axes.Suggested)
}

func TestInferAxes_MonotonicSeriesSuggestLine(t *testing.T) {
	var rows []map[string]any
	for i := 0; i < 12; i++ {
		rows = append(rows, map[string]any{
			"label": string(rune('a' + i)),
			"total": float64(i * 2),
		})
	}

	axes := InferAxes(rows)

	// 12 rows rules out pie; monotonic totals suggest line
	assert.Equal(t, ChartLine, axes.Suggested)
}

func TestInferAxes_LabelKeyPriority(t *testing.T) {
	tests := []struct {
		name     string
		row      map[string]any
		expected string
	}{
		{"name wins over id", map[string]any{"id": float64(1), "name": "x", "v": float64(2)}, "name"},
		{"day over category", map[string]any{"category": "c", "day": "Mon", "v": float64(2)}, "day"},
		{"first string key fallback", map[string]any{"city": "Oslo", "v": float64(2)}, "city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axes := InferAxes([]map[string]any{tt.row})
			assert.Equal(t, tt.expected, axes.LabelKey)
		})
	}
}

func TestInferAxes_SeriesFallbackToAnyRow(t *testing.T) {
	rows := []map[string]any{
		{"name": "a", "v": "n/a"},
		{"name": "b", "v": float64(4)},
	}

	axes := InferAxes(rows)

	assert.Equal(t, []string{"v"}, axes.SeriesKeys)
}

func TestInferAxes_Empty(t *testing.T) {
	axes := InferAxes(nil)
	assert.Equal(t, ChartBar, axes.Suggested)
	assert.Empty(t, axes.SeriesKeys)
}
