package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabular_ArrayOfObjects(t *testing.T) {
	rows := []any{
		map[string]any{"name": "Ada", "age": float64(36)},
		map[string]any{"name": "Linus", "age": float64(54)},
	}

	result := Tabular(rows)

	require.Empty(t, result.Err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Ada", result.Rows[0]["name"])
}

func TestTabular_JSONString(t *testing.T) {
	result := Tabular(`[{"id": 1, "status": "ok"}, {"id": 2, "status": "down"}]`)

	require.Empty(t, result.Err)
	assert.Len(t, result.Rows, 2)
}

func TestTabular_InvalidJSONString(t *testing.T) {
	result := Tabular(`{"broken": `)

	assert.Nil(t, result.Rows)
	assert.Equal(t, ErrInvalidJSON, result.Err)
}

func TestTabular_ContainerKeyPriority(t *testing.T) {
	payload := map[string]any{
		"meta": map[string]any{"total": float64(2)},
		"data": []any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(2)},
		},
	}

	result := Tabular(payload)

	require.Empty(t, result.Err)
	assert.Len(t, result.Rows, 2)
}

func TestTabular_FallbackToAnyArrayValue(t *testing.T) {
	payload := map[string]any{
		"whatever": []any{
			map[string]any{"k": "v"},
		},
	}

	result := Tabular(payload)

	require.Empty(t, result.Err)
	assert.Len(t, result.Rows, 1)
}

func TestTabular_NotTabular(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"scalar", float64(42)},
		{"array of scalars", []any{float64(1), float64(2)}},
		{"object without row arrays", map[string]any{"a": "b"}},
		{"empty array", []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tabular(tt.input)
			assert.Nil(t, result.Rows)
			assert.Equal(t, ErrNotTabular, result.Err)
		})
	}
}

func TestColumns_NumericDetection(t *testing.T) {
	rows := []map[string]any{
		{"name": "a", "count": float64(1)},
		{"name": "b", "count": float64(2), "extra": "x"},
		{"name": "c"}, // count absent: still numeric
	}

	columns := Columns(rows)

	byKey := make(map[string]bool)
	for _, col := range columns {
		byKey[col.Key] = col.Numeric
	}
	assert.False(t, byKey["name"])
	assert.True(t, byKey["count"])
	assert.False(t, byKey["extra"])
}

func TestColumns_NullCountsAsNumeric(t *testing.T) {
	rows := []map[string]any{
		{"v": nil},
		{"v": float64(3)},
	}

	columns := Columns(rows)

	require.Len(t, columns, 1)
	assert.True(t, columns[0].Numeric)
}
