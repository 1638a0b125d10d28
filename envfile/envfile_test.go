package envfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flattened single-line content must recover into two entries with the
// documented type classification.
func TestParse_SingleLineRecovery(t *testing.T) {
	vars := Parse("PORT=3000 API_KEY=sk-1")

	require.Len(t, vars, 2)
	assert.Equal(t, "PORT", vars[0].Key)
	assert.Equal(t, "3000", vars[0].Value)
	assert.Equal(t, TypeNumeric, vars[0].Type)

	assert.Equal(t, "API_KEY", vars[1].Key)
	assert.Equal(t, "sk-1", vars[1].Value)
	assert.Equal(t, TypeSecret, vars[1].Type)
}

func TestParse_MultilineWithCommentsAndQuotes(t *testing.T) {
	content := "# service config\nHOST=localhost\nGREETING=\"hello world\"\nDEBUG=true\n"

	vars := Parse(content)

	require.Len(t, vars, 3)
	assert.Equal(t, "localhost", vars[0].Value)
	assert.Equal(t, "hello world", vars[1].Value)
	assert.Equal(t, TypeBoolean, vars[2].Type)
}

func TestParse_ExportPrefixAndOrder(t *testing.T) {
	vars := Parse("export A=1\nexport B=2\nexport C=3")

	require.Len(t, vars, 3)
	assert.Equal(t, "A", vars[0].Key)
	assert.Equal(t, "B", vars[1].Key)
	assert.Equal(t, "C", vars[2].Key)
	assert.Equal(t, 1, vars[0].Line)
	assert.Equal(t, 2, vars[1].Line)
	assert.Equal(t, 3, vars[2].Line)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("just a sentence"))
}

func TestClassifyVar(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected VarType
	}{
		{"API_KEY", "12345", TypeSecret},
		{"DB_PASSWORD", "hunter2", TypeSecret},
		{"AUTH_TOKEN", "abc", TypeSecret},
		{"PORT", "3000", TypeNumeric},
		{"TIMEOUT", "1.5", TypeNumeric},
		{"DEBUG", "true", TypeBoolean},
		{"VERBOSE", "off", TypeBoolean},
		{"BASE_URL", "https://api.example.com", TypeURL},
		{"APP_NAME", "workbench", TypePlain},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyVar(tt.key, tt.value))
		})
	}
}

func TestMask(t *testing.T) {
	secret := Variable{Key: "API_KEY", Value: "sk-abcdef123", Type: TypeSecret}
	assert.Equal(t, "sk********23", Mask(secret))

	short := Variable{Key: "TOKEN", Value: "abc", Type: TypeSecret}
	assert.Equal(t, "***", Mask(short))

	plain := Variable{Key: "HOST", Value: "localhost", Type: TypePlain}
	assert.Equal(t, "localhost", Mask(plain))
}

func TestSerialize(t *testing.T) {
	vars := []Variable{
		{Key: "HOST", Value: "localhost"},
		{Key: "GREETING", Value: "hello world"},
	}

	out := Serialize(vars)

	assert.Equal(t, "HOST=localhost\nGREETING=\"hello world\"\n", out)
}
