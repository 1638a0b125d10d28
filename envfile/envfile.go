package envfile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"workbench/classify"
)

// VarType is the display classification of one environment variable
type VarType string

const (
	TypeSecret  VarType = "secret"
	TypeNumeric VarType = "numeric"
	TypeBoolean VarType = "boolean"
	TypeURL     VarType = "url"
	TypePlain   VarType = "plain"
)

// Variable is one parsed KEY=VALUE entry, in file order
type Variable struct {
	Key   string
	Value string
	Type  VarType
	Line  int
}

var (
	secretKeyPattern = regexp.MustCompile(`(?i)(KEY|SECRET|TOKEN|PASSWORD|PASSWD|PRIVATE|CREDENTIAL)`)
	entryLinePattern = regexp.MustCompile(`^\s*(?:export\s+)?[A-Za-z_][A-Za-z0-9_]*\s*=`)
)

// Parse turns env-file content into ordered variables. Content that arrives
// flattened onto a single line is recovered first. Each entry line is fed
// through godotenv so quoting and escape rules match real dotenv semantics;
// lines godotenv rejects are skipped rather than failing the whole file.
// Empty content is not an error: it parses to zero variables.
func Parse(content string) []Variable {
	recovered := classify.RecoverEnv(content)
	lines := strings.Split(strings.ReplaceAll(recovered, "\r\n", "\n"), "\n")

	var vars []Variable
	for i, line := range lines {
		if !entryLinePattern.MatchString(line) {
			continue
		}

		parsed, err := godotenv.Unmarshal(line)
		if err != nil {
			continue
		}
		for key, value := range parsed {
			vars = append(vars, Variable{
				Key:   key,
				Value: value,
				Type:  ClassifyVar(key, value),
				Line:  i + 1,
			})
		}
	}
	return vars
}

// ClassifyVar types a variable for display and masking. Secret-looking key
// names win over value shape, so API_KEY=12345 still masks as a secret.
func ClassifyVar(key, value string) VarType {
	if secretKeyPattern.MatchString(key) {
		return TypeSecret
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil && value != "" {
		return TypeNumeric
	}
	switch strings.ToLower(value) {
	case "true", "false", "yes", "no", "on", "off":
		return TypeBoolean
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return TypeURL
	}
	return TypePlain
}

// Mask returns the value as the widget should display it: secrets keep the
// first and last two characters with the middle starred out.
func Mask(v Variable) string {
	if v.Type != TypeSecret {
		return v.Value
	}
	if len(v.Value) <= 4 {
		return strings.Repeat("*", len(v.Value))
	}
	return v.Value[:2] + strings.Repeat("*", len(v.Value)-4) + v.Value[len(v.Value)-2:]
}

// Serialize renders variables back to dotenv text, quoting values that
// contain whitespace or '#'.
func Serialize(vars []Variable) string {
	var b strings.Builder
	for _, v := range vars {
		b.WriteString(v.Key)
		b.WriteByte('=')
		if strings.ContainsAny(v.Value, " \t#\"") {
			b.WriteString(strconv.Quote(v.Value))
		} else {
			b.WriteString(v.Value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
