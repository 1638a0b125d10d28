package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies one of the fixed widget tools in the workspace
type Kind string

const (
	KindAPITester      Kind = "api-tester"
	KindJSONViewer     Kind = "json-viewer"
	KindMarkdownViewer Kind = "markdown-viewer"
	KindLogViewer      Kind = "log-viewer"
	KindTableViewer    Kind = "table-viewer"
	KindChartViewer    Kind = "chart-viewer"
	KindEnvManager     Kind = "env-manager"
	KindCodeGenerator  Kind = "code-generator"
	KindTerminal       Kind = "terminal"
)

// AllKinds lists every widget kind in display order
var AllKinds = []Kind{
	KindAPITester,
	KindJSONViewer,
	KindMarkdownViewer,
	KindLogViewer,
	KindTableViewer,
	KindChartViewer,
	KindEnvManager,
	KindCodeGenerator,
	KindTerminal,
}

// Valid reports whether k is one of the known widget kinds
func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable widget name used in titles
func (k Kind) DisplayName() string {
	switch k {
	case KindAPITester:
		return "API Tester"
	case KindJSONViewer:
		return "JSON Viewer"
	case KindMarkdownViewer:
		return "Markdown Viewer"
	case KindLogViewer:
		return "Log Viewer"
	case KindTableViewer:
		return "Data Table"
	case KindChartViewer:
		return "Chart"
	case KindEnvManager:
		return "Env Manager"
	case KindCodeGenerator:
		return "Code Generator"
	case KindTerminal:
		return "Terminal"
	default:
		return string(k)
	}
}

// Directive is a structured instruction from the generative-UI collaborator,
// attached to an assistant message: which component to open and with what props.
type Directive struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
}

// StringProp returns the named prop coerced to a string.
// Numbers and booleans are formatted; structured values are JSON-encoded.
func (d Directive) StringProp(name string) string {
	if d.Props == nil {
		return ""
	}
	return CoerceString(d.Props[name])
}

// Prop returns the raw prop value, or nil if absent
func (d Directive) Prop(name string) any {
	if d.Props == nil {
		return nil
	}
	return d.Props[name]
}

// CoerceString converts an arbitrary prop value to a string representation
func CoerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without a decimal point
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

// NormalizeComponentName canonicalizes a directive component name for lookup:
// lowercased with separators removed, so "ApiTester", "api_tester" and
// "api-tester" all match the same entry.
func NormalizeComponentName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "")
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}
