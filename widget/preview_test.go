package widget

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResponse_JSON(t *testing.T) {
	preview := ClassifyResponse(`{"ok":true}`, "application/json")

	assert.Equal(t, PreviewJSON, preview.Kind)
	assert.Equal(t, "{\n  \"ok\": true\n}", preview.Body)
}

func TestClassifyResponse_JSONByShapeWithoutHeader(t *testing.T) {
	preview := ClassifyResponse(`[1,2,3]`, "text/plain")
	assert.Equal(t, PreviewJSON, preview.Kind)
}

func TestClassifyResponse_HTML(t *testing.T) {
	body := `<!doctype html><html><head><title>Docs</title>
<script>alert(1)</script><style>.x{}</style></head>
<body><nav>menu</nav><p>Welcome to the docs.</p><footer>legal</footer></body></html>`

	preview := ClassifyResponse(body, "text/html")

	assert.Equal(t, PreviewHTML, preview.Kind)
	assert.Equal(t, "Docs", preview.Title)
	assert.Contains(t, preview.Body, "Welcome to the docs.")
	assert.NotContains(t, preview.Body, "alert")
	assert.NotContains(t, preview.Body, "menu")
	assert.NotContains(t, preview.Body, "legal")
}

func TestClassifyResponse_MalformedJSONFallsBackToText(t *testing.T) {
	preview := ClassifyResponse(`{"broken":`, "application/json")

	assert.Equal(t, PreviewText, preview.Kind)
	assert.Equal(t, `{"broken":`, preview.Body)
}

func TestClassifyResponse_EmptyBody(t *testing.T) {
	preview := ClassifyResponse("  \n ", "text/plain")
	assert.Equal(t, PreviewText, preview.Kind)
	assert.Empty(t, preview.Body)
}

func TestClassifyResponse_ClipsLongBodies(t *testing.T) {
	long := strings.Repeat("x", maxPreviewChars+100)

	preview := ClassifyResponse(long, "text/plain")

	assert.True(t, strings.HasSuffix(preview.Body, "... (truncated)"))
	assert.Less(t, len(preview.Body), len(long))
}
