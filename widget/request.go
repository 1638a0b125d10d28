package widget

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ResponseResult is the outcome of executing an API tester request: the
// status line plus the classified body preview.
type ResponseResult struct {
	Status  string
	Code    int
	Preview ResponsePreview
}

const maxResponseBytes = 1 << 20

// ExecuteRequest performs the HTTP request described by the payload and
// classifies the response body for display. The method defaults to GET; the
// body, when present, is sent as-is.
func ExecuteRequest(ctx context.Context, client *http.Client, p APITesterPayload) (ResponseResult, error) {
	if p.URL == "" {
		return ResponseResult{}, fmt.Errorf("no url to request")
	}

	method := p.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if p.Body != "" {
		body = strings.NewReader(p.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.URL, body)
	if err != nil {
		return ResponseResult{}, fmt.Errorf("building request: %w", err)
	}
	for key, value := range p.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return ResponseResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return ResponseResult{}, fmt.Errorf("reading response: %w", err)
	}

	return ResponseResult{
		Status:  resp.Status,
		Code:    resp.StatusCode,
		Preview: ClassifyResponse(string(raw), resp.Header.Get("Content-Type")),
	}, nil
}
