package style

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	PrintJSON(&buf, map[string]any{"status": "healthy"})
	assert.Equal(t, "{\n  \"status\": \"healthy\"\n}\n", buf.String())
}

func TestPrintJSON_EncodingError(t *testing.T) {
	var buf bytes.Buffer
	PrintJSON(&buf, map[string]any{"bad": make(chan int)})
	assert.Contains(t, buf.String(), "Error encoding JSON")
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	PrintYAML(&buf, struct {
		Status string  `yaml:"status"`
		Result float64 `yaml:"result"`
	}{Status: "success", Result: 2.5})
	assert.Equal(t, "status: success\nresult: 2.5\n", buf.String())
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer

	Success(&buf, "server started")
	Error(&buf, "Cannot divide by zero")
	Info(&buf, "listening")
	Result(&buf, "10 add 5", 15)

	out := buf.String()
	assert.Contains(t, out, "server started")
	assert.Contains(t, out, "Cannot divide by zero")
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "15")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}
