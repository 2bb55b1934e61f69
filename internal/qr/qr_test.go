package qr

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestDataURL(t *testing.T) {
	const url = "http://localhost:8080/ticket/0b9af1e3-8c5a-4a5e-9a3f-1c2d3e4f5a6b"

	dataURL, err := DataURL(url)
	if err != nil {
		t.Fatalf("DataURL returned error: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("expected data URL prefix %q, got %q", prefix, dataURL[:min(len(dataURL), 40)])
	}

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if len(png) == 0 {
		t.Fatalf("expected non-empty PNG payload")
	}
	// PNG signature
	if string(png[:4]) != "\x89PNG" {
		t.Fatalf("payload does not look like a PNG")
	}
}

func TestDataURL_Deterministic(t *testing.T) {
	a, err := DataURL("http://example.com/ticket/1")
	if err != nil {
		t.Fatalf("DataURL returned error: %v", err)
	}
	b, err := DataURL("http://example.com/ticket/1")
	if err != nil {
		t.Fatalf("DataURL returned error: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical output for identical input")
	}
}
