package main

import (
	"strings"
	"testing"
)

func cellEnd(t *testing.T, rendered, rowKey, value string) int {
	t.Helper()
	for _, line := range strings.Split(rendered, "\n") {
		if strings.Contains(line, rowKey) {
			idx := strings.Index(line, value)
			if idx < 0 {
				t.Fatalf("row %q missing value %q:\n%s", rowKey, value, rendered)
			}
			return idx + len(value)
		}
	}
	t.Fatalf("row %q not rendered:\n%s", rowKey, rendered)
	return 0
}

func TestRenderPairsRightAlignsNumericColumn(t *testing.T) {
	out := renderPairs("Process", "Nice", [][2]string{
		{"ffmpeg", "19"},
		{"make", "5"},
	}, true)

	if cellEnd(t, out, "ffmpeg", "19") != cellEnd(t, out, "make", "5") {
		t.Fatalf("numeric column not right aligned:\n%s", out)
	}
}

func TestRenderPairsKeepsSettingsLeftAligned(t *testing.T) {
	out := renderPairs("Setting", "Value", [][2]string{
		{"log_level", "info"},
		{"socket", "/tmp/tamerd.sock"},
	}, false)

	left := strings.Index(out, "info")
	right := strings.Index(out, "/tmp/tamerd.sock")
	if left < 0 || right < 0 {
		t.Fatalf("rows missing from output:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	var infoCol, sockCol int
	for _, line := range lines {
		if strings.Contains(line, "log_level") {
			infoCol = strings.Index(line, "info")
		}
		if strings.Contains(line, "socket") && strings.Contains(line, "/tmp") {
			sockCol = strings.Index(line, "/tmp/tamerd.sock")
		}
	}
	if infoCol != sockCol {
		t.Fatalf("value column not left aligned:\n%s", out)
	}
}
