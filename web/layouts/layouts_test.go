package layouts

import (
	"bytes"
	"strings"
	"testing"
)

func TestFallbackEscapes(t *testing.T) {
	var buf bytes.Buffer
	if err := Fallback("Tom & Jerry", "<b>fast</b>").Render(&buf); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, "<!doctype html>") {
		t.Errorf("missing doctype: %q", got)
	}
	if !strings.Contains(got, "<h1>Tom &amp; Jerry</h1>") {
		t.Errorf("missing escaped name: %q", got)
	}
	if strings.Contains(got, "<b>fast</b>") {
		t.Errorf("slogan was not escaped: %q", got)
	}
}
