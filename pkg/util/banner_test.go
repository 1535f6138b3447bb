package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "hx", "ColorBlue")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.NotEmpty(t, lines)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, ColorBlue))
		assert.True(t, strings.HasSuffix(l, ColorReset))
	}
}

func TestColorCodeUnknown(t *testing.T) {
	assert.Equal(t, ColorReset, colorCode("Purple"))
	assert.Equal(t, ColorCyan, colorCode("ColorCyan"))
}
