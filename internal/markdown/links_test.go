package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitURL(t *testing.T) {
	assert.Equal(t, "https://example.com", fitURL("https://example.com", 40))
	assert.Equal(t, "example.com", fitURL("https://example.com", 15))
	assert.Equal(t, "https://example.com…", fitURL("https://example.com/very/long", 20))
	assert.Equal(t, "", fitURL("https://example.com", 0))
}

func TestLinkIndexNumbersInFirstUseOrder(t *testing.T) {
	var l linkIndex
	assert.Equal(t, 1, l.add("a"))
	assert.Equal(t, 2, l.add("b"))
	assert.Equal(t, 1, l.add("a"))
	assert.Equal(t, []string{"a", "b"}, l.urls)
}
