package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainStripsTags(t *testing.T) {
	assert.Equal(t, "hello world", Plain("<b>hello</b> <script>alert(1)</script>world"))
	assert.Equal(t, "Tom & Jerry", Plain("Tom & Jerry"))
}

func TestRichDropsScripts(t *testing.T) {
	out := string(Rich(`<p>hi <a href="javascript:alert(1)">x</a><script>bad()</script></p>`))
	assert.Contains(t, out, "<p>hi")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "javascript:")
}
