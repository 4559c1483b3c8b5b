package artifact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML_RemovesScriptStyle(t *testing.T) {
	out := CleanHTML(`<body><div id="main">Hello</div><script>alert("hi")</script><style>.x {}</style></body>`, nil)

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<style")
	assert.Contains(t, out, `id="main"`)
}

func TestCleanHTML_RemovesComments(t *testing.T) {
	out := CleanHTML(`<body><!-- comment --><div>Text</div></body>`, nil)

	assert.NotContains(t, out, "comment")
	assert.Contains(t, out, "Text")
}

func TestCleanHTML_KeepsSelectorAttributes(t *testing.T) {
	out := CleanHTML(`<body><h3 data-test="error" class="err" style="color:red" onclick="x()">Epic sadface</h3></body>`, nil)

	assert.Contains(t, out, `data-test="error"`)
	assert.Contains(t, out, `class="err"`)
	assert.NotContains(t, out, "style=")
	assert.NotContains(t, out, "onclick")
}

func TestCleanHTML_KeepsTitle(t *testing.T) {
	out := CleanHTML(`<html><head><title>Swag Labs</title><script>1</script></head><body></body></html>`, nil)

	assert.Contains(t, out, "<title>Swag Labs</title>")
	assert.NotContains(t, out, "<script")
}

func TestCleanHTML_Truncates(t *testing.T) {
	cfg := DefaultCleanConfig
	cfg.MaxOutputSize = 100

	out := CleanHTML("<body>"+strings.Repeat("<p>x</p>", 100)+"</body>", &cfg)
	assert.True(t, strings.HasSuffix(out, "<!-- truncated -->"))
}
