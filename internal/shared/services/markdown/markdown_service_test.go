package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("**30 days** of access")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>30 days</strong>")
}

func TestToHTMLSanitized_StripsScripts(t *testing.T) {
	svc := NewMarkdownService()

	out, err := svc.ToHTMLSanitized("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestToHTMLSanitized_Empty(t *testing.T) {
	out, err := NewMarkdownService().ToHTMLSanitized("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
