package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBucketsPreserveOrder(t *testing.T) {
	r := New()
	r.File(CategoryAdded, "edge.0.5.4.min.js")
	r.File(CategoryAdded, "jquery-1.7.1.min.js")

	assert.Equal(t, []string{"edge.0.5.4.min.js", "jquery-1.7.1.min.js"}, r.Files(CategoryAdded))
	assert.Empty(t, r.Files(CategoryUpdated))
}

func TestSummarizeSkipsEmptyBuckets(t *testing.T) {
	r := New()
	r.File(CategoryAdded, "edge.0.5.4.min.js")
	r.File(CategoryObsolete, "demo.edge")

	r.Summarize()

	msgs := r.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, SeverityStatus, msgs[0].Severity)
	assert.Equal(t, "Added files: edge.0.5.4.min.js", msgs[0].Text)
	assert.Equal(t, SeverityWarning, msgs[1].Severity)
	assert.Equal(t, "Obsolete files: demo.edge", msgs[1].Text)
}

func TestSummarizeEmptyReport(t *testing.T) {
	r := New()
	r.Summarize()

	assert.Empty(t, r.Messages())
}

func TestStatusAndWarning(t *testing.T) {
	r := New()
	r.Status("built %s", "demo")
	r.Warning("dimension extraction failed")

	msgs := r.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{Severity: SeverityStatus, Text: "built demo"}, msgs[0])
	assert.Equal(t, Message{Severity: SeverityWarning, Text: "dimension extraction failed"}, msgs[1])
}
