// Package report collects the user-facing outcome of a pipeline run:
// per-category file lists and status/warning message lines. The core
// only produces message text; rendering is left to the caller.
package report

import (
	"fmt"
	"strings"
)

// Category buckets files by what happened to them during the run
type Category string

const (
	CategoryAdded    Category = "added"
	CategoryUpdated  Category = "updated"
	CategoryIgnored  Category = "ignored"
	CategoryObsolete Category = "obsolete"
)

// categoryOrder fixes the order in which buckets are summarized
var categoryOrder = []Category{CategoryAdded, CategoryUpdated, CategoryIgnored, CategoryObsolete}

// Severity tags a message line for display purposes
type Severity string

const (
	SeverityStatus  Severity = "status"
	SeverityWarning Severity = "warning"
)

// Message is a single human-readable report line
type Message struct {
	Severity Severity `yaml:"severity"`
	Text     string   `yaml:"text"`
}

// Report accumulates file buckets and messages for one pipeline run
type Report struct {
	buckets  map[Category][]string
	messages []Message
}

// New creates an empty report
func New() *Report {
	return &Report{buckets: make(map[Category][]string)}
}

// File appends a filename to the given category bucket, preserving order
func (r *Report) File(cat Category, name string) {
	r.buckets[cat] = append(r.buckets[cat], name)
}

// Files returns the ordered filenames recorded under the given category
func (r *Report) Files(cat Category) []string {
	return r.buckets[cat]
}

// Status appends a status-level message
func (r *Report) Status(format string, args ...interface{}) {
	r.messages = append(r.messages, Message{Severity: SeverityStatus, Text: fmt.Sprintf(format, args...)})
}

// Warning appends a warning-level message
func (r *Report) Warning(format string, args ...interface{}) {
	r.messages = append(r.messages, Message{Severity: SeverityWarning, Text: fmt.Sprintf(format, args...)})
}

// Messages returns all recorded messages in order
func (r *Report) Messages() []Message {
	return r.messages
}

// Summarize turns the non-empty buckets into message lines. Empty
// buckets produce nothing. Added and updated files are status lines,
// ignored and obsolete files are warnings.
func (r *Report) Summarize() {
	for _, cat := range categoryOrder {
		files := r.buckets[cat]
		if len(files) == 0 {
			continue
		}
		line := fmt.Sprintf("%s files: %s", titled(string(cat)), strings.Join(files, ", "))
		switch cat {
		case CategoryIgnored, CategoryObsolete:
			r.Warning("%s", line)
		default:
			r.Status("%s", line)
		}
	}
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
