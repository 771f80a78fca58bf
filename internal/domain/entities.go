package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Mode selects which parts of the pipeline run for a file.
type Mode string

const (
	// ModeFull counts lines, checks style and extracts comments.
	ModeFull Mode = "full"
	// ModeComments counts lines and extracts comments only.
	ModeComments Mode = "comments"
)

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeFull, "":
		return ModeFull, nil
	case ModeComments:
		return ModeComments, nil
	}
	return "", fmt.Errorf("unknown analysis mode: %s", s)
}

// SourceFile is one file handed to the analyzer.
type SourceFile struct {
	Path    string
	Lines   []string
	ModTime time.Time
}

// LineCategory classifies one physical line.
type LineCategory int

const (
	LineSetup LineCategory = iota
	LineEmpty
	LineBrace
	LineCode
	LineComment
)

func (c LineCategory) String() string {
	switch c {
	case LineSetup:
		return "setup"
	case LineEmpty:
		return "empty"
	case LineBrace:
		return "brace"
	case LineCode:
		return "code"
	case LineComment:
		return "comment"
	default:
		return "unknown"
	}
}

// LineCounts holds per-category physical line counts.
type LineCounts struct {
	Setup   int `json:"setup"`
	Empty   int `json:"empty"`
	Brace   int `json:"brace"`
	Code    int `json:"code"`
	Comment int `json:"comment"`
}

// Inc adds one line of the given category.
func (c *LineCounts) Inc(cat LineCategory) {
	switch cat {
	case LineSetup:
		c.Setup++
	case LineEmpty:
		c.Empty++
	case LineBrace:
		c.Brace++
	case LineCode:
		c.Code++
	case LineComment:
		c.Comment++
	}
}

// Total returns the number of physical lines counted.
func (c LineCounts) Total() int {
	return c.Setup + c.Empty + c.Brace + c.Code + c.Comment
}

// CommentRecord is a comment with up to three rendered lines of context on
// each side.
type CommentRecord struct {
	File   string   `json:"file"`
	Line   int      `json:"line"`
	Text   string   `json:"text"`
	Before []string `json:"before,omitempty"`
	After  []string `json:"after,omitempty"`
}

// Fingerprint is a stable key for cross-file deduplication. It ignores the
// file and line so identical comments in identical surroundings collide.
func (r CommentRecord) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(r.Text))
	for _, l := range r.Before {
		h.Write([]byte{0})
		h.Write([]byte(l))
	}
	h.Write([]byte{1})
	for _, l := range r.After {
		h.Write([]byte{0})
		h.Write([]byte(l))
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Report accumulates the results for one or more files.
type Report struct {
	Files          int             `json:"files"`
	Lines          LineCounts      `json:"lines"`
	Warnings       []string        `json:"warnings"`
	Comments       []CommentRecord `json:"comments"`
	ExtraCodeLines int             `json:"extra_code_lines"`
}

// NewReport creates an empty report for a single file.
func NewReport() *Report {
	return &Report{
		Files:    1,
		Warnings: make([]string, 0),
		Comments: make([]CommentRecord, 0),
	}
}

// Warn appends a formatted warning.
func (r *Report) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Add merges other into r: counts are summed, lists concatenated.
func (r *Report) Add(other *Report) {
	if other == nil {
		return
	}
	r.Files += other.Files
	r.Lines.Setup += other.Lines.Setup
	r.Lines.Empty += other.Lines.Empty
	r.Lines.Brace += other.Lines.Brace
	r.Lines.Code += other.Lines.Code
	r.Lines.Comment += other.Lines.Comment
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Comments = append(r.Comments, other.Comments...)
	r.ExtraCodeLines += other.ExtraCodeLines
}
