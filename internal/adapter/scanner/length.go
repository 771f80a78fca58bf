package scanner

import (
	"strings"
	"unicode/utf8"

	"cslint/internal/adapter/analyzer"
)

// methodLength counts the logical lines from the '{' at open to the '}' at
// closing. Runs of blank or comment-only lines count once.
func (s *Scanner) methodLength(open, closing int) int {
	length := 0
	prevBlank, curBlank := false, false
	for i := open + 1; i < closing; i++ {
		if s.tokens[i].Kind != analyzer.KindNewline {
			curBlank = false
			continue
		}
		if !(curBlank && prevBlank) {
			length++
		}
		prevBlank = curBlank
		curBlank = true
	}
	return length + 1
}

func (s *Scanner) checkMethodLength(name string, open, closing int) {
	length := s.methodLength(open, closing)
	if length <= s.cfg.MaxMethodLength {
		return
	}
	s.report.Warn("Too long method: %s (in %s) is %d lines long.", name, s.context(), length)
	s.report.ExtraCodeLines += length - s.cfg.MaxMethodLength
}

func (s *Scanner) checkLineLengths() {
	for i, line := range s.lines {
		if utf8.RuneCountInString(line) > s.cfg.MaxLineLength {
			s.report.Warn("Too long line in %s at line %d: '%s'", s.file, i+1, line)
		}
	}
}

// hasBlankLineBefore walks back from the token at start looking for a
// whitespace-only physical line or the start of the enclosing block.
func (s *Scanner) hasBlankLineBefore(start int) bool {
	seen := false
	for i := start - 1; i >= 0; i-- {
		tok := s.tokens[i]
		switch {
		case tok.Kind == analyzer.KindNewline:
			if seen && s.blankLine(tok.Line+1) {
				return true
			}
			seen = true
		case tok.Kind.IsComment():
			seen = false
		case tok.Kind == analyzer.KindLBrace:
			return true
		default:
			return false
		}
	}
	return true
}

// blankLine reports whether the 1-based physical line n is whitespace-only.
func (s *Scanner) blankLine(n int) bool {
	if n < 1 || n > len(s.lines) {
		return false
	}
	return strings.TrimSpace(s.lines[n-1]) == ""
}
