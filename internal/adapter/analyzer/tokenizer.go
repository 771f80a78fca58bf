package analyzer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenizationError is a fatal lexical failure that aborts a file.
type TokenizationError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *TokenizationError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("tokenization error at %d:%d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("tokenization error in %s at %d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}

// Tokenizer converts source lines into a loss-free token stream. Every line
// is implicitly newline-terminated and produces exactly one Newline token.
type Tokenizer struct {
	file   string
	lines  []string
	row    int // 0-based index into lines
	col    int // byte offset into lines[row]
	tokens []Token
}

// NewTokenizer creates a tokenizer over the given lines. file is only used
// for error messages.
func NewTokenizer(file string, lines []string) *Tokenizer {
	return &Tokenizer{
		file:  file,
		lines: lines,
	}
}

// Tokenize is a convenience wrapper around NewTokenizer(...).Tokenize().
func Tokenize(file string, lines []string) ([]Token, error) {
	return NewTokenizer(file, lines).Tokenize()
}

// Tokenize scans all lines and returns the token stream.
func (t *Tokenizer) Tokenize() ([]Token, error) {
	t.row, t.col = 0, 0
	t.tokens = make([]Token, 0, len(t.lines)*8)
	if err := t.run(false); err != nil {
		return nil, err
	}
	return t.tokens, nil
}

// run scans tokens until end of input. When embedded is set it scans an
// interpolation expression and stops, without consuming it, at the '}' that
// closes the expression or the ':' opening its format string, both at the
// expression's own depth 0.
func (t *Tokenizer) run(embedded bool) error {
	depth := 0
	for t.row < len(t.lines) {
		line := t.lines[t.row]
		if t.col >= len(line) {
			t.endLine()
			continue
		}

		c := line[t.col]
		if c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v' {
			t.col++
			continue
		}

		if embedded {
			switch c {
			case '{', '(', '[':
				depth++
			case '}':
				if depth == 0 {
					return nil
				}
				depth--
			case ')', ']':
				if depth > 0 {
					depth--
				}
			case ':':
				if depth == 0 && t.peek(1) != ':' && (t.col == 0 || line[t.col-1] != ':') {
					return nil
				}
			}
		}

		if err := t.scanToken(); err != nil {
			return err
		}
	}
	if embedded {
		return t.errorf("unterminated interpolation expression")
	}
	return nil
}

// scanToken scans one token starting at a non-blank character.
func (t *Tokenizer) scanToken() error {
	line := t.lines[t.row]
	c := line[t.col]

	switch {
	case c == '#' && t.onlyBlankBefore():
		t.emit(KindPragma, line[t.col:])
		t.col = len(line)
		return nil

	case c == '/':
		switch t.peek(1) {
		case '/':
			t.emit(KindLineComment, line[t.col:])
			t.col = len(line)
			return nil
		case '*':
			return t.scanBlockComment()
		}
		t.emitFixed(KindSlash, 1)
		return nil

	case c == '"':
		return t.scanString(0, false, false)

	case c == '\'':
		return t.scanChar()

	case c == '@':
		switch {
		case t.peek(1) == '"':
			return t.scanString(1, true, false)
		case t.peek(1) == '$' && t.peek(2) == '"':
			return t.scanString(2, true, true)
		case isIdentStart(t.peekRune(1)):
			start := t.col
			t.col++
			t.scanIdentifierTail()
			t.emitAt(KindIdentifier, line[start:t.col], t.row, start)
			return nil
		}
		return t.errorf("unexpected character '@'")

	case c == '$':
		switch {
		case t.peek(1) == '"':
			return t.scanString(1, false, true)
		case t.peek(1) == '@' && t.peek(2) == '"':
			return t.scanString(2, true, true)
		}
		return t.errorf("unexpected character '$'")

	case isDigit(c) || (c == '.' && isDigit(t.peek(1))):
		t.scanNumber()
		return nil

	case isIdentStart(t.peekRune(0)):
		start := t.col
		t.scanIdentifierTail()
		word := line[start:t.col]
		if kind := LookupKeyword(word); kind != KindIdentifier {
			t.emitAt(kind, "", t.row, start)
		} else {
			t.emitAt(KindIdentifier, word, t.row, start)
		}
		return nil
	}

	return t.scanOperator(c)
}

// scanOperator handles punctuation with at most one character of lookahead.
func (t *Tokenizer) scanOperator(c byte) error {
	next := t.peek(1)
	switch c {
	case '{':
		t.emitFixed(KindLBrace, 1)
	case '}':
		t.emitFixed(KindRBrace, 1)
	case '(':
		t.emitFixed(KindLParen, 1)
	case ')':
		t.emitFixed(KindRParen, 1)
	case '[':
		t.emitFixed(KindLBracket, 1)
	case ']':
		t.emitFixed(KindRBracket, 1)
	case ';':
		t.emitFixed(KindSemicolon, 1)
	case ',':
		t.emitFixed(KindComma, 1)
	case '.':
		t.emitFixed(KindDot, 1)
	case ':':
		t.emitFixed(KindColon, 1)
	case '?':
		t.emitFixed(KindQuestion, 1)
	case '*':
		t.emitFixed(KindStar, 1)
	case '%':
		t.emitFixed(KindPercent, 1)
	case '!':
		t.emitFixed(KindBang, 1)
	case '~':
		t.emitFixed(KindTilde, 1)
	case '^':
		t.emitFixed(KindCaret, 1)
	case '=':
		switch next {
		case '>':
			t.emitFixed(KindArrow, 2)
		case '=':
			t.emitFixed(KindEqual, 2)
		default:
			t.emitFixed(KindAssign, 1)
		}
	case '<':
		if next == '=' {
			t.emitFixed(KindLessEqual, 2)
		} else {
			t.emitFixed(KindLess, 1)
		}
	case '>':
		if next == '=' {
			t.emitFixed(KindGreaterEqual, 2)
		} else {
			t.emitFixed(KindGreater, 1)
		}
	case '+':
		if next == '+' {
			t.emitFixed(KindPlusPlus, 2)
		} else {
			t.emitFixed(KindPlus, 1)
		}
	case '-':
		if next == '-' {
			t.emitFixed(KindMinusMinus, 2)
		} else {
			t.emitFixed(KindMinus, 1)
		}
	case '&':
		if next != '&' {
			return t.errorf("unmatched '&'")
		}
		t.emitFixed(KindAndAnd, 2)
	case '|':
		if next != '|' {
			return t.errorf("unmatched '|'")
		}
		t.emitFixed(KindOrOr, 2)
	default:
		r, _ := utf8.DecodeRuneInString(t.lines[t.row][t.col:])
		return t.errorf("unrecognized character %q", r)
	}
	return nil
}

// scanBlockComment emits one comment token per physical line spanned.
func (t *Tokenizer) scanBlockComment() error {
	first := true
	start := t.col
	openRow, openCol := t.row, t.col
	t.col += 2
	for {
		line := t.lines[t.row]
		if end := indexFrom(line, "*/", t.col); end >= 0 {
			t.col = end + 2
			kind := KindCommentEnd
			if first {
				kind = KindBlockComment
			}
			t.emitAt(kind, line[start:t.col], t.row, start)
			return nil
		}

		kind := KindCommentMiddle
		if first {
			kind = KindCommentStart
		}
		t.emitAt(kind, line[start:], t.row, start)
		t.col = len(line)
		t.endLine()
		if t.row >= len(t.lines) {
			return t.errorAt(openRow, openCol, "unterminated block comment")
		}
		first = false
		start = 0
	}
}

// scanString scans a string literal whose opening quote sits prefix bytes
// after the current position. Verbatim literals may span lines and treat
// "" as an escaped quote; interpolated literals recurse into the tokenizer
// for every unescaped '{'.
func (t *Tokenizer) scanString(prefix int, verbatim, interpolated bool) error {
	first := true
	segRow, segCol := t.row, t.col
	openRow, openCol := t.row, t.col
	t.col += prefix + 1

	flush := func(last bool) {
		text := t.lines[segRow][segCol:t.col]
		t.emitAt(fragmentKind(first, last), text, segRow, segCol)
		first = false
	}

	for {
		line := t.lines[t.row]
		if t.col >= len(line) {
			if !verbatim {
				return t.errorf("unterminated string literal")
			}
			flush(false)
			t.endLine()
			if t.row >= len(t.lines) {
				return t.errorAt(openRow, openCol, "unterminated verbatim string literal")
			}
			segRow, segCol = t.row, 0
			continue
		}

		c := line[t.col]
		switch {
		case c == '"':
			if verbatim && t.peek(1) == '"' {
				t.col += 2
				continue
			}
			t.col++
			flush(true)
			return nil

		case c == '\\' && !verbatim:
			t.col += 2
			if t.col > len(line) {
				t.col = len(line)
			}

		case interpolated && c == '{':
			if t.peek(1) == '{' {
				t.col += 2
				continue
			}
			t.col++
			flush(false)
			if err := t.run(true); err != nil {
				return err
			}
			segRow, segCol = t.row, t.col
			if t.lines[t.row][t.col] == ':' {
				if err := t.skipFormat(); err != nil {
					return err
				}
			}
			t.col++ // closing '}'

		case interpolated && c == '}' && t.peek(1) == '}':
			t.col += 2

		default:
			t.col++
		}
	}
}

// skipFormat moves from the ':' of an interpolation format string to the
// '}' ending it. The format text becomes part of the next literal segment.
func (t *Tokenizer) skipFormat() error {
	line := t.lines[t.row]
	end := strings.IndexByte(line[t.col:], '}')
	if end < 0 {
		return t.errorf("unterminated interpolation format string")
	}
	t.col += end
	return nil
}

func fragmentKind(first, last bool) Kind {
	switch {
	case first && last:
		return KindString
	case first:
		return KindStringStart
	case last:
		return KindStringEnd
	default:
		return KindStringMiddle
	}
}

func (t *Tokenizer) scanChar() error {
	line := t.lines[t.row]
	start := t.col
	t.col++
	for t.col < len(line) {
		switch line[t.col] {
		case '\\':
			t.col += 2
		case '\'':
			t.col++
			t.emitAt(KindChar, line[start:t.col], t.row, start)
			return nil
		default:
			t.col++
		}
	}
	t.col = start
	return t.errorf("unterminated character literal")
}

// scanNumber scans digits, '_', a fractional part and an exponent. Hex and
// binary literals take their letters as digits. Type suffixes are left for
// the filterer.
func (t *Tokenizer) scanNumber() {
	line := t.lines[t.row]
	start := t.col

	if line[t.col] == '0' && (t.peek(1) == 'x' || t.peek(1) == 'X' || t.peek(1) == 'b' || t.peek(1) == 'B') {
		t.col += 2
		for t.col < len(line) && (isHexDigit(line[t.col]) || line[t.col] == '_') {
			t.col++
		}
		t.emitAt(KindNumber, line[start:t.col], t.row, start)
		return
	}

	t.scanDigits()
	if t.col < len(line) && line[t.col] == '.' && isDigit(t.peek(1)) {
		t.col++
		t.scanDigits()
	}
	if t.col < len(line) && (line[t.col] == 'e' || line[t.col] == 'E') {
		next := t.peek(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(t.peek(2))) {
			t.col += 2
			t.scanDigits()
		}
	}
	t.emitAt(KindNumber, line[start:t.col], t.row, start)
}

func (t *Tokenizer) scanDigits() {
	line := t.lines[t.row]
	for t.col < len(line) && (isDigit(line[t.col]) || line[t.col] == '_') {
		t.col++
	}
}

func (t *Tokenizer) scanIdentifierTail() {
	line := t.lines[t.row]
	for t.col < len(line) {
		r, size := utf8.DecodeRuneInString(line[t.col:])
		if !isIdentPart(r) {
			return
		}
		t.col += size
	}
}

// endLine emits the Newline token for the current line and moves to the next.
func (t *Tokenizer) endLine() {
	t.tokens = append(t.tokens, Token{
		Kind:   KindNewline,
		Line:   t.row + 1,
		Column: len(t.lines[t.row]) + 1,
	})
	t.row++
	t.col = 0
}

func (t *Tokenizer) emit(kind Kind, text string) {
	t.emitAt(kind, text, t.row, t.col)
}

func (t *Tokenizer) emitFixed(kind Kind, width int) {
	t.emitAt(kind, "", t.row, t.col)
	t.col += width
}

func (t *Tokenizer) emitAt(kind Kind, text string, row, col int) {
	t.tokens = append(t.tokens, Token{
		Kind:   kind,
		Line:   row + 1,
		Column: col + 1,
		Text:   text,
	})
}

func (t *Tokenizer) peek(offset int) byte {
	line := t.lines[t.row]
	if t.col+offset >= len(line) {
		return 0
	}
	return line[t.col+offset]
}

func (t *Tokenizer) peekRune(offset int) rune {
	line := t.lines[t.row]
	if t.col+offset >= len(line) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(line[t.col+offset:])
	return r
}

func (t *Tokenizer) onlyBlankBefore() bool {
	line := t.lines[t.row]
	for i := 0; i < t.col; i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) errorf(format string, args ...any) error {
	return t.errorAt(t.row, t.col, format, args...)
}

func (t *Tokenizer) errorAt(row, col int, format string, args ...any) error {
	return &TokenizationError{
		File:   t.file,
		Line:   row + 1,
		Column: col + 1,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	if i := strings.Index(s[from:], sub); i >= 0 {
		return from + i
	}
	return -1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
