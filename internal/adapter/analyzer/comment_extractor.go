package analyzer

import (
	"strings"

	"cslint/internal/domain"
)

// ContextLines is the number of rendered lines kept on each side of a comment.
const ContextLines = 3

// CommentExtractor turns comment tokens into CommentRecords with surrounding
// context. It expects an attribute-filtered stream that still carries
// comments (Filter(tokens, true)).
type CommentExtractor struct {
	file  string
	lines [][]Token
}

// NewCommentExtractor creates an extractor for one file's token stream.
func NewCommentExtractor(file string, tokens []Token) *CommentExtractor {
	return &CommentExtractor{
		file:  file,
		lines: SplitLines(tokens),
	}
}

// ExtractComments is shorthand for NewCommentExtractor(file, tokens).Extract().
func ExtractComments(file string, tokens []Token) []domain.CommentRecord {
	return NewCommentExtractor(file, tokens).Extract()
}

// position addresses a token inside e.lines.
type position struct {
	line int
	tok  int
}

func (p position) before(q position) bool {
	return p.line < q.line || (p.line == q.line && p.tok < q.tok)
}

// Extract returns one record per comment run, in source order. Comment-only
// lines that directly follow a comment belong to the same run.
func (e *CommentExtractor) Extract() []domain.CommentRecord {
	records := make([]domain.CommentRecord, 0)
	resume := position{}

	for li, line := range e.lines {
		for ti, tok := range line {
			pos := position{li, ti}
			if !tok.Kind.IsComment() || pos.before(resume) {
				continue
			}
			rec, end := e.record(pos)
			records = append(records, rec)
			resume = end
		}
	}
	return records
}

// record builds the record for the comment at start and returns the
// position just past the absorbed comment run.
func (e *CommentExtractor) record(start position) (domain.CommentRecord, position) {
	line := e.lines[start.line]
	rec := domain.CommentRecord{
		File: e.file,
		Line: line[start.tok].Line,
	}

	// Comments on the starting line.
	var text []string
	var sameLine []string
	end := start.tok
	for end < len(line) && line[end].Kind.IsComment() {
		sameLine = append(sameLine, commentText(line[end]))
		end++
	}
	text = append(text, strings.Join(sameLine, " "))
	open := unclosed(line[end-1])

	cur := position{start.line, end}
	if end >= len(line) {
		// Absorb following comment-only lines, and the comment head of a line
		// that closes a pending block comment.
		for li := start.line + 1; li < len(e.lines); li++ {
			next := e.lines[li]
			n := 0
			for n < len(next) && next[n].Kind.IsComment() {
				n++
			}
			if n == 0 || (n < len(next) && !open) {
				break
			}
			parts := make([]string, n)
			for i := 0; i < n; i++ {
				parts[i] = commentText(next[i])
			}
			text = append(text, strings.Join(parts, " "))
			open = unclosed(next[n-1])
			cur = position{li, n}
			if n < len(next) {
				break
			}
		}
	}
	rec.Text = strings.Join(text, "\n")
	rec.Before = e.before(start)
	rec.After = e.after(cur)
	return rec, cur
}

// before collects up to ContextLines rendered lines preceding start, the
// code ahead of the comment on its own line counting as the nearest one.
func (e *CommentExtractor) before(start position) []string {
	var rev []string
	if prefix := Render(e.lines[start.line][:start.tok]); prefix != "" {
		rev = append(rev, prefix)
	}
	for li := start.line - 1; li >= 0 && len(rev) < ContextLines; li-- {
		if s := Render(e.lines[li]); s != "" {
			rev = append(rev, s)
		}
	}
	out := make([]string, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}
	return out
}

// after collects up to ContextLines rendered lines starting at from.
func (e *CommentExtractor) after(from position) []string {
	var out []string
	if from.line >= len(e.lines) {
		return out
	}
	if rest := Render(e.lines[from.line][from.tok:]); rest != "" {
		out = append(out, rest)
	}
	for li := from.line + 1; li < len(e.lines) && len(out) < ContextLines; li++ {
		if s := Render(e.lines[li]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func commentText(tok Token) string {
	return strings.TrimSpace(tok.Text)
}

// unclosed reports whether a comment fragment leaves a block comment open.
func unclosed(tok Token) bool {
	return tok.Kind == KindCommentStart || tok.Kind == KindCommentMiddle
}

// Render prints tokens space-separated, suppressing the space before
// ) ] , > < . ? ; and after ( [ ! < . and line starts. The output is
// deterministic so identical code renders identically across files.
func Render(tokens []Token) string {
	var sb strings.Builder
	glue := true
	for _, tok := range tokens {
		if tok.Kind == KindNewline {
			sb.WriteByte('\n')
			glue = true
			continue
		}
		if !glue && !noSpaceBefore(tok.Kind) {
			sb.WriteByte(' ')
		}
		if tok.Kind.IsComment() {
			sb.WriteString(commentText(tok))
		} else {
			sb.WriteString(tok.Spelling())
		}
		glue = noSpaceAfter(tok.Kind)
	}
	return sb.String()
}

func noSpaceBefore(k Kind) bool {
	switch k {
	case KindRParen, KindRBracket, KindComma, KindGreater, KindLess, KindDot, KindQuestion, KindSemicolon:
		return true
	}
	return false
}

func noSpaceAfter(k Kind) bool {
	switch k {
	case KindLParen, KindLBracket, KindBang, KindLess, KindDot:
		return true
	}
	return false
}
