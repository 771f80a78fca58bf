package analyzer

import "cslint/internal/domain"

// SplitLines groups a token stream into physical lines. The Newline tokens
// themselves are dropped; the result has one entry per Newline.
func SplitLines(tokens []Token) [][]Token {
	var lines [][]Token
	start := 0
	for i, tok := range tokens {
		if tok.Kind == KindNewline {
			lines = append(lines, tokens[start:i])
			start = i + 1
		}
	}
	if start < len(tokens) {
		lines = append(lines, tokens[start:])
	}
	return lines
}

// ClassifyLine assigns a category to the tokens of one physical line.
func ClassifyLine(line []Token) domain.LineCategory {
	code := make([]Token, 0, len(line))
	for _, tok := range line {
		if !tok.Kind.IsComment() {
			code = append(code, tok)
		}
	}

	switch {
	case len(line) == 0:
		return domain.LineEmpty
	case len(code) == 0:
		return domain.LineComment
	case isSetupLine(code):
		return domain.LineSetup
	case isBraceLine(code):
		return domain.LineBrace
	}
	return domain.LineCode
}

// CountLines classifies every physical line of a raw token stream.
func CountLines(tokens []Token) domain.LineCounts {
	var counts domain.LineCounts
	for _, line := range SplitLines(tokens) {
		counts.Inc(ClassifyLine(line))
	}
	return counts
}

func isSetupLine(code []Token) bool {
	first := code[0]
	switch {
	case first.Kind == KindPragma, first.Kind == KindNamespace:
		return true
	case first.Kind == KindExtern:
		return len(code) > 1 && code[1].Is("alias")
	case first.Is("global"):
		return len(code) > 1 && code[1].Kind == KindUsing
	case first.Kind == KindUsing:
		return IsUsingDirective(code)
	}
	return false
}

// IsUsingDirective reports whether tokens (starting at `using`) form a using
// directive rather than a using statement or declaration:
// `using [static] A.B;` or `using Alias = A.B;`.
func IsUsingDirective(tokens []Token) bool {
	i := 1
	if i < len(tokens) && tokens[i].Kind == KindStatic {
		i++
	}
	if i >= len(tokens) || tokens[i].Kind != KindIdentifier {
		return false
	}
	i++
	for i+1 < len(tokens) && tokens[i].Kind == KindDot && tokens[i+1].Kind == KindIdentifier {
		i += 2
	}
	if i >= len(tokens) {
		return true
	}
	return tokens[i].Kind == KindSemicolon || tokens[i].Kind == KindAssign
}

func isBraceLine(code []Token) bool {
	brace := false
	for _, tok := range code {
		switch tok.Kind {
		case KindLBrace, KindRBrace:
			brace = true
		case KindRParen, KindSemicolon, KindComma:
		default:
			return false
		}
	}
	return brace
}
