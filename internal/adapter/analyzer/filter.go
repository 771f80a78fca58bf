package analyzer

import "strings"

// numberSuffixes are the literal type markers folded into a preceding number.
var numberSuffixes = map[string]struct{}{
	"f": {}, "d": {}, "m": {}, "l": {}, "u": {}, "ul": {}, "lu": {},
}

// Filter returns a cleaned copy of a raw token stream:
//   - attribute lists ([Test], [Obsolete("x")], nested brackets included)
//     are removed, keeping the Newline tokens they span;
//   - numeric suffix markers are folded into the preceding Number token;
//   - pragma tokens are removed;
//   - comment tokens are removed unless keepComments is set.
//
// An opening '[' starts an attribute list unless the nearest preceding code
// token looks like something that can be indexed (an identifier, a built-in
// type, this/base, or a closing paren or bracket). A collection expression
// such as `x = [1, 2]` is misread as an attribute and elided.
func Filter(tokens []Token, keepComments bool) []Token {
	out := make([]Token, 0, len(tokens))
	prev := -1 // index in out of the nearest preceding code token

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok.Kind == KindPragma:
			continue

		case tok.Kind.IsComment():
			if keepComments {
				out = append(out, tok)
			}
			continue

		case tok.Kind == KindNewline:
			out = append(out, tok)
			continue

		case tok.Kind == KindLBracket && !indexable(out, prev):
			i = skipAttribute(tokens, i, func(nl Token) { out = append(out, nl) })
			continue

		case isNumberSuffix(tok) && prev == len(out)-1 && adjacentNumber(out[prev], tok):
			num := out[prev]
			out[prev] = Token{
				Kind:   KindNumber,
				Line:   num.Line,
				Column: num.Column,
				Text:   num.Text + tok.Text,
			}
			continue
		}

		out = append(out, tok)
		prev = len(out) - 1
	}
	return out
}

// skipAttribute returns the index of the ']' closing the attribute list that
// opens at start, calling keep for every Newline inside it.
func skipAttribute(tokens []Token, start int, keep func(Token)) int {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case KindLBracket:
			depth++
		case KindRBracket:
			depth--
			if depth == 0 {
				return i
			}
		case KindNewline:
			keep(tokens[i])
		}
	}
	return len(tokens) - 1
}

func indexable(out []Token, prev int) bool {
	if prev < 0 {
		return false
	}
	kind := out[prev].Kind
	switch {
	case kind == KindIdentifier, kind.IsBuiltinType():
		return true
	case kind == KindThis, kind == KindBase, kind == KindRParen, kind == KindRBracket:
		return true
	}
	return false
}

func adjacentNumber(num, suffix Token) bool {
	return num.Kind == KindNumber && num.Line == suffix.Line && num.Column+len(num.Text) == suffix.Column
}

func isNumberSuffix(tok Token) bool {
	if tok.Kind != KindIdentifier {
		return false
	}
	_, ok := numberSuffixes[strings.ToLower(tok.Text)]
	return ok
}
