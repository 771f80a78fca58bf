package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"cslint/internal/adapter/analyzer"
)

type casing int

const (
	upperFirst      casing = iota // PascalCase
	lowerFirst                    // camelCase
	underscoreLower               // _camelCase
)

func (c casing) matches(name string) bool {
	first, size := utf8.DecodeRuneInString(name)
	switch c {
	case upperFirst:
		return unicode.IsUpper(first)
	case lowerFirst:
		return unicode.IsLower(first)
	case underscoreLower:
		if first != '_' {
			return false
		}
		second, _ := utf8.DecodeRuneInString(name[size:])
		return unicode.IsLower(second)
	}
	return false
}

// checkName applies the '@' escape rule, then the casing rule.
func (s *Scanner) checkName(kind, name string, want casing) {
	bare := name
	if strings.HasPrefix(name, "@") {
		bare = name[1:]
		if !analyzer.IsReservedKeyword(bare) {
			s.report.Warn("Unnecessary '@' in %s (in %s).", name, s.context())
			return
		}
	}
	if !want.matches(bare) {
		s.report.Warn("Invalid %s name: %s (in %s).", kind, name, s.context())
	}
}

// notTypeWords are identifiers that never act as the type in front of a
// declared name.
var notTypeWords = map[string]struct{}{
	"await":   {},
	"yield":   {},
	"nameof":  {},
	"when":    {},
	"where":   {},
	"from":    {},
	"select":  {},
	"let":     {},
	"orderby": {},
	"group":   {},
	"into":    {},
	"by":      {},
	"on":      {},
	"equals":  {},
	"and":     {},
	"or":      {},
	"not":     {},
	"with":    {},
}

// skipHeads are leading keywords of statements that declare nothing.
var skipHeads = map[analyzer.Kind]struct{}{
	analyzer.KindNamespace: {},
	analyzer.KindReturn:    {},
	analyzer.KindThrow:     {},
	analyzer.KindGoto:      {},
	analyzer.KindCase:      {},
	analyzer.KindDefault:   {},
	analyzer.KindBreak:     {},
	analyzer.KindContinue:  {},
}

// classifyVariable looks for a field, property, constant or local variable
// declared by the statement and checks its name.
func (s *Scanner) classifyVariable(stmt []int) {
	toks := s.collect(stmt)
	if len(toks) == 0 || skipVariable(toks) {
		return
	}

	c := variableCandidate(toks)
	if c < 0 {
		return
	}
	name := toks[c].Text

	if s.scopes.Governing().Kind != ScopeType {
		s.declare(DeclVariable, name, toks[c].Line)
		s.checkName(string(DeclVariable), name, lowerFirst)
		return
	}

	kind := DeclField
	want := underscoreLower
	switch {
	case c+1 < len(toks) && (toks[c+1].Kind == analyzer.KindLBrace || toks[c+1].Kind == analyzer.KindArrow):
		kind, want = DeclProperty, upperFirst
	case containsKind(toks[:c], analyzer.KindConst):
		kind, want = DeclConstant, upperFirst
	case containsKind(toks[:c], analyzer.KindPublic), containsKind(toks[:c], analyzer.KindProtected):
		want = upperFirst
	}
	s.declare(kind, name, toks[c].Line)
	s.checkName(string(kind), name, want)
}

func skipVariable(toks []analyzer.Token) bool {
	first := toks[0]
	if _, ok := skipHeads[first.Kind]; ok {
		return true
	}
	if isControl(first) && !(first.Kind == analyzer.KindUsing && !analyzer.IsUsingDirective(toks)) {
		return true
	}
	return hasTypeKeyword(toks)
}

// variableCandidate returns the index of the first identifier at the
// statement's own depth 0 that follows a type token and is followed by a
// declaration terminator, stopping at a `where` clause. It returns -1 when
// there is none.
func variableCandidate(toks []analyzer.Token) int {
	depths, closesGeneric := statementDepths(toks)
	for i := 1; i < len(toks); i++ {
		t := toks[i]
		if t.Is("where") && depths[i] == 0 {
			return -1
		}
		if t.Kind != analyzer.KindIdentifier || depths[i] != 0 {
			continue
		}
		if !typeToken(toks, i-1, closesGeneric) {
			continue
		}
		if i+1 == len(toks) || declarationEnd(toks[i+1].Kind) {
			return i
		}
	}
	return -1
}

func declarationEnd(k analyzer.Kind) bool {
	switch k {
	case analyzer.KindAssign, analyzer.KindSemicolon, analyzer.KindLBrace,
		analyzer.KindArrow, analyzer.KindComma:
		return true
	}
	return false
}

// typeToken reports whether toks[i] can end the type of a declaration.
func typeToken(toks []analyzer.Token, i int, closesGeneric []bool) bool {
	t := toks[i]
	switch {
	case t.Kind == analyzer.KindIdentifier:
		if _, ok := notTypeWords[t.Text]; ok {
			return false
		}
		_, isModifier := modifierWords[t.Text]
		return !isModifier
	case t.Kind.IsBuiltinType():
		return true
	case t.Kind == analyzer.KindGreater:
		return closesGeneric[i]
	case t.Kind == analyzer.KindRBracket:
		return i > 0 && (toks[i-1].Kind == analyzer.KindLBracket || toks[i-1].Kind == analyzer.KindComma)
	case t.Kind == analyzer.KindQuestion:
		return i > 0 && (toks[i-1].Kind.IsBuiltinType() || toks[i-1].Kind == analyzer.KindGreater ||
			toks[i-1].Kind == analyzer.KindIdentifier)
	}
	return false
}

// statementDepths computes each token's bracket depth within the statement
// using the same generics tie-break as the scanner, and marks the '>'
// tokens that close a generic argument list.
func statementDepths(toks []analyzer.Token) ([]int, []bool) {
	depths := make([]int, len(toks))
	closesGeneric := make([]bool, len(toks))
	var balance []analyzer.Kind

	for i, t := range toks {
		switch t.Kind {
		case analyzer.KindLParen, analyzer.KindLBracket, analyzer.KindLBrace, analyzer.KindLess:
			depths[i] = len(balance)
			balance = append(balance, t.Kind)
			continue
		case analyzer.KindGreater:
			if n := len(balance); n > 0 && balance[n-1] == analyzer.KindLess {
				balance = balance[:n-1]
				closesGeneric[i] = true
			}
		case analyzer.KindRParen, analyzer.KindRBracket, analyzer.KindRBrace:
			balance, _ = closeBracket(balance, t.Kind)
		case analyzer.KindSemicolon, analyzer.KindAssign, analyzer.KindArrow:
			balance = dropAngles(balance)
		}
		depths[i] = len(balance)
	}
	return depths, closesGeneric
}
