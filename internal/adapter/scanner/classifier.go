package scanner

import (
	"cslint/internal/adapter/analyzer"
)

// exemption marks a '{' that opens a block belonging to an expression or a
// do/switch construct rather than a declaration.
type exemption int

const (
	exemptNone exemption = iota
	exemptDo
	exemptNew
	exemptSwitch
	exemptLambda
	exemptInitializer // array/collection initializer after '='
)

// modifierWords are contextual keywords that act as declaration modifiers.
var modifierWords = map[string]struct{}{
	"async":    {},
	"partial":  {},
	"required": {},
	"file":     {},
	"scoped":   {},
}

var controlKinds = map[analyzer.Kind]struct{}{
	analyzer.KindIf:        {},
	analyzer.KindElse:      {},
	analyzer.KindFor:       {},
	analyzer.KindForeach:   {},
	analyzer.KindWhile:     {},
	analyzer.KindDo:        {},
	analyzer.KindTry:       {},
	analyzer.KindCatch:     {},
	analyzer.KindFinally:   {},
	analyzer.KindSwitch:    {},
	analyzer.KindUsing:     {},
	analyzer.KindLock:      {},
	analyzer.KindChecked:   {},
	analyzer.KindUnchecked: {},
	analyzer.KindUnsafe:    {},
	analyzer.KindFixed:     {},
}

var accessorWords = map[string]struct{}{
	"get": {}, "set": {}, "init": {}, "add": {}, "remove": {},
}

// blockExemption inspects the statement ahead of a '{'.
func blockExemption(toks []analyzer.Token) exemption {
	n := len(toks)
	if n == 0 {
		return exemptNone
	}
	last := toks[n-1]
	switch {
	case last.Kind == analyzer.KindArrow:
		return exemptLambda
	case last.Kind == analyzer.KindAssign:
		return exemptInitializer
	case toks[0].Kind == analyzer.KindDo && n == 1:
		return exemptDo
	case last.Kind == analyzer.KindSwitch:
		return exemptSwitch
	case toks[0].Kind == analyzer.KindSwitch:
		return exemptSwitch
	}
	for i, t := range toks {
		if t.Kind == analyzer.KindNew && i > 0 && !isModifier(toks[i-1]) && !newConstraint(toks, i) {
			return exemptNew
		}
	}
	return exemptNone
}

// createsObject reports whether the statement holds a `new` other than a
// constraint.
func createsObject(toks []analyzer.Token) bool {
	for i, t := range toks {
		if t.Kind == analyzer.KindNew && (i == 0 || !newConstraint(toks, i)) {
			return true
		}
	}
	return false
}

// newConstraint reports whether the `new` at i is the `new()` of a
// `where T : ..., new()` clause.
func newConstraint(toks []analyzer.Token, i int) bool {
	if i+2 >= len(toks) || toks[i+1].Kind != analyzer.KindLParen || toks[i+2].Kind != analyzer.KindRParen {
		return false
	}
	if prev := toks[i-1].Kind; prev != analyzer.KindColon && prev != analyzer.KindComma {
		return false
	}
	for _, t := range toks[:i] {
		if t.Is("where") {
			return true
		}
	}
	return false
}

// typeDeclaration finds `class|struct|interface|enum|record Name` ahead of
// any parameter list or `where` clause.
func typeDeclaration(toks []analyzer.Token) (string, bool) {
	for i := 0; i+1 < len(toks); i++ {
		t := toks[i]
		if t.Kind == analyzer.KindLParen || t.Is("where") || t.Kind == analyzer.KindColon {
			return "", false
		}
		next := toks[i+1]
		if t.Kind.IsTypeKeyword() && next.Kind == analyzer.KindIdentifier {
			return next.Text, true
		}
		if t.Is("record") {
			if next.Kind == analyzer.KindIdentifier {
				return next.Text, true
			}
			if (next.Kind == analyzer.KindClass || next.Kind == analyzer.KindStruct) &&
				i+2 < len(toks) && toks[i+2].Kind == analyzer.KindIdentifier {
				return toks[i+2].Text, true
			}
		}
	}
	return "", false
}

// hasTypeKeyword reports whether the statement declares a type.
func hasTypeKeyword(toks []analyzer.Token) bool {
	_, ok := typeDeclaration(toks)
	return ok
}

func isControl(t analyzer.Token) bool {
	_, ok := controlKinds[t.Kind]
	return ok
}

func isModifier(t analyzer.Token) bool {
	if t.Kind.IsModifier() {
		return true
	}
	if t.Kind == analyzer.KindIdentifier {
		_, ok := modifierWords[t.Text]
		return ok
	}
	return false
}

// isAccessor matches `[modifiers] get|set|init|add|remove`.
func isAccessor(toks []analyzer.Token) bool {
	last := toks[len(toks)-1]
	if last.Kind != analyzer.KindIdentifier {
		return false
	}
	if _, ok := accessorWords[last.Text]; !ok {
		return false
	}
	for _, t := range toks[:len(toks)-1] {
		if !isModifier(t) {
			return false
		}
	}
	return true
}

// typeExpr is the extent of a parsed type-expression.
type typeExpr struct {
	end  int // index just past the expression
	head int // index of the last identifier of the dotted name, or -1
}

// parseTypeExpr parses a dotted name, built-in type or parenthesized tuple
// starting at i, followed by any generic argument list, array rank,
// nullable or pointer suffixes.
func parseTypeExpr(toks []analyzer.Token, i int) (typeExpr, bool) {
	n := len(toks)
	if i >= n {
		return typeExpr{}, false
	}

	te := typeExpr{head: -1}
	switch t := toks[i]; {
	case t.Kind == analyzer.KindIdentifier:
		te.head = i
		i++
		for {
			if i+1 < n && toks[i].Kind == analyzer.KindDot && toks[i+1].Kind == analyzer.KindIdentifier {
				i++
			} else if isDoubleColon(toks, i) && toks[i+2].Kind == analyzer.KindIdentifier {
				i += 2
			} else {
				break
			}
			te.head = i
			i++
		}
	case t.Kind.IsBuiltinType():
		i++
	case t.Kind == analyzer.KindLParen:
		closing := matchClose(toks, i)
		if closing < 0 {
			return typeExpr{}, false
		}
		i = closing + 1
	default:
		return typeExpr{}, false
	}

	for i < n {
		switch toks[i].Kind {
		case analyzer.KindLess:
			closing := matchGeneric(toks, i)
			if closing < 0 {
				te.end = i
				return te, true
			}
			i = closing + 1
		case analyzer.KindLBracket:
			j := i + 1
			for j < n && toks[j].Kind == analyzer.KindComma {
				j++
			}
			if j >= n || toks[j].Kind != analyzer.KindRBracket {
				te.end = i
				return te, true
			}
			i = j + 1
		case analyzer.KindQuestion, analyzer.KindStar:
			i++
		default:
			te.end = i
			return te, true
		}
	}
	te.end = i
	return te, true
}

func isDoubleColon(toks []analyzer.Token, i int) bool {
	return i+2 < len(toks) && toks[i].Kind == analyzer.KindColon && toks[i+1].Kind == analyzer.KindColon
}

// matchGeneric returns the index of the '>' closing the '<' at open, or -1
// when the tokens in between cannot form a type argument list.
func matchGeneric(toks []analyzer.Token, open int) int {
	var stack []analyzer.Kind
	for i := open; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Kind == analyzer.KindLess, t.Kind == analyzer.KindLParen, t.Kind == analyzer.KindLBracket:
			stack = append(stack, t.Kind)
		case t.Kind == analyzer.KindGreater, t.Kind == analyzer.KindRParen, t.Kind == analyzer.KindRBracket:
			if len(stack) == 0 || stack[len(stack)-1] != openerOf(t.Kind) {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		case t.Kind == analyzer.KindIdentifier, t.Kind.IsBuiltinType(),
			t.Kind == analyzer.KindComma, t.Kind == analyzer.KindDot,
			t.Kind == analyzer.KindQuestion, t.Kind == analyzer.KindStar,
			t.Kind == analyzer.KindColon, t.Kind == analyzer.KindIn, t.Kind == analyzer.KindOut:
		default:
			return -1
		}
	}
	return -1
}

// matchClose returns the index of the closer matching the opener at open,
// applying the generics tie-break to any '<' met on the way.
func matchClose(toks []analyzer.Token, open int) int {
	var balance []analyzer.Kind
	for i := open; i < len(toks); i++ {
		switch k := toks[i].Kind; k {
		case analyzer.KindLParen, analyzer.KindLBracket, analyzer.KindLBrace, analyzer.KindLess:
			balance = append(balance, k)
		case analyzer.KindGreater:
			if n := len(balance); n > 0 && balance[n-1] == analyzer.KindLess {
				balance = balance[:n-1]
			}
		case analyzer.KindRParen, analyzer.KindRBracket, analyzer.KindRBrace:
			var ok bool
			if balance, ok = closeBracket(balance, k); !ok {
				return -1
			}
			if len(balance) == 0 {
				return i
			}
		}
	}
	return -1
}

// methodMatch locates a method or constructor declaration in a statement.
type methodMatch struct {
	name   int // index of the name token
	params int // index of the '(' opening the parameter list
	ctor   bool
}

// matchMethod is the declaration classifier: it recognises
// `[modifiers] Type Name[<T>](` and `[modifiers] EnclosingType(`.
func (s *Scanner) matchMethod(toks []analyzer.Token) (methodMatch, bool) {
	i := 0
	for i < len(toks) && isModifier(toks[i]) {
		i++
	}

	first, ok := parseTypeExpr(toks, i)
	if !ok {
		return methodMatch{}, false
	}

	if enclosing, ok := s.scopes.EnclosingType(); ok && first.head >= 0 &&
		first.end == first.head+1 && first.end < len(toks) &&
		toks[first.head].Text == enclosing.Name && toks[first.end].Kind == analyzer.KindLParen {
		return methodMatch{name: first.head, params: first.end, ctor: true}, true
	}

	if first.end >= len(toks) || toks[first.end].Kind != analyzer.KindIdentifier {
		return methodMatch{}, false
	}
	second, ok := parseTypeExpr(toks, first.end)
	if !ok || second.head < 0 || second.end >= len(toks) || toks[second.end].Kind != analyzer.KindLParen {
		return methodMatch{}, false
	}
	return methodMatch{name: second.head, params: second.end}, true
}

// onMethod runs the checks for a matched method or constructor: its name,
// the blank line before it and its parameter names.
func (s *Scanner) onMethod(stmt []int, toks []analyzer.Token, m methodMatch) {
	name := toks[m.name].Text
	kind := DeclMethod
	if m.ctor {
		kind = DeclConstructor
	}
	s.declare(kind, name, toks[m.name].Line)
	s.checkName(string(kind), name, upperFirst)

	if !s.hasBlankLineBefore(stmt[0]) {
		s.report.Warn("Missing blank line before %s in %s.", name, s.context())
	}

	for _, p := range parameterNames(toks, m.params) {
		s.declare(DeclParameter, toks[p].Text, toks[p].Line)
		s.checkName(string(DeclParameter), toks[p].Text, lowerFirst)
	}
}

// parameterNames returns the indices of the parameter names in the list
// opening at open: the last identifier of each comma-separated parameter,
// ignoring default values.
func parameterNames(toks []analyzer.Token, open int) []int {
	closing := matchClose(toks, open)
	if closing < 0 {
		return nil
	}

	var names []int
	start := open + 1
	depth := 0
	for i := open + 1; i <= closing; i++ {
		switch toks[i].Kind {
		case analyzer.KindLParen, analyzer.KindLBracket, analyzer.KindLess, analyzer.KindLBrace:
			depth++
			continue
		case analyzer.KindRBracket, analyzer.KindGreater, analyzer.KindRBrace:
			depth--
			continue
		case analyzer.KindRParen:
			if i != closing {
				depth--
				continue
			}
		case analyzer.KindComma:
			if depth != 0 {
				continue
			}
		default:
			continue
		}
		if p := parameterName(toks, start, i); p >= 0 {
			names = append(names, p)
		}
		start = i + 1
	}
	return names
}

func parameterName(toks []analyzer.Token, start, end int) int {
	name := -1
	depth := 0
	for i := start; i < end; i++ {
		switch t := toks[i]; {
		case t.Kind == analyzer.KindAssign && depth == 0:
			return name
		case t.Kind == analyzer.KindLParen, t.Kind == analyzer.KindLBracket, t.Kind == analyzer.KindLess:
			depth++
		case t.Kind == analyzer.KindRParen, t.Kind == analyzer.KindRBracket, t.Kind == analyzer.KindGreater:
			depth--
		case t.Kind == analyzer.KindIdentifier && depth == 0 && i > start:
			name = i
		}
	}
	return name
}
