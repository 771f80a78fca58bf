package scanner

import (
	"fmt"

	"cslint/internal/adapter/analyzer"
	"cslint/internal/domain"
)

// MaxNesting bounds the brace depth the scanner recurses into.
const MaxNesting = 256

// BalanceError is a fatal structural failure: a closer that matches no
// opener, a brace left open at end of file, or nesting beyond MaxNesting.
type BalanceError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("balance error in %s at %d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}

// DeclKind names what a classified declaration is.
type DeclKind string

const (
	DeclType        DeclKind = "type"
	DeclMethod      DeclKind = "method"
	DeclConstructor DeclKind = "constructor"
	DeclParameter   DeclKind = "parameter"
	DeclProperty    DeclKind = "property"
	DeclField       DeclKind = "field"
	DeclConstant    DeclKind = "constant"
	DeclVariable    DeclKind = "variable"
)

// Declaration is one classification event.
type Declaration struct {
	Kind DeclKind
	Name string
	Line int
}

// Result describes what a scan saw besides the warnings it reported.
type Result struct {
	Frames       []ScopeFrame // every frame pushed, in order
	Declarations []Declaration
}

// Scanner walks a filtered token stream once, tracking scopes and
// classifying statements. Warnings go to the report it was created with.
type Scanner struct {
	cfg    Config
	file   string
	lines  []string
	tokens []analyzer.Token
	pos    int
	scopes *ScopeStack
	report *domain.Report
	result *Result
}

// New creates a scanner for one file. tokens must come from
// analyzer.Filter(raw, false); lines are the raw source lines.
func New(cfg Config, file string, lines []string, tokens []analyzer.Token, report *domain.Report) *Scanner {
	return &Scanner{
		cfg:    cfg.normalize(),
		file:   file,
		lines:  lines,
		tokens: tokens,
		scopes: NewScopeStack(),
		report: report,
	}
}

// Scan runs the walk. On error the report may hold warnings found so far.
func (s *Scanner) Scan() (*Result, error) {
	s.pos = 0
	s.scopes = NewScopeStack()
	s.result = &Result{}

	s.checkLineLengths()
	if _, err := s.scanBlock(0); err != nil {
		return nil, err
	}
	return s.result, nil
}

// scanBlock consumes statements until the '}' closing the current block
// (returning its index) or end of input at depth 0.
func (s *Scanner) scanBlock(depth int) (int, error) {
	var stmt []int
	var balance []analyzer.Kind

	for s.pos < len(s.tokens) {
		i := s.pos
		tok := s.tokens[i]
		s.pos++

		switch tok.Kind {
		case analyzer.KindNewline:
			continue

		case analyzer.KindLParen, analyzer.KindLBracket, analyzer.KindLess:
			balance = append(balance, tok.Kind)
			stmt = append(stmt, i)
			continue

		case analyzer.KindGreater:
			if n := len(balance); n > 0 && balance[n-1] == analyzer.KindLess {
				balance = balance[:n-1]
			}
			stmt = append(stmt, i)
			continue

		case analyzer.KindRParen, analyzer.KindRBracket:
			var ok bool
			if balance, ok = closeBracket(balance, tok.Kind); !ok {
				return 0, s.balanceErr(tok, "unmatched '%s'", tok.Spelling())
			}
			stmt = append(stmt, i)
			continue

		case analyzer.KindSemicolon, analyzer.KindLBrace, analyzer.KindRBrace:
			balance = dropAngles(balance)

		default:
			stmt = append(stmt, i)
			continue
		}

		// ; { } inside parentheses or brackets belong to the statement.
		if len(balance) > 0 {
			switch tok.Kind {
			case analyzer.KindLBrace:
				balance = append(balance, analyzer.KindLBrace)
			case analyzer.KindRBrace:
				var ok bool
				if balance, ok = closeBracket(balance, tok.Kind); !ok {
					return 0, s.balanceErr(tok, "unmatched '}'")
				}
			}
			stmt = append(stmt, i)
			continue
		}

		switch tok.Kind {
		case analyzer.KindSemicolon:
			stmt = append(stmt, i)
			s.dispatch(stmt)
			stmt = stmt[:0]

		case analyzer.KindLBrace:
			var err error
			if stmt, err = s.openBlock(stmt, i, depth); err != nil {
				return 0, err
			}

		case analyzer.KindRBrace:
			if depth == 0 {
				return 0, s.balanceErr(tok, "unmatched '}'")
			}
			return i, nil
		}
	}

	if depth > 0 {
		return 0, s.balanceErr(s.lastToken(), "unclosed '{' at end of file")
	}
	return len(s.tokens), nil
}

// openBlock handles a '{' at statement depth 0: it pushes a frame classified
// from the statement so far, scans the nested block and returns the
// statement buffer to continue with.
func (s *Scanner) openBlock(stmt []int, brace, depth int) ([]int, error) {
	if depth+1 > MaxNesting {
		return nil, s.balanceErr(s.tokens[brace], "nesting deeper than %d levels", MaxNesting)
	}

	toks := s.collect(stmt)
	exempt := blockExemption(toks)
	frame, method := s.classifyFrame(stmt, toks, exempt)

	s.scopes.Push(frame)
	s.result.Frames = append(s.result.Frames, frame)

	closing, err := s.scanBlock(depth + 1)
	if err != nil {
		return nil, err
	}
	if _, err := s.scopes.Pop(); err != nil {
		return nil, s.balanceErr(s.tokens[closing], "%v", err)
	}

	if method != "" {
		s.checkMethodLength(method, brace, closing)
	}

	switch {
	case exempt == exemptNone:
		s.classifyVariable(append(stmt, brace))
		return stmt[:0], nil
	case exempt == exemptSwitch && len(toks) > 0 && toks[0].Kind == analyzer.KindSwitch:
		return stmt[:0], nil
	}
	return append(stmt, brace, closing), nil
}

// classifyFrame decides the kind of the block opened after toks. When the
// statement is a method or constructor declaration the checks for it run
// here and its name is returned.
func (s *Scanner) classifyFrame(stmt []int, toks []analyzer.Token, exempt exemption) (ScopeFrame, string) {
	switch exempt {
	case exemptDo:
		return ScopeFrame{Kind: ScopeControl, Control: "do"}, ""
	case exemptSwitch:
		return ScopeFrame{Kind: ScopeControl, Control: "switch"}, ""
	case exemptNew, exemptInitializer:
		return ScopeFrame{Kind: ScopeObjectCreation}, ""
	case exemptLambda:
		return ScopeFrame{Kind: ScopeMethod, Name: "lambda"}, ""
	}

	if len(toks) == 0 {
		return ScopeFrame{Kind: ScopeBlock}, ""
	}

	if name, ok := typeDeclaration(toks); ok {
		s.declare(DeclType, name, toks[0].Line)
		return ScopeFrame{Kind: ScopeType, Name: name}, ""
	}

	if s.scopes.Governing().Kind != ScopeMethod {
		if m, ok := s.matchMethod(toks); ok {
			s.onMethod(stmt, toks, m)
			name := toks[m.name].Text
			return ScopeFrame{Kind: ScopeMethod, Name: name}, name
		}
	}

	first := toks[0]
	switch {
	case first.Kind == analyzer.KindNamespace:
		return ScopeFrame{Kind: ScopeNamespace, Name: analyzer.Render(toks[1:])}, ""
	case isControl(first):
		return ScopeFrame{Kind: ScopeControl, Control: first.Spelling()}, ""
	case createsObject(toks):
		return ScopeFrame{Kind: ScopeObjectCreation}, ""
	case isAccessor(toks):
		return ScopeFrame{Kind: ScopeMethod, Name: toks[len(toks)-1].Text}, ""
	}
	return ScopeFrame{Kind: ScopeBlock}, ""
}

// dispatch classifies a statement terminated by ';'.
func (s *Scanner) dispatch(stmt []int) {
	toks := s.collect(stmt)
	if len(toks) == 0 {
		return
	}
	if name, ok := typeDeclaration(toks); ok {
		s.declare(DeclType, name, toks[0].Line)
		return
	}
	if s.scopes.Governing().Kind != ScopeMethod {
		if m, ok := s.matchMethod(toks); ok {
			s.onMethod(stmt, toks, m)
			return
		}
	}
	s.classifyVariable(stmt)
}

func (s *Scanner) declare(kind DeclKind, name string, line int) {
	s.result.Declarations = append(s.result.Declarations, Declaration{Kind: kind, Name: name, Line: line})
}

// context renders "<file>" or "<file>:<Outer.Inner>" for warnings.
func (s *Scanner) context() string {
	if path := s.scopes.TypePath(); path != "" {
		return s.file + ":" + path
	}
	return s.file
}

func (s *Scanner) collect(stmt []int) []analyzer.Token {
	toks := make([]analyzer.Token, len(stmt))
	for i, idx := range stmt {
		toks[i] = s.tokens[idx]
	}
	return toks
}

func (s *Scanner) lastToken() analyzer.Token {
	if len(s.tokens) == 0 {
		return analyzer.Token{Line: 1, Column: 1}
	}
	return s.tokens[len(s.tokens)-1]
}

func (s *Scanner) balanceErr(tok analyzer.Token, format string, args ...any) error {
	return &BalanceError{
		File:   s.file,
		Line:   tok.Line,
		Column: tok.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// closeBracket pops the opener matching closer. A '<' left open is taken to
// have been a less-than operator: it and everything above it is discarded
// before matching.
func closeBracket(balance []analyzer.Kind, closer analyzer.Kind) ([]analyzer.Kind, bool) {
	want := openerOf(closer)
	for {
		n := len(balance)
		if n > 0 && balance[n-1] == want {
			return balance[:n-1], true
		}
		k := lastIndexKind(balance, analyzer.KindLess)
		if k < 0 {
			return balance, false
		}
		balance = balance[:k]
	}
}

// dropAngles discards '<' entries left on top of the stack.
func dropAngles(balance []analyzer.Kind) []analyzer.Kind {
	for len(balance) > 0 && balance[len(balance)-1] == analyzer.KindLess {
		balance = balance[:len(balance)-1]
	}
	return balance
}

func openerOf(closer analyzer.Kind) analyzer.Kind {
	switch closer {
	case analyzer.KindRParen:
		return analyzer.KindLParen
	case analyzer.KindRBracket:
		return analyzer.KindLBracket
	case analyzer.KindRBrace:
		return analyzer.KindLBrace
	case analyzer.KindGreater:
		return analyzer.KindLess
	}
	return closer
}

func lastIndexKind(kinds []analyzer.Kind, k analyzer.Kind) int {
	for i := len(kinds) - 1; i >= 0; i-- {
		if kinds[i] == k {
			return i
		}
	}
	return -1
}

func containsKind(toks []analyzer.Token, k analyzer.Kind) bool {
	for _, t := range toks {
		if t.Kind == k {
			return true
		}
	}
	return false
}
