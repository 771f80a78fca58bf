package analyzer

import (
	"errors"
	"testing"
)

func kindsOf(tokens []Token) []Kind {
	kinds := make([]Kind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize_Kinds(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		want []Kind
	}{
		{
			name: "declaration",
			src:  []string{"int x = 5;"},
			want: []Kind{KindInt, KindIdentifier, KindAssign, KindNumber, KindSemicolon, KindNewline},
		},
		{
			name: "generic type",
			src:  []string{"List<int> xs;"},
			want: []Kind{KindIdentifier, KindLess, KindInt, KindGreater, KindIdentifier, KindSemicolon, KindNewline},
		},
		{
			name: "two character operators",
			src:  []string{"a && b || c => d == e <= f >= g++ --"},
			want: []Kind{
				KindIdentifier, KindAndAnd, KindIdentifier, KindOrOr, KindIdentifier, KindArrow,
				KindIdentifier, KindEqual, KindIdentifier, KindLessEqual, KindIdentifier,
				KindGreaterEqual, KindIdentifier, KindPlusPlus, KindMinusMinus, KindNewline,
			},
		},
		{
			name: "contextual words are identifiers",
			src:  []string{"var async await"},
			want: []Kind{KindIdentifier, KindIdentifier, KindIdentifier, KindNewline},
		},
		{
			name: "pragma",
			src:  []string{"  #region Setup", "x"},
			want: []Kind{KindPragma, KindNewline, KindIdentifier, KindNewline},
		},
		{
			name: "empty lines",
			src:  []string{"", "   ", ""},
			want: []Kind{KindNewline, KindNewline, KindNewline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize("test.cs", tt.src)
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if got := kindsOf(tokens); !sameKinds(got, tt.want) {
				t.Errorf("kinds mismatch:\n%s", FormatTokens(tokens))
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens, err := Tokenize("test.cs", []string{"a", "  bb = 1;"})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	bb := tokens[2]
	if bb.Text != "bb" || bb.Line != 2 || bb.Column != 3 {
		t.Errorf("expected bb at 2:3, got %s", bb)
	}
	nl := tokens[1]
	if nl.Kind != KindNewline || nl.Line != 1 {
		t.Errorf("expected newline ending line 1, got %s", nl)
	}
}

func TestTokenize_NewlinePerLine(t *testing.T) {
	src := []string{
		"class A",
		"{",
		"    string s = @\"multi",
		"line\";",
		"    /* block",
		"       comment */",
		"}",
	}
	tokens, err := Tokenize("test.cs", src)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	newlines := 0
	for _, tok := range tokens {
		if tok.Kind == KindNewline {
			newlines++
		}
	}
	if newlines != len(src) {
		t.Errorf("expected %d newlines, got %d", len(src), newlines)
	}
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		name  string
		src   []string
		kinds []Kind
		texts []string
	}{
		{
			name:  "regular with escape",
			src:   []string{`"a\"b"`},
			kinds: []Kind{KindString},
			texts: []string{`"a\"b"`},
		},
		{
			name:  "interpolated",
			src:   []string{`$"a{b}c"`},
			kinds: []Kind{KindStringStart, KindIdentifier, KindStringEnd},
			texts: []string{`$"a{`, "b", `}c"`},
		},
		{
			name:  "interpolated with nested braces and escapes",
			src:   []string{`$"{{x}} {f(new[] { 1 })} y"`},
			kinds: []Kind{
				KindStringStart, KindIdentifier, KindLParen, KindNew, KindLBracket, KindRBracket,
				KindLBrace, KindNumber, KindRBrace, KindRParen, KindStringEnd,
			},
			texts: []string{`$"{{x}} {`, "f", "", "", "", "", "", "1", "", "", `} y"`},
		},
		{
			name:  "two holes",
			src:   []string{`$"{a}-{b}"`},
			kinds: []Kind{KindStringStart, KindIdentifier, KindStringMiddle, KindIdentifier, KindStringEnd},
			texts: []string{`$"{`, "a", "}-{", "b", `}"`},
		},
		{
			name:  "format string",
			src:   []string{`$"{total:#,##0}"`},
			kinds: []Kind{KindStringStart, KindIdentifier, KindStringEnd},
			texts: []string{`$"{`, "total", `:#,##0}"`},
		},
		{
			name: "format after alignment and named argument",
			src:  []string{`$"{f(x: 1),5:N2} ok"`},
			kinds: []Kind{
				KindStringStart, KindIdentifier, KindLParen, KindIdentifier, KindColon,
				KindNumber, KindRParen, KindComma, KindNumber, KindStringEnd,
			},
			texts: []string{`$"{`, "f", "", "x", "", "1", "", "", "5", `:N2} ok"`},
		},
		{
			name:  "alias qualifier is not a format",
			src:   []string{`$"{global::A.B}"`},
			kinds: []Kind{KindStringStart, KindIdentifier, KindColon, KindColon, KindIdentifier, KindDot, KindIdentifier, KindStringEnd},
			texts: []string{`$"{`, "global", "", "", "A", "", "B", `}"`},
		},
		{
			name:  "verbatim across lines",
			src:   []string{`@"one`, `two ""q"""`},
			kinds: []Kind{KindStringStart, KindNewline, KindStringEnd},
			texts: []string{`@"one`, "", `two ""q"""`},
		},
		{
			name:  "char literal",
			src:   []string{`'\''`},
			kinds: []Kind{KindChar},
			texts: []string{`'\''`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize("test.cs", tt.src)
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			tokens = tokens[:len(tokens)-1] // trailing newline
			if !sameKinds(kindsOf(tokens), tt.kinds) {
				t.Fatalf("kinds mismatch:\n%s", FormatTokens(tokens))
			}
			for i, tok := range tokens {
				if tok.Text != tt.texts[i] {
					t.Errorf("token %d: expected text %q, got %q", i, tt.texts[i], tok.Text)
				}
			}
		})
	}
}

func TestTokenize_BlockComment(t *testing.T) {
	tokens, err := Tokenize("test.cs", []string{"/* a", "   b", "   c */ x"})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Kind{
		KindCommentStart, KindNewline,
		KindCommentMiddle, KindNewline,
		KindCommentEnd, KindIdentifier, KindNewline,
	}
	if !sameKinds(kindsOf(tokens), want) {
		t.Fatalf("kinds mismatch:\n%s", FormatTokens(tokens))
	}
	if tokens[4].Text != "   c */" {
		t.Errorf("expected comment end text %q, got %q", "   c */", tokens[4].Text)
	}
}

func TestTokenize_AtIdentifierAndNumbers(t *testing.T) {
	tokens, err := Tokenize("test.cs", []string{"@int 0x1F 1_000 1.5e-3 10f"})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []struct {
		kind Kind
		text string
	}{
		{KindIdentifier, "@int"},
		{KindNumber, "0x1F"},
		{KindNumber, "1_000"},
		{KindNumber, "1.5e-3"},
		{KindNumber, "10"},
		{KindIdentifier, "f"},
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
			t.Errorf("token %d: expected %s %q, got %s", i, w.kind, w.text, tokens[i])
		}
	}
}

func TestTokenize_Keywords(t *testing.T) {
	tokens, err := Tokenize("test.cs", []string{"public static string Name"})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []Kind{KindPublic, KindStatic, KindStringKeyword, KindIdentifier, KindNewline}
	if !sameKinds(kindsOf(tokens), want) {
		t.Errorf("kinds mismatch:\n%s", FormatTokens(tokens))
	}
	if tokens[2].Spelling() != "string" {
		t.Errorf("expected spelling 'string', got %q", tokens[2].Spelling())
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    []string
		line   int
		column int
	}{
		{"lone ampersand", []string{"a & b"}, 1, 3},
		{"lone pipe", []string{"", "a | b"}, 2, 3},
		{"unknown character", []string{"x = `y`;"}, 1, 5},
		{"unterminated string", []string{`s = "abc`}, 1, 9},
		{"unterminated block comment", []string{"/* never"}, 1, 1},
		{"unterminated format string", []string{`s = $"{x:N2`}, 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize("bad.cs", tt.src)
			var tokErr *TokenizationError
			if !errors.As(err, &tokErr) {
				t.Fatalf("expected TokenizationError, got %v", err)
			}
			if tokErr.File != "bad.cs" {
				t.Errorf("expected file bad.cs, got %s", tokErr.File)
			}
			if tokErr.Line != tt.line || tokErr.Column != tt.column {
				t.Errorf("expected error at %d:%d, got %d:%d", tt.line, tt.column, tokErr.Line, tokErr.Column)
			}
		})
	}
}
