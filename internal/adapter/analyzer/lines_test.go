package analyzer

import (
	"testing"

	"cslint/internal/domain"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		src  string
		want domain.LineCategory
	}{
		{"using System;", domain.LineSetup},
		{"using static System.Math;", domain.LineSetup},
		{"using Json = Newtonsoft.Json;", domain.LineSetup},
		{"global using System.Linq;", domain.LineSetup},
		{"extern alias Foo;", domain.LineSetup},
		{"namespace Demo.App", domain.LineSetup},
		{"#region Helpers", domain.LineSetup},
		{"", domain.LineEmpty},
		{"    ", domain.LineEmpty},
		{"// only a comment", domain.LineComment},
		{"/* block */", domain.LineComment},
		{"{", domain.LineBrace},
		{"});", domain.LineBrace},
		{"},", domain.LineBrace},
		{");", domain.LineCode},
		{"using (var s = Open())", domain.LineCode},
		{"using var s = Open();", domain.LineCode},
		{"int x = 1; // trailing", domain.LineCode},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lines := SplitLines(mustTokenize(t, tt.src))
			if len(lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(lines))
			}
			if got := ClassifyLine(lines[0]); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	src := []string{
		"using System;",
		"",
		"namespace Demo",
		"{",
		"    // note",
		"    class A { }",
		"}",
	}
	counts := CountLines(mustTokenize(t, src...))

	want := domain.LineCounts{Setup: 2, Empty: 1, Brace: 2, Code: 1, Comment: 1}
	if counts != want {
		t.Errorf("expected %+v, got %+v", want, counts)
	}
	if counts.Total() != len(src) {
		t.Errorf("expected total %d, got %d", len(src), counts.Total())
	}
}

func TestCountLines_MultiLineTokens(t *testing.T) {
	src := []string{
		"var s = @\"first",
		"",
		"last\";",
		"/* a",
		"   b */",
	}
	counts := CountLines(mustTokenize(t, src...))
	if counts.Total() != len(src) {
		t.Errorf("expected total %d, got %d (%+v)", len(src), counts.Total(), counts)
	}
	if counts.Comment != 2 {
		t.Errorf("expected 2 comment lines, got %d", counts.Comment)
	}
}
