package domain

import (
	"reflect"
	"testing"
)

func TestReport_Add(t *testing.T) {
	a := NewReport()
	a.Lines = LineCounts{Setup: 1, Code: 4, Brace: 2}
	a.Warn("first %d", 1)
	a.ExtraCodeLines = 3
	a.Comments = append(a.Comments, CommentRecord{File: "a.cs", Text: "// a"})

	b := NewReport()
	b.Lines = LineCounts{Empty: 2, Code: 1, Comment: 5}
	b.Warn("second")
	b.ExtraCodeLines = 1
	b.Comments = append(b.Comments, CommentRecord{File: "b.cs", Text: "// b"})

	a.Add(b)
	a.Add(nil)

	if a.Files != 2 {
		t.Errorf("expected 2 files, got %d", a.Files)
	}
	want := LineCounts{Setup: 1, Empty: 2, Brace: 2, Code: 5, Comment: 5}
	if a.Lines != want {
		t.Errorf("expected %+v, got %+v", want, a.Lines)
	}
	if a.Lines.Total() != 15 {
		t.Errorf("expected total 15, got %d", a.Lines.Total())
	}
	if !reflect.DeepEqual(a.Warnings, []string{"first 1", "second"}) {
		t.Errorf("unexpected warnings %v", a.Warnings)
	}
	if len(a.Comments) != 2 || a.Comments[1].File != "b.cs" {
		t.Errorf("unexpected comments %+v", a.Comments)
	}
	if a.ExtraCodeLines != 4 {
		t.Errorf("expected 4 extra code lines, got %d", a.ExtraCodeLines)
	}
}

func TestReport_AddIsAssociative(t *testing.T) {
	mk := func(code int, w string) *Report {
		r := NewReport()
		r.Lines.Code = code
		r.Warn("%s", w)
		return r
	}

	left := mk(1, "a")
	left.Add(mk(2, "b"))
	left.Add(mk(3, "c"))

	bc := mk(2, "b")
	bc.Add(mk(3, "c"))
	right := mk(1, "a")
	right.Add(bc)

	if !reflect.DeepEqual(left, right) {
		t.Errorf("merge order changed the result:\n%+v\n%+v", left, right)
	}
}

func TestCommentRecord_Fingerprint(t *testing.T) {
	a := CommentRecord{File: "a.cs", Line: 3, Text: "// x", Before: []string{"int a;"}, After: []string{"}"}}
	b := CommentRecord{File: "b.cs", Line: 9, Text: "// x", Before: []string{"int a;"}, After: []string{"}"}}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical comments in identical context should share a fingerprint")
	}

	c := b
	c.Before = nil
	c.After = []string{"int a;", "}"}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("moving context across the comment should change the fingerprint")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeFull, false},
		{"full", ModeFull, false},
		{"Comments", ModeComments, false},
		{"fast", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}
