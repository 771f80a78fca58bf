package scanner

import "testing"

func TestScopeStack(t *testing.T) {
	s := NewScopeStack()
	if s.Depth() != 0 {
		t.Fatalf("expected depth 0, got %d", s.Depth())
	}
	if s.Governing().Kind != ScopeFile {
		t.Errorf("expected file frame to govern an empty stack, got %s", s.Governing())
	}

	s.Push(ScopeFrame{Kind: ScopeNamespace, Name: "Demo"})
	s.Push(ScopeFrame{Kind: ScopeType, Name: "Outer"})
	s.Push(ScopeFrame{Kind: ScopeType, Name: "Inner"})
	s.Push(ScopeFrame{Kind: ScopeMethod, Name: "Run"})
	s.Push(ScopeFrame{Kind: ScopeControl, Control: "if"})

	if s.Depth() != 5 {
		t.Errorf("expected depth 5, got %d", s.Depth())
	}
	if got := s.Top().String(); got != "control(if)" {
		t.Errorf("expected top control(if), got %s", got)
	}
	if got := s.Governing().String(); got != "method(Run)" {
		t.Errorf("expected method(Run) to govern, got %s", got)
	}
	if got := s.TypePath(); got != "Outer.Inner" {
		t.Errorf("expected type path Outer.Inner, got %s", got)
	}
	if f, ok := s.EnclosingType(); !ok || f.Name != "Inner" {
		t.Errorf("expected enclosing type Inner, got %v %v", f, ok)
	}

	for i := 0; i < 5; i++ {
		if _, err := s.Pop(); err != nil {
			t.Fatalf("Pop %d failed: %v", i, err)
		}
	}
	if _, err := s.Pop(); err == nil {
		t.Error("expected error popping the file frame")
	}
	if s.Depth() != 0 {
		t.Errorf("expected depth 0 after popping, got %d", s.Depth())
	}
}
