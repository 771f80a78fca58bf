package memstore

import (
	"reflect"
	"testing"

	"cslint/internal/domain"
	"cslint/internal/port"
)

func TestMemoryStore_ModesAreSeparate(t *testing.T) {
	s := NewMemoryStore()

	full := domain.NewReport()
	full.Warn("Invalid field name: x (in A.cs:A).")
	if err := s.Put(domain.ModeFull, "A.cs", port.CachedReport{ModTime: 7, Report: full}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(domain.ModeFull, "A.cs")
	if err != nil || got == nil {
		t.Fatalf("expected cached entry, got %v, %v", got, err)
	}
	if got.ModTime != 7 || len(got.Report.Warnings) != 1 {
		t.Errorf("unexpected entry %+v", got)
	}

	miss, err := s.Get(domain.ModeComments, "A.cs")
	if err != nil || miss != nil {
		t.Errorf("expected a miss in comments mode, got %v, %v", miss, err)
	}
}

func TestMemoryStore_PathsDeleteClear(t *testing.T) {
	s := NewMemoryStore()
	for _, p := range []string{"b.cs", "a.cs", "c.cs"} {
		s.Put(domain.ModeComments, p, port.CachedReport{Report: domain.NewReport()})
	}

	paths, _ := s.Paths(domain.ModeComments)
	if !reflect.DeepEqual(paths, []string{"a.cs", "b.cs", "c.cs"}) {
		t.Errorf("expected sorted paths, got %v", paths)
	}

	s.Delete(domain.ModeComments, "b.cs")
	paths, _ = s.Paths(domain.ModeComments)
	if !reflect.DeepEqual(paths, []string{"a.cs", "c.cs"}) {
		t.Errorf("unexpected paths after delete: %v", paths)
	}

	s.Clear()
	paths, _ = s.Paths(domain.ModeComments)
	if len(paths) != 0 {
		t.Errorf("expected no paths after clear, got %v", paths)
	}
}
