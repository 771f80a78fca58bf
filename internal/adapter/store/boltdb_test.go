package store

import (
	"path/filepath"
	"testing"

	"cslint/config"
	"cslint/internal/domain"
	"cslint/internal/port"
)

func openStore(t *testing.T) (*BoltStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("NewBoltStore failed: %v", err)
	}
	return s, path
}

func sampleReport() *domain.Report {
	r := domain.NewReport()
	r.Lines.Code = 3
	r.Warn("Invalid field name: %s (in %s).", "count", "A.cs:A")
	r.Comments = append(r.Comments, domain.CommentRecord{File: "A.cs", Line: 2, Text: "// hi"})
	return r
}

func TestBoltStore_RoundTrip(t *testing.T) {
	s, _ := openStore(t)
	defer s.Close()

	if got, err := s.Get(domain.ModeFull, "A.cs"); err != nil || got != nil {
		t.Fatalf("expected empty cache, got %v, %v", got, err)
	}

	if err := s.Put(domain.ModeFull, "A.cs", port.CachedReport{ModTime: 42, Report: sampleReport()}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(domain.ModeFull, "A.cs")
	if err != nil || got == nil {
		t.Fatalf("Get failed: %v, %v", got, err)
	}
	if got.ModTime != 42 {
		t.Errorf("expected mod time 42, got %d", got.ModTime)
	}
	if got.Report.Lines.Code != 3 || len(got.Report.Warnings) != 1 || len(got.Report.Comments) != 1 {
		t.Errorf("report did not survive the round trip: %+v", got.Report)
	}

	if other, _ := s.Get(domain.ModeComments, "A.cs"); other != nil {
		t.Error("modes should not share entries")
	}

	paths, err := s.Paths(domain.ModeFull)
	if err != nil || len(paths) != 1 || paths[0] != "A.cs" {
		t.Errorf("expected [A.cs], got %v, %v", paths, err)
	}

	if err := s.Delete(domain.ModeFull, "A.cs"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, _ := s.Get(domain.ModeFull, "A.cs"); got != nil {
		t.Error("expected entry to be deleted")
	}
}

func TestBoltStore_Clear(t *testing.T) {
	s, _ := openStore(t)
	defer s.Close()

	s.Put(domain.ModeFull, "A.cs", port.CachedReport{ModTime: 1, Report: sampleReport()})
	s.Put(domain.ModeComments, "B.cs", port.CachedReport{ModTime: 1, Report: sampleReport()})
	if n, _ := s.Len(); n != 2 {
		t.Fatalf("expected 2 entries, got %d", n)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n, _ := s.Len(); n != 0 {
		t.Errorf("expected empty cache after Clear, got %d", n)
	}
}

func TestBoltStore_PrepareInvalidatesOnConfigChange(t *testing.T) {
	s, path := openStore(t)

	cfg := config.DefaultConfig()
	if reason, err := s.Prepare(cfg); err != nil || reason != "" {
		t.Fatalf("first Prepare: reason %q, err %v", reason, err)
	}
	s.Put(domain.ModeFull, "A.cs", port.CachedReport{ModTime: 1, Report: sampleReport()})
	s.Close()

	s, err := NewBoltStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if reason, err := s.Prepare(cfg); err != nil || reason != "" {
		t.Fatalf("unchanged config should keep the cache: reason %q, err %v", reason, err)
	}
	if n, _ := s.Len(); n != 1 {
		t.Fatalf("expected cached entry to survive, got %d", n)
	}

	cfg.Lint.MaxMethodLength = 10
	reason, err := s.Prepare(cfg)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if reason == "" {
		t.Error("expected a reason for clearing the cache")
	}
	if n, _ := s.Len(); n != 0 {
		t.Errorf("expected cache cleared, got %d entries", n)
	}

	info, _ := s.GetSchemaInfo()
	if info.Version != CurrentSchemaVersion || info.ConfigHash != ComputeConfigHash(cfg) {
		t.Errorf("schema info not updated: %+v", info)
	}
}

func TestComputeConfigHash(t *testing.T) {
	a := config.DefaultConfig()
	b := config.DefaultConfig()
	b.Lint.Includes = []string{"src/**/*.cs"}
	if ComputeConfigHash(a) != ComputeConfigHash(b) {
		t.Error("file selection should not change the hash")
	}

	b.Lint.MaxLineLength = 80
	if ComputeConfigHash(a) == ComputeConfigHash(b) {
		t.Error("thresholds should change the hash")
	}
}
