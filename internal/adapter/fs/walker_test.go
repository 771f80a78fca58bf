package fs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_IncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"Program.cs",
		"src/App/Service.cs",
		"src/App/Service.g.cs",
		"src/App/readme.md",
		"bin/Debug/Out.cs",
		"src/obj/Temp.cs",
	} {
		writeFile(t, filepath.Join(root, rel), "class A { }\n")
	}

	w := NewWalker([]string{"**/*.cs"}, []string{"**/bin/**", "**/obj/**", "**/*.g.cs"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(root, f.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"Program.cs", "src/App/Service.cs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWalker_SingleFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "One.cs")
	writeFile(t, path, "class One { }\n")

	files, err := NewWalker(nil, nil).Walk(path)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 1 || files[0].Path != path {
		t.Errorf("expected just %s, got %v", path, files)
	}
}

func TestReader_ReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.cs")
	writeFile(t, path, "\xef\xbb\xbfusing System;\r\n\r\nclass A { }\n")

	lines, err := Reader{}.ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	want := []string{"using System;", "", "class A { }"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("expected %q, got %q", want, lines)
	}
}
