//go:build js && wasm

package main

import (
	"encoding/json"
	"strings"
	"syscall/js"

	"cslint/internal/adapter/memstore"
	"cslint/internal/adapter/scanner"
	"cslint/internal/domain"
	"cslint/internal/port"
	"cslint/internal/usecase"
)

var (
	store *memstore.MemoryStore
	cfg   scanner.Config
)

func init() {
	store = memstore.NewMemoryStore()
	cfg = scanner.DefaultConfig()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("cslintAnalyze", js.FuncOf(analyzeContent))
	js.Global().Set("cslintReport", js.FuncOf(mergedReport))
	js.Global().Set("cslintClear", js.FuncOf(clearReports))

	<-c
}

func analyzeContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: cslintAnalyze(filename, content, [mode])")
	}

	filename := args[0].String()
	content := strings.ReplaceAll(args[1].String(), "\r", "")
	mode := domain.ModeFull
	if len(args) > 2 {
		m, err := domain.ParseMode(args[2].String())
		if err != nil {
			return makeError(err.Error())
		}
		mode = m
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	report, err := usecase.AnalyzeFile(domain.SourceFile{Path: filename, Lines: lines}, mode, cfg)
	if err != nil {
		return makeError(err.Error())
	}

	if err := store.Put(mode, filename, port.CachedReport{Report: report}); err != nil {
		return makeError("storing report failed: " + err.Error())
	}

	return makeResult(map[string]interface{}{
		"filename": filename,
		"report":   report,
	})
}

// mergedReport merges every stored report for a mode in path order.
func mergedReport(this js.Value, args []js.Value) interface{} {
	mode := domain.ModeFull
	if len(args) > 0 {
		m, err := domain.ParseMode(args[0].String())
		if err != nil {
			return makeError(err.Error())
		}
		mode = m
	}

	paths, _ := store.Paths(mode)
	merged := &domain.Report{
		Warnings: make([]string, 0),
		Comments: make([]domain.CommentRecord, 0),
	}
	for _, p := range paths {
		entry, err := store.Get(mode, p)
		if err != nil || entry == nil {
			continue
		}
		merged.Add(entry.Report)
	}

	return makeResult(map[string]interface{}{
		"files":  paths,
		"report": merged,
	})
}

func clearReports(this js.Value, args []js.Value) interface{} {
	store.Clear()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
