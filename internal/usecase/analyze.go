package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cslint/internal/adapter/analyzer"
	"cslint/internal/adapter/scanner"
	"cslint/internal/domain"
	"cslint/internal/port"
)

// AnalyzeFile runs the pipeline on one file. In ModeComments the style
// checks are skipped. A tokenization or balance error aborts the file.
func AnalyzeFile(file domain.SourceFile, mode domain.Mode, cfg scanner.Config) (*domain.Report, error) {
	raw, err := analyzer.Tokenize(file.Path, file.Lines)
	if err != nil {
		return nil, err
	}

	report := domain.NewReport()
	report.Lines = analyzer.CountLines(raw)

	if mode == domain.ModeFull {
		sc := scanner.New(cfg, file.Path, file.Lines, analyzer.Filter(raw, false), report)
		if _, err := sc.Scan(); err != nil {
			return nil, err
		}
	}

	report.Comments = analyzer.ExtractComments(file.Path, analyzer.Filter(raw, true))
	return report, nil
}

// ProgressFunc is called after each file with the number of files done.
type ProgressFunc func(done, total int, path string)

// AnalyzeUseCase lints every matching file under a root.
type AnalyzeUseCase struct {
	cache  port.ReportCache
	walker port.FileWalker
	reader port.FileReader
	cfg    scanner.Config
}

// NewAnalyzeUseCase creates a new analyze use case. cache may be nil.
func NewAnalyzeUseCase(
	cache port.ReportCache,
	walker port.FileWalker,
	reader port.FileReader,
	cfg scanner.Config,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		cache:  cache,
		walker: walker,
		reader: reader,
		cfg:    cfg,
	}
}

// AnalyzeResult contains the merged report and bookkeeping for one run.
type AnalyzeResult struct {
	Report        *domain.Report
	FilesAnalyzed int
	FilesCached   int
	FilesRemoved  int
	Errors        []string
	Duration      time.Duration
}

// Analyze walks root, analyzes each file (or reuses its cached report) and
// merges the per-file reports in path order. Files that fail are listed in
// Errors and left out of the report.
func (u *AnalyzeUseCase) Analyze(root string, mode domain.Mode, progress ProgressFunc) (*AnalyzeResult, error) {
	start := time.Now()
	result := &AnalyzeResult{
		Report: &domain.Report{
			Warnings: make([]string, 0),
			Comments: make([]domain.CommentRecord, 0),
		},
	}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	base, err := displayBase(root)
	if err != nil {
		return nil, err
	}

	seenPaths := make(map[string]bool, len(files))
	for i, file := range files {
		seenPaths[file.Path] = true

		report, cached, err := u.analyzeOne(file, displayPath(base, file.Path), mode)
		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Path, err))
			continue
		}
		if cached {
			result.FilesCached++
		} else {
			result.FilesAnalyzed++
		}
		result.Report.Add(report)
	}

	if u.cache != nil {
		removed, err := u.prune(mode, seenPaths, base)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to prune cache: %v", err))
		}
		result.FilesRemoved = removed
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (u *AnalyzeUseCase) analyzeOne(file port.FileInfo, name string, mode domain.Mode) (*domain.Report, bool, error) {
	if u.cache != nil {
		entry, err := u.cache.Get(mode, file.Path)
		if err != nil {
			return nil, false, err
		}
		if entry != nil && entry.ModTime == file.ModTime && entry.Report != nil {
			return entry.Report, true, nil
		}
	}

	lines, err := u.reader.ReadLines(file.Path)
	if err != nil {
		return nil, false, err
	}

	report, err := AnalyzeFile(domain.SourceFile{
		Path:    name,
		Lines:   lines,
		ModTime: time.Unix(0, file.ModTime),
	}, mode, u.cfg)
	if err != nil {
		return nil, false, err
	}

	if u.cache != nil {
		if err := u.cache.Put(mode, file.Path, port.CachedReport{ModTime: file.ModTime, Report: report}); err != nil {
			return nil, false, fmt.Errorf("failed to cache report: %w", err)
		}
	}
	return report, false, nil
}

// prune drops cache entries under base whose files no longer exist.
func (u *AnalyzeUseCase) prune(mode domain.Mode, seen map[string]bool, base string) (int, error) {
	paths, err := u.cache.Paths(mode)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, path := range paths {
		if seen[path] {
			continue
		}
		if rel, err := filepath.Rel(base, path); err != nil || rel == ".." || filepath.IsAbs(rel) || hasParentPrefix(rel) {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := u.cache.Delete(mode, path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// displayBase is the directory file names in reports are relative to.
func displayBase(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

func displayPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
