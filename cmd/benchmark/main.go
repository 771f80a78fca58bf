package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cslint/config"
	"cslint/internal/adapter/analyzer"
	"cslint/internal/adapter/fs"
	"cslint/internal/adapter/scanner"
	"cslint/internal/domain"
)

type fileTiming struct {
	path     string
	lines    int
	tokens   int
	tokenize time.Duration
	scan     time.Duration
	err      error
}

func main() {
	root := flag.String("dir", "", "Directory of C# sources to benchmark")
	rounds := flag.Int("n", 5, "Number of rounds per file")
	top := flag.Int("k", 10, "Number of slowest files to show")
	flag.Parse()

	if *root == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir ./src [-n 5] [-k 10]")
		fmt.Println("\nMeasures:")
		fmt.Println("  1. Tokenizer throughput (lines per second)")
		fmt.Println("  2. Scanner throughput over the filtered stream")
		fmt.Println("  3. Slowest files")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	files, err := fs.NewWalker(cfg.Lint.Includes, cfg.Lint.Excludes).Walk(*root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking %s: %v\n", *root, err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No matching files")
		os.Exit(1)
	}

	fmt.Println("CSLINT THROUGHPUT BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Files:  %d\n", len(files))
	fmt.Printf("Rounds: %d\n\n", *rounds)

	reader := fs.Reader{}
	scanCfg := cfg.ScannerConfig()
	timings := make([]fileTiming, 0, len(files))
	var totalLines, totalTokens int
	var totalTokenize, totalScan time.Duration

	for _, f := range files {
		lines, err := reader.ReadLines(f.Path)
		if err != nil {
			timings = append(timings, fileTiming{path: f.Path, err: err})
			continue
		}
		ft := measure(f.Path, lines, scanCfg, *rounds)
		timings = append(timings, ft)
		if ft.err != nil {
			continue
		}
		totalLines += ft.lines
		totalTokens += ft.tokens
		totalTokenize += ft.tokenize
		totalScan += ft.scan
	}

	sort.Slice(timings, func(i, j int) bool {
		return timings[i].tokenize+timings[i].scan > timings[j].tokenize+timings[j].scan
	})

	fmt.Printf("Slowest %d files:\n\n", min(*top, len(timings)))
	for i, ft := range timings {
		if i >= *top {
			break
		}
		if ft.err != nil {
			fmt.Printf("%2d. [ERROR] %s: %v\n", i+1, shortPath(ft.path), ft.err)
			continue
		}
		fmt.Printf("%2d. %-40s %6d lines  tokenize %8s  scan %8s\n",
			i+1, shortPath(ft.path), ft.lines, ft.tokenize.Round(time.Microsecond), ft.scan.Round(time.Microsecond))
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("THROUGHPUT:\n")
	fmt.Printf("  Lines:    %d (%d tokens)\n", totalLines, totalTokens)
	fmt.Printf("  Tokenize: %s (%.0f lines/s)\n", totalTokenize, perSecond(totalLines, totalTokenize))
	fmt.Printf("  Scan:     %s (%.0f lines/s)\n", totalScan, perSecond(totalLines, totalScan))
}

// measure reports the mean time per round for one file.
func measure(path string, lines []string, cfg scanner.Config, rounds int) fileTiming {
	ft := fileTiming{path: path, lines: len(lines)}
	if rounds < 1 {
		rounds = 1
	}

	for i := 0; i < rounds; i++ {
		start := time.Now()
		raw, err := analyzer.Tokenize(path, lines)
		ft.tokenize += time.Since(start)
		if err != nil {
			ft.err = err
			return ft
		}
		ft.tokens = len(raw)

		filtered := analyzer.Filter(raw, false)
		start = time.Now()
		_, err = scanner.New(cfg, path, lines, filtered, domain.NewReport()).Scan()
		ft.scan += time.Since(start)
		if err != nil {
			ft.err = err
			return ft
		}
	}

	ft.tokenize /= time.Duration(rounds)
	ft.scan /= time.Duration(rounds)
	return ft
}

func perSecond(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

func shortPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 2 {
		return strings.Join(parts[len(parts)-2:], "/")
	}
	return path
}
