package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"cslint/config"
	"cslint/internal/adapter/fs"
	"cslint/internal/adapter/memstore"
	"cslint/internal/adapter/store"
	"cslint/internal/domain"
	"cslint/internal/port"
	"cslint/internal/usecase"
)

var (
	jsonOutput bool
	noCache    bool
	outputPath string
	strict     bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Check naming, method length and line length",
	Long: `Lint C# files under the given path (a directory or a single file).
Reports are cached in .cslint/cache.db and reused while a file is unchanged.

Examples:
  cslint lint .                   # Lint current directory
  cslint lint src -o report.json  # Write a JSON report to a file
  cslint lint --strict            # Exit non-zero when warnings are found`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, args, domain.ModeFull)
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments [path]",
	Short: "List comments with surrounding context",
	Long: `Extract every comment with up to three lines of context on each side.
Identical comments in identical surroundings are grouped by fingerprint.

Examples:
  cslint comments .
  cslint comments src --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, args, domain.ModeComments)
	},
}

func init() {
	for _, c := range []*cobra.Command{lintCmd, commentsCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
		c.Flags().BoolVar(&noCache, "no-cache", false, "analyze every file, ignoring the report cache")
		c.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file instead of stdout")
		rootCmd.AddCommand(c)
	}
	lintCmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when warnings are reported")
}

func runAnalyze(cmd *cobra.Command, args []string, mode domain.Mode) error {
	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}

	cfg := GetConfig()

	cache, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	walker := fs.NewWalker(cfg.Lint.Includes, cfg.Lint.Excludes)
	uc := usecase.NewAnalyzeUseCase(cache, walker, fs.Reader{}, cfg.ScannerConfig())

	if !cfg.Quiet() {
		fmt.Fprintf(os.Stderr, "Scanning %s...\n", path)
	}

	result, err := uc.Analyze(path, mode, newProgress(cfg, mode))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	format := strings.ToLower(cfg.Output.Format)
	if jsonOutput {
		format = "json"
	}
	if format == "json" {
		err = writeJSON(out, result)
	} else if mode == domain.ModeComments {
		err = writeComments(out, result.Report)
	} else {
		err = writeText(out, result)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !cfg.Quiet() {
		fmt.Fprintf(os.Stderr, "Analyzed %d files (%d cached) in %s\n",
			result.FilesAnalyzed+result.FilesCached, result.FilesCached, formatDuration(result.Duration))
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("%d files could not be analyzed", len(result.Errors))
	}
	if strict && mode == domain.ModeFull && len(result.Report.Warnings) > 0 {
		return fmt.Errorf("%d warnings", len(result.Report.Warnings))
	}
	return nil
}

// openCache returns the bbolt cache in the root directory, or an in-memory
// one when caching is off.
func openCache(cfg *config.Config) (port.ReportCache, error) {
	if noCache || !cfg.Cache.Enabled {
		return memstore.NewMemoryStore(), nil
	}

	dir := GetRootDir()
	if err := config.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create .cslint directory: %w", err)
	}

	st, err := store.NewBoltStore(config.CacheDBPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open report cache: %w", err)
	}

	reason, err := st.Prepare(cfg)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to prepare report cache: %w", err)
	}
	if reason != "" && !cfg.Quiet() {
		fmt.Fprintf(os.Stderr, "Cache cleared: %s\n", reason)
	}
	return st, nil
}

func newProgress(cfg *config.Config, mode domain.Mode) usecase.ProgressFunc {
	if cfg.Quiet() {
		return nil
	}
	if cfg.Verbose() {
		return func(processed, total int, currentFile string) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", processed, total, currentFile)
		}
	}

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	var startTime time.Time
	label := "[cyan]Linting[reset]"
	if mode == domain.ModeComments {
		label = "[cyan]Reading[reset]"
	}

	return func(processed, total int, currentFile string) {
		barMu.Lock()
		defer barMu.Unlock()

		if bar == nil {
			startTime = time.Now()
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription(label),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)
		}

		bar.Set(processed)

		if processed > 0 {
			elapsed := time.Since(startTime)
			rate := float64(processed) / elapsed.Seconds()
			if rate > 0 {
				eta := time.Duration(float64(total-processed)/rate) * time.Second
				bar.Describe(fmt.Sprintf("%s ETA: %s", label, formatDuration(eta)))
			}
		}
	}
}

type jsonResult struct {
	Report        *domain.Report `json:"report"`
	FilesAnalyzed int            `json:"files_analyzed"`
	FilesCached   int            `json:"files_cached"`
	Errors        []string       `json:"errors"`
}

func writeJSON(w io.Writer, result *usecase.AnalyzeResult) error {
	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Report:        result.Report,
		FilesAnalyzed: result.FilesAnalyzed,
		FilesCached:   result.FilesCached,
		Errors:        errs,
	})
}

func writeText(w io.Writer, result *usecase.AnalyzeResult) error {
	r := result.Report
	for _, warning := range r.Warnings {
		if _, err := fmt.Fprintln(w, warning); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nFiles:    %d\n", r.Files)
	fmt.Fprintf(w, "Lines:    %d\n", r.Lines.Total())
	fmt.Fprintf(w, "  code:    %d\n", r.Lines.Code)
	fmt.Fprintf(w, "  brace:   %d\n", r.Lines.Brace)
	fmt.Fprintf(w, "  comment: %d\n", r.Lines.Comment)
	fmt.Fprintf(w, "  empty:   %d\n", r.Lines.Empty)
	fmt.Fprintf(w, "  setup:   %d\n", r.Lines.Setup)
	fmt.Fprintf(w, "Warnings: %d\n", len(r.Warnings))
	_, err := fmt.Fprintf(w, "Extra code lines: %d\n", r.ExtraCodeLines)
	return err
}

// commentGroup is a set of records sharing a fingerprint.
type commentGroup struct {
	first domain.CommentRecord
	count int
}

func writeComments(w io.Writer, r *domain.Report) error {
	groups := make(map[string]*commentGroup)
	var order []string
	for _, c := range r.Comments {
		fp := c.Fingerprint()
		if g, ok := groups[fp]; ok {
			g.count++
			continue
		}
		groups[fp] = &commentGroup{first: c, count: 1}
		order = append(order, fp)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return groups[order[i]].count > groups[order[j]].count
	})

	for _, fp := range order {
		g := groups[fp]
		fmt.Fprintf(w, "%s:%d", g.first.File, g.first.Line)
		if g.count > 1 {
			fmt.Fprintf(w, " (and %d identical)", g.count-1)
		}
		fmt.Fprintln(w)
		for _, l := range g.first.Before {
			fmt.Fprintf(w, "    %s\n", l)
		}
		for _, l := range strings.Split(g.first.Text, "\n") {
			fmt.Fprintf(w, "  > %s\n", l)
		}
		for _, l := range g.first.After {
			fmt.Fprintf(w, "    %s\n", l)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d comments, %d distinct\n", len(r.Comments), len(order))
	return err
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "<1s"
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
