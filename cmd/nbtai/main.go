// Command nbtai translates Jupyter notebooks using AI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZaguanLabs/nbtai"
	"github.com/ZaguanLabs/nbtai/cache"
	"github.com/ZaguanLabs/nbtai/notebook"
	"github.com/ZaguanLabs/nbtai/provider"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = nbtai.Version
	commit    = nbtai.GitCommit
	buildDate = nbtai.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("nbtai", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	targetLang := fs.String("target", "", "Target language code (e.g., es, pt_BR, ja)")
	sourceLang := fs.String("source", "en", "Source language code")
	backend := fs.String("backend", "google", "Translation backend (google, mymemory, openai)")
	output := fs.String("output", "", "Output file (default: <stem>_<target>.ipynb next to input)")
	rename := fs.Bool("rename", false, "Translate in place, keeping the original as <stem>_bk.ipynb")
	printCells := fs.Bool("print", false, "Echo each translated fragment to stdout")
	apiKey := fs.String("api-key", "", "API key for the openai backend (default: OPENAI_API_KEY env)")
	model := fs.String("model", "gpt-4o-mini", "Model for the openai backend")
	styleStr := fs.String("style", "neutral", "Translation style (formal, neutral, casual, technical, academic)")
	contextStr := fs.String("context", "", "Translation context (e.g., 'Data science course')")
	exclude := fs.String("exclude", "", "Comma-separated terms to never translate")
	delaySec := fs.Int("delay", 10, "Delay in seconds between retry attempts")
	cacheTTL := fs.Int("cache-ttl", 3600, "Cache TTL in seconds (0 to disable)")
	redisURL := fs.String("redis", "", "Redis URL to use as translation cache (overrides in-memory)")
	rpm := fs.Int("rpm", 0, "Rate limit in requests per minute (0 to disable)")
	showVersion := fs.Bool("version", false, "Show version")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	dryRun := fs.Bool("dry-run", false, "List what would be translated without calling the backend")
	jsonOutput := fs.Bool("json", false, "Output result as JSON")
	diffFile := fs.String("diff", "", "Compare with a previous version of the notebook and show changes")
	updateMode := fs.Bool("update", false, "Only report new/changed fragments (requires --diff)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", nbtai.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	// Validate required flags
	if *targetLang == "" {
		fs.Usage()
		return fmt.Errorf("--target is required")
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("notebook path is required")
	}

	inputPath := fs.Arg(0)
	nb, err := notebook.ParseFile(inputPath)
	if err != nil {
		return err
	}
	inputName := filepath.Base(inputPath)

	// Handle diff mode
	if *diffFile != "" {
		return runDiff(nb, *diffFile, inputName, *targetLang, stdout, *jsonOutput, *updateMode)
	}

	// Handle dry-run mode
	if *dryRun {
		return runDryRun(nb, inputName, *targetLang, stdout, *jsonOutput)
	}

	// API key only matters for the openai backend
	key := *apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if strings.EqualFold(*backend, provider.BackendOpenAI) && key == "" {
		return fmt.Errorf("OpenAI API key required (--api-key or OPENAI_API_KEY env)")
	}

	// Create provider; unsupported language pairs fail here, before any
	// cell is touched.
	p, err := provider.New(*backend, provider.Config{
		SourceLang: *sourceLang,
		TargetLang: *targetLang,
		APIKey:     key,
		Model:      *model,
	})
	if err != nil {
		return err
	}

	// Build options
	retryCfg := nbtai.DefaultRetryConfig()
	retryCfg.Delay = time.Duration(*delaySec) * time.Second
	if !*quiet {
		retryCfg.Notify = func(attempt, maxAttempts int, err error) {
			fmt.Fprintf(stderr, "Error translating: %v. Trying again (%d/%d)...\n", err, attempt, maxAttempts)
		}
	}

	opts := []nbtai.TranslatorOption{
		nbtai.WithSourceLang(*sourceLang),
		nbtai.WithRetryConfig(retryCfg),
		nbtai.WithStyle(nbtai.TranslationStyle(*styleStr)),
	}

	if *redisURL != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{URL: *redisURL, TTL: *cacheTTL})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()
		opts = append(opts, nbtai.WithCache(rc))
	} else if *cacheTTL > 0 {
		opts = append(opts, nbtai.WithCache(cache.NewInMemoryCache(*cacheTTL)))
	}

	if *rpm > 0 {
		opts = append(opts, nbtai.WithRateLimit(nbtai.RateLimitConfig{RequestsPerMinute: *rpm}))
	}

	if *contextStr != "" {
		opts = append(opts, nbtai.WithContext(*contextStr))
	}

	if *exclude != "" {
		terms := strings.Split(*exclude, ",")
		for i := range terms {
			terms[i] = strings.TrimSpace(terms[i])
		}
		opts = append(opts, nbtai.WithExcludedTerms(terms))
	}

	if !*quiet {
		opts = append(opts, nbtai.WithProgress(stderr))
	}
	if *printCells {
		opts = append(opts, nbtai.WithEcho(stdout))
	}

	// Create translator
	translator := nbtai.NewTranslator(*targetLang, p, opts...)

	if !*quiet {
		fmt.Fprintf(stderr, "Translating %s to %s...\n", inputName, *targetLang)
	}

	start := time.Now()
	stats, err := translator.TranslateNotebook(context.Background(), nb)
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	elapsed := time.Since(start)

	// Decide where the translated notebook goes
	outputPath := *output
	if *rename {
		// Keep the original next to the translation
		if err := os.Rename(inputPath, notebook.BackupPath(inputPath)); err != nil {
			return fmt.Errorf("backing up original: %w", err)
		}
		outputPath = inputPath
	} else if outputPath == "" {
		outputPath = notebook.DerivedPath(inputPath, *targetLang)
	}

	if err := notebook.WriteFile(outputPath, nb); err != nil {
		return err
	}

	if *jsonOutput {
		return outputJSON(stdout, outputPath, stats, elapsed)
	}

	// Stats
	if !*quiet {
		fmt.Fprintf(stderr, "\nDone in %v\n", elapsed.Round(time.Millisecond))
		fmt.Fprintf(stderr, "  Output:       %s\n", outputPath)
		fmt.Fprintf(stderr, "  Translated:   %d\n", stats.TranslatedCount)
		fmt.Fprintf(stderr, "  From cache:   %d\n", stats.CachedCount)
		fmt.Fprintf(stderr, "  Skipped:      %d\n", stats.SkippedCount)
	}

	return nil
}

// runDryRun lists the fragments that would be translated without calling
// any backend.
func runDryRun(nb *notebook.Notebook, inputName, targetLang string, stdout io.Writer, jsonOut bool) error {
	refs := nbtai.ListTranslatable(nb)

	if jsonOut {
		type dryRunOutput struct {
			InputFile     string   `json:"input_file"`
			TargetLang    string   `json:"target_lang"`
			FragmentCount int      `json:"fragment_count"`
			Texts         []string `json:"texts"`
		}

		texts := make([]string, len(refs))
		for i, r := range refs {
			texts[i] = r.Text
		}

		out := dryRunOutput{
			InputFile:     inputName,
			TargetLang:    targetLang,
			FragmentCount: len(refs),
			Texts:         texts,
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(stdout, "Dry run: %s -> %s\n", inputName, targetLang)
	fmt.Fprintf(stdout, "Found %d translatable fragments:\n\n", len(refs))

	for i, r := range refs {
		text := r.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Fprintf(stdout, "%3d. [cell %d, %s] %q\n", i+1, r.CellIndex, r.CellType, text)
	}

	return nil
}

// runDiff compares the notebook with a previous version and shows what
// changed.
func runDiff(nb *notebook.Notebook, oldPath, inputName, targetLang string, stdout io.Writer, jsonOut, updateMode bool) error {
	oldNb, err := notebook.ParseFile(oldPath)
	if err != nil {
		return fmt.Errorf("reading previous version: %w", err)
	}

	diff := nbtai.DiffNotebooks(oldNb, nb)
	stats := diff.Stats()

	if jsonOut {
		type diffOutput struct {
			InputFile    string `json:"input_file"`
			PreviousFile string `json:"previous_file"`
			TargetLang   string `json:"target_lang"`
			Stats        struct {
				Added     int `json:"added"`
				Removed   int `json:"removed"`
				Modified  int `json:"modified"`
				Unchanged int `json:"unchanged"`
			} `json:"stats"`
			NeedsTranslation []string `json:"needs_translation"`
			Added            []string `json:"added,omitempty"`
			Removed          []string `json:"removed,omitempty"`
			Modified         []struct {
				Old string `json:"old"`
				New string `json:"new"`
			} `json:"modified,omitempty"`
		}

		out := diffOutput{
			InputFile:    inputName,
			PreviousFile: filepath.Base(oldPath),
			TargetLang:   targetLang,
		}
		out.Stats.Added = stats.Added
		out.Stats.Removed = stats.Removed
		out.Stats.Modified = stats.Modified
		out.Stats.Unchanged = stats.Unchanged

		for _, r := range diff.NeedsTranslation() {
			out.NeedsTranslation = append(out.NeedsTranslation, r.Text)
		}
		for _, r := range diff.Added {
			out.Added = append(out.Added, r.Text)
		}
		for _, r := range diff.Removed {
			out.Removed = append(out.Removed, r.Text)
		}
		for _, m := range diff.Modified {
			out.Modified = append(out.Modified, struct {
				Old string `json:"old"`
				New string `json:"new"`
			}{Old: m.Old.Text, New: m.New.Text})
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	// Text output
	fmt.Fprintf(stdout, "Diff: %s vs %s\n", inputName, filepath.Base(oldPath))
	fmt.Fprintf(stdout, "Target language: %s\n\n", targetLang)

	fmt.Fprintf(stdout, "Summary:\n")
	fmt.Fprintf(stdout, "  Unchanged: %d\n", stats.Unchanged)
	fmt.Fprintf(stdout, "  Added:     %d\n", stats.Added)
	fmt.Fprintf(stdout, "  Removed:   %d\n", stats.Removed)
	fmt.Fprintf(stdout, "  Modified:  %d\n", stats.Modified)
	fmt.Fprintf(stdout, "\n")

	if !diff.HasChanges() {
		fmt.Fprintf(stdout, "No changes detected. All translations are up to date.\n")
		return nil
	}

	needsTranslation := diff.NeedsTranslation()
	fmt.Fprintf(stdout, "Needs translation: %d fragments\n\n", len(needsTranslation))

	if len(diff.Added) > 0 {
		fmt.Fprintf(stdout, "Added:\n")
		for _, r := range diff.Added {
			fmt.Fprintf(stdout, "  + [cell %d] %q\n", r.CellIndex, truncate(r.Text, 50))
		}
		fmt.Fprintf(stdout, "\n")
	}

	if len(diff.Modified) > 0 {
		fmt.Fprintf(stdout, "Modified:\n")
		for _, m := range diff.Modified {
			fmt.Fprintf(stdout, "  ~ %q -> %q\n", truncate(m.Old.Text, 30), truncate(m.New.Text, 30))
		}
		fmt.Fprintf(stdout, "\n")
	}

	if len(diff.Removed) > 0 {
		fmt.Fprintf(stdout, "Removed:\n")
		for _, r := range diff.Removed {
			fmt.Fprintf(stdout, "  - [cell %d] %q\n", r.CellIndex, truncate(r.Text, 50))
		}
		fmt.Fprintf(stdout, "\n")
	}

	if updateMode {
		fmt.Fprintf(stdout, "Update mode: Only the %d new/modified fragments would be translated.\n", len(needsTranslation))
		fmt.Fprintf(stdout, "Run without --diff to perform the translation.\n")
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// JSONOutput represents the JSON output format.
type JSONOutput struct {
	Output          string `json:"output"`
	TotalCells      int    `json:"total_cells"`
	CodeCells       int    `json:"code_cells"`
	MarkdownCells   int    `json:"markdown_cells"`
	TranslatedCount int    `json:"translated_count"`
	CachedCount     int    `json:"cached_count"`
	SkippedCount    int    `json:"skipped_count"`
	ElapsedMs       int64  `json:"elapsed_ms"`
}

// outputJSON writes the run summary as JSON.
func outputJSON(w io.Writer, outputPath string, stats *nbtai.Stats, elapsed time.Duration) error {
	out := JSONOutput{
		Output:          outputPath,
		TotalCells:      stats.TotalCells,
		CodeCells:       stats.CodeCells,
		MarkdownCells:   stats.MarkdownCells,
		TranslatedCount: stats.TranslatedCount,
		CachedCount:     stats.CachedCount,
		SkippedCount:    stats.SkippedCount,
		ElapsedMs:       elapsed.Milliseconds(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
