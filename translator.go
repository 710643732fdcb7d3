package nbtai

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZaguanLabs/nbtai/notebook"
)

// AIProvider is the interface for translation backends.
type AIProvider interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// TranslateRequest contains the parameters for one translation call.
type TranslateRequest struct {
	Text          string
	SourceLang    string
	TargetLang    string
	Context       string            // Global context for AI backends
	ExcludedTerms []string          // Terms to never translate
	Glossary      map[string]string // Preferred translations for specific phrases
	Style         TranslationStyle  // Translation style/register
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Translator is the notebook translation engine. It drives the cell
// sequence in document order, dispatching markdown and code fragments to
// the respective translators, and is the single point of contact with the
// backend through its retry-wrapped, cache-fronted, rate-limited gateway.
//
// A Translator processes one notebook at a time; it is not safe for
// concurrent use. Backend calls are strictly sequential; the providers
// are rate-limited shared resources.
type Translator struct {
	targetLang    string
	sourceLang    string
	provider      AIProvider
	cache         TranslationCache
	retry         RetryConfig
	limiter       *RateLimiter
	context       string
	excludedTerms []string
	glossary      map[string]string
	style         TranslationStyle
	progress      io.Writer // diagnostics: counts, retry notices, warnings, URL reports
	echo          io.Writer // translated fragments, when enabled

	stats *Stats // scoped to one TranslateNotebook run
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithSourceLang sets the source language (default: "en").
func WithSourceLang(lang string) TranslatorOption {
	return func(t *Translator) {
		t.sourceLang = lang
	}
}

// WithCache sets the translation cache consulted before every backend call.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithRetryConfig sets the gateway retry behavior.
func WithRetryConfig(cfg RetryConfig) TranslatorOption {
	return func(t *Translator) {
		t.retry = cfg
	}
}

// WithRateLimit puts a token-bucket limiter in front of the gateway.
func WithRateLimit(cfg RateLimitConfig) TranslatorOption {
	return func(t *Translator) {
		t.limiter = NewRateLimiter(cfg)
	}
}

// WithContext sets the global translation context passed to AI backends.
func WithContext(ctx string) TranslatorOption {
	return func(t *Translator) {
		t.context = ctx
	}
}

// WithExcludedTerms sets terms that should never be translated.
func WithExcludedTerms(terms []string) TranslatorOption {
	return func(t *Translator) {
		t.excludedTerms = terms
	}
}

// WithGlossary sets preferred translations for specific phrases.
func WithGlossary(glossary map[string]string) TranslatorOption {
	return func(t *Translator) {
		t.glossary = glossary
	}
}

// WithStyle sets the translation style/register.
func WithStyle(style TranslationStyle) TranslatorOption {
	return func(t *Translator) {
		t.style = style
	}
}

// WithProgress sets the writer for diagnostics (cell counts, retry
// notices, advisory warnings, protected URL reports).
func WithProgress(w io.Writer) TranslatorOption {
	return func(t *Translator) {
		t.progress = w
	}
}

// WithEcho sets the writer that receives every translated fragment.
func WithEcho(w io.Writer) TranslatorOption {
	return func(t *Translator) {
		t.echo = w
	}
}

// NewTranslator creates a new Translator with the given target language and
// provider.
func NewTranslator(targetLang string, provider AIProvider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		targetLang: targetLang,
		sourceLang: "en",
		provider:   provider,
		retry:      DefaultRetryConfig(),
		style:      StyleNeutral,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TargetLang returns the target language.
func (t *Translator) TargetLang() string {
	return t.targetLang
}

// SourceLang returns the source language.
func (t *Translator) SourceLang() string {
	return t.sourceLang
}

// IsSourceLang reports whether the target language matches the source
// language, in which case translation is bypassed.
func (t *Translator) IsSourceLang() bool {
	return BaseLang(t.targetLang) == BaseLang(t.sourceLang)
}

// noopFragments are markdown fragments that pass through verbatim: a bare
// fence line would be mangled by the backends, a bare line break would
// disappear.
var noopFragments = map[string]bool{
	"```\n": true,
	"```":   true,
	"\n":    true,
	"":      true,
}

const (
	fenceMarker  = "```"
	imgTagPrefix = "<img"
)

// TranslateNotebook translates the notebook's cells in place, in document
// order. Markdown fragments between fence markers are skipped; code
// fragments have only comments and formatted-print literals translated.
// On a fatal gateway failure the run aborts with the error; the notebook
// then holds a mix of translated and original fragments and must not be
// persisted as complete.
func (t *Translator) TranslateNotebook(ctx context.Context, nb *notebook.Notebook) (*Stats, error) {
	stats := &Stats{}
	stats.TotalCells, stats.CodeCells, stats.MarkdownCells = nb.Counts()
	t.progressf("Total cells: %d Code cells: %d Markdown cells: %d",
		stats.TotalCells, stats.CodeCells, stats.MarkdownCells)

	if t.IsSourceLang() {
		return stats, nil
	}

	t.stats = stats
	defer func() { t.stats = nil }()

	for i := range nb.Cells {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		cell := &nb.Cells[i]
		switch cell.CellType {
		case notebook.CellMarkdown:
			if err := t.translateMarkdownCell(ctx, cell); err != nil {
				return stats, err
			}
		case notebook.CellCode:
			if err := t.translateCodeCell(ctx, cell); err != nil {
				return stats, err
			}
		default:
			// Raw cells pass through.
		}
	}

	return stats, nil
}

// translateMarkdownCell translates one markdown cell's fragments, carrying
// the fence-skip state across them: the flag toggles on every fragment that
// begins with a fence marker, and fragments are passed through while it is
// set. The state is explicit and scoped to the cell.
func (t *Translator) translateMarkdownCell(ctx context.Context, cell *notebook.Cell) error {
	fenceSkip := false
	for j, fragment := range cell.Source {
		if strings.HasPrefix(fragment, fenceMarker) {
			fenceSkip = !fenceSkip
		}

		if fenceSkip || noopFragments[fragment] || strings.HasPrefix(fragment, imgTagPrefix) {
			t.stats.SkippedCount++
			continue
		}

		translated, err := t.translateMarkdown(ctx, fragment)
		if err != nil {
			return err
		}
		cell.Source[j] = translated
		t.echof(translated)
	}
	return nil
}

// translateCodeCell translates the comments and print literals of one code
// cell's fragments.
func (t *Translator) translateCodeCell(ctx context.Context, cell *notebook.Cell) error {
	for j, fragment := range cell.Source {
		translated, err := t.translateCode(ctx, fragment)
		if err != nil {
			return err
		}
		cell.Source[j] = translated
		t.echof(translated)
	}
	return nil
}

// translateText is the gateway: the single point of contact with the
// backend. Cache first, then the rate limiter, then the provider under
// bounded retries with a fixed delay. Exhaustion propagates as an
// ExhaustedError and aborts the document.
func (t *Translator) translateText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	key := CacheKey(HashText(text), t.sourceLang, t.targetLang)
	if t.cache != nil {
		if cached, ok := t.cache.Get(key); ok {
			t.countCached()
			return cached, nil
		}
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	cfg := t.retry
	if cfg.Notify == nil {
		cfg.Notify = func(attempt, maxAttempts int, err error) {
			t.progressf("Error translating: %v. Trying again (%d/%d)...", err, attempt, maxAttempts)
		}
	}

	result, err := WithRetry(ctx, cfg, func() (string, error) {
		return t.provider.Translate(ctx, TranslateRequest{
			Text:          text,
			SourceLang:    t.sourceLang,
			TargetLang:    t.targetLang,
			Context:       t.context,
			ExcludedTerms: t.excludedTerms,
			Glossary:      t.glossary,
			Style:         t.style,
		})
	})
	if err != nil {
		return "", err
	}

	t.countTranslated()
	if t.cache != nil {
		_ = t.cache.Set(key, result) // Ignore cache set errors
	}

	return result, nil
}

func (t *Translator) countCached() {
	if t.stats != nil {
		t.stats.CachedCount++
	}
}

func (t *Translator) countTranslated() {
	if t.stats != nil {
		t.stats.TranslatedCount++
	}
}

func (t *Translator) progressf(format string, args ...any) {
	if t.progress != nil {
		fmt.Fprintf(t.progress, format+"\n", args...)
	}
}

func (t *Translator) warnf(format string, args ...any) {
	if t.progress != nil {
		fmt.Fprintf(t.progress, "warning: "+format+"\n", args...)
	}
}

func (t *Translator) echof(fragment string) {
	if t.echo != nil {
		fmt.Fprintln(t.echo, fragment)
	}
}
