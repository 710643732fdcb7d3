package nbtai

// TranslationStyle controls the tone and formality of translations.
type TranslationStyle string

const (
	// StyleFormal uses formal, professional language suitable for official documents.
	StyleFormal TranslationStyle = "formal"
	// StyleNeutral uses a neutral, professional tone suitable for general content.
	StyleNeutral TranslationStyle = "neutral"
	// StyleCasual uses casual, conversational language suitable for tutorials.
	StyleCasual TranslationStyle = "casual"
	// StyleTechnical uses precise, technical language for documentation.
	StyleTechnical TranslationStyle = "technical"
	// StyleAcademic uses scholarly language suitable for lecture notebooks.
	StyleAcademic TranslationStyle = "academic"
)

// FragmentRef identifies one translatable source fragment inside a notebook.
type FragmentRef struct {
	CellIndex     int    // Index of the cell in the notebook
	FragmentIndex int    // Index of the fragment within the cell's source
	CellType      string // "markdown" or "code"
	Text          string // Original fragment text
	Hash          string // SHA-256 hash of the trimmed text
}

// Stats summarizes one notebook translation run.
type Stats struct {
	TotalCells      int // Cells in the notebook
	CodeCells       int // Code cells
	MarkdownCells   int // Markdown cells
	TranslatedCount int // Fragments translated via the provider
	CachedCount     int // Fragments served from cache
	SkippedCount    int // Fragments passed through verbatim (fences, images, blanks)
}
