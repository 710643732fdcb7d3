package nbtai

import (
	"regexp"
	"strings"
)

// SpanClass identifies one protected-span pattern class.
type SpanClass string

// Pattern classes, in masking priority order. The order is load-bearing:
// each class matches against the text already masked by the classes before
// it, so later classes never re-match substituted regions.
const (
	ClassFencedCode   SpanClass = "fenced_code"
	ClassIndentedCode SpanClass = "indented_code"
	ClassInlineMath   SpanClass = "inline_math"
	ClassDisplayMath  SpanClass = "display_math"
	ClassEquationEnv  SpanClass = "equation_env"
	ClassLink         SpanClass = "link"
	ClassHTMLTag      SpanClass = "html_tag"
	ClassAngleURL     SpanClass = "angle_url"
	ClassLatexCommand SpanClass = "latex_command"
)

// spanMatcher locates all non-overlapping protected spans of one class,
// as [start, end) byte offsets in left-to-right order.
type spanMatcher func(text string) [][]int

// spanClassDef pairs a class with its placeholder token and matcher.
type spanClassDef struct {
	class   SpanClass
	token   string
	matcher spanMatcher
}

var (
	fencedCodeRe   = regexp.MustCompile("(?s)```[a-z]*\n.*?\n```")
	inlineMathRe   = regexp.MustCompile(`\$[^$\n]+\$`)
	displayMathRe  = regexp.MustCompile(`\$\$[^$]+\$\$`)
	equationEnvRe  = regexp.MustCompile(`(?s)\\begin\{equation\}.*?\\end\{equation\}`)
	linkRe         = regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`)
	htmlTagRe      = regexp.MustCompile(`<(?:img|video|a)\b[^>]*>`)
	angleURLRe     = regexp.MustCompile(`<https?://[^>]+>`)
	latexCommandRe = regexp.MustCompile(`\\[a-zA-Z]+\{[^}]+\}`)

	listItemRe   = regexp.MustCompile(`^\s*[-*]\s`)
	numberedRe   = regexp.MustCompile(`^\s*\d+\.\s`)
	fenceMarkRe  = regexp.MustCompile("^\\s*```")
)

// spanClasses is the fixed, ordered set of pattern classes. Placeholder
// tokens are non-natural-language markers that no class can re-match and
// that translation backends pass through untouched.
var spanClasses = []spanClassDef{
	{ClassFencedCode, "xx_markdown_code_xx", regexMatcher(fencedCodeRe)},
	{ClassIndentedCode, "xx_indented_code_xx", matchIndentedCode},
	{ClassInlineMath, "xx_inline_math_xx", matchInlineMath},
	{ClassDisplayMath, "xx_display_math_xx", regexMatcher(displayMathRe)},
	{ClassEquationEnv, "xx_equation_env_xx", regexMatcher(equationEnvRe)},
	{ClassLink, "xx_markdown_link_xx", regexMatcher(linkRe)},
	{ClassHTMLTag, "xx_html_tag_xx", regexMatcher(htmlTagRe)},
	{ClassAngleURL, "xx_angle_bracket_url_xx", regexMatcher(angleURLRe)},
	{ClassLatexCommand, "xx_latex_command_xx", regexMatcher(latexCommandRe)},
}

func regexMatcher(re *regexp.Regexp) spanMatcher {
	return func(text string) [][]int {
		return re.FindAllStringIndex(text, -1)
	}
}

// matchIndentedCode finds lines indented by four or more spaces, excluding
// list items, numbered items and fence lines. Go's regexp has no lookahead,
// so the exclusions are explicit checks. Indentation-based detection is a
// heuristic; callers surface an advisory warning when this class fires.
func matchIndentedCode(text string) [][]int {
	var spans [][]int
	offset := 0
	for {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var line string
		end := len(text)
		if lineEnd >= 0 {
			end = offset + lineEnd
		}
		line = text[offset:end]

		if strings.HasPrefix(line, "    ") && strings.TrimSpace(line) != "" &&
			!listItemRe.MatchString(line) && !numberedRe.MatchString(line) &&
			!fenceMarkRe.MatchString(line) {
			spans = append(spans, []int{offset, end})
		}

		if lineEnd < 0 {
			break
		}
		offset = end + 1
	}
	return spans
}

// matchInlineMath finds single-dollar math spans, skipping candidates that
// fall inside a $$...$$ block so the display-math class (which runs later
// in the fixed order) still sees it intact. Adjacent inline spans like
// $a$$b$ form no display block and both stay inline.
func matchInlineMath(text string) [][]int {
	display := displayMathRe.FindAllStringIndex(text, -1)

	var spans [][]int
	for _, m := range inlineMathRe.FindAllStringIndex(text, -1) {
		if overlapsAny(m, display) {
			continue
		}
		spans = append(spans, m)
	}
	return spans
}

func overlapsAny(span []int, others [][]int) bool {
	for _, o := range others {
		if span[0] < o[1] && o[0] < span[1] {
			return true
		}
	}
	return false
}

// SpanSet holds the protected spans extracted from one text, as per-class
// FIFO queues. A SpanSet is scoped to a single mask/restore round trip and
// must not be reused across texts.
type SpanSet struct {
	spans      map[SpanClass][]string
	mismatched []SpanClass
}

// MaskSpans extracts all protected spans from text in fixed class order and
// substitutes each with its class placeholder token. The returned SpanSet
// restores the originals after translation.
func MaskSpans(text string) (string, *SpanSet) {
	set := &SpanSet{spans: make(map[SpanClass][]string)}

	for _, def := range spanClasses {
		matches := def.matcher(text)
		if len(matches) == 0 {
			continue
		}

		var b strings.Builder
		b.Grow(len(text))
		prev := 0
		for _, m := range matches {
			set.spans[def.class] = append(set.spans[def.class], text[m[0]:m[1]])
			b.WriteString(text[prev:m[0]])
			b.WriteString(def.token)
			prev = m[1]
		}
		b.WriteString(text[prev:])
		text = b.String()
	}

	return text, set
}

// Restore substitutes the extracted spans back into translated text. For
// each class, the Nth occurrence of the placeholder token receives the Nth
// extracted span. Matching is strictly positional, never by content, since
// two protected spans may be textually identical.
//
// When the backend mangled a placeholder (dropped, duplicated), remaining
// positions are filled best-effort from the queue and the class is recorded
// as mismatched; Restore never fails.
func (s *SpanSet) Restore(text string) string {
	s.mismatched = s.mismatched[:0]

	for _, def := range spanClasses {
		queue := s.spans[def.class]
		parts := strings.Split(text, def.token)
		occurrences := len(parts) - 1

		if occurrences == 0 && len(queue) == 0 {
			continue
		}
		if occurrences != len(queue) {
			s.mismatched = append(s.mismatched, def.class)
		}

		var b strings.Builder
		for i, part := range parts {
			b.WriteString(part)
			if i < len(parts)-1 {
				if len(queue) > 0 {
					b.WriteString(queue[0])
					queue = queue[1:]
				} else {
					// Queue exhausted: keep the token so the surplus is
					// visible in the output instead of silently vanishing.
					b.WriteString(def.token)
				}
			}
		}
		text = b.String()
	}

	return text
}

// Spans returns the extracted spans for one class, in extraction order.
func (s *SpanSet) Spans(class SpanClass) []string {
	return s.spans[class]
}

// Count returns the total number of extracted spans across all classes.
func (s *SpanSet) Count() int {
	n := 0
	for _, spans := range s.spans {
		n += len(spans)
	}
	return n
}

// HasIndentedCode reports whether the heuristic indented-code class fired.
func (s *SpanSet) HasIndentedCode() bool {
	return len(s.spans[ClassIndentedCode]) > 0
}

// Mismatched returns the classes whose placeholder occurrence count did not
// match the extracted span count during the last Restore. A non-empty
// result means the backend altered a placeholder and restoration was
// best-effort.
func (s *SpanSet) Mismatched() []SpanClass {
	return s.mismatched
}
