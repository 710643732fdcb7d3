package nbtai

import (
	"context"
	"strings"
)

// markdownHeaders lists heading markers from longest to shortest; the order
// matters, a "###" prefix must win over "#".
var markdownHeaders = []string{"### ", "###", "## ", "##", "# ", "#"}

const (
	imagePrefix    = "!["
	horizontalRule = "---"
)

// translateMarkdown translates one markdown fragment, preserving its
// structure. Evaluated in fixed order: empty and horizontal-rule fragments
// pass through; a trailing line break is detached, the rest translated
// recursively, and the break reattached (fragments split by line keep their
// headers and formatting intact); image-embed lines pass through; heading
// markers are emitted verbatim with only the remainder translated;
// everything else goes through mask, gateway, restore.
func (t *Translator) translateMarkdown(ctx context.Context, fragment string) (string, error) {
	if fragment == "" {
		return fragment, nil
	}

	if strings.TrimSpace(fragment) == horizontalRule {
		return fragment, nil
	}

	if len(fragment) >= 2 {
		if strings.HasSuffix(fragment, "\n") {
			inner, err := t.translateMarkdown(ctx, strings.TrimSuffix(fragment, "\n"))
			if err != nil {
				return "", err
			}
			return inner + "\n", nil
		}

		if strings.HasPrefix(fragment, imagePrefix) {
			return fragment, nil
		}

		for _, header := range markdownHeaders {
			if strings.HasPrefix(fragment, header) {
				rest, err := t.translateMasked(ctx, fragment[len(header):])
				if err != nil {
					return "", err
				}
				return header + rest, nil
			}
		}
	}

	return t.translateMasked(ctx, fragment)
}

// translateMasked masks protected spans, sends the residual text through
// the gateway, and restores the spans positionally.
func (t *Translator) translateMasked(ctx context.Context, text string) (string, error) {
	masked, spans := MaskSpans(text)

	if spans.HasIndentedCode() {
		t.warnf("indented code block detected, verify the indentation: %q", text)
	}

	translated, err := t.translateText(ctx, masked)
	if err != nil {
		return "", err
	}

	result := spans.Restore(translated)

	for _, class := range spans.Mismatched() {
		t.warnf("placeholder count mismatch for %s spans, restoration was best-effort", class)
	}

	if urls := CollectURLs(spans); len(urls) > 0 {
		t.progressf("protected link targets: %s", strings.Join(urls, ", "))
	}

	return result, nil
}
