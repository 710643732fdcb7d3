package nbtai

import (
	"context"
	"regexp"
	"strings"
)

// noTranslateMarker marks a comment as excluded from translation:
// "#<--- keep me" passes through unchanged.
const noTranslateMarker = "<---"

// printVarToken substitutes brace-delimited variable references inside
// formatted print literals; the identifiers must never reach the backend.
const printVarToken = "xx_print_var_xx"

var (
	printTriggerRe = regexp.MustCompile(`print\(\s*f["']`)
	printLiteralRe = regexp.MustCompile(`print\(\s*(f?)(["'])(.*?)(["'])\s*\)`)
	printVarRe     = regexp.MustCompile(`\{[^{}]*\}`)
)

// translateCode translates the comments and formatted-print literals of one
// code fragment, line by line, leaving executable code untouched.
func (t *Translator) translateCode(ctx context.Context, source string) (string, error) {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		translated, err := t.translateCodeLine(ctx, line)
		if err != nil {
			return "", err
		}
		lines[i] = translated
	}
	return strings.Join(lines, "\n"), nil
}

// translateCodeLine handles one physical code line. In order: excluded
// comments pass through; a line with a comment marker is split at the first
// '#' and only the comment text is translated; a formatted print line has
// its literal body translated with variable references masked; anything
// else passes through. A print line that fails to parse cleanly degrades to
// pass-through rather than failing the document.
func (t *Translator) translateCodeLine(ctx context.Context, line string) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(line), "#"+noTranslateMarker) {
		return line, nil
	}

	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		codePart, commentPart := line[:idx], line[idx+1:]
		if strings.HasPrefix(strings.TrimSpace(commentPart), noTranslateMarker) {
			return line, nil
		}

		translated, err := t.translateText(ctx, strings.TrimSpace(commentPart))
		if err != nil {
			return "", err
		}
		return codePart + "# " + translated, nil
	}

	if printTriggerRe.MatchString(line) {
		return t.translatePrintLine(ctx, line)
	}

	return line, nil
}

// translatePrintLine translates the string literal body of a formatted
// print statement. Brace-delimited variable references are masked with a
// generic token before translation and restored by position afterward.
func (t *Translator) translatePrintLine(ctx context.Context, line string) (string, error) {
	idx := printLiteralRe.FindStringSubmatchIndex(line)
	if idx == nil {
		return line, nil
	}

	openQuote := line[idx[4]:idx[5]]
	closeQuote := line[idx[8]:idx[9]]
	if openQuote != closeQuote {
		// Mismatched quotes; Go's regexp has no backreferences, so the
		// pair is checked here. Treat as a parse failure.
		return line, nil
	}

	body := line[idx[6]:idx[7]]

	matches := printVarRe.FindAllStringIndex(body, -1)
	vars := make([]string, 0, len(matches))

	var b strings.Builder
	prev := 0
	for _, m := range matches {
		vars = append(vars, body[m[0]:m[1]])
		b.WriteString(body[prev:m[0]])
		b.WriteString(printVarToken)
		prev = m[1]
	}
	b.WriteString(body[prev:])

	translated, err := t.translateText(ctx, b.String())
	if err != nil {
		return "", err
	}

	// Restore the variable references positionally: the first token
	// occurrence receives the first extracted reference, and so on.
	parts := strings.Split(translated, printVarToken)
	var restored strings.Builder
	for i, part := range parts {
		restored.WriteString(part)
		if i < len(parts)-1 {
			if len(vars) > 0 {
				restored.WriteString(vars[0])
				vars = vars[1:]
			} else {
				restored.WriteString(printVarToken)
			}
		}
	}

	return line[:idx[6]] + restored.String() + line[idx[7]:], nil
}
