package nbtai

import (
	"strings"

	"github.com/ZaguanLabs/nbtai/notebook"
)

// ListTranslatable enumerates the fragments of a notebook that would reach
// the translation backend: markdown fragments outside fence-skip regions
// (minus the verbatim pass-throughs) and code fragments carrying a comment
// or a formatted print literal.
func ListTranslatable(nb *notebook.Notebook) []FragmentRef {
	var refs []FragmentRef

	for i, cell := range nb.Cells {
		switch cell.CellType {
		case notebook.CellMarkdown:
			fenceSkip := false
			for j, fragment := range cell.Source {
				if strings.HasPrefix(fragment, fenceMarker) {
					fenceSkip = !fenceSkip
				}
				if fenceSkip || noopFragments[fragment] ||
					strings.HasPrefix(fragment, imgTagPrefix) ||
					strings.HasPrefix(fragment, imagePrefix) ||
					strings.TrimSpace(fragment) == horizontalRule {
					continue
				}
				refs = append(refs, fragmentRef(i, j, cell.CellType, fragment))
			}
		case notebook.CellCode:
			for j, fragment := range cell.Source {
				if codeFragmentTranslatable(fragment) {
					refs = append(refs, fragmentRef(i, j, cell.CellType, fragment))
				}
			}
		}
	}

	return refs
}

// codeFragmentTranslatable reports whether any line of a code fragment
// carries translatable text.
func codeFragmentTranslatable(fragment string) bool {
	for _, line := range strings.Split(fragment, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#"+noTranslateMarker) {
			continue
		}
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			if !strings.HasPrefix(strings.TrimSpace(line[idx+1:]), noTranslateMarker) {
				return true
			}
			continue
		}
		if printTriggerRe.MatchString(line) {
			return true
		}
	}
	return false
}

func fragmentRef(cellIndex, fragmentIndex int, cellType, text string) FragmentRef {
	return FragmentRef{
		CellIndex:     cellIndex,
		FragmentIndex: fragmentIndex,
		CellType:      cellType,
		Text:          text,
		Hash:          HashText(text),
	}
}

// DiffResult represents the difference between two notebook versions, at
// translatable-fragment granularity.
type DiffResult struct {
	// Added contains fragments that are new (not in the previous version).
	Added []FragmentRef

	// Removed contains fragments that were removed (not in the new version).
	Removed []FragmentRef

	// Unchanged contains fragments that exist in both versions.
	Unchanged []FragmentRef

	// Modified contains fragment pairs at the same document position whose
	// text changed.
	Modified []ModifiedFragment
}

// ModifiedFragment represents a fragment that was edited in place.
type ModifiedFragment struct {
	Old FragmentRef
	New FragmentRef
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Unchanged int
	Modified  int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Modified:  len(d.Modified),
	}
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// NeedsTranslation returns the fragments that need to be translated:
// new fragments and the new side of modified ones.
func (d *DiffResult) NeedsTranslation() []FragmentRef {
	result := make([]FragmentRef, 0, len(d.Added)+len(d.Modified))
	result = append(result, d.Added...)
	for _, m := range d.Modified {
		result = append(result, m.New)
	}
	return result
}

// DiffNotebooks compares the translatable fragments of two notebook
// versions. Useful for incremental retranslation: only translate what
// changed since the last run.
func DiffNotebooks(old, updated *notebook.Notebook) *DiffResult {
	return diffFragments(ListTranslatable(old), ListTranslatable(updated))
}

// diffFragments computes the hash-level diff, then pairs removed and added
// fragments that share a document position into in-place modifications.
func diffFragments(oldRefs, newRefs []FragmentRef) *DiffResult {
	result := &DiffResult{}

	oldByHash := make(map[string]FragmentRef)
	newByHash := make(map[string]FragmentRef)
	for _, ref := range oldRefs {
		oldByHash[ref.Hash] = ref
	}
	for _, ref := range newRefs {
		newByHash[ref.Hash] = ref
	}

	for _, ref := range oldRefs {
		if _, exists := newByHash[ref.Hash]; exists {
			result.Unchanged = append(result.Unchanged, ref)
		} else {
			result.Removed = append(result.Removed, ref)
		}
	}
	for _, ref := range newRefs {
		if _, exists := oldByHash[ref.Hash]; !exists {
			result.Added = append(result.Added, ref)
		}
	}

	if len(result.Added) > 0 && len(result.Removed) > 0 {
		addedMatched := make(map[int]bool)
		removedMatched := make(map[int]bool)

		for ri, removed := range result.Removed {
			for ai, added := range result.Added {
				if addedMatched[ai] {
					continue
				}
				if removed.CellIndex == added.CellIndex &&
					removed.FragmentIndex == added.FragmentIndex &&
					removed.CellType == added.CellType {
					result.Modified = append(result.Modified, ModifiedFragment{
						Old: removed,
						New: added,
					})
					addedMatched[ai] = true
					removedMatched[ri] = true
					break
				}
			}
		}

		remainingAdded := make([]FragmentRef, 0, len(result.Added))
		for i, ref := range result.Added {
			if !addedMatched[i] {
				remainingAdded = append(remainingAdded, ref)
			}
		}
		result.Added = remainingAdded

		remainingRemoved := make([]FragmentRef, 0, len(result.Removed))
		for i, ref := range result.Removed {
			if !removedMatched[i] {
				remainingRemoved = append(remainingRemoved, ref)
			}
		}
		result.Removed = remainingRemoved
	}

	return result
}
