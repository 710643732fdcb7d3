// Package notebook implements reading and writing of Jupyter notebook
// (.ipynb) documents.
//
// Only the cell sequence is modeled; every other field of the document and
// of each cell (metadata, outputs, execution counts, format version) is
// preserved verbatim through a load/store round trip. Non-ASCII text is
// written unescaped and the output uses stable 2-space indentation, so a
// translated notebook diffs cleanly against its source.
package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Cell kinds.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// Cell is one unit of a notebook document.
type Cell struct {
	// CellType is "markdown", "code" or "raw".
	CellType string
	// Source holds the cell's text as an ordered sequence of fragments.
	// The on-disk convention is one fragment per physical line, with line
	// breaks included; a whole-cell string is normalized to a single
	// fragment on load.
	Source []string

	// extra preserves all other cell fields untouched.
	extra map[string]json.RawMessage
}

// Notebook is an ordered sequence of cells plus preserved document fields.
type Notebook struct {
	Cells []Cell

	// extra preserves metadata, nbformat, nbformat_minor, and anything
	// else the document carries.
	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes a cell, normalizing its source to the fragment
// sequence form and keeping unknown fields for round-trip.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["cell_type"]; ok {
		if err := json.Unmarshal(v, &c.CellType); err != nil {
			return fmt.Errorf("cell_type: %w", err)
		}
		delete(raw, "cell_type")
	}

	if v, ok := raw["source"]; ok {
		// nbformat allows a single string or a list of line fragments.
		var asList []string
		if err := json.Unmarshal(v, &asList); err == nil {
			c.Source = asList
		} else {
			var asString string
			if err := json.Unmarshal(v, &asString); err != nil {
				return fmt.Errorf("source: %w", err)
			}
			c.Source = []string{asString}
		}
		delete(raw, "source")
	}

	c.extra = raw
	return nil
}

// MarshalJSON encodes a cell with its preserved fields. Keys are emitted in
// sorted order, which keeps the output stable across runs.
func (c Cell) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.extra)+2)
	for k, v := range c.extra {
		out[k] = v
	}

	ct, err := marshalRaw(c.CellType)
	if err != nil {
		return nil, err
	}
	out["cell_type"] = ct

	source := c.Source
	if source == nil {
		source = []string{}
	}
	src, err := marshalRaw(source)
	if err != nil {
		return nil, err
	}
	out["source"] = src

	// The final map must go through the non-escaping encoder as well;
	// json.Marshal would HTML-escape the raw field bytes.
	return marshalRaw(out)
}

// UnmarshalJSON decodes a notebook document.
func (nb *Notebook) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	v, ok := raw["cells"]
	if !ok {
		return fmt.Errorf("document has no cells sequence")
	}
	if err := json.Unmarshal(v, &nb.Cells); err != nil {
		return fmt.Errorf("cells: %w", err)
	}
	delete(raw, "cells")

	nb.extra = raw
	return nil
}

// MarshalJSON encodes a notebook document with its preserved fields.
func (nb Notebook) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(nb.extra)+1)
	for k, v := range nb.extra {
		out[k] = v
	}

	cells := nb.Cells
	if cells == nil {
		cells = []Cell{}
	}
	raw, err := marshalRaw(cells)
	if err != nil {
		return nil, err
	}
	out["cells"] = raw

	return marshalRaw(out)
}

// marshalRaw encodes a value without HTML escaping.
func marshalRaw(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Counts returns the total, code and markdown cell counts.
func (nb *Notebook) Counts() (total, code, markdown int) {
	total = len(nb.Cells)
	for _, cell := range nb.Cells {
		switch cell.CellType {
		case CellCode:
			code++
		case CellMarkdown:
			markdown++
		}
	}
	return total, code, markdown
}

// Parse parses notebook JSON data.
func Parse(data []byte) (*Notebook, error) {
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, &ParseError{Message: "invalid notebook JSON", Cause: err}
	}
	return &nb, nil
}

// ParseFile reads and parses a notebook file.
func ParseFile(path string) (*Notebook, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return nil, &ParseError{Message: "reading notebook", Path: path, Cause: err}
	}
	nb, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return nb, nil
}

// Write serializes a notebook as indented JSON with non-ASCII text kept
// unescaped.
func Write(nb *Notebook) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nb); err != nil {
		return nil, &ParseError{Message: "encoding notebook", Cause: err}
	}
	return buf.Bytes(), nil
}

// WriteFile serializes a notebook to a file.
func WriteFile(path string, nb *Notebook) error {
	data, err := Write(nb)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &ParseError{Message: "writing notebook", Path: path, Cause: err}
	}
	return nil
}

// ParseError indicates a notebook load or store failure.
type ParseError struct {
	Message string
	Path    string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := "notebook error"
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
