package adapter

import (
	"fmt"
	"sort"
	"strings"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

const (
	crlf = "\r\n"
	lf   = "\n"
)

// Document is the read-only view of an editor buffer the code action logic
// works on. Columns are byte offsets into the line.
type Document interface {
	// Path returns the file the snapshot was taken from.
	Path() m.Path

	// LineCount returns the number of lines, counting a trailing empty line.
	LineCount() int

	// LineAt returns the text of a line without its terminator, or "" when
	// the line is out of range.
	LineAt(line int) string

	// Text returns the whole snapshot.
	Text() string

	// TextInRange returns the text between two positions, clamped to the document.
	TextInRange(r m.Range) string

	// WordRangeAt returns the identifier touching pos.
	WordRangeAt(pos m.Position) (m.Range, bool)

	// EOL returns the line terminator used by the document.
	EOL() string
}

// TextDocument is an immutable Document backed by an in-memory snapshot.
type TextDocument struct {
	path       m.Path
	text       string
	lineStarts []int
	eol        string
}

// NewTextDocument builds a snapshot for content read from path.
func NewTextDocument(path m.Path, content []byte) *TextDocument {
	text := string(content)

	starts := []int{0}

	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	eol := lf
	if strings.Contains(text, crlf) {
		eol = crlf
	}

	return &TextDocument{
		path:       path,
		text:       text,
		lineStarts: starts,
		eol:        eol,
	}
}

// Path implements Document.
func (d *TextDocument) Path() m.Path {
	return d.path
}

// LineCount implements Document.
func (d *TextDocument) LineCount() int {
	return len(d.lineStarts)
}

// LineAt implements Document.
func (d *TextDocument) LineAt(line int) string {
	if line < 0 || line >= len(d.lineStarts) {
		return ""
	}

	start := d.lineStarts[line]
	end := len(d.text)

	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1] - 1
	}

	return strings.TrimSuffix(d.text[start:end], "\r")
}

// Text implements Document.
func (d *TextDocument) Text() string {
	return d.text
}

// TextInRange implements Document.
func (d *TextDocument) TextInRange(r m.Range) string {
	start := d.Offset(r.Start)
	end := d.Offset(r.End)

	if end < start {
		return ""
	}

	return d.text[start:end]
}

// EOL implements Document.
func (d *TextDocument) EOL() string {
	return d.eol
}

// WordRangeAt implements Document.
func (d *TextDocument) WordRangeAt(pos m.Position) (m.Range, bool) {
	line := d.LineAt(pos.Line)
	if pos.Line < 0 || pos.Line >= d.LineCount() || pos.Column < 0 || pos.Column > len(line) {
		return m.Range{}, false
	}

	start := pos.Column
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}

	end := pos.Column
	for end < len(line) && isWordByte(line[end]) {
		end++
	}

	if start == end {
		return m.Range{}, false
	}

	return m.Range{
		Start: m.Position{Line: pos.Line, Column: start},
		End:   m.Position{Line: pos.Line, Column: end},
	}, true
}

// Offset converts a position to a byte offset, clamping it to the document.
func (d *TextDocument) Offset(pos m.Position) int {
	if pos.Line < 0 {
		return 0
	}

	if pos.Line >= len(d.lineStarts) {
		return len(d.text)
	}

	column := pos.Column
	if column < 0 {
		column = 0
	}

	if lineLen := len(d.LineAt(pos.Line)); column > lineLen {
		column = lineLen
	}

	return d.lineStarts[pos.Line] + column
}

// Apply returns the text produced by applying edits to the snapshot. Edits
// sharing a start position are applied in the order given. Overlapping edits
// are rejected.
func (d *TextDocument) Apply(edits []m.TextEdit) (string, error) {
	type span struct {
		start, end int
		text       string
	}

	spans := make([]span, 0, len(edits))

	for _, edit := range edits {
		start := d.Offset(edit.Range.Start)

		end := start
		if !edit.Range.IsEmpty() {
			end = d.Offset(edit.Range.End)
		}

		if end < start {
			return "", fmt.Errorf("invalid edit range %v", edit.Range)
		}

		spans = append(spans, span{start: start, end: end, text: edit.NewText})
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	var b strings.Builder

	b.Grow(len(d.text))

	cursor := 0

	for _, s := range spans {
		if s.start < cursor {
			return "", fmt.Errorf("overlapping edits at offset %d", s.start)
		}

		b.WriteString(d.text[cursor:s.start])
		b.WriteString(s.text)
		cursor = s.end
	}

	b.WriteString(d.text[cursor:])

	return b.String(), nil
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
