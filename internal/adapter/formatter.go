package adapter

import (
	"context"
	"sort"
	"strings"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

// Formatter computes a reformat of the lines an edit batch touched, returned
// as a second batch of edits. doc is the document after edits were applied.
type Formatter interface {
	Format(ctx context.Context, doc Document, edits []m.TextEdit, tabSize int) ([]m.TextEdit, error)
}

// IndentFormatter re-indents the lines inserted by an edit batch, and the
// brace-only lines next to them, by brace depth. It indents with tabs when the
// document does. Braces inside comments and string literals (regular,
// verbatim and raw) are not counted, and lines starting inside a block
// comment or a multi-line literal are never changed.
type IndentFormatter struct{}

// NewIndentFormatter constructs an IndentFormatter.
func NewIndentFormatter() *IndentFormatter {
	return &IndentFormatter{}
}

// Format implements Formatter.
func (f *IndentFormatter) Format(ctx context.Context, doc Document, edits []m.TextEdit, tabSize int) ([]m.TextEdit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tabSize <= 0 {
		tabSize = m.DefaultTabSize
	}

	targets := targetLines(doc, edits)
	if len(targets) == 0 {
		return nil, nil
	}

	unit := indentUnit(doc, tabSize)

	var (
		formatEdits []m.TextEdit
		state       lexState
	)

	for line := 0; line < doc.LineCount(); line++ {
		text := doc.LineAt(line)
		trimmed := strings.TrimLeft(text, " \t")
		leading := len(text) - len(trimmed)
		depth := state.depth
		inside := state.continues()

		state.scan(text)

		if inside || !targets[line] || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "}") && depth > 0 {
			depth--
		}

		indent := strings.Repeat(unit, depth)
		if text[:leading] != indent {
			formatEdits = append(formatEdits, m.TextEdit{
				Range: m.Range{
					Start: m.Position{Line: line, Column: 0},
					End:   m.Position{Line: line, Column: leading},
				},
				NewText: indent,
			})
		}
	}

	return formatEdits, nil
}

// targetLines maps edits made against the previous text onto lines of doc.
// A line is a target when an edit put non-blank text on it, or when it holds
// only a brace and sits next to such a line.
func targetLines(doc Document, edits []m.TextEdit) map[int]bool {
	sorted := make([]m.TextEdit, len(edits))
	copy(sorted, edits)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Range.Start, sorted[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}

		return a.Column < b.Column
	})

	inserted := map[int]bool{}
	shift := 0

	for _, edit := range sorted {
		start := edit.Range.Start.Line + shift
		segments := strings.Split(edit.NewText, "\n")

		for i, segment := range segments {
			if strings.TrimSpace(segment) != "" {
				inserted[start+i] = true
			}
		}

		shift += len(segments) - 1 - (edit.Range.End.Line - edit.Range.Start.Line)
	}

	targets := make(map[int]bool, len(inserted))

	for line := range inserted {
		targets[line] = true

		for _, neighbour := range []int{line - 1, line + 1} {
			if neighbour >= 0 && neighbour < doc.LineCount() && isBraceLine(doc.LineAt(neighbour)) {
				targets[neighbour] = true
			}
		}
	}

	return targets
}

func isBraceLine(text string) bool {
	switch strings.TrimSpace(text) {
	case "{", "}", "};":
		return true
	default:
		return false
	}
}

// indentUnit returns a tab when more indented lines start with a tab than
// with a space, otherwise tabSize spaces.
func indentUnit(doc Document, tabSize int) string {
	tabs, spaces := 0, 0

	for line := 0; line < doc.LineCount(); line++ {
		text := doc.LineAt(line)
		if strings.TrimSpace(text) == "" {
			continue
		}

		switch text[0] {
		case '\t':
			tabs++
		case ' ':
			spaces++
		}
	}

	if tabs > spaces {
		return "\t"
	}

	return strings.Repeat(" ", tabSize)
}

type literalKind int

const (
	literalNone literalKind = iota
	literalRegular
	literalChar
	literalVerbatim
	literalRaw
)

// lexState tracks brace depth and the comment or literal a line ends in.
// Regular and char literals end with their line; verbatim and raw literals
// and block comments carry over.
type lexState struct {
	depth          int
	inBlockComment bool
	literal        literalKind
	rawQuotes      int
}

// continues reports whether the next line starts inside a comment or literal.
func (s *lexState) continues() bool {
	return s.inBlockComment || s.literal == literalVerbatim || s.literal == literalRaw
}

func (s *lexState) scan(code string) {
	for i := 0; i < len(code); i++ {
		c := code[i]

		switch {
		case s.inBlockComment:
			if c == '*' && i+1 < len(code) && code[i+1] == '/' {
				s.inBlockComment = false
				i++
			}
		case s.literal == literalRegular || s.literal == literalChar:
			if c == '\\' {
				i++
			} else if (s.literal == literalRegular && c == '"') || (s.literal == literalChar && c == '\'') {
				s.literal = literalNone
			}
		case s.literal == literalVerbatim:
			if c == '"' {
				if i+1 < len(code) && code[i+1] == '"' {
					i++
				} else {
					s.literal = literalNone
				}
			}
		case s.literal == literalRaw:
			if c == '"' {
				run := quoteRun(code, i)
				if run >= s.rawQuotes {
					s.literal = literalNone
				}

				i += run - 1
			}
		case c == '"':
			i = s.openString(code, i)
		case c == '\'':
			s.literal = literalChar
		case c == '/' && i+1 < len(code) && code[i+1] == '/':
			i = len(code)
		case c == '/' && i+1 < len(code) && code[i+1] == '*':
			s.inBlockComment = true
			i++
		case c == '{':
			s.depth++
		case c == '}':
			if s.depth > 0 {
				s.depth--
			}
		}
	}

	if s.literal == literalRegular || s.literal == literalChar {
		s.literal = literalNone
	}
}

// openString starts the literal whose first quote is at code[i] and returns
// the index of the last character consumed.
func (s *lexState) openString(code string, i int) int {
	if hasVerbatimPrefix(code, i) {
		s.literal = literalVerbatim
		return i
	}

	switch run := quoteRun(code, i); {
	case run >= 3:
		s.literal = literalRaw
		s.rawQuotes = run

		return i + run - 1
	case run == 2:
		return i + 1
	default:
		s.literal = literalRegular
		return i
	}
}

// hasVerbatimPrefix reports whether the quote at code[i] follows @, $@ or @$.
func hasVerbatimPrefix(code string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		switch code[j] {
		case '@':
			return true
		case '$':
			continue
		default:
			return false
		}
	}

	return false
}

func quoteRun(code string, i int) int {
	n := 0
	for i+n < len(code) && code[i+n] == '"' {
		n++
	}

	return n
}
