package domain

import (
	"strings"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

// constructorScanLines bounds how far the resolver looks for a constructor's
// opening brace or the blank line preceding it.
const constructorScanLines = 5

// FindEnclosingClass returns the nearest class declaration at or above
// fromLine. Braces are not balanced: a sibling or nested class declared above
// the real owner is returned instead of it.
func FindEnclosingClass(doc adapter.Document, fromLine int) (m.ClassDefinition, bool) {
	if fromLine >= doc.LineCount() {
		fromLine = doc.LineCount() - 1
	}

	for line := fromLine; line >= 0; line-- {
		if class, ok := DetectClass(line, doc.LineAt(line)); ok {
			return class, true
		}
	}

	return m.ClassDefinition{}, false
}

// FindConstructorBodyStart returns the start of the line following the first
// opening brace found within constructorScanLines lines from `from`.
func FindConstructorBodyStart(doc adapter.Document, from m.Position) (m.Position, bool) {
	for line := from.Line; line < from.Line+constructorScanLines && line < doc.LineCount(); line++ {
		if line < 0 {
			continue
		}

		if strings.Contains(doc.LineAt(line), "{") {
			return m.Position{Line: line + 1, Column: 0}, true
		}
	}

	return m.Position{}, false
}

// FindConstructorStart approximates the line just before a constructor
// signature: the first blank line within constructorScanLines lines above
// `from` that is not above the enclosing class. Falls back to from's line.
func FindConstructorStart(doc adapter.Document, from m.Position) m.Position {
	class, ok := FindEnclosingClass(doc, from.Line)
	if ok {
		for line := from.Line; line > from.Line-constructorScanLines && line >= 0; line-- {
			if line < class.StartLine {
				break
			}

			if strings.TrimSpace(doc.LineAt(line)) == "" {
				return m.Position{Line: line, Column: 0}
			}
		}
	}

	return m.Position{Line: from.Line, Column: 0}
}
