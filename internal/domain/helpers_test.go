package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

// newDoc joins lines with "\n" into an in-memory document.
func newDoc(lines ...string) *adapter.TextDocument {
	return adapter.NewTextDocument("Test.cs", []byte(strings.Join(lines, "\n")))
}

func loadExample(t *testing.T, parts ...string) *adapter.TextDocument {
	t.Helper()

	path := filepath.Join(append([]string{"..", "..", "examples"}, parts...)...)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return adapter.NewTextDocument(m.Path(path), content)
}

// cursorOn returns the position of the first occurrence of word on line.
func cursorOn(t *testing.T, doc adapter.Document, line int, word string) m.Position {
	t.Helper()

	column := strings.Index(doc.LineAt(line), word)
	require.GreaterOrEqual(t, column, 0, "%q not found on line %d", word, line)

	return m.Position{Line: line, Column: column}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
