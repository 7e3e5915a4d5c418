// Package controller renders code actions, edits, namespaces and project
// references for the command line.
package controller

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

// ErrSelectionRequired is returned when several actions are available but
// none was chosen and no interactive picker can run.
var ErrSelectionRequired = errors.New("several code actions are available; choose one with --action")

// NoSelection is returned by PickAction when the user cancels.
const NoSelection = -1

// OutputFormat selects how listings are rendered.
type OutputFormat string

// Available OutputFormat values.
const (
	FormatTable OutputFormat = "table"
	FormatYAML  OutputFormat = "yaml"
)

// Option configures a UI.
type Option func(*options)

type options struct {
	format OutputFormat
}

// WithFormat sets the output format of listings.
func WithFormat(format OutputFormat) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{format: FormatTable}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// UI defines how results reach the user. Implementations can use different
// output methods (simple text, TUI).
type UI interface {
	DisplayActions(ctx context.Context, path m.Path, actions []m.CodeAction) error
	// PickAction returns the zero-based index of the chosen action or NoSelection.
	PickAction(ctx context.Context, actions []m.CodeAction) (int, error)
	DisplayApplyResult(ctx context.Context, path m.Path, before string, result m.ApplyResult) error
	DisplayNamespaces(ctx context.Context, results []m.NamespaceResult) error
	DisplayReferences(ctx context.Context, projectFile m.Path, project m.Project, projectRefs bool) error
}

// NewUI returns an interactive UI on terminals and a plain one otherwise.
func NewUI(cmd *cobra.Command, isTTY bool, opts ...Option) UI {
	simple := NewSimpleUI(cmd, opts...)
	if isTTY {
		return NewTUI(simple)
	}

	return simple
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
