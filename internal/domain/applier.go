package domain

import (
	"context"
	"fmt"
	"log/slog"

	"seesharp.dev/pkg/seesharp/internal/adapter"
	m "seesharp.dev/pkg/seesharp/internal/model"
)

// EditApplier executes a code action against a document.
type EditApplier interface {
	Apply(ctx context.Context, doc adapter.Document, action m.CodeAction, settings m.Settings) (m.ApplyResult, error)
}

type editApplier struct {
	registry  *CommandRegistry
	sink      adapter.EditSink
	formatter adapter.Formatter
	logger    *slog.Logger
}

// NewEditApplier creates an EditApplier writing through sink. formatter may be
// nil, in which case no reformat pass runs.
func NewEditApplier(registry *CommandRegistry, sink adapter.EditSink, formatter adapter.Formatter, logger *slog.Logger) EditApplier {
	if logger == nil {
		logger = slog.Default()
	}

	if registry == nil {
		registry = NewCommandRegistry()
	}

	return &editApplier{
		registry:  registry,
		sink:      sink,
		formatter: formatter,
		logger:    logger,
	}
}

// Apply plans the action's edits, hands them to the sink and, when enabled,
// applies a second batch produced by the formatter over the inserted lines. Nothing is written when
// every fragment already exists.
func (a *editApplier) Apply(ctx context.Context, doc adapter.Document, action m.CodeAction, settings m.Settings) (m.ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return m.ApplyResult{}, err
	}

	batch, err := a.registry.Plan(ExecContext{Document: doc, Settings: settings}, action)
	if err != nil {
		return m.ApplyResult{}, err
	}

	result := m.ApplyResult{Skipped: batch.Skipped}

	if len(batch.Edits) == 0 {
		a.logger.Info("nothing to apply", "command", action.Command, "path", doc.Path(), "skipped", len(batch.Skipped))
		return result, nil
	}

	updated, err := a.sink.Apply(ctx, doc.Path(), batch.Edits)
	if err != nil {
		a.logger.Error("applying edits failed", "command", action.Command, "path", doc.Path(), "error", err)
		return result, fmt.Errorf("%w: %w", ErrApplyFailed, err)
	}

	result.Edits = batch.Edits
	result.Text = updated.Text()

	a.logger.Info("applied code action", "command", action.Command, "title", action.Title, "path", doc.Path(), "edits", len(batch.Edits))

	if !settings.ReformatAfterChange || a.formatter == nil {
		return result, nil
	}

	formatEdits, err := a.formatter.Format(ctx, updated, batch.Edits, settings.TabSize)
	if err != nil {
		a.logger.Warn("reformat skipped", "path", doc.Path(), "error", err)
		return result, nil
	}

	if len(formatEdits) == 0 {
		return result, nil
	}

	formatted, err := a.sink.Apply(ctx, doc.Path(), formatEdits)
	if err != nil {
		return result, fmt.Errorf("%w: reformat: %w", ErrApplyFailed, err)
	}

	result.FormatEdits = formatEdits
	result.Text = formatted.Text()

	return result, nil
}
